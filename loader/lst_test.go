package loader

import (
	"testing"
)

func TestLstLoad(t *testing.T) {
	input := "4000 : 00AB ; comment\n4001 : 00CD\n4002 :  \n"
	r := newRecorder()
	img := NewImage()
	seq, err := Load(r, testMem(), img, "prog.lst", []byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if seq.Total() != 2 {
		t.Fatalf("Total() = %d", seq.Total())
	}
	// nothing written until the sequence is consumed
	if len(r.writes) != 0 {
		t.Fatal("writes issued before Next")
	}
	p, ok := seq.Next()
	if !ok || p.Done != 1 || p.Total != 2 {
		t.Fatalf("first step %+v %v", p, ok)
	}
	if err := seq.Drain(); err != nil {
		t.Fatal(err)
	}
	want := []write{{0x4000, 0xab}, {0x4001, 0xcd}}
	if len(r.writes) != len(want) {
		t.Fatalf("writes %v", r.writes)
	}
	for i, w := range want {
		if r.writes[i] != w {
			t.Errorf("write %d = %+v, want %+v", i, r.writes[i], w)
		}
	}
	if e, ok := img.Source[0x4000]; !ok || e.Value != 0xab || e.Width != 1 {
		t.Errorf("source entry %+v", e)
	}
}

func TestLstLastWins(t *testing.T) {
	input := "10 : 01\n20 : 02\n10 : 03\n"
	r := newRecorder()
	seq, err := Load(r, testMem(), NewImage(), "a.lst", []byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if seq.Total() != 2 {
		t.Fatalf("Total() = %d", seq.Total())
	}
	if err := seq.Drain(); err != nil {
		t.Fatal(err)
	}
	// ascending address order, last value for the repeated address
	want := []write{{0x10, 0x03}, {0x20, 0x02}}
	for i, w := range want {
		if r.writes[i] != w {
			t.Errorf("write %d = %+v, want %+v", i, r.writes[i], w)
		}
	}
}

func TestLstPartialDrain(t *testing.T) {
	r := newRecorder()
	seq, err := Load(r, testMem(), NewImage(), "a.lst", []byte("10 : 01\n11 : 02\n12 : 03\n"))
	if err != nil {
		t.Fatal(err)
	}
	seq.Next()
	seq.Next()
	if len(r.writes) != 2 {
		t.Errorf("%d writes after two steps", len(r.writes))
	}
}

func TestLstParseErrors(t *testing.T) {
	cases := []struct {
		input string
		line  int
	}{
		{"4000 00AB\n", 1},             // no separator
		{"10 : 01\n40:00:AB\n", 2},     // two separators
		{"10 : 01\n : 02\n", 2},        // missing address
		{"10 : 01\nzz : 02\n", 2},      // bad address
		{"10 : 01\n11 : not-hex\n", 2}, // bad value
	}
	for _, c := range cases {
		r := newRecorder()
		_, err := Load(r, testMem(), NewImage(), "a.lst", []byte(c.input))
		pe, ok := err.(*ParseError)
		if !ok {
			t.Errorf("%q: err = %v", c.input, err)
			continue
		}
		if pe.Line != c.line {
			t.Errorf("%q: line %d, want %d", c.input, pe.Line, c.line)
		}
		if len(r.writes) != 0 {
			t.Errorf("%q: writes issued despite parse error", c.input)
		}
	}
}

func TestLstWrapsAddresses(t *testing.T) {
	r := newRecorder()
	seq, err := Load(r, testMem(), NewImage(), "a.lst", []byte("10123 : ff\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := seq.Drain(); err != nil {
		t.Fatal(err)
	}
	if r.writes[0].addr != 0x0123 {
		t.Errorf("address not wrapped: %#x", r.writes[0].addr)
	}
}
