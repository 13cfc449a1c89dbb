package mem

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

func testDesc() *models.Memory {
	return &models.Memory{Name: "ram", Names: []string{"ram", "mem"}, WordBits: 8, AddrBits: 16}
}

func TestReadWriteWord(t *testing.T) {
	m := NewMem(testDesc())
	if m.ReadWord(0x100) != 0 {
		t.Fatal("unwritten word not zero")
	}
	m.WriteWord(0x100, 0x1ab)
	if got := m.ReadWord(0x100); got != 0xab {
		t.Errorf("word not masked on write: %#x", got)
	}
	// wraps at 16 bits
	m.WriteWord(0x10123, 0x7f)
	if got := m.ReadWord(0x0123); got != 0x7f {
		t.Errorf("write did not wrap: %#x", got)
	}
}

func TestReadWriteWidth(t *testing.T) {
	m := NewMem(testDesc())
	if err := m.Write(2, 0x4000, []uint64{0x1234, 0xbeef}); err != nil {
		t.Fatal(err)
	}
	// low word first
	if m.ReadWord(0x4000) != 0x34 || m.ReadWord(0x4001) != 0x12 {
		t.Error("element not split low word first")
	}
	vals, err := m.Read(2, 0x4000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != 0x1234 || vals[1] != 0xbeef {
		t.Errorf("round trip read %#x", vals)
	}
	if _, err := m.Read(9, 0, 1); err == nil {
		t.Error("9-word elements should exceed 64 bits")
	}
	if _, err := m.Read(0, 0, 1); err == nil {
		t.Error("zero width accepted")
	}
}

func TestMin(t *testing.T) {
	m := NewMem(testDesc())
	if m.Min() != 0 {
		t.Error("empty store has nonzero Min")
	}
	m.WriteWord(0x8002, 1)
	m.WriteWord(0x4001, 2)
	if got := m.Min(); got != 0x4001 {
		t.Errorf("Min() = %#x", got)
	}
}

func TestRegisters(t *testing.T) {
	tg := NewTarget(testDesc())
	tg.AddReg("cpu", "pc", true)
	tg.AddReg("cpu", "a", false)
	if err := tg.RegWrite("pc", 0x1234); err != nil {
		t.Fatal(err)
	}
	if v, err := tg.RegRead("pc"); err != nil || v != 0x1234 {
		t.Fatalf("RegRead(pc) = %#x, %v", v, err)
	}
	if _, err := tg.RegRead("x"); err == nil {
		t.Error("unknown register read succeeded")
	}
	if err := tg.RegWrite("x", 1); err == nil {
		t.Error("unknown register write succeeded")
	}
	ptrs := tg.RegPointers(nil)
	if len(ptrs) != 1 || ptrs[0].Reg != "pc" {
		t.Errorf("pointers %v", ptrs)
	}
}

func TestSymPointersTrackImage(t *testing.T) {
	tg := NewTarget(testDesc())
	if syms := tg.SymPointers(nil); len(syms) != 0 {
		t.Fatalf("syms %v", syms)
	}
	// symbols land as the image changes, without a reload hook
	tg.Image().Symbols["start"] = 0x4000
	syms := tg.SymPointers(nil)
	if len(syms) != 1 || syms[0].Name != "start" || syms[0].Addr != 0x4000 {
		t.Errorf("syms %v", syms)
	}
}

func TestEvaluate(t *testing.T) {
	tg := NewTarget(testDesc())
	tg.AddReg("cpu", "pc", true)
	tg.RegWrite("pc", 0x1000)
	tg.Image().Symbols["start"] = 0x4000

	cases := []struct {
		expr string
		want uint64
	}{
		{"4000", 0x4000},
		{"0x4000", 0x4000},
		{"start", 0x4000},
		{"pc", 0x1000},
		{"start+10", 0x4010},
		{"start - pc", 0x3000},
		{"start+pc-1", 0x4fff},
		{"ffff+2", 0x0001},
	}
	for _, c := range cases {
		got, err := tg.Evaluate(c.expr)
		if err != nil {
			t.Errorf("Evaluate(%q): %v", c.expr, err)
			continue
		}
		if got != c.want {
			t.Errorf("Evaluate(%q) = %#x, want %#x", c.expr, got, c.want)
		}
	}

	for _, expr := range []string{"", "bogus", "start+", "start+bogus"} {
		_, err := tg.Evaluate(expr)
		if errors.Cause(err) != ErrEvaluation {
			t.Errorf("Evaluate(%q) err = %v", expr, err)
		}
	}
}
