package view

import (
	"testing"
)

func TestScrollerIdle(t *testing.T) {
	var s Scroller
	if s.Dragging() {
		t.Fatal("dragging before Start")
	}
	if s.Tick(1.0) != 0 {
		t.Error("tick moved without a drag")
	}
	s.Start()
	if !s.Dragging() {
		t.Error("not dragging after Start")
	}
	if s.Tick(0) != 0 {
		t.Error("zero deflection moved")
	}
	if s.End(0) != 0 {
		t.Error("release at zero deflection moved")
	}
	if s.Dragging() {
		t.Error("still dragging after End")
	}
}

func TestScrollerMonotonic(t *testing.T) {
	var s Scroller
	s.Start()
	last := int64(0)
	for i := 0; i < 50; i++ {
		off := s.Tick(0.5)
		if off < last {
			t.Fatalf("offset went backwards: %d after %d", off, last)
		}
		last = off
	}
	if last == 0 {
		t.Error("sustained drag never moved")
	}

	var n Scroller
	n.Start()
	nlast := int64(0)
	for i := 0; i < 50; i++ {
		off := n.Tick(-0.5)
		if off > nlast {
			t.Fatalf("negative drag reversed: %d after %d", off, nlast)
		}
		nlast = off
	}
}

func TestScrollerAcceleration(t *testing.T) {
	slow, fast := &Scroller{}, &Scroller{}
	slow.Start()
	fast.Start()
	for i := 0; i < 10; i++ {
		slow.Tick(0.2)
		fast.Tick(0.9)
	}
	if fast.Offset() <= slow.Offset() {
		t.Errorf("full deflection (%d) not faster than light (%d)", fast.Offset(), slow.Offset())
	}
}

func TestScrollerRelease(t *testing.T) {
	// even an instant click-and-release moves at least one row
	var s Scroller
	s.Start()
	if off := s.End(0.05); off < 1 {
		t.Errorf("positive release moved %d", off)
	}
	s.Start()
	if off := s.End(-0.05); off > -1 {
		t.Errorf("negative release moved %d", off)
	}
}

func TestScrollerDeterministic(t *testing.T) {
	deflects := []float64{0.1, 0.3, 0.3, 0.8, -0.2, 0.5}
	run := func() []int64 {
		var s Scroller
		s.Start()
		out := make([]int64, len(deflects))
		for i, d := range deflects {
			out[i] = s.Tick(d)
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d differed: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestScrollerRestart(t *testing.T) {
	var s Scroller
	s.Start()
	for i := 0; i < 5; i++ {
		s.Tick(1.0)
	}
	s.Start()
	if s.Offset() != 0 {
		t.Error("Start did not reset the distance")
	}
}
