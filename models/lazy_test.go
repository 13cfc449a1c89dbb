package models

import (
	"testing"
)

func TestLazy(t *testing.T) {
	calls := 0
	l := NewLazy(func() int {
		calls++
		return 42
	})
	if l.IsForced() {
		t.Fatal("forced before first use")
	}
	if v := l.Force(); v != 42 {
		t.Fatalf("Force() = %d", v)
	}
	if v := l.Force(); v != 42 {
		t.Fatalf("second Force() = %d", v)
	}
	if calls != 1 {
		t.Errorf("computation ran %d times", calls)
	}
	if !l.IsForced() {
		t.Error("not forced after use")
	}
}

func TestAsNeeded(t *testing.T) {
	n := 0
	a := NewAsNeeded(func() int {
		n++
		return n
	})
	if a.Get() != 1 || a.Get() != 2 {
		t.Error("AsNeeded cached a value")
	}
}
