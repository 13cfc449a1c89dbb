package loader

import (
	"testing"
)

func TestSymPointers(t *testing.T) {
	img := NewImage()
	img.Symbols["label10"] = 0x10
	img.Symbols["label2"] = 0x20
	img.Symbols["alpha"] = 0x30

	syms := img.SymPointers()
	want := []string{"alpha", "label2", "label10"}
	if len(syms) != len(want) {
		t.Fatalf("syms %v", syms)
	}
	for i, name := range want {
		if syms[i].Name != name {
			t.Errorf("sym %d = %q, want %q", i, syms[i].Name, name)
		}
	}
}

func TestImageClear(t *testing.T) {
	img := NewImage()
	img.Symbols["a"] = 1
	img.Source[2] = SourceEntry{Width: 1}
	img.Clear()
	if len(img.Symbols) != 0 || len(img.Source) != 0 {
		t.Error("Clear left entries behind")
	}
}
