package loader

import (
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"

	"github.com/memview/memview/models"
)

// SourceEntry ties loaded memory words back to the text they came from.
type SourceEntry struct {
	// Width is the number of memory words the entry covers.
	Width int
	// Value is the word value the image assigned.
	Value uint64
	// Lines holds the source text, last line being the one that emitted
	// the value.
	Lines []string
}

// Image holds the per-load metadata carried by image formats: source text
// keyed by address and a symbol table. Both maps are cleared at the start
// of every load and persist until the next one.
type Image struct {
	Source  map[uint64]SourceEntry
	Symbols map[string]uint64
}

func NewImage() *Image {
	img := &Image{}
	img.Clear()
	return img
}

func (img *Image) Clear() {
	img.Source = make(map[uint64]SourceEntry)
	img.Symbols = make(map[string]uint64)
}

// SymPointers lists the image's symbols in natural name order.
func (img *Image) SymPointers() []models.SymPointer {
	out := make([]models.SymPointer, 0, len(img.Symbols))
	for name, addr := range img.Symbols {
		out = append(out, models.SymPointer{Name: name, Addr: addr})
	}
	sort.Slice(out, func(i, j int) bool {
		return sortorder.NaturalLess(out[i].Name, out[j].Name)
	})
	return out
}
