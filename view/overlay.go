// Package view coordinates the inspection core: annotation overlays,
// scroll acceleration and the per-memory viewer state.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/memview/memview/models"
)

// MaxSummaryEntries bounds how many annotation lines one row's summary
// renders; a single address can be the target of arbitrarily many
// pointers.
const MaxSummaryEntries = 20

// Summary is the presentation of the annotations covering one row.
// Icon and Color come from the highest-priority match; Text lists the
// matches ordered by address then descending priority.
type Summary struct {
	Icon  string
	Color string
	Text  string
}

// Overlay owns the annotation index for one memory. Refresh rebuilds the
// index wholesale from the target's register and symbol pointers; it is
// never patched incrementally, so a refresh can't go stale against
// registers that changed since the last one.
type Overlay struct {
	target models.Target
	mem    *models.Memory
	log    models.Logger

	index map[uint64][]models.Annotation
}

func NewOverlay(target models.Target, mem *models.Memory, log models.Logger) *Overlay {
	if log == nil {
		log = models.DefaultLogger
	}
	return &Overlay{
		target: target,
		mem:    mem,
		log:    log,
		index:  make(map[uint64][]models.Annotation),
	}
}

// Refresh rebuilds the index. A register whose read fails is skipped and
// logged; the rest of the refresh continues. The new index replaces the
// old one only once fully built.
func (o *Overlay) Refresh() {
	index := make(map[uint64][]models.Annotation)

	for _, p := range o.target.RegPointers(o.mem) {
		val, err := o.target.RegRead(p.Reg)
		if err != nil {
			o.log.Log(err, false, fmt.Sprintf("reading register %s.%s", p.Bank, p.Reg))
			continue
		}
		addr := o.mem.Wrap(val)
		index[addr] = append(index[addr], models.NewRegisterAnnotation(o.mem, addr, p.Bank, p.Reg))
	}

	for _, p := range o.target.SymPointers(o.mem) {
		addr := o.mem.Wrap(p.Addr)
		index[addr] = append(index[addr], models.NewSymbolAnnotation(o.mem, addr, p.Name))
	}

	o.index = index
}

// Covering returns every annotation whose address falls inside
// [start, start+length) words, wrapping included. Order is unspecified.
func (o *Overlay) Covering(start, length uint64) []models.Annotation {
	var out []models.Annotation
	for addr, as := range o.index {
		if o.mem.InRange(addr, start, length) {
			out = append(out, as...)
		}
	}
	return out
}

// Summarize derives the bounded presentation summary for a row.
func (o *Overlay) Summarize(start, length uint64) Summary {
	all := o.Covering(start, length)
	if len(all) == 0 {
		return Summary{}
	}

	best := all[0]
	for _, a := range all[1:] {
		if a.Priority() > best.Priority() {
			best = a
		}
	}

	// address ascending, then priority descending
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Addr() != all[j].Addr() {
			return all[i].Addr() < all[j].Addr()
		}
		return all[i].Priority() > all[j].Priority()
	})

	shown := all
	if len(shown) > MaxSummaryEntries {
		shown = shown[:MaxSummaryEntries]
	}
	lines := make([]string, len(shown))
	for i, a := range shown {
		lines[i] = a.Label()
	}
	if hidden := len(all) - MaxSummaryEntries; hidden > 0 {
		plural := "s"
		if hidden == 1 {
			plural = ""
		}
		lines = append(lines, fmt.Sprintf("+ %d other%s not shown", hidden, plural))
	}

	return Summary{
		Icon:  best.Icon(),
		Color: best.Color(),
		Text:  strings.Join(lines, "\n"),
	}
}
