// Package mem is an in-process word-addressed memory target: a sparse
// paged word store plus a register file, suitable for loading images into
// and inspecting without a live debug connection.
package mem

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

// PageWords is the allocation granularity of the store, in words.
const PageWords = 1024

// Mem is a sparse store of memory words. Pages materialize on first
// write; unwritten words read back as zero. Addresses wrap modulo the
// memory's address width.
type Mem struct {
	desc  *models.Memory
	pages map[uint64][]uint64
}

func NewMem(desc *models.Memory) *Mem {
	return &Mem{
		desc:  desc,
		pages: make(map[uint64][]uint64),
	}
}

func (m *Mem) Desc() *models.Memory {
	return m.desc
}

func (m *Mem) page(addr uint64, create bool) []uint64 {
	base := addr &^ uint64(PageWords-1)
	p := m.pages[base]
	if p == nil && create {
		p = make([]uint64, PageWords)
		m.pages[base] = p
	}
	return p
}

// WriteWord stores a single word, masked to the memory's word width.
func (m *Mem) WriteWord(addr, val uint64) {
	addr = m.desc.Wrap(addr)
	m.page(addr, true)[addr%PageWords] = val & m.desc.WordMask()
}

// ReadWord fetches a single word. Unwritten words are zero.
func (m *Mem) ReadWord(addr uint64) uint64 {
	addr = m.desc.Wrap(addr)
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr%PageWords]
}

// Write stores values at addr, each value split across width consecutive
// words, least significant word first.
func (m *Mem) Write(width int, addr uint64, values []uint64) error {
	if width < 1 {
		return errors.Errorf("bad element width %d", width)
	}
	for _, v := range values {
		for i := 0; i < width; i++ {
			m.WriteWord(addr, v)
			v >>= m.desc.WordBits
			addr++
		}
	}
	return nil
}

// Read fetches count values of width words each starting at addr.
func (m *Mem) Read(width int, addr uint64, count int) ([]uint64, error) {
	if width < 1 {
		return nil, errors.Errorf("bad element width %d", width)
	}
	if uint(width)*m.desc.WordBits > 64 {
		return nil, errors.Errorf("element width %d exceeds 64 bits", width)
	}
	out := make([]uint64, count)
	for i := range out {
		var v uint64
		for j := width - 1; j >= 0; j-- {
			v = v<<m.desc.WordBits | m.ReadWord(addr+uint64(j))
		}
		out[i] = v
		addr += uint64(width)
	}
	return out, nil
}

// span is one contiguous run of written words.
type span struct {
	Addr  uint64
	Words []uint64
}

// spans returns the written pages in ascending address order. Used by
// snapshots and the dump command.
func (m *Mem) spans() []span {
	bases := make([]uint64, 0, len(m.pages))
	for base := range m.pages {
		bases = append(bases, base)
	}
	sort.Slice(bases, func(i, j int) bool { return bases[i] < bases[j] })
	out := make([]span, len(bases))
	for i, base := range bases {
		out[i] = span{Addr: base, Words: m.pages[base]}
	}
	return out
}

// Min returns the lowest written address, or zero for an empty store.
func (m *Mem) Min() uint64 {
	s := m.spans()
	if len(s) == 0 {
		return 0
	}
	for i, w := range s[0].Words {
		if w != 0 {
			return s[0].Addr + uint64(i)
		}
	}
	return s[0].Addr
}
