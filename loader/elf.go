package loader

import (
	"bytes"
	"debug/elf"

	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

// ElfLoader extracts every SHT_PROGBITS section of an ELF image and writes
// its bytes as single-word values at consecutive addresses from the
// section's base. Symbol table entries are recorded into the Image.
type ElfLoader struct{}

type elfSection struct {
	addr uint64
	data []byte
}

func (l *ElfLoader) Ext() string {
	return ".elf"
}

func (l *ElfLoader) Load(w MemWriter, mem *models.Memory, img *Image, data []byte) (*Seq, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}
	defer f.Close()

	var sections []elfSection
	total := 0
	for _, sec := range f.Sections {
		if sec.Type != elf.SHT_PROGBITS {
			continue
		}
		p, err := sec.Data()
		if err != nil {
			return nil, &ParseError{Msg: errors.Wrapf(err, "section %s", sec.Name).Error()}
		}
		sections = append(sections, elfSection{addr: sec.Addr, data: p})
		total += len(p)
	}

	// symbols are optional; an image stripped of its symtab still loads
	if syms, err := f.Symbols(); err == nil {
		for _, sym := range syms {
			if sym.Name != "" {
				img.Symbols[sym.Name] = sym.Value
			}
		}
	}

	return newSeq(total, func(n int) error {
		for _, sec := range sections {
			if n < len(sec.data) {
				addr := mem.Wrap(sec.addr + uint64(n))
				return w.MemWrite(mem, 1, addr, []uint64{uint64(sec.data[n])})
			}
			n -= len(sec.data)
		}
		return errors.Errorf("write %d out of range", n)
	}), nil
}
