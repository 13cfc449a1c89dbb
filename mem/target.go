package mem

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/memview/memview/loader"
	"github.com/memview/memview/models"
)

var ErrEvaluation = errors.New("cannot evaluate expression")

// Target is an in-process implementation of models.Target backed by a
// sparse word store, a flat register file and the most recently loaded
// image's symbols.
type Target struct {
	mem   *Mem
	regs  map[string]uint64
	banks map[string][]string
	ptrs  []models.RegPointer
	img   *loader.Image
	syms  models.AsNeeded[[]models.SymPointer]
}

func NewTarget(desc *models.Memory) *Target {
	t := &Target{
		mem:   NewMem(desc),
		regs:  make(map[string]uint64),
		banks: make(map[string][]string),
		img:   loader.NewImage(),
	}
	// image loads replace the symbol table, so never cache this
	t.syms = models.NewAsNeeded(t.img.SymPointers)
	return t
}

func (t *Target) Mem() *Mem {
	return t.mem
}

func (t *Target) Image() *loader.Image {
	return t.img
}

// AddReg declares a register in a bank. pointer marks it as holding an
// address into this target's memory.
func (t *Target) AddReg(bank, reg string, pointer bool) {
	if _, ok := t.regs[reg]; !ok {
		t.banks[bank] = append(t.banks[bank], reg)
	}
	t.regs[reg] = 0
	if pointer {
		t.ptrs = append(t.ptrs, models.RegPointer{Bank: bank, Reg: reg})
	}
}

func (t *Target) isPointer(reg string) bool {
	for _, p := range t.ptrs {
		if p.Reg == reg {
			return true
		}
	}
	return false
}

func (t *Target) RegWrite(reg string, val uint64) error {
	if _, ok := t.regs[reg]; !ok {
		return errors.Errorf("no register %q", reg)
	}
	t.regs[reg] = val
	return nil
}

func (t *Target) Mems() []*models.Memory {
	return []*models.Memory{t.mem.desc}
}

func (t *Target) MemWrite(m *models.Memory, width int, addr uint64, values []uint64) error {
	return t.mem.Write(width, addr, values)
}

func (t *Target) MemRead(m *models.Memory, width int, addr uint64, count int) ([]uint64, error) {
	return t.mem.Read(width, addr, count)
}

func (t *Target) RegRead(reg string) (uint64, error) {
	val, ok := t.regs[reg]
	if !ok {
		return 0, errors.Errorf("no register %q", reg)
	}
	return val, nil
}

func (t *Target) RegPointers(m *models.Memory) []models.RegPointer {
	return t.ptrs
}

func (t *Target) SymPointers(m *models.Memory) []models.SymPointer {
	return t.syms.Get()
}

// Evaluate resolves address expressions of the form "term", "term+term"
// or "term-term" where a term is a hex literal, a symbol or a register.
func (t *Target) Evaluate(expr string) (uint64, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return 0, errors.Wrap(ErrEvaluation, "empty expression")
	}
	var total uint64
	neg := false
	for {
		i := strings.IndexAny(s, "+-")
		raw := s
		var op byte
		if i >= 0 {
			raw, op, s = s[:i], s[i], s[i+1:]
		}
		val, err := t.term(raw)
		if err != nil {
			return 0, err
		}
		if neg {
			total -= val
		} else {
			total += val
		}
		if i < 0 {
			return t.mem.desc.Wrap(total), nil
		}
		neg = op == '-'
	}
}

func (t *Target) term(raw string) (uint64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.Wrapf(ErrEvaluation, "empty term in %q", raw)
	}
	if addr, ok := t.img.Symbols[s]; ok {
		return addr, nil
	}
	if val, ok := t.regs[s]; ok {
		return val, nil
	}
	if v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64); err == nil {
		return v, nil
	}
	return 0, errors.Wrapf(ErrEvaluation, "unknown term %q", s)
}
