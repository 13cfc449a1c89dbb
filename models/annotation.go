package models

import (
	"fmt"
)

// Annotation priorities. Higher wins when several annotations cover the
// same row.
const (
	SymbolPriority   = 5
	RegisterPriority = 10
)

// An Annotation marks an address as the current target of some pointer.
// Annotations are derived facts: the overlay rebuilds them wholesale on
// every refresh and never mutates one in place.
type Annotation interface {
	Addr() uint64
	Priority() int
	// Icon is a short glyph for the address column.
	Icon() string
	// Color is an ansi.ColorCode style string.
	Color() string
	// Label is a single human-readable line for summaries.
	Label() string
}

// RegisterAnnotation marks the address a register currently points at.
type RegisterAnnotation struct {
	Mem  *Memory
	addr uint64
	Bank string
	Reg  string
}

func NewRegisterAnnotation(mem *Memory, addr uint64, bank, reg string) *RegisterAnnotation {
	return &RegisterAnnotation{Mem: mem, addr: addr, Bank: bank, Reg: reg}
}

func (a *RegisterAnnotation) Addr() uint64  { return a.addr }
func (a *RegisterAnnotation) Priority() int { return RegisterPriority }
func (a *RegisterAnnotation) Icon() string  { return "▶" }
func (a *RegisterAnnotation) Color() string { return "red+b" }

func (a *RegisterAnnotation) Label() string {
	return fmt.Sprintf("%s.%s = %s[%s]", a.Bank, a.Reg, a.Mem.Name, a.Mem.FormatAddr(a.addr))
}

// SymbolAnnotation marks the address a loaded symbol resolves to.
type SymbolAnnotation struct {
	Mem  *Memory
	addr uint64
	Name string
}

func NewSymbolAnnotation(mem *Memory, addr uint64, name string) *SymbolAnnotation {
	return &SymbolAnnotation{Mem: mem, addr: addr, Name: name}
}

func (a *SymbolAnnotation) Addr() uint64  { return a.addr }
func (a *SymbolAnnotation) Priority() int { return SymbolPriority }
func (a *SymbolAnnotation) Icon() string  { return "◆" }
func (a *SymbolAnnotation) Color() string { return "cyan" }

func (a *SymbolAnnotation) Label() string {
	return fmt.Sprintf("%s = %s[%s]", a.Name, a.Mem.Name, a.Mem.FormatAddr(a.addr))
}
