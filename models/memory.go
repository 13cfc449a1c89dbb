package models

import (
	"fmt"
)

// Memory describes one addressable space on the debugged target. Addresses
// are unsigned integers modulo 2^AddrBits, so the space wraps at the top.
type Memory struct {
	Name string
	// alias names accepted by expression evaluation
	Names    []string
	WordBits uint
	AddrBits uint
}

func (m *Memory) Mask() uint64 {
	return ^uint64(0) >> (64 - m.AddrBits)
}

func (m *Memory) WordMask() uint64 {
	return ^uint64(0) >> (64 - m.WordBits)
}

// Wrap aliases an address back into the memory's address space.
func (m *Memory) Wrap(addr uint64) uint64 {
	return addr & m.Mask()
}

// Add offsets addr by off rows of length words each, wrapping as needed.
func (m *Memory) Add(addr uint64, off int64, length int) uint64 {
	return m.Wrap(addr + uint64(off*int64(length)))
}

// InRange reports whether addr falls inside [start, start+length) words,
// taking address wrapping into account.
func (m *Memory) InRange(addr, start, length uint64) bool {
	return AddressRange{Start: start, Length: length}.Contains(addr, m.Mask())
}

// FormatAddr renders an address as zero-padded hex wide enough for AddrBits.
func (m *Memory) FormatAddr(addr uint64) string {
	digits := (m.AddrBits + 3) / 4
	return fmt.Sprintf("%0*x", digits, addr)
}

// AddressRange is a half-open span of Length words starting at Start.
// Ranges are ephemeral: built per containment query, never stored.
type AddressRange struct {
	Start  uint64
	Length uint64
}

// Contains reports whether addr lies in [Start, Start+Length) under
// modulo arithmetic, where mask is 2^addr_bits - 1. A range whose end
// exceeds the mask wraps the top of the address space; a zero-length
// range contains nothing. In a full 64-bit space the wrap shows up as
// uint64 overflow rather than a masked-off end, so both are checked.
func (r AddressRange) Contains(addr, mask uint64) bool {
	if r.Length == 0 {
		return false
	}
	end := r.Start + r.Length
	masked := end & mask
	if end < r.Start || end != masked {
		// range wraps the top of the address space
		return addr < masked || addr >= r.Start
	}
	return addr >= r.Start && addr < end
}
