// Package table turns memory into displayable rows. Every view of a
// memory (word groups, disassembly, source listings) implements the one
// Table contract; consumers never branch on the concrete kind.
package table

import (
	"github.com/pkg/errors"
)

// ErrBadValue reports cell text the column's parser rejected. The edit is
// not applied and no other state is touched.
var ErrBadValue = errors.New("bad cell value")

type Column struct {
	Name       string
	Editable   bool
	RightAlign bool
}

// Row is one displayable unit. Length is in memory words and may vary
// between rows; a zero-length row displays text that covers no words.
type Row struct {
	Addr   uint64
	Length int
	Cells  []string
}

type Table interface {
	Columns() []Column

	// Rows produces count rows starting at (or covering) addr.
	Rows(addr uint64, count int) ([]Row, error)

	// SetCell parses text per the column's semantics and writes through
	// to memory. row and col index into a Rows(addr, ...) result.
	SetCell(addr uint64, row, col int, text string) error
}

// StepSize is the address increment of one row at addr: the length of the
// first row produced there, clamped to at least 1.
func StepSize(t Table, addr uint64) int {
	rows, err := t.Rows(addr, 1)
	if err != nil || len(rows) == 0 || rows[0].Length < 1 {
		return 1
	}
	return rows[0].Length
}
