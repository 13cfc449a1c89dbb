package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

// WordTable shows rows of NumElems elements, each ElemWords memory words
// wide, as editable hex cells.
type WordTable struct {
	target    models.Target
	mem       *models.Memory
	ElemWords int
	NumElems  int
	align     bool
}

func NewWordTable(target models.Target, mem *models.Memory, elemWords, numElems int) *WordTable {
	// a degenerate geometry would divide by zero in start()
	if elemWords < 1 {
		elemWords = 1
	}
	if numElems < 1 {
		numElems = 1
	}
	return &WordTable{
		target:    target,
		mem:       mem,
		ElemWords: elemWords,
		NumElems:  numElems,
		align:     true,
	}
}

// SetAlign controls snapping the start address down to a row boundary.
func (t *WordTable) SetAlign(align bool) {
	t.align = align
}

func (t *WordTable) rowLen() int {
	return t.ElemWords * t.NumElems
}

func (t *WordTable) start(addr uint64) uint64 {
	if t.align {
		addr -= addr % uint64(t.rowLen())
	}
	return t.mem.Wrap(addr)
}

func (t *WordTable) digits() int {
	return (t.ElemWords*int(t.mem.WordBits) + 3) / 4
}

func (t *WordTable) elemMask() uint64 {
	bits := uint(t.ElemWords) * t.mem.WordBits
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

func (t *WordTable) Columns() []Column {
	cols := make([]Column, t.NumElems)
	for i := range cols {
		cols[i] = Column{
			Name:       fmt.Sprintf("+%x", i*t.ElemWords),
			Editable:   true,
			RightAlign: true,
		}
	}
	return cols
}

func (t *WordTable) Rows(addr uint64, count int) ([]Row, error) {
	start := t.start(addr)
	vals, err := t.target.MemRead(t.mem, t.ElemWords, start, count*t.NumElems)
	if err != nil {
		return nil, errors.Wrap(err, "reading memory")
	}
	digits := t.digits()
	rows := make([]Row, count)
	for i := range rows {
		cells := make([]string, t.NumElems)
		for j := range cells {
			cells[j] = fmt.Sprintf("%0*x", digits, vals[i*t.NumElems+j])
		}
		rows[i] = Row{
			Addr:   t.mem.Add(start, int64(i), t.rowLen()),
			Length: t.rowLen(),
			Cells:  cells,
		}
	}
	return rows, nil
}

func (t *WordTable) SetCell(addr uint64, row, col int, text string) error {
	if row < 0 {
		return errors.Wrapf(ErrBadValue, "no row %d", row)
	}
	if col < 0 || col >= t.NumElems {
		return errors.Wrapf(ErrBadValue, "no column %d", col)
	}
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "0x"))
	v, err := strconv.ParseUint(text, 16, 64)
	if err != nil {
		return errors.Wrapf(ErrBadValue, "%q is not hex", text)
	}
	if v&^t.elemMask() != 0 {
		return errors.Wrapf(ErrBadValue, "%q exceeds %d bits", text, uint(t.ElemWords)*t.mem.WordBits)
	}
	cell := t.start(addr) + uint64(row*t.rowLen()+col*t.ElemWords)
	return t.target.MemWrite(t.mem, t.ElemWords, t.mem.Wrap(cell), []uint64{v})
}
