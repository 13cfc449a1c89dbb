package table

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/memview/memview/loader"
	"github.com/memview/memview/models"
)

// SourceTable overlays loaded listing text onto memory. Addresses the
// image carries source for show their text; everything else degrades to a
// plain one-word data row. In full mode every source line gets its own
// row, with only the final line of an entry covering the entry's words.
type SourceTable struct {
	target models.Target
	mem    *models.Memory
	img    *loader.Image
	full   bool
}

func NewSourceTable(target models.Target, mem *models.Memory, img *loader.Image, full bool) *SourceTable {
	return &SourceTable{target: target, mem: mem, img: img, full: full}
}

func (t *SourceTable) Columns() []Column {
	return []Column{
		{Name: "Data", RightAlign: true},
		{Name: "Source"},
	}
}

func (t *SourceTable) Rows(addr uint64, count int) ([]Row, error) {
	rows := make([]Row, 0, count)
	a := t.mem.Wrap(addr)
	for len(rows) < count {
		e, ok := t.img.Source[a]
		if !ok {
			vals, err := t.target.MemRead(t.mem, 1, a, 1)
			if err != nil {
				return nil, errors.Wrap(err, "reading memory")
			}
			rows = append(rows, Row{
				Addr:   a,
				Length: 1,
				Cells:  []string{t.formatValue(vals[0], 1), ""},
			})
			a = t.mem.Add(a, 1, 1)
			continue
		}
		lines := e.Lines
		if len(lines) == 0 {
			lines = []string{""}
		}
		if t.full {
			// leading lines cover no words
			for _, line := range lines[:len(lines)-1] {
				if len(rows) >= count {
					return rows, nil
				}
				rows = append(rows, Row{Addr: a, Length: 0, Cells: []string{"", line}})
			}
		}
		rows = append(rows, Row{
			Addr:   a,
			Length: e.Width,
			Cells:  []string{t.formatValue(e.Value, e.Width), lines[len(lines)-1]},
		})
		a = t.mem.Add(a, 1, e.Width)
	}
	return rows, nil
}

func (t *SourceTable) formatValue(v uint64, width int) string {
	digits := (width*int(t.mem.WordBits) + 3) / 4
	return fmt.Sprintf("%0*x", digits, v)
}

func (t *SourceTable) SetCell(addr uint64, row, col int, text string) error {
	return errors.Wrap(ErrBadValue, "source views are read-only")
}
