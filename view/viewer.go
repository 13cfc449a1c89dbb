package view

import (
	"fmt"

	"github.com/memview/memview/models"
	"github.com/memview/memview/table"
)

// RowView is one renderable row: the table's cells plus the address
// column's annotation summary and tooltip text. The tooltip is deferred;
// most rows are never hovered, so the text is built on first Force.
type RowView struct {
	table.Row
	Summary  Summary
	Tooltip  *models.Lazy[string]
	Selected bool
}

const noEdit = -1

// Viewer holds the display state for one memory: the current table, the
// top-row address, follow mode and selection. It owns the annotation
// overlay and the scroll accelerator for that memory.
type Viewer struct {
	target models.Target
	mem    *models.Memory
	log    models.Logger

	table table.Table
	// addr is the address shown on the first row
	addr uint64
	// step is the length of the first row, for line scrolling
	step int

	selected    uint64
	hasSelected bool
	// editing is the row index locked by an in-progress cell edit
	editing int

	follow     bool
	followExpr string

	Overlay  *Overlay
	Scroller Scroller
}

func NewViewer(target models.Target, mem *models.Memory, log models.Logger) *Viewer {
	if log == nil {
		log = models.DefaultLogger
	}
	return &Viewer{
		target:  target,
		mem:     mem,
		log:     log,
		step:    1,
		editing: noEdit,
		Overlay: NewOverlay(target, mem, log),
	}
}

// SetTable switches the row producer. Any in-progress edit is abandoned
// and the line-scroll step is resized for the new table right away.
func (v *Viewer) SetTable(t table.Table) {
	v.table = t
	v.editing = noEdit
	v.step = table.StepSize(t, v.addr)
}

func (v *Viewer) Table() table.Table {
	return v.table
}

func (v *Viewer) Addr() uint64 {
	return v.addr
}

// SetAddr jumps the view. Moving cancels any in-progress edit.
func (v *Viewer) SetAddr(addr uint64) {
	addr = v.mem.Wrap(addr)
	if addr != v.addr {
		v.editing = noEdit
		v.addr = addr
	}
}

// Step is the current address increment of one row.
func (v *Viewer) Step() int {
	return v.step
}

// ScrollRows moves by n rows of the current step size. Scrolling away
// disables follow mode.
func (v *Viewer) ScrollRows(n int64) {
	v.follow = false
	v.SetAddr(v.mem.Add(v.addr, n, v.step))
}

// Follow enables follow mode on an address expression; the next Refresh
// jumps to its value.
func (v *Viewer) Follow(expr string) {
	v.followExpr = expr
	v.follow = true
}

func (v *Viewer) Following() bool {
	return v.follow
}

// Select marks the row covering addr as selected after each refresh.
func (v *Viewer) Select(addr uint64) {
	v.selected = v.mem.Wrap(addr)
	v.hasSelected = true
}

// StartEdit locks a row against refresh updates while the user edits it.
func (v *Viewer) StartEdit(row int) {
	v.editing = row
}

// Edit writes new cell text through the table. The error, if any, is
// confined to this one cell; the previous value simply remains in memory
// and reappears on the next Refresh.
func (v *Viewer) Edit(row, col int, text string) error {
	err := v.table.SetCell(v.addr, row, col, text)
	v.editing = noEdit
	return err
}

// CancelEdit abandons an in-progress edit.
func (v *Viewer) CancelEdit() {
	v.editing = noEdit
}

// Refresh produces count display rows at the current address. Follow mode
// is applied first: if the expression fails to evaluate, follow mode is
// disabled, the failure is logged and the address stays put. The overlay
// is rebuilt before rows are annotated.
func (v *Viewer) Refresh(count int) ([]RowView, error) {
	if v.follow {
		addr, err := v.target.Evaluate(v.followExpr)
		if err != nil {
			v.follow = false
			v.log.Log(err, true, "address expression evaluation")
		} else {
			v.SetAddr(addr)
		}
	}

	v.Overlay.Refresh()

	rows, err := v.table.Rows(v.addr, count)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && rows[0].Length > 0 {
		v.step = rows[0].Length
	} else {
		v.step = 1
	}

	out := make([]RowView, len(rows))
	selected := false
	for i, row := range rows {
		row := row
		rv := RowView{Row: row}
		rv.Summary = v.Overlay.Summarize(row.Addr, uint64(row.Length))
		annotations := rv.Summary.Text
		rv.Tooltip = models.NewLazy(func() string {
			return v.tooltip(row, annotations)
		})
		if v.hasSelected && !selected && i != v.editing &&
			v.mem.InRange(v.selected, row.Addr, uint64(row.Length)) {
			rv.Selected = true
			selected = true
		}
		out[i] = rv
	}
	return out, nil
}

// tooltip is the fully-specified description of one row.
func (v *Viewer) tooltip(row table.Row, annotations string) string {
	span := v.mem.FormatAddr(row.Addr)
	if row.Length > 1 {
		span = fmt.Sprintf("%s:%s", span, v.mem.FormatAddr(v.mem.Add(row.Addr, 1, row.Length)))
	}
	plural := "s"
	if row.Length == 1 {
		plural = ""
	}
	text := fmt.Sprintf("%s[%s] %d word%s (%d x %d = %d bits)",
		v.mem.Name, span, row.Length, plural,
		row.Length, v.mem.WordBits, row.Length*int(v.mem.WordBits))
	if annotations != "" {
		text += "\n" + annotations
	}
	return text
}

// ScrollTick applies one scroll-drag tick at the given deflection,
// anchored at base. The displayed address becomes base plus the
// accumulated offset.
func (v *Viewer) ScrollTick(base uint64, deflect float64) {
	v.follow = false
	v.SetAddr(v.mem.Add(base, v.Scroller.Tick(deflect), 1))
}

// ScrollEnd finishes a drag with the guaranteed final tick.
func (v *Viewer) ScrollEnd(base uint64, deflect float64) {
	v.follow = false
	v.SetAddr(v.mem.Add(base, v.Scroller.End(deflect), 1))
}
