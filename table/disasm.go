package table

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

// maxInsWords bounds the read-ahead window per disassembled row.
const maxInsWords = 16

// DisasmTable shows memory as disassembled instructions with variable row
// lengths. The disassembler and assembler are opaque services; rows that
// fail to decode degrade to single-word data rows. Editing the
// instruction column assembles the new text in place.
type DisasmTable struct {
	target models.Target
	mem    *models.Memory
	dis    models.Disassembler
	asm    models.Assembler
}

func NewDisasmTable(target models.Target, mem *models.Memory, dis models.Disassembler, asm models.Assembler) *DisasmTable {
	return &DisasmTable{target: target, mem: mem, dis: dis, asm: asm}
}

func (t *DisasmTable) Columns() []Column {
	return []Column{
		{Name: "Data", RightAlign: true},
		{Name: "Instruction", Editable: t.asm != nil},
	}
}

func (t *DisasmTable) Rows(addr uint64, count int) ([]Row, error) {
	addr = t.mem.Wrap(addr)
	vals, err := t.target.MemRead(t.mem, 1, addr, count*maxInsWords)
	if err != nil {
		return nil, errors.Wrap(err, "reading memory")
	}
	code := make([]byte, len(vals))
	for i, v := range vals {
		code[i] = byte(v)
	}

	// a decode failure downgrades the remainder to data rows rather than
	// failing the whole window
	ins, _ := t.dis.Dis(code, addr)

	rows := make([]Row, 0, count)
	a := addr
	for _, in := range ins {
		if len(rows) >= count {
			break
		}
		rows = append(rows, Row{
			Addr:   a,
			Length: len(in.Bytes()),
			Cells: []string{
				hex.EncodeToString(in.Bytes()),
				strings.TrimSpace(in.Mnemonic() + " " + in.OpStr()),
			},
		})
		a = t.mem.Add(a, 1, len(in.Bytes()))
	}
	for len(rows) < count {
		off := t.mem.Wrap(a - addr)
		var b byte
		if off < uint64(len(code)) {
			b = code[off]
		}
		rows = append(rows, Row{
			Addr:   a,
			Length: 1,
			Cells:  []string{fmt.Sprintf("%02x", b), ".db"},
		})
		a = t.mem.Add(a, 1, 1)
	}
	return rows, nil
}

func (t *DisasmTable) SetCell(addr uint64, row, col int, text string) error {
	if col != 1 || t.asm == nil {
		return errors.Wrap(ErrBadValue, "column is read-only")
	}
	rows, err := t.Rows(addr, row+1)
	if err != nil {
		return err
	}
	if row < 0 || row >= len(rows) {
		return errors.Wrapf(ErrBadValue, "no row %d", row)
	}
	at := rows[row].Addr
	code, err := t.asm.Asm(text, at)
	if err != nil || len(code) == 0 {
		return errors.Wrapf(ErrBadValue, "cannot assemble %q", text)
	}
	words := make([]uint64, len(code))
	for i, b := range code {
		words[i] = uint64(b)
	}
	return t.target.MemWrite(t.mem, 1, at, words)
}
