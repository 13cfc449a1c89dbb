package table

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/memview/memview/loader"
)

func sourceFixture() (*loader.Image, *SourceTable, *SourceTable) {
	img := loader.NewImage()
	img.Source[0x4000] = loader.SourceEntry{
		Width: 1,
		Value: 0xab,
		Lines: []string{"; setup", "start:", "4000 : 00AB ; load"},
	}
	img.Source[0x4001] = loader.SourceEntry{
		Width: 2,
		Value: 0xbeef,
		Lines: []string{"4001 : BEEF"},
	}
	tg, desc := testTarget()
	tg.Mem().WriteWord(0x4003, 0x7f)
	compact := NewSourceTable(tg, desc, img, false)
	full := NewSourceTable(tg, desc, img, true)
	return img, compact, full
}

func TestSourceRowsCompact(t *testing.T) {
	_, compact, _ := sourceFixture()
	rows, err := compact.Rows(0x4000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Addr != 0x4000 || rows[0].Length != 1 || rows[0].Cells[1] != "4000 : 00AB ; load" {
		t.Errorf("row 0 %+v", rows[0])
	}
	if rows[1].Addr != 0x4001 || rows[1].Length != 2 || rows[1].Cells[0] != "beef" {
		t.Errorf("row 1 %+v", rows[1])
	}
	// no source entry: plain data row
	if rows[2].Addr != 0x4003 || rows[2].Length != 1 || rows[2].Cells[0] != "7f" {
		t.Errorf("row 2 %+v", rows[2])
	}
}

func TestSourceRowsFull(t *testing.T) {
	_, _, full := sourceFixture()
	rows, err := full.Rows(0x4000, 4)
	if err != nil {
		t.Fatal(err)
	}
	// leading lines cover no words
	if rows[0].Length != 0 || rows[0].Cells[1] != "; setup" {
		t.Errorf("row 0 %+v", rows[0])
	}
	if rows[1].Length != 0 || rows[1].Cells[1] != "start:" {
		t.Errorf("row 1 %+v", rows[1])
	}
	if rows[2].Length != 1 || rows[2].Cells[1] != "4000 : 00AB ; load" {
		t.Errorf("row 2 %+v", rows[2])
	}
	if rows[3].Addr != 0x4001 {
		t.Errorf("row 3 %+v", rows[3])
	}
}

func TestSourceReadOnly(t *testing.T) {
	_, compact, _ := sourceFixture()
	if err := compact.SetCell(0x4000, 0, 0, "ff"); errors.Cause(err) != ErrBadValue {
		t.Errorf("err = %v", err)
	}
}
