package loader

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildElf assembles a minimal ELF32 image with a 4-byte .text section at
// 0x1000, a 6-byte .data section at 0x2000 and one symbol "start".
func buildElf(t *testing.T) []byte {
	t.Helper()
	var body bytes.Buffer
	off := func() uint32 { return uint32(52 + body.Len()) }
	pack := func(v interface{}) {
		if err := binary.Write(&body, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}

	textOff := off()
	pack([]byte{0xde, 0xad, 0xbe, 0xef})
	dataOff := off()
	pack([]byte{1, 2, 3, 4, 5, 6})

	type sym struct {
		Name, Value, Size uint32
		Info, Other       uint8
		Shndx             uint16
	}
	symOff := off()
	pack(sym{})
	pack(sym{Name: 1, Value: 0x1000, Info: 0x12, Shndx: 1})

	strtab := []byte("\x00start\x00")
	strOff := off()
	pack(strtab)

	shstrtab := []byte("\x00.text\x00.data\x00.symtab\x00.strtab\x00.shstrtab\x00")
	shstrOff := off()
	pack(shstrtab)

	type shdr struct {
		Name, Type, Flags, Addr, Off, Size, Link, Info, Align, Entsize uint32
	}
	shoff := off()
	for _, sh := range []shdr{
		{},
		{Name: 1, Type: 1, Flags: 6, Addr: 0x1000, Off: textOff, Size: 4, Align: 1},
		{Name: 7, Type: 1, Flags: 3, Addr: 0x2000, Off: dataOff, Size: 6, Align: 1},
		{Name: 13, Type: 2, Off: symOff, Size: 32, Link: 4, Info: 1, Align: 4, Entsize: 16},
		{Name: 21, Type: 3, Off: strOff, Size: uint32(len(strtab)), Align: 1},
		{Name: 29, Type: 3, Off: shstrOff, Size: uint32(len(shstrtab)), Align: 1},
	} {
		pack(sh)
	}

	var out bytes.Buffer
	ident := [16]byte{0x7f, 'E', 'L', 'F', 1, 1, 1}
	out.Write(ident[:])
	if err := binary.Write(&out, binary.LittleEndian, struct {
		Type, Machine                       uint16
		Version, Entry, Phoff, Shoff, Flags uint32
		Ehsize, Phentsize, Phnum            uint16
		Shentsize, Shnum, Shstrndx          uint16
	}{
		Type: 2, Machine: 3, Version: 1, Entry: 0x1000, Shoff: shoff,
		Ehsize: 52, Shentsize: 40, Shnum: 6, Shstrndx: 5,
	}); err != nil {
		t.Fatal(err)
	}
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestElfLoad(t *testing.T) {
	r := newRecorder()
	img := NewImage()
	seq, err := Load(r, testMem(), img, "prog.elf", buildElf(t))
	if err != nil {
		t.Fatal(err)
	}
	if seq.Total() != 10 {
		t.Fatalf("Total() = %d", seq.Total())
	}
	if len(r.writes) != 0 {
		t.Fatal("writes issued before Next")
	}
	if err := seq.Drain(); err != nil {
		t.Fatal(err)
	}
	want := []write{
		{0x1000, 0xde}, {0x1001, 0xad}, {0x1002, 0xbe}, {0x1003, 0xef},
		{0x2000, 1}, {0x2001, 2}, {0x2002, 3}, {0x2003, 4}, {0x2004, 5}, {0x2005, 6},
	}
	if len(r.writes) != len(want) {
		t.Fatalf("writes %v", r.writes)
	}
	for i, w := range want {
		if r.writes[i] != w {
			t.Errorf("write %d = %+v, want %+v", i, r.writes[i], w)
		}
	}
	if img.Symbols["start"] != 0x1000 {
		t.Errorf("symbols %v", img.Symbols)
	}
}

func TestElfBadInput(t *testing.T) {
	r := newRecorder()
	_, err := Load(r, testMem(), NewImage(), "junk.elf", []byte("not an elf"))
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("err = %v", err)
	}
	if len(r.writes) != 0 {
		t.Error("writes issued for bad image")
	}
}
