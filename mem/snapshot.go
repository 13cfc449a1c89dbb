package mem

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

// snapshot format:
//
// file header (big endian)
// magic ("MVSN"), uint32(version), uint32(crc32 of compressed body),
// uint32(length of compressed body)
// remainder is a snappy-compressed body:
//
// memory: uint16(name len), name, uint32(word bits), uint32(addr bits)
// registers: uint32(count), then bank, reg, uint8(pointer), uint64(value)
// symbols: uint32(count), then name, uint64(value)
// spans: uint32(count), then uint64(base), uint32(words), words as uint64

var snapMagic = []byte("MVSN")

const snapVersion = 1

var ErrBadSnapshot = errors.New("bad snapshot")

type snapHeader struct {
	Magic   string `struc:"[4]byte"`
	Version uint32
	CRC     uint32
	Size    uint32
}

type snapStream struct {
	rw  io.ReadWriter
	err error
}

func (s *snapStream) pack(vals ...interface{}) {
	for _, v := range vals {
		if s.err == nil {
			s.err = binary.Write(s.rw, binary.BigEndian, v)
		}
	}
}

func (s *snapStream) unpack(vals ...interface{}) {
	for _, v := range vals {
		if s.err == nil {
			s.err = binary.Read(s.rw, binary.BigEndian, v)
		}
	}
}

func (s *snapStream) packStr(v string) {
	s.pack(uint16(len(v)), []byte(v))
}

func (s *snapStream) unpackStr() string {
	var n uint16
	s.unpack(&n)
	if s.err != nil {
		return ""
	}
	p := make([]byte, n)
	s.unpack(p)
	return string(p)
}

// Save serializes the target's memory contents, register file and image
// symbols. Image source text is not carried; it reloads with the image.
func Save(t *Target) ([]byte, error) {
	var body bytes.Buffer
	s := &snapStream{rw: &body}

	desc := t.mem.desc
	s.packStr(desc.Name)
	s.pack(uint32(desc.WordBits), uint32(desc.AddrBits))

	n := 0
	for _, regs := range t.banks {
		n += len(regs)
	}
	s.pack(uint32(n))
	for bank, regs := range t.banks {
		for _, reg := range regs {
			s.packStr(bank)
			s.packStr(reg)
			s.pack(boolByte(t.isPointer(reg)), t.regs[reg])
		}
	}

	s.pack(uint32(len(t.img.Symbols)))
	for name, val := range t.img.Symbols {
		s.packStr(name)
		s.pack(val)
	}

	spans := t.mem.spans()
	s.pack(uint32(len(spans)))
	for _, sp := range spans {
		s.pack(sp.Addr, uint32(len(sp.Words)), sp.Words)
	}
	if s.err != nil {
		return nil, errors.Wrap(s.err, "packing snapshot")
	}

	data := snappy.Encode(nil, body.Bytes())
	var out bytes.Buffer
	hdr := &snapHeader{
		Magic:   string(snapMagic),
		Version: snapVersion,
		CRC:     crc32.ChecksumIEEE(data),
		Size:    uint32(len(data)),
	}
	if err := struc.PackWithOrder(&out, hdr, binary.BigEndian); err != nil {
		return nil, errors.Wrap(err, "packing snapshot header")
	}
	out.Write(data)
	return out.Bytes(), nil
}

// Restore rebuilds a Target from Save output.
func Restore(p []byte) (*Target, error) {
	r := bytes.NewReader(p)
	hdr := &snapHeader{}
	if err := struc.UnpackWithOrder(r, hdr, binary.BigEndian); err != nil {
		return nil, errors.Wrap(ErrBadSnapshot, err.Error())
	}
	if hdr.Magic != string(snapMagic) || hdr.Version != snapVersion {
		return nil, errors.Wrap(ErrBadSnapshot, "bad magic or version")
	}
	data := make([]byte, hdr.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(ErrBadSnapshot, "truncated body")
	}
	if crc32.ChecksumIEEE(data) != hdr.CRC {
		return nil, errors.Wrap(ErrBadSnapshot, "checksum mismatch")
	}
	body, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(ErrBadSnapshot, err.Error())
	}

	buf := bytes.NewBuffer(body)
	s := &snapStream{rw: buf}
	name := s.unpackStr()
	var wordBits, addrBits uint32
	s.unpack(&wordBits, &addrBits)
	if s.err != nil {
		return nil, errors.Wrap(ErrBadSnapshot, s.err.Error())
	}
	t := NewTarget(&models.Memory{
		Name:     name,
		Names:    []string{name},
		WordBits: uint(wordBits),
		AddrBits: uint(addrBits),
	})

	var nregs uint32
	s.unpack(&nregs)
	for i := uint32(0); i < nregs && s.err == nil; i++ {
		bank := s.unpackStr()
		reg := s.unpackStr()
		var ptr uint8
		var val uint64
		s.unpack(&ptr, &val)
		t.AddReg(bank, reg, ptr != 0)
		t.regs[reg] = val
	}

	var nsyms uint32
	s.unpack(&nsyms)
	for i := uint32(0); i < nsyms && s.err == nil; i++ {
		name := s.unpackStr()
		var val uint64
		s.unpack(&val)
		t.img.Symbols[name] = val
	}

	var nspans uint32
	s.unpack(&nspans)
	for i := uint32(0); i < nspans && s.err == nil; i++ {
		var base uint64
		var count uint32
		s.unpack(&base, &count)
		// the claimed count sizes an allocation; it cannot exceed what
		// the body actually carries
		if s.err == nil && int64(count)*8 > int64(buf.Len()) {
			return nil, errors.Wrapf(ErrBadSnapshot, "span of %d words exceeds body", count)
		}
		words := make([]uint64, count)
		s.unpack(words)
		for j, w := range words {
			t.mem.WriteWord(base+uint64(j), w)
		}
	}
	if s.err != nil {
		return nil, errors.Wrap(ErrBadSnapshot, s.err.Error())
	}
	return t, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
