package loader

import (
	"sort"
	"strconv"
	"strings"

	"github.com/memview/memview/models"
)

// LstLoader reads assembler listing files: one "addr : value ; comment"
// entry per line, hex on both sides. Lines with an empty value emit no
// write; when an address repeats, the last line wins.
type LstLoader struct{}

func (l *LstLoader) Ext() string {
	return ".lst"
}

func (l *LstLoader) Load(w MemWriter, mem *models.Memory, img *Image, data []byte) (*Seq, error) {
	text := strings.TrimSpace(string(data))

	values := make(map[uint64]uint64)
	lines := make(map[uint64]string)
	for num, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			return nil, &ParseError{Line: num + 1, Msg: "expected one ':' separator"}
		}

		// the address is the last token before the separator
		fields := strings.Fields(parts[0])
		if len(fields) == 0 {
			return nil, &ParseError{Line: num + 1, Msg: "missing address"}
		}
		addr, err := strconv.ParseUint(fields[len(fields)-1], 16, 64)
		if err != nil {
			return nil, &ParseError{Line: num + 1, Msg: "bad address: " + err.Error()}
		}

		// strip any trailing comment from the value
		val := strings.TrimSpace(strings.SplitN(parts[1], ";", 2)[0])
		if val == "" {
			continue
		}
		v, err := strconv.ParseUint(val, 16, 64)
		if err != nil {
			return nil, &ParseError{Line: num + 1, Msg: "bad value: " + err.Error()}
		}

		addr = mem.Wrap(addr)
		values[addr] = v
		lines[addr] = line
	}

	// ascending address order keeps the progress sequence deterministic
	// even when the input repeats an address
	addrs := make([]uint64, 0, len(values))
	for addr := range values {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	for _, addr := range addrs {
		img.Source[addr] = SourceEntry{
			Width: 1,
			Value: values[addr],
			Lines: []string{lines[addr]},
		}
	}

	return newSeq(len(addrs), func(n int) error {
		addr := addrs[n]
		return w.MemWrite(mem, 1, addr, []uint64{values[addr]})
	}), nil
}
