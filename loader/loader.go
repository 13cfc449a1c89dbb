// Package loader parses binary and listing images into sparse memory
// write sequences with incremental progress reporting.
package loader

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ParseError reports a malformed image. Line is 1-based for line-oriented
// formats and zero otherwise.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %s", e.Line, e.Msg)
	}
	return "parse error: " + e.Msg
}

// MemWriter is the single write capability a loader needs from a target.
type MemWriter interface {
	MemWrite(m *models.Memory, width int, addr uint64, values []uint64) error
}

// A Loader turns raw image bytes into a lazy write sequence against mem,
// recording source lines and symbols it finds into img. The returned Seq
// has issued no writes yet; draining it performs them.
type Loader interface {
	Ext() string
	Load(w MemWriter, mem *models.Memory, img *Image, data []byte) (*Seq, error)
}

var formats = make(map[string]Loader)

func Register(l Loader) {
	formats[l.Ext()] = l
}

func init() {
	Register(&LstLoader{})
	Register(&ElfLoader{})
}

// Exts lists the registered image extensions.
func Exts() []string {
	var out []string
	for ext := range formats {
		out = append(out, ext)
	}
	return out
}

// Load selects a loader by the lowercased extension of name and starts a
// load of data into mem. img is cleared before any parsing happens; on an
// unsupported extension it is left untouched and no writes are issued.
func Load(w MemWriter, mem *models.Memory, img *Image, name string, data []byte) (*Seq, error) {
	ext := strings.ToLower(filepath.Ext(name))
	l, ok := formats[ext]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	img.Clear()
	return l.Load(w, mem, img, data)
}

// LoadFile reads path and loads it via Load.
func LoadFile(w MemWriter, mem *models.Memory, img *Image, path string) (*Seq, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading image")
	}
	return Load(w, mem, img, path, data)
}
