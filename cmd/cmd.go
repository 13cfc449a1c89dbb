package cmd

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"

	"github.com/memview/memview/cpu"
	"github.com/memview/memview/loader"
	"github.com/memview/memview/mem"
	"github.com/memview/memview/models"
	"github.com/memview/memview/table"
)

// SnapshotExt marks files treated as snapshots instead of images.
const SnapshotExt = ".mvsn"

// InspectCmd carries the flags and target state shared by every
// subcommand: pick an architecture, build an in-process target, populate
// it from an image or snapshot.
type InspectCmd struct {
	Config *models.Config
	Flags  *flag.FlagSet

	Target *mem.Target
	Memory *models.Memory
	Arch   *cpu.Arch

	Out io.Writer

	archName *string
	wordBits *uint
	addrBits *uint
	rows     *int
	color    *bool
	verbose  *bool
}

func NewInspectCmd(name string) *InspectCmd {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	c := &InspectCmd{
		Config: &models.Config{},
		Flags:  fs,
		Out:    colorable.NewColorableStdout(),
	}
	c.archName = fs.String("arch", "x86_64", fmt.Sprintf("target architecture %v", cpu.Archs()))
	c.wordBits = fs.Uint("wordbits", 8, "memory word width in bits")
	c.addrBits = fs.Uint("addrbits", 32, "memory address width in bits")
	c.rows = fs.Int("rows", 16, "rows to fetch per refresh")
	c.color = fs.Bool("color", true, "colorize output")
	c.verbose = fs.Bool("v", false, "verbose logging")
	return c
}

// Parse reads flags and builds the target. Positional args are returned.
func (c *InspectCmd) Parse(args []string) ([]string, error) {
	if err := c.Flags.Parse(args[1:]); err != nil {
		return nil, err
	}
	c.Config.Arch = *c.archName
	c.Config.Rows = *c.rows
	c.Config.Color = *c.color
	c.Config.Verbose = *c.verbose
	c.Config.Logger = models.NewLogger(os.Stderr, *c.color)
	c.Config.Init()

	arch, err := cpu.GetArch(*c.archName)
	if err != nil {
		return nil, err
	}
	c.Arch = arch

	desc := &models.Memory{
		Name:     "ram",
		Names:    []string{"ram", "mem"},
		WordBits: *c.wordBits,
		AddrBits: *c.addrBits,
	}
	c.Memory = desc
	c.Target = mem.NewTarget(desc)
	for _, r := range arch.Regs {
		c.Target.AddReg(r.Bank, r.Name, r.Pointer)
	}
	return c.Flags.Args(), nil
}

// Populate fills the target from path: a snapshot restores wholesale, any
// other extension goes through the image loaders. progress may be nil.
func (c *InspectCmd) Populate(path string, progress func(loader.Progress)) error {
	if strings.ToLower(filepath.Ext(path)) == SnapshotExt {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "reading snapshot")
		}
		t, err := mem.Restore(data)
		if err != nil {
			return err
		}
		c.Target = t
		c.Memory = t.Mem().Desc()
		return nil
	}
	seq, err := loader.LoadFile(c.Target, c.Memory, c.Target.Image(), path)
	if err != nil {
		return err
	}
	for {
		p, ok := seq.Next()
		if !ok {
			return seq.Err()
		}
		if progress != nil {
			progress(p)
		}
	}
}

// ValidSize reports whether an element of size words fits a 64-bit cell.
func (c *InspectCmd) ValidSize(size int) bool {
	for _, n := range table.ElementSizes(c.Memory.WordBits) {
		if n == size {
			return true
		}
	}
	return false
}

// SizeHelp lists the valid element sizes, with conventional names where
// one applies.
func (c *InspectCmd) SizeHelp() string {
	names := table.SizeNames(c.Memory.WordBits, c.Arch.Bits)
	var out []string
	for _, n := range table.ElementSizes(c.Memory.WordBits) {
		if name, ok := names[uint(n)*c.Memory.WordBits]; ok {
			out = append(out, fmt.Sprintf("%d (%s)", n, name))
		} else {
			out = append(out, fmt.Sprintf("%d", n))
		}
	}
	return strings.Join(out, ", ")
}

func (c *InspectCmd) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.Out, format, a...)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// PrintError reports a fatal subcommand error, with the innermost stack
// frame when the error carries one.
func (c *InspectCmd) PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	if st, ok := err.(stackTracer); ok && c.Config.Verbose {
		for _, f := range st.StackTrace() {
			fmt.Fprintf(os.Stderr, "  %+v\n", f)
		}
	}
}
