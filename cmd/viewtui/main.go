package viewtui

import (
	"fmt"
	"os"

	"github.com/memview/memview/cmd"
	"github.com/memview/memview/table"
	"github.com/memview/memview/ui"
	"github.com/memview/memview/view"
)

func Main(args []string) {
	c := cmd.NewInspectCmd(args[0])
	kind := c.Flags.String("view", "word", "table kind: word, disasm, source, sourcefull")
	size := c.Flags.Int("size", 1, "element size in memory words")
	elems := c.Flags.Int("elems", 8, "elements per row")
	addr := c.Flags.String("addr", "", "address expression to show")
	rest, err := c.Parse(args)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	if len(rest) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <image|snapshot>\n", args[0])
		c.Flags.PrintDefaults()
		os.Exit(1)
	}
	if err := c.Populate(rest[0], nil); err != nil {
		c.PrintError(err)
		os.Exit(1)
	}

	v := view.NewViewer(c.Target, c.Memory, c.Config.Logger)
	switch *kind {
	case "word":
		if !c.ValidSize(*size) {
			fmt.Fprintf(os.Stderr, "bad element size %d (valid: %s)\n", *size, c.SizeHelp())
			os.Exit(1)
		}
		v.SetTable(table.NewWordTable(c.Target, c.Memory, *size, *elems))
	case "disasm":
		v.SetTable(table.NewDisasmTable(c.Target, c.Memory, c.Arch.Dis, c.Arch.Asm))
	case "source":
		v.SetTable(table.NewSourceTable(c.Target, c.Memory, c.Target.Image(), false))
	case "sourcefull":
		v.SetTable(table.NewSourceTable(c.Target, c.Memory, c.Target.Image(), true))
	default:
		fmt.Fprintf(os.Stderr, "unknown view %q\n", *kind)
		os.Exit(1)
	}
	if *addr != "" {
		v.Follow(*addr)
	} else {
		v.SetAddr(c.Target.Mem().Min())
	}

	if err := ui.New(v, c.Memory).Run(); err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
}

func init() { cmd.Register("view", "interactive scrolling memory view", Main) }
