package dump

import (
	"fmt"
	"os"
	"strings"

	"github.com/mgutz/ansi"

	"github.com/memview/memview/cmd"
	"github.com/memview/memview/table"
	"github.com/memview/memview/view"
)

func buildTable(c *cmd.InspectCmd, kind string, size, elems int) (table.Table, error) {
	switch kind {
	case "word":
		if !c.ValidSize(size) {
			return nil, fmt.Errorf("bad element size %d (valid: %s)", size, c.SizeHelp())
		}
		return table.NewWordTable(c.Target, c.Memory, size, elems), nil
	case "disasm":
		return table.NewDisasmTable(c.Target, c.Memory, c.Arch.Dis, c.Arch.Asm), nil
	case "source":
		return table.NewSourceTable(c.Target, c.Memory, c.Target.Image(), false), nil
	case "sourcefull":
		return table.NewSourceTable(c.Target, c.Memory, c.Target.Image(), true), nil
	}
	return nil, fmt.Errorf("unknown view %q", kind)
}

func Main(args []string) {
	c := cmd.NewInspectCmd(args[0])
	kind := c.Flags.String("view", "word", "table kind: word, disasm, source, sourcefull")
	size := c.Flags.Int("size", 1, "element size in memory words")
	elems := c.Flags.Int("elems", 8, "elements per row")
	addr := c.Flags.String("addr", "", "address expression to show")
	tips := c.Flags.Bool("tooltips", false, "print each row's full description")
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

	t, err := buildTable(c, *kind, *size, *elems)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}

	v := view.NewViewer(c.Target, c.Memory, c.Config.Logger)
	v.SetTable(t)
	if *addr != "" {
		v.Follow(*addr)
	} else {
		v.SetAddr(c.Target.Mem().Min())
	}
	rows, err := v.Refresh(c.Config.Rows)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}

	for _, row := range rows {
		icon := row.Summary.Icon
		if icon == "" {
			icon = " "
		}
		addrCol := fmt.Sprintf("%s %s", icon, c.Memory.FormatAddr(row.Addr))
		if c.Config.Color && row.Summary.Color != "" {
			addrCol = ansi.ColorCode(row.Summary.Color) + addrCol + ansi.Reset
		}
		c.Printf("%s  %s\n", addrCol, strings.Join(row.Cells, "  "))
		if *tips {
			for _, line := range strings.Split(row.Tooltip.Force(), "\n") {
				c.Printf("      ; %s\n", line)
			}
		}
	}
}

func init() { cmd.Register("dump", "print a table of memory rows", Main) }
