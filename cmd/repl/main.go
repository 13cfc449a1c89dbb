package repl

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mgutz/ansi"
	"github.com/shibukawa/configdir"

	"github.com/memview/memview/cmd"
	"github.com/memview/memview/loader"
	"github.com/memview/memview/mem"
	"github.com/memview/memview/table"
	"github.com/memview/memview/view"
)

const replHelp = `commands:
  load <file>            load an image (.lst, .elf) or snapshot
  save <file>            write a snapshot
  addr <expr>            follow an address expression
  view <kind> [sz] [n]   switch table: word, disasm, source, sourcefull
  d [rows]               dump rows at the current address
  set <row> <col> <txt>  edit a cell of the last dump
  asm <expr> <code>      assemble and write an instruction
  r [name] [value]       show or set registers
  sym                    list image symbols
  q                      quit`

func histPath() string {
	dirs := configdir.New("", "memview")
	cache := dirs.QueryCacheFolder()
	if err := cache.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cache.Path, "repl_history")
}

type repl struct {
	c *cmd.InspectCmd
	v *view.Viewer
}

func (r *repl) setView(kind string, size, elems int) error {
	var t table.Table
	switch kind {
	case "word":
		if !r.c.ValidSize(size) {
			return fmt.Errorf("bad element size %d (valid: %s)", size, r.c.SizeHelp())
		}
		t = table.NewWordTable(r.c.Target, r.c.Memory, size, elems)
	case "disasm":
		t = table.NewDisasmTable(r.c.Target, r.c.Memory, r.c.Arch.Dis, r.c.Arch.Asm)
	case "source":
		t = table.NewSourceTable(r.c.Target, r.c.Memory, r.c.Target.Image(), false)
	case "sourcefull":
		t = table.NewSourceTable(r.c.Target, r.c.Memory, r.c.Target.Image(), true)
	default:
		return fmt.Errorf("unknown view %q", kind)
	}
	r.v.SetTable(t)
	return nil
}

func (r *repl) dump(count int) {
	rows, err := r.v.Refresh(count)
	if err != nil {
		r.c.PrintError(err)
		return
	}
	for i, row := range rows {
		icon := row.Summary.Icon
		if icon == "" {
			icon = " "
		}
		line := fmt.Sprintf("%2d %s %s  %s", i, icon,
			r.c.Memory.FormatAddr(row.Addr), strings.Join(row.Cells, "  "))
		if r.c.Config.Color && row.Summary.Color != "" {
			line = ansi.ColorCode(row.Summary.Color) + line + ansi.Reset
		}
		r.c.Printf("%s\n", line)
	}
}

func (r *repl) run(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	cmdName, rest := fields[0], fields[1:]
	switch cmdName {
	case "help", "?":
		r.c.Printf("%s\n", replHelp)
	case "load":
		if len(rest) != 1 {
			r.c.Printf("usage: load <file>\n")
			return
		}
		if err := r.c.Populate(rest[0], nil); err != nil {
			r.c.PrintError(err)
			return
		}
		// a snapshot restore swaps the whole target out
		r.v = view.NewViewer(r.c.Target, r.c.Memory, r.c.Config.Logger)
		r.setView("word", 1, 8)
		r.c.Printf("loaded %s\n", rest[0])
	case "save":
		if len(rest) != 1 {
			r.c.Printf("usage: save <file>\n")
			return
		}
		data, err := mem.Save(r.c.Target)
		if err == nil {
			err = ioutil.WriteFile(rest[0], data, 0644)
		}
		if err != nil {
			r.c.PrintError(err)
			return
		}
		r.c.Printf("wrote %d bytes\n", len(data))
	case "addr":
		if len(rest) == 0 {
			r.c.Printf("addr = %s\n", r.c.Memory.FormatAddr(r.v.Addr()))
			return
		}
		r.v.Follow(strings.Join(rest, ""))
		r.dump(r.c.Config.Rows)
	case "view":
		kind := "word"
		size, elems := 1, 8
		var err error
		if len(rest) > 0 {
			kind = rest[0]
		}
		if len(rest) > 1 {
			if size, err = strconv.Atoi(rest[1]); err != nil {
				r.c.Printf("bad size %q\n", rest[1])
				return
			}
		}
		if len(rest) > 2 {
			if elems, err = strconv.Atoi(rest[2]); err != nil || elems < 1 {
				r.c.Printf("bad element count %q\n", rest[2])
				return
			}
		}
		if err := r.setView(kind, size, elems); err != nil {
			r.c.PrintError(err)
		}
	case "d":
		count := r.c.Config.Rows
		if len(rest) > 0 {
			n, err := strconv.Atoi(rest[0])
			if err != nil || n < 1 {
				r.c.Printf("bad row count %q\n", rest[0])
				return
			}
			count = n
		}
		r.dump(count)
	case "set":
		if len(rest) < 3 {
			r.c.Printf("usage: set <row> <col> <text>\n")
			return
		}
		row, rerr := strconv.Atoi(rest[0])
		col, cerr := strconv.Atoi(rest[1])
		if rerr != nil || cerr != nil || row < 0 || col < 0 {
			r.c.Printf("usage: set <row> <col> <text>\n")
			return
		}
		if err := r.v.Edit(row, col, strings.Join(rest[2:], " ")); err != nil {
			r.c.PrintError(err)
			return
		}
		r.dump(r.c.Config.Rows)
	case "asm":
		if len(rest) < 2 {
			r.c.Printf("usage: asm <expr> <code>\n")
			return
		}
		addr, err := r.c.Target.Evaluate(rest[0])
		if err != nil {
			r.c.PrintError(err)
			return
		}
		code, err := r.c.Arch.Asm.Asm(strings.Join(rest[1:], " "), addr)
		if err != nil {
			r.c.PrintError(err)
			return
		}
		words := make([]uint64, len(code))
		for i, b := range code {
			words[i] = uint64(b)
		}
		if err := r.c.Target.MemWrite(r.c.Memory, 1, addr, words); err != nil {
			r.c.PrintError(err)
			return
		}
		r.c.Printf("wrote %d bytes at %s\n", len(code), r.c.Memory.FormatAddr(addr))
	case "r":
		switch len(rest) {
		case 0:
			for _, p := range r.c.Target.RegPointers(r.c.Memory) {
				val, err := r.c.Target.RegRead(p.Reg)
				if err != nil {
					continue
				}
				r.c.Printf("%s.%s = %x\n", p.Bank, p.Reg, val)
			}
		case 1:
			val, err := r.c.Target.RegRead(rest[0])
			if err != nil {
				r.c.PrintError(err)
				return
			}
			r.c.Printf("%s = %x\n", rest[0], val)
		default:
			val, err := strconv.ParseUint(strings.TrimPrefix(rest[1], "0x"), 16, 64)
			if err == nil {
				err = r.c.Target.RegWrite(rest[0], val)
			}
			if err != nil {
				r.c.PrintError(err)
			}
		}
	case "sym":
		for _, s := range r.c.Target.Image().SymPointers() {
			r.c.Printf("%s = %s\n", s.Name, r.c.Memory.FormatAddr(s.Addr))
		}
	default:
		r.c.Printf("unknown command %q (try 'help')\n", cmdName)
	}
}

func Main(args []string) {
	c := cmd.NewInspectCmd(args[0])
	rest, err := c.Parse(args)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}

	r := &repl{c: c, v: view.NewViewer(c.Target, c.Memory, c.Config.Logger)}
	if err := r.setView("word", 1, 8); err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	if len(rest) > 0 {
		if err := c.Populate(rest[0], nil); err != nil {
			c.PrintError(err)
			os.Exit(1)
		}
		r.v = view.NewViewer(c.Target, c.Memory, c.Config.Logger)
		r.setView("word", 1, 8)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "memview> ",
		HistoryFile: histPath(),
	})
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" || line == "exit" {
			break
		}
		r.run(line)
	}
}

func init() { cmd.Register("repl", "interactive memory inspector", Main) }
