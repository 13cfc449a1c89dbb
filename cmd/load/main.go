package load

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/memview/memview/cmd"
	"github.com/memview/memview/loader"
	"github.com/memview/memview/mem"
	"github.com/memview/memview/view"
)

func Main(args []string) {
	c := cmd.NewInspectCmd(args[0])
	out := c.Flags.String("o", "", "write a snapshot of the loaded state")
	rest, err := c.Parse(args)
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	if len(rest) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] <image>\n", args[0])
		c.Flags.PrintDefaults()
		os.Exit(1)
	}

	last := -1
	err = c.Populate(rest[0], func(p loader.Progress) {
		// redraw at most once per percent
		pct := 0
		if p.Total > 0 {
			pct = p.Done * 100 / p.Total
		}
		if pct != last {
			last = pct
			c.Printf("\rloading %s: %d/%d (%d%%)", rest[0], p.Done, p.Total, pct)
		}
	})
	c.Printf("\n")
	if err != nil {
		c.PrintError(err)
		os.Exit(1)
	}
	c.Printf("loaded %d symbols, %d source entries\n",
		len(c.Target.Image().Symbols), len(c.Target.Image().Source))

	if *out != "" {
		view.Task[int]{
			Background: func() (int, error) {
				data, err := mem.Save(c.Target)
				if err != nil {
					return 0, err
				}
				return len(data), ioutil.WriteFile(*out, data, 0644)
			},
			Foreground: func(n int, err error) {
				if err != nil {
					c.PrintError(err)
					os.Exit(1)
				}
				c.Printf("snapshot written to %s (%d bytes)\n", *out, n)
			},
		}.RunSync()
	}
}

func init() { cmd.Register("load", "load an image and report progress", Main) }
