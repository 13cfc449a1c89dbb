// Package cmd is the subcommand registry and the shared scaffolding for
// the memview CLI tools.
package cmd

import (
	"fmt"
	"os"
	"strings"
)

type command struct {
	name, desc string
	main       func(args []string)
}

var commands = make(map[string]*command)
var order []string

func Register(name, desc string, main func(args []string)) {
	commands[name] = &command{name, desc, main}
	order = append(order, name)
}

func usage() {
	width := 0
	for _, name := range order {
		if len(name) > width {
			width = len(name)
		}
	}
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, name := range order {
		fmt.Fprintf(os.Stderr, "%-*s | %s\n", width, name, commands[name].desc)
	}
	fmt.Fprintf(os.Stderr, "\nExample: %s dump -arch x86_64 image.elf\n\n", os.Args[0])
}

func Main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Command '%s' not found.\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	args := append([]string{strings.Join(os.Args[:2], " ")}, os.Args[2:]...)
	cmd.main(args)
}
