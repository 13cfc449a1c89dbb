package main

import (
	"github.com/memview/memview/cmd"

	_ "github.com/memview/memview/cmd/dump"
	_ "github.com/memview/memview/cmd/load"
	_ "github.com/memview/memview/cmd/repl"
	_ "github.com/memview/memview/cmd/viewtui"
)

func main() { cmd.Main() }
