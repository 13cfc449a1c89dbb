package models

// Config carries CLI-level settings down into the core.
type Config struct {
	Color   bool
	Verbose bool

	// Arch names the disassembler/assembler architecture, e.g. "x86_64".
	Arch string

	// Rows is the number of table rows a dump or view fetches at once.
	Rows int

	Logger Logger
}

func (c *Config) Init() *Config {
	if c.Rows <= 0 {
		c.Rows = 16
	}
	if c.Logger == nil {
		c.Logger = DefaultLogger
	}
	return c
}
