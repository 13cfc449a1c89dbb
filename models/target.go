package models

// RegPointer names a register known to hold a pointer into some memory.
type RegPointer struct {
	Bank string
	Reg  string
}

// SymPointer is a loaded symbol and the address it resolves to.
type SymPointer struct {
	Name string
	Addr uint64
}

// Target abstracts the connection to the debugged system. The inspection
// core only ever talks to a target through this interface; the concrete
// implementation lives behind whatever transport the debugger uses.
type Target interface {
	Mems() []*Memory

	// MemWrite stores values at addr, each value occupying width words.
	MemWrite(m *Memory, width int, addr uint64, values []uint64) error
	// MemRead fetches count values of width words each starting at addr.
	MemRead(m *Memory, width int, addr uint64, count int) ([]uint64, error)

	RegRead(reg string) (uint64, error)

	// Evaluate resolves an address expression, e.g. a hex literal, symbol
	// or register name with an optional offset.
	Evaluate(expr string) (uint64, error)

	// RegPointers enumerates the registers that point into m.
	RegPointers(m *Memory) []RegPointer
	// SymPointers enumerates the loaded symbols that resolve into m.
	SymPointers(m *Memory) []SymPointer
}

// Ins is one disassembled instruction.
type Ins interface {
	Addr() uint64
	Bytes() []byte
	Mnemonic() string
	OpStr() string
}

// Disassembler decodes raw bytes into instructions. Implementations are
// opaque services; the core never inspects how decoding happens.
type Disassembler interface {
	Dis(mem []byte, addr uint64) ([]Ins, error)
}

// Assembler encodes one instruction statement to raw bytes.
type Assembler interface {
	Asm(asm string, addr uint64) ([]byte, error)
}
