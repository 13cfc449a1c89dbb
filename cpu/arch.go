package cpu

import (
	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	"github.com/pkg/errors"

	"github.com/memview/memview/models"
)

// RegDef declares one register of an architecture.
type RegDef struct {
	Bank string
	Name string
	// Pointer registers get annotations in memory views.
	Pointer bool
}

// Arch bundles the services and register set the CLI needs to inspect a
// memory as a given CPU.
type Arch struct {
	Name string
	Bits uint
	Dis  models.Disassembler
	Asm  models.Assembler
	Regs []RegDef
}

func ptr(bank, name string) RegDef { return RegDef{Bank: bank, Name: name, Pointer: true} }
func gpr(bank, name string) RegDef { return RegDef{Bank: bank, Name: name} }

var archs = map[string]*Arch{
	"x86": {
		Name: "x86",
		Bits: 32,
		Dis:  &Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_32},
		Asm:  &Keystone{Arch: ks.ARCH_X86, Mode: ks.MODE_32},
		Regs: []RegDef{
			gpr("core", "eax"), gpr("core", "ebx"), gpr("core", "ecx"), gpr("core", "edx"),
			gpr("core", "esi"), gpr("core", "edi"),
			ptr("core", "eip"), ptr("core", "esp"), ptr("core", "ebp"),
		},
	},
	"x86_64": {
		Name: "x86_64",
		Bits: 64,
		Dis:  &Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_64},
		Asm:  &Keystone{Arch: ks.ARCH_X86, Mode: ks.MODE_64},
		Regs: []RegDef{
			gpr("core", "rax"), gpr("core", "rbx"), gpr("core", "rcx"), gpr("core", "rdx"),
			gpr("core", "rsi"), gpr("core", "rdi"),
			ptr("core", "rip"), ptr("core", "rsp"), ptr("core", "rbp"),
		},
	},
	"arm": {
		Name: "arm",
		Bits: 32,
		Dis:  &Capstr{Arch: cs.ARCH_ARM, Mode: cs.MODE_ARM},
		Asm:  &Keystone{Arch: ks.ARCH_ARM, Mode: ks.MODE_ARM},
		Regs: []RegDef{
			gpr("core", "r0"), gpr("core", "r1"), gpr("core", "r2"), gpr("core", "r3"),
			gpr("core", "r4"), gpr("core", "r5"), gpr("core", "r6"), gpr("core", "r7"),
			ptr("core", "sp"), ptr("core", "lr"), ptr("core", "pc"),
		},
	},
	"arm64": {
		Name: "arm64",
		Bits: 64,
		Dis:  &Capstr{Arch: cs.ARCH_ARM64, Mode: cs.MODE_ARM},
		Asm:  &Keystone{Arch: ks.ARCH_ARM64, Mode: ks.MODE_LITTLE_ENDIAN},
		Regs: []RegDef{
			gpr("core", "x0"), gpr("core", "x1"), gpr("core", "x2"), gpr("core", "x3"),
			gpr("core", "x4"), gpr("core", "x5"), gpr("core", "x6"), gpr("core", "x7"),
			ptr("core", "sp"), ptr("core", "lr"), ptr("core", "pc"),
		},
	},
}

func GetArch(name string) (*Arch, error) {
	a, ok := archs[name]
	if !ok {
		return nil, errors.Errorf("unknown arch %q", name)
	}
	return a, nil
}

// Archs lists the supported architecture names.
func Archs() []string {
	var out []string
	for name := range archs {
		out = append(out, name)
	}
	return out
}
