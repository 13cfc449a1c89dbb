package cpu

import (
	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	"github.com/pkg/errors"
)

// Keystone is a keystone-backed models.Assembler. The engine opens
// lazily on first use.
type Keystone struct {
	Arch ks.Architecture
	Mode ks.Mode

	engine *ks.Keystone
}

func (k *Keystone) open() error {
	engine, err := ks.New(k.Arch, k.Mode)
	if err != nil {
		return errors.Wrap(err, "opening keystone")
	}
	k.engine = engine
	return nil
}

func (k *Keystone) Asm(asm string, addr uint64) ([]byte, error) {
	if k.engine == nil {
		if err := k.open(); err != nil {
			return nil, err
		}
	}
	code, _, ok := k.engine.Assemble(asm, addr)
	if !ok {
		return nil, errors.Wrapf(k.engine.LastError(), "assembling %q", asm)
	}
	return code, nil
}
