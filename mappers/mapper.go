// Package mappers implements and registers NES cartridge mappers,
// referenced numerically by iNES ROM headers.
package mappers

import (
	"fmt"

	"github.com/kjhughes/retrosilicon/inesrom"
	"github.com/kjhughes/retrosilicon/rerr"
)

// Mapper is the cartridge-board contract the PPU and CPU bus dispatch
// through: CPU-space reads/writes into PRG ROM/RAM, PPU-space
// reads/writes into CHR ROM/RAM, and the nametable mirroring mode the
// board currently wants.
type Mapper interface {
	ID() uint8
	Name() string
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirror() uint8
}

// factory builds a fresh Mapper instance bound to rom. Each mapper
// keeps its own bank-select state, so the registry stores constructors
// rather than shared instances.
type factory func(rom *inesrom.ROM) Mapper

var registry = map[uint8]factory{}

func register(id uint8, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	registry[id] = f
}

// Get constructs the mapper registered for rom's header mapper number.
func Get(rom *inesrom.ROM) (Mapper, error) {
	f, ok := registry[rom.MapperNum()]
	if !ok {
		return nil, &rerr.LoadError{
			Kind: rerr.KindUnsupportedMapper,
			Path: rom.Path,
			Err:  fmt.Errorf("mapper id %d not implemented", rom.MapperNum()),
		}
	}
	return f(rom), nil
}

func init() {
	register(0, newNROM)
	register(1, newMMC1)
}
