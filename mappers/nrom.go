package mappers

import "github.com/kjhughes/retrosilicon/inesrom"

// nrom is mapper 0: no bank switching. A 16KB PRG ROM is mirrored
// across both halves of $8000-$FFFF; a 32KB PRG ROM fills it exactly.
// CHR is always a single fixed 8KB bank (ROM or RAM if the cartridge
// declares none). An optional 8KB PRG RAM sits at $6000-$7FFF.
type nrom struct {
	rom    *inesrom.ROM
	chrRAM []uint8
	prgRAM []uint8
	mirror uint8
}

func newNROM(rom *inesrom.ROM) Mapper {
	n := &nrom{rom: rom, mirror: rom.MirroringMode(), prgRAM: make([]uint8, 8192)}
	if rom.UsesChrRAM() {
		n.chrRAM = make([]uint8, 8192)
	}
	return n
}

func (n *nrom) ID() uint8     { return 0 }
func (n *nrom) Name() string  { return "NROM" }
func (n *nrom) Mirror() uint8 { return n.mirror }

func (n *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return n.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		offset := (addr - 0x8000) % uint16(len(n.rom.Prg))
		return n.rom.Prg[offset]
	}
	return 0
}

func (n *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		n.prgRAM[addr-0x6000] = val
	}
	// PRG ROM itself is not writable; cartridges without bankswitching
	// logic simply ignore writes above $8000.
}

func (n *nrom) PPURead(addr uint16) uint8 {
	if n.chrRAM != nil {
		return n.chrRAM[addr]
	}
	return n.rom.Chr[addr]
}

func (n *nrom) PPUWrite(addr uint16, val uint8) {
	if n.chrRAM != nil {
		n.chrRAM[addr] = val
	}
	// writes to CHR ROM are no-ops
}
