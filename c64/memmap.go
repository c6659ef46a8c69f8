package c64

// Bank-switch control bits, read from RAM address $0001 (the 6510's
// I/O port data register; $0000 is its data-direction register).
const (
	portLORAM  = 1 << 0
	portHIRAM  = 1 << 1
	portCHAREN = 1 << 2
)

// MemMap implements the C64's bank-switched address space: $0000-
// $9FFF is always RAM; $A000-$BFFF is BASIC ROM or RAM depending on
// LORAM+HIRAM; $D000-$DFFF is CHARGEN ROM, RAM, or the I/O page
// (VIC-II/SID/color-RAM/CIA#1/CIA#2) depending on CHAREN; $E000-$FFFF
// is KERNAL ROM or RAM depending on HIRAM.
type MemMap struct {
	ram      [0x10000]uint8
	colorRAM [0x400]uint8

	kernal  []uint8
	basic   []uint8
	chargen []uint8

	CIA1 *CIA
	VIC  *VIC
}

// NewMemMap returns a memory map with all three ROM regions loaded
// from the embedded stand-in images, and the 6510 I/O port set to its
// documented power-on value (all banks mapped in).
func NewMemMap() *MemMap {
	m := &MemMap{
		kernal:  kernalROM,
		basic:   basicROM,
		chargen: chargenROM,
		CIA1:    NewCIA(),
		VIC:     NewVIC(),
	}
	m.ram[0] = 0x2F
	m.ram[1] = 0x37
	return m
}

func (m *MemMap) port() uint8 { return m.ram[1] }

// ColorNybble returns the 4-bit color RAM entry for screen cell i
// (0..999), independent of CPU-side bank switching — the host's video
// renderer needs it regardless of what's currently paged into $D800.
func (m *MemMap) ColorNybble(i int) uint8 { return m.colorRAM[i] & 0xF }

// ScreenChar returns the screen-code byte for cell i (0..999) out of
// the default video matrix at $0400, the VIC bank-0 power-on location.
// This engine doesn't model VIC-II's bank-select ($DD00) or video-
// matrix-pointer ($D018) registers, so the screen is always read from
// this fixed address.
func (m *MemMap) ScreenChar(i int) uint8 { return m.ram[0x0400+i] }

// CharsetRow returns row (0..7) of CHARGEN's glyph for screen code c,
// read directly from the 4KB character ROM regardless of whether
// CHAREN currently pages it into the CPU's address space.
func (m *MemMap) CharsetRow(c uint8, row uint8) uint8 {
	return m.chargen[int(c)*8+int(row)]
}

// Read services a CPU read anywhere in the 64KB address space.
func (m *MemMap) Read(addr uint16) uint8 {
	port := m.port()
	switch {
	case addr < 0xA000:
		return m.ram[addr]
	case addr < 0xC000:
		if port&(portLORAM|portHIRAM) == (portLORAM | portHIRAM) {
			return m.basic[addr-0xA000]
		}
		return m.ram[addr]
	case addr < 0xD000:
		return m.ram[addr]
	case addr < 0xE000:
		if port&(portLORAM|portHIRAM) != 0 {
			if port&portCHAREN == 0 {
				return m.chargen[addr-0xD000]
			}
			return m.readIO(addr)
		}
		return m.ram[addr]
	default: // 0xE000-0xFFFF
		if port&portHIRAM != 0 {
			return m.kernal[addr-0xE000]
		}
		return m.ram[addr]
	}
}

// Write services a CPU write anywhere in the 64KB address space. ROM
// banks are read-only: a write into a ROM-mapped region falls through
// to the underlying RAM cell, matching the real C64 (the ROM chip
// simply isn't selected for writes, so the RAM behind it is what gets
// written and is visible again once the bank is switched back to RAM).
func (m *MemMap) Write(addr uint16, val uint8) {
	// Every write lands in the RAM cell regardless of what's banked in
	// on top of it: ROM chips simply aren't selected for writes, so the
	// RAM behind them is what actually changes.
	m.ram[addr] = val

	port := m.port()
	if addr >= 0xD000 && addr < 0xE000 && port&(portLORAM|portHIRAM) != 0 && port&portCHAREN != 0 {
		m.writeIO(addr, val)
	}
}

func (m *MemMap) readIO(addr uint16) uint8 {
	switch {
	case addr < 0xD400:
		return m.VIC.ReadReg(addr - 0xD000)
	case addr < 0xD800:
		return 0 // SID: not modeled
	case addr < 0xDC00:
		return m.colorRAM[addr-0xD800]
	case addr < 0xDD00:
		return m.CIA1.ReadReg(addr - 0xDC00)
	default:
		return 0 // CIA#2, I/O1, I/O2: outside this engine's scope
	}
}

func (m *MemMap) writeIO(addr uint16, val uint8) {
	switch {
	case addr < 0xD400:
		m.VIC.WriteReg(addr-0xD000, val)
	case addr < 0xD800:
		// SID writes are accepted and ignored.
	case addr < 0xDC00:
		m.colorRAM[addr-0xD800] = val
	case addr < 0xDD00:
		m.CIA1.WriteReg(addr-0xDC00, val)
	}
}
