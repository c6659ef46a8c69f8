package mappers

import (
	"testing"

	"github.com/kjhughes/retrosilicon/inesrom"
)

func newMMC1Fixture(prgBanks int) *mmc1 {
	rom := &inesrom.ROM{Prg: make([]uint8, prgBanks*0x4000), Chr: make([]uint8, 0x2000)}
	return newMMC1(rom).(*mmc1)
}

// writeSerialFull writes a 5-bit value across 5 consecutive writes to
// addr, as real MMC1-targeting code must.
func writeSerialFull(m *mmc1, addr uint16, val uint8) {
	for i := 0; i < 5; i++ {
		m.writeSerial(addr, (val>>i)&1)
	}
}

func TestMMC1ShifterResetsOnHighBit(t *testing.T) {
	m := newMMC1Fixture(4)
	m.writeSerial(0x8000, 1)
	m.writeSerial(0x8000, 1)
	if m.shiftCount != 2 {
		t.Fatalf("shiftCount = %d, want 2", m.shiftCount)
	}
	m.writeSerial(0x8000, 0x80) // bit 7 set: reset
	if m.shiftCount != 0 {
		t.Errorf("shiftCount after reset write = %d, want 0", m.shiftCount)
	}
	if m.control&0x0C != 0x0C {
		t.Errorf("control = 0x%02x, want PRG mode forced to 3 (bits 0x0C set)", m.control)
	}
}

func TestMMC1MirroringModes(t *testing.T) {
	cases := []struct {
		bits uint8
		want uint8
	}{
		{0, inesrom.MirrorSingleLower},
		{1, inesrom.MirrorSingleUpper},
		{2, inesrom.MirrorVertical},
		{3, inesrom.MirrorHorizontal},
	}
	for _, tc := range cases {
		m := newMMC1Fixture(4)
		writeSerialFull(m, 0x8000, tc.bits)
		if got := m.Mirror(); got != tc.want {
			t.Errorf("control bits %02b: Mirror() = %d, want %d", tc.bits, got, tc.want)
		}
	}
}

func TestMMC1PRGMode3FixesLastBank(t *testing.T) {
	m := newMMC1Fixture(8) // 8 * 16KB = 128KB
	writeSerialFull(m, 0x8000, 0x0C)

	m.rom.Prg[7*0x4000] = 0xAB // first byte of the last bank
	writeSerialFull(m, 0xE000, 0) // select PRG bank 0 at $8000

	if got := m.CPURead(0xC000); got != 0xAB {
		t.Errorf("CPURead(0xC000) = 0x%02x, want 0xAB (last bank fixed)", got)
	}
}

func TestMMC1PRGMode0Is32KSwitch(t *testing.T) {
	m := newMMC1Fixture(4)
	writeSerialFull(m, 0x8000, 0x00) // PRG mode 0: 32KB switch

	m.rom.Prg[2*0x4000] = 0x11 // bank 2, start of the 32K pair (banks 2-3)
	writeSerialFull(m, 0xE000, 2)

	if got := m.CPURead(0x8000); got != 0x11 {
		t.Errorf("CPURead(0x8000) = 0x%02x, want 0x11", got)
	}
}
