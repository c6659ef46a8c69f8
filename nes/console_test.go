package nes

import "testing"

// testMapper is a dummy cartridge mapper for Console tests: a flat
// byte array standing in for PRG/CHR space.
type testMapper struct {
	mem    [0x10000]uint8
	mirror uint8
}

func (m *testMapper) ID() uint8    { return 0 }
func (m *testMapper) Name() string { return "test" }
func (m *testMapper) CPURead(addr uint16) uint8       { return m.mem[addr] }
func (m *testMapper) CPUWrite(addr uint16, val uint8) { m.mem[addr] = val }
func (m *testMapper) PPURead(addr uint16) uint8       { return m.mem[addr] }
func (m *testMapper) PPUWrite(addr uint16, val uint8) { m.mem[addr] = val }
func (m *testMapper) Mirror() uint8                   { return m.mirror }

func newTestConsole() (*Console, *testMapper) {
	m := &testMapper{mirror: MirrorHorizontal}
	// Reset vector: point the CPU at $8000.
	m.mem[0xFFFC] = 0x00
	m.mem[0xFFFD] = 0x80
	return NewConsole(m, nil, nil), m
}

func TestConsoleRAMMirroring(t *testing.T) {
	c, _ := newTestConsole()
	c.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := c.Read(mirror); got != 0x42 {
			t.Errorf("Read(0x%04x) = 0x%02x, want 0x42 (RAM mirror)", mirror, got)
		}
	}
}

func TestConsolePPURegisterMirroring(t *testing.T) {
	c, _ := newTestConsole()
	c.Write(0x2000, 0x80) // PPUCTRL, NMI enable bit
	if c.PPU.ctrl != 0x80 {
		t.Fatalf("PPU.ctrl = 0x%02x, want 0x80", c.PPU.ctrl)
	}
	c.Write(0x2008, 0x00) // mirror of $2000
	if c.PPU.ctrl != 0x00 {
		t.Errorf("write through $2008 mirror didn't reach PPUCTRL: ctrl = 0x%02x", c.PPU.ctrl)
	}
}

func TestConsoleOAMDMAStallsCPU(t *testing.T) {
	c, _ := newTestConsole()
	c.Write(0x0200, 0xAA)
	c.Write(0x02FF, 0xBB)

	c.ticks = 0 // even tick: 513-cycle stall
	c.Write(0x4014, 0x02)

	if got := c.PPU.oam[0]; got != 0xAA {
		t.Errorf("oam[0] = 0x%02x, want 0xAA", got)
	}
	if got := c.PPU.oam[255]; got != 0xBB {
		t.Errorf("oam[255] = 0x%02x, want 0xBB", got)
	}

	for i := 0; i < 513; i++ {
		if _, err := c.CPU.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
}

func TestConsoleControllerShiftOut(t *testing.T) {
	c, _ := newTestConsole()
	c.Ctrl1 = NewController(func() uint8 { return 0x01 }) // A pressed only

	c.Write(0x4016, 1)
	c.Write(0x4016, 0)

	var bits []uint8
	for i := 0; i < 8; i++ {
		bits = append(bits, c.Read(0x4016)&1)
	}
	want := []uint8{1, 0, 0, 0, 0, 0, 0, 0}
	for i := range want {
		if bits[i] != want[i] {
			t.Errorf("bit %d = %d, want %d", i, bits[i], want[i])
		}
	}
}
