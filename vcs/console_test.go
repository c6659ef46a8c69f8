package vcs

import "testing"

func newTestConsole() *Console {
	data := make([]uint8, 4096)
	data[0x0FFC] = 0x00
	data[0x0FFD] = 0x10 // reset vector -> $1000
	cart, err := LoadCartridge("test.bin", data)
	if err != nil {
		panic(err)
	}
	return NewConsole(cart)
}

func TestConsoleResetVector(t *testing.T) {
	c := newTestConsole()
	if c.CPU.PC != 0x1000 {
		t.Fatalf("CPU.PC = 0x%04x, want 0x1000", c.CPU.PC)
	}
}

func TestConsoleRAMReadWrite(t *testing.T) {
	c := newTestConsole()
	c.Write(0x0080, 0x55)
	if got := c.Read(0x0080); got != 0x55 {
		t.Errorf("Read(0x0080) = 0x%02x, want 0x55", got)
	}
}

func TestConsoleRIOTTimerRoundTrip(t *testing.T) {
	c := newTestConsole()
	c.Write(0x0294, 9) // TIM1T: start a prescale-1 (1 CPU cycle per count) timer at count 9
	if got := c.Read(0x0284); got != 9 {
		t.Errorf("Read(INTIM) = %d immediately after set, want 9", got)
	}
	for i := 0; i < 3; i++ {
		c.RIOT.IncrementClock()
	}
	if got := c.Read(0x0284); got != 8 {
		t.Errorf("Read(INTIM) after 3 color clocks = %d, want 8", got)
	}
}

func TestConsoleWSYNCHoldsCPU(t *testing.T) {
	c := newTestConsole()
	c.TIA.WriteReg(regWSYNC, 0)
	pcBefore := c.CPU.PC
	if err := c.stepOnce(); err != nil {
		t.Fatalf("stepOnce: %v", err)
	}
	if c.CPU.PC != pcBefore {
		t.Errorf("PC advanced to 0x%04x during a WSYNC block, want unchanged 0x%04x", c.CPU.PC, pcBefore)
	}
}
