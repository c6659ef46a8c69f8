package c64

import "testing"

// Port A's output is OR-ed in where the mask bit is set and AND-cleared
// where it isn't, leaving unmasked bits untouched.
func TestCIAPortAMasking(t *testing.T) {
	c := NewCIA()
	c.WriteReg(0x02, 0x0F) // mask: low nybble is output
	c.WriteReg(0x00, 0xFF)
	if c.portA != 0x0F {
		t.Fatalf("portA = 0x%02x, want 0x0f", c.portA)
	}
	c.WriteReg(0x00, 0x00)
	if c.portA != 0x00 {
		t.Fatalf("portA = 0x%02x, want 0x00 after clearing masked bits", c.portA)
	}
}

func TestCIAKeyMatrixScan(t *testing.T) {
	c := NewCIA()
	c.KeyDown(2*8 + 5) // row 2, col 5
	c.WriteReg(0x00, ^uint8(1<<2)) // select row 2 (active low)
	got := c.ReadReg(0x01)
	if got&(1<<5) != 0 {
		t.Errorf("ReadReg(0x01) bit 5 = 1, want 0 (key held, active low)")
	}
	c.KeyUp(2*8 + 5)
	got = c.ReadReg(0x01)
	if got&(1<<5) == 0 {
		t.Errorf("ReadReg(0x01) bit 5 = 0, want 1 after KeyUp")
	}
}

func TestCIATimerALatchAndStart(t *testing.T) {
	c := NewCIA()
	c.WriteReg(0x04, 0x10) // latch low
	c.WriteReg(0x05, 0x00) // latch high
	c.WriteReg(0x0E, 0x11) // start, load-from-latch
	if c.timerAValue != 0x10 {
		t.Fatalf("timerAValue = 0x%04x, want 0x0010", c.timerAValue)
	}
	if c.ReadReg(0x04) != 0x10 || c.ReadReg(0x05) != 0x00 {
		t.Errorf("timer readback mismatch: low=0x%02x high=0x%02x", c.ReadReg(0x04), c.ReadReg(0x05))
	}
}

func TestCIATimerAUnderflowRestartsAndInterrupts(t *testing.T) {
	c := NewCIA()
	c.WriteReg(0x04, 0x05)
	c.WriteReg(0x05, 0x00)
	c.WriteReg(0x0D, 0x81) // enable timer A interrupt
	c.WriteReg(0x0E, 0x11) // start, restart-on-underflow (bit 3 clear)

	if underflowed := c.TickTimerA(10); !underflowed {
		t.Fatalf("TickTimerA(10) = false, want true (5 < 10)")
	}
	if c.timerAValue != 0x05 {
		t.Errorf("timerAValue after restart = 0x%04x, want 0x0005", c.timerAValue)
	}
	status := c.ReadReg(0x0D)
	if status&1 == 0 {
		t.Errorf("interrupt status bit not set after underflow")
	}
	if c.ReadReg(0x0D)&1 != 0 {
		t.Errorf("interrupt status should clear on read (acknowledge)")
	}
}

func TestCIATimerADisabledDoesNotTick(t *testing.T) {
	c := NewCIA()
	if underflowed := c.TickTimerA(5); underflowed {
		t.Errorf("TickTimerA on a disabled timer should never underflow")
	}
}
