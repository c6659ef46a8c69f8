package vcs

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/kjhughes/retrosilicon/cpu"
)

const (
	screenWidth  = 160
	screenHeight = 192

	ramSize = 128 // 6532's 128 bytes of RAM
)

// RIOT I/O register offsets, relative to the $280 RIOT I/O window.
const (
	regSWCHA  = 0x00 // joystick port A
	regINTIM  = 0x04 // interval timer readback
	regTIM1T  = 0x14
	regTIM8T  = 0x15
	regTIM64T = 0x16
	regT1024T = 0x17
)

// Console wires a cpu.CPU to a TIA, a RIOT, and a cartridge the way
// the NES console driver wires its CPU to a PPU and mapper: one
// Read/Write address-range dispatch, driven by a Run loop.
type Console struct {
	CPU  *cpu.CPU
	TIA  *TIA
	RIOT *RIOT
	cart Cartridge

	ram [ramSize]uint8

	frame *image.RGBA
}

// NewConsole builds a console around cart.
func NewConsole(cart Cartridge) *Console {
	c := &Console{
		TIA:   NewTIA(),
		RIOT:  NewRIOT(),
		cart:  cart,
		frame: image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight)),
	}
	c.CPU = cpu.New(c)
	return c
}

func (c *Console) Frame() *image.RGBA { return c.frame }

func (c *Console) String() string {
	return fmt.Sprintf("%s", c.CPU)
}

// cpu.Bus implementation. The 2600's address space has no unique
// regions the way the NES does: RAM, TIA, and RIOT registers are all
// selected by which address bits the hardware happens to decode, and
// every range mirrors repeatedly across the 13-bit address bus.
func (c *Console) Read(addr uint16) uint8 {
	a := addr & 0x1FFF
	switch {
	case a&0x1280 == 0x0280:
		return c.readRIOT(a)
	case a&0x1080 == 0x0080:
		return c.ram[a&0x7F]
	case a&0x1080 == 0x0000:
		return c.readTIA(a)
	default:
		return c.cart.Read(a & 0x0FFF)
	}
}

func (c *Console) Write(addr uint16, val uint8) {
	a := addr & 0x1FFF
	switch {
	case a&0x1280 == 0x0280:
		c.writeRIOT(a, val)
	case a&0x1080 == 0x0080:
		c.ram[a&0x7F] = val
	case a&0x1080 == 0x0000:
		c.TIA.WriteReg(a, val)
	default:
		c.cart.Write(a&0x0FFF, val)
	}
}

func (c *Console) readTIA(a uint16) uint8 {
	// Collision and input-port readback registers aren't modeled; this
	// engine targets games whose logic doesn't depend on TIA input
	// latches.
	return 0
}

func (c *Console) readRIOT(a uint16) uint8 {
	switch a & 0x1F {
	case regSWCHA:
		return c.RIOT.PortAData()
	case regINTIM:
		return c.RIOT.TimerCountRemaining()
	default:
		return 0
	}
}

func (c *Console) writeRIOT(a uint16, val uint8) {
	switch a & 0x1F {
	case regTIM1T:
		c.RIOT.SetTimer1(val)
	case regTIM8T:
		c.RIOT.SetTimer8(val)
	case regTIM64T:
		c.RIOT.SetTimer64(val)
	case regT1024T:
		c.RIOT.SetTimer1024(val)
	}
}

// Run drives CPU/TIA/RIOT at color-clock granularity until ctx is
// cancelled, painting the frame buffer as the TIA's beam advances.
// While TIA.GetExecState reports ExecBlock (a WSYNC is pending), the
// CPU is held exactly like RDY being pulled low on real hardware: time
// advances but no instruction executes.
func (c *Console) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := c.stepOnce(); err != nil {
			return err
		}
	}
}

// RunFrame advances the console through one full 262-scanline pass
// and returns, leaving the painted framebuffer available via Frame.
// Host harnesses that pump one video frame per Update call use this
// instead of the free-running Run.
func (c *Console) RunFrame() error {
	seenNonZero := false
	for {
		if err := c.stepOnce(); err != nil {
			return err
		}
		if c.TIA.scanline != 0 {
			seenNonZero = true
		} else if seenNonZero {
			return nil
		}
	}
}

func (c *Console) stepOnce() error {
	if c.TIA.GetExecState() == ExecBlock {
		c.tick(1)
		return nil
	}
	cycles, err := c.CPU.Step()
	if err != nil {
		return err
	}
	c.tick(int(cycles))
	return nil
}

func (c *Console) tick(cpuCycles int) {
	for i := 0; i < cpuCycles*3; i++ {
		c.TIA.IncrementClock(1)
		c.RIOT.IncrementClock()
		st := c.TIA.GetScanlineState()
		if st.Kind == KindPixel {
			c.frame.Set(int(st.X), int(st.Y), color.RGBA(vcsPalette[st.Color>>1&0x7F]))
		}
	}
}
