package nes

import (
	"context"
	"fmt"
	"image"

	"github.com/kjhughes/retrosilicon/cpu"
	"github.com/kjhughes/retrosilicon/mappers"
)

// NES CPU memory map constants.
// https://www.nesdev.org/wiki/CPU_memory_map
const (
	ramSize     = 0x0800
	ramMirrorTo = 0x1FFF
	ppuMirrorTo = 0x3FFF
	ioRegTo     = 0x4020
	sramTo      = 0x6000

	regOAMDMA   = 0x4014
	regJoypad1  = 0x4016
	regJoypad2  = 0x4017
)

// Console wires a CPU core, PPU, cartridge mapper and controllers into
// the NES address space.
type Console struct {
	CPU    *cpu.CPU
	PPU    *PPU
	mapper mappers.Mapper
	ram    [ramSize]uint8

	Ctrl1, Ctrl2 *Controller

	ticks uint64
}

// NewConsole builds a fully wired console for mapper m. Controllers
// may be nil; reads from an unwired controller port return 0.
func NewConsole(m mappers.Mapper, ctrl1, ctrl2 *Controller) *Console {
	c := &Console{mapper: m, Ctrl1: ctrl1, Ctrl2: ctrl2}
	c.CPU = cpu.New(c)
	c.PPU = New(c)
	return c
}

// cpu.Bus implementation.

func (c *Console) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorTo:
		return c.ram[addr&0x07FF]
	case addr <= ppuMirrorTo:
		return c.PPU.ReadReg(addr & 0x0007)
	case addr == regJoypad1:
		if c.Ctrl1 != nil {
			return c.Ctrl1.Read()
		}
		return 0
	case addr == regJoypad2:
		if c.Ctrl2 != nil {
			return c.Ctrl2.Read()
		}
		return 0
	case addr < ioRegTo:
		return 0
	default:
		return c.mapper.CPURead(addr)
	}
}

func (c *Console) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramMirrorTo:
		c.ram[addr&0x07FF] = val
	case addr <= ppuMirrorTo:
		c.PPU.WriteReg(addr&0x0007, val)
	case addr == regOAMDMA:
		c.runOAMDMA(val)
	case addr == regJoypad1:
		if c.Ctrl1 != nil {
			c.Ctrl1.Write(val)
		}
		if c.Ctrl2 != nil {
			c.Ctrl2.Write(val)
		}
	case addr < ioRegTo:
		// APU registers: not modeled; writes here are ignored.
	default:
		c.mapper.CPUWrite(addr, val)
	}
}

// runOAMDMA copies 256 bytes starting at val<<8 into OAM through
// $2004, and stalls the CPU for 513 cycles (514 if the DMA starts on
// an odd CPU cycle), matching real hardware.
func (c *Console) runOAMDMA(val uint8) {
	base := uint16(val) << 8
	for i := 0; i < 256; i++ {
		c.PPU.WriteOAMByte(c.Read(base + uint16(i)))
	}
	stall := 513
	if c.ticks%2 != 0 {
		stall++
	}
	c.CPU.AddStallCycles(stall)
}

// nes.Bus implementation (PPU-facing).

func (c *Console) PPURead(addr uint16) uint8      { return c.mapper.PPURead(addr) }
func (c *Console) PPUWrite(addr uint16, val uint8) { c.mapper.PPUWrite(addr, val) }
func (c *Console) Mirror() uint8                   { return c.mapper.Mirror() }
func (c *Console) TriggerNMI()                     { c.CPU.NMI() }

func (c *Console) String() string {
	return fmt.Sprintf("ticks=%d %s %s", c.ticks, c.CPU, c.PPU)
}

// Frame returns the PPU's current framebuffer, matching the
// Frame()-returns-an-image shape vcs.Console and c64.Console expose
// directly, so host code can treat all three consoles uniformly.
func (c *Console) Frame() *image.RGBA { return c.PPU.Frame() }

// Run drives the console at its native 3 PPU-dots-per-CPU-cycle ratio
// until ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.PPU.Tick()
		if c.ticks%3 == 0 {
			if _, err := c.CPU.Step(); err != nil {
				return err
			}
		}
		c.ticks++
	}
}

// RunFrame runs the console until a full frame (one full vblank cycle)
// has been produced; the painted framebuffer is then available via
// c.PPU.Frame(). It is the frame-at-a-time counterpart of Run's
// free-running ctx loop, the same shape as vcs.Console.RunFrame.
func (c *Console) RunFrame() error {
	startFrameParity := c.PPU.oddFrame
	for c.PPU.oddFrame == startFrameParity {
		c.PPU.Tick()
		if c.ticks%3 == 0 {
			if _, err := c.CPU.Step(); err != nil {
				return err
			}
		}
		c.ticks++
	}
	return nil
}
