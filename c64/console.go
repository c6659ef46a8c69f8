package c64

import (
	"context"
	"fmt"
	"image"

	"github.com/kjhughes/retrosilicon/cpu"
)

const (
	cyclesPerRasterLine = 63 // PAL timing only; NTSC is not modeled
	rasterLinesPerFrame = 312

	screenCols, screenRows = 40, 25
	charWidth, charHeight  = 8, 8
)

// Console wires a cpu.CPU to the memory map, tick-driving VIC-II's
// raster line and CIA#1's Timer A at the real machine's cycle
// granularity, in the same Read/Write-dispatch-plus-Run-loop shape as
// nes.Console and vcs.Console.
type Console struct {
	CPU *cpu.CPU
	Mem *MemMap

	rasterCycle int
}

// NewConsole builds a console around an already-loaded memory map
// (BASIC/KERNAL/CHARGEN are embedded stand-ins; cartridge images, if
// any, are the caller's responsibility to poke into Mem before this
// call sees its first CPU.Step).
func NewConsole(mem *MemMap) *Console {
	c := &Console{Mem: mem}
	c.CPU = cpu.New(c)
	return c
}

// Frame renders the current 40x25 text-mode screen into an RGBA image,
// compositing CHARGEN glyph bits against the per-cell color RAM nybble
// and VIC-II's background color register. Bitmap/multicolor modes are
// not rendered pixel-accurately here; non-standard-char modes paint a
// flat border/background fill.
func (c *Console) Frame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, screenCols*charWidth, screenRows*charHeight))
	bg := colorPalette[c.Mem.VIC.BackgroundColor]
	border := colorPalette[c.Mem.VIC.BorderColor]
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			img.Set(x, y, border)
		}
	}
	if c.Mem.VIC.GraphicsMode() != StandardCharMode {
		return img
	}
	for row := 0; row < screenRows; row++ {
		for col := 0; col < screenCols; col++ {
			cell := row*screenCols + col
			ch := c.Mem.ScreenChar(cell)
			fg := colorPalette[c.Mem.ColorNybble(cell)]
			for r := 0; r < charHeight; r++ {
				bits := c.Mem.CharsetRow(ch, uint8(r))
				for b := 0; b < charWidth; b++ {
					px := col*charWidth + b
					py := row*charHeight + r
					if bits&(0x80>>uint(b)) != 0 {
						img.Set(px, py, fg)
					} else {
						img.Set(px, py, bg)
					}
				}
			}
		}
	}
	return img
}

func (c *Console) Read(addr uint16) uint8      { return c.Mem.Read(addr) }
func (c *Console) Write(addr uint16, val uint8) { c.Mem.Write(addr, val) }

func (c *Console) String() string { return fmt.Sprintf("%s raster=%d", c.CPU, c.Mem.VIC.CurrentRasterLine()) }

// Run drives the console until ctx is cancelled.
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

// RunFrame runs the console for one full 312-line raster pass, the
// same "drive one frame, then let the host read the framebuffer" shape
// as nes.Console.RunFrame and vcs.Console.RunFrame.
func (c *Console) RunFrame() error {
	start := c.Mem.VIC.CurrentRasterLine()
	if err := c.stepOnce(); err != nil {
		return err
	}
	for c.Mem.VIC.CurrentRasterLine() != start {
		if err := c.stepOnce(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) stepOnce() error {
	cycles, err := c.CPU.Step()
	if err != nil {
		return err
	}
	c.tick(int(cycles))
	return nil
}

func (c *Console) tick(cpuCycles int) {
	if c.Mem.CIA1.TickTimerA(uint8(cpuCycles)) {
		c.CPU.IRQ()
	}
	c.rasterCycle += cpuCycles
	for c.rasterCycle >= cyclesPerRasterLine {
		c.rasterCycle -= cyclesPerRasterLine
		next := c.Mem.VIC.CurrentRasterLine() + 1
		if next >= rasterLinesPerFrame {
			next = 0
		}
		c.Mem.VIC.SetRasterLine(next)
		if c.Mem.VIC.RasterIRQPending() {
			c.CPU.IRQ()
		}
	}
}
