// Package c64 implements the Commodore 64: the VIC-II video chip's
// register file and derived graphics mode, CIA#1's keyboard matrix and
// interval timer, the LORAM/HIRAM/CHAREN bank-switched memory map, and
// the console driver tying a cpu.CPU to all of it.
package c64

// Sprite holds one of VIC-II's 8 hardware sprites' position, color,
// and size/enable state.
type Sprite struct {
	X                     uint16
	Y                     uint8
	Color                 uint8
	Enabled               bool
	DoubleHeight          bool
	DoubleWidth           bool
}

func (s *Sprite) setXLow(low uint8)   { s.X = s.X&0x100 | uint16(low) }
func (s *Sprite) setXHigh(high uint8) { s.X = s.X&0xFF | uint16(high)<<8 }

// GraphicsMode is VIC-II's derived screen mode, formed from the MCM,
// BMM, and ECM control bits. Mode 5 is the hardware's well-known
// invalid combination (bitmap + extended-background-color together).
type GraphicsMode uint8

const (
	StandardCharMode GraphicsMode = iota
	MulticolorCharMode
	StandardBitmapMode
	MulticolorBitmapMode
	ExtendedBackgroundColorMode
	InvalidGraphicsMode
)

// VIC implements the 6567/6569's register file (addresses $00-$2E
// relative to the I/O window), sprite position/enable/size bits, the
// raster line and raster-interrupt comparison, and the mode-select
// register readback bit layout.
type VIC struct {
	Sprites [8]Sprite

	verticalScroll   uint8
	screenHeight25   bool
	bitmapMode       bool
	screenOn         bool
	extendedBg       bool
	rasterIRQLine    uint16
	currentRaster    uint16
	horizontalScroll uint8
	screenWidth40    bool
	multicolor       bool

	BorderColor        uint8
	BackgroundColor    uint8
	BackgroundColorE1  uint8
	BackgroundColorE2  uint8
	BackgroundColorE3  uint8
	SpriteColorE1      uint8
	SpriteColorE2      uint8
}

// NewVIC returns a VIC-II in its documented power-on state.
func NewVIC() *VIC {
	return &VIC{verticalScroll: 0x3, screenHeight25: false, screenOn: true, screenWidth40: true}
}

// CurrentRasterLine reports the scanline VIC-II is currently drawing;
// the console driver advances this as it ticks.
func (v *VIC) CurrentRasterLine() uint16 { return v.currentRaster }

// SetRasterLine is used by the console driver to advance the raster
// counter and, incidentally, by tests to probe raster-IRQ comparison.
func (v *VIC) SetRasterLine(line uint16) { v.currentRaster = line }

// RasterIRQPending reports whether the current raster line matches the
// programmed interrupt line (read by the console driver to decide
// whether to raise the CPU's IRQ line).
func (v *VIC) RasterIRQPending() bool { return v.currentRaster == v.rasterIRQLine }

func (v *VIC) GraphicsModeBits() uint8 {
	var bits uint8
	if v.multicolor {
		bits |= 1
	}
	if v.bitmapMode {
		bits |= 2
	}
	if v.extendedBg {
		bits |= 4
	}
	return bits
}

func (v *VIC) GraphicsMode() GraphicsMode {
	switch v.GraphicsModeBits() {
	case 0:
		return StandardCharMode
	case 1:
		return MulticolorCharMode
	case 2:
		return StandardBitmapMode
	case 3:
		return MulticolorBitmapMode
	case 4:
		return ExtendedBackgroundColorMode
	default:
		return InvalidGraphicsMode
	}
}

// ReadReg services a CPU read relative to the VIC-II I/O window ($D000).
func (v *VIC) ReadReg(addr uint16) uint8 {
	if addr < 0x10 {
		s := &v.Sprites[addr/2]
		if addr%2 == 0 {
			return uint8(s.X & 0xFF)
		}
		return s.Y
	}
	switch addr {
	case 0x10:
		var b uint8
		for i, s := range v.Sprites {
			if s.X&0x100 != 0 {
				b |= 1 << uint(i)
			}
		}
		return b
	case 0x11:
		reg := v.verticalScroll
		if v.screenHeight25 {
			reg |= 0x8
		}
		if v.screenOn {
			reg |= 0x10
		}
		if v.bitmapMode {
			reg |= 0x20
		}
		if v.extendedBg {
			reg |= 0x40
		}
		rasterHigh := uint8((v.currentRaster & 0x100) >> 1)
		return reg | rasterHigh
	case 0x12:
		return uint8(v.currentRaster & 0xFF)
	case 0x13, 0x14:
		return 0 // light pen, unused
	case 0x15:
		var b uint8
		for i, s := range v.Sprites {
			if s.Enabled {
				b |= 1 << uint(i)
			}
		}
		return b
	case 0x16:
		reg := v.horizontalScroll | 0xC0
		if v.screenWidth40 {
			reg |= 0x8
		}
		if v.multicolor {
			reg |= 0x10
		}
		return reg
	case 0x17:
		var b uint8
		for i, s := range v.Sprites {
			if s.DoubleHeight {
				b |= 1 << uint(i)
			}
		}
		return b
	case 0x19:
		if v.RasterIRQPending() {
			return 1
		}
		return 0
	case 0x1D:
		var b uint8
		for i, s := range v.Sprites {
			if s.DoubleWidth {
				b |= 1 << uint(i)
			}
		}
		return b
	case 0x20:
		return v.BorderColor & 0xF
	case 0x21:
		return v.BackgroundColor & 0xF
	case 0x22:
		return v.BackgroundColorE1 & 0xF
	case 0x23:
		return v.BackgroundColorE2 & 0xF
	case 0x24:
		return v.BackgroundColorE3 & 0xF
	case 0x25:
		return v.SpriteColorE1 & 0xF
	case 0x26:
		return v.SpriteColorE2 & 0xF
	default:
		if addr >= 0x27 && addr <= 0x2E {
			return v.Sprites[addr-0x27].Color & 0xF
		}
		return 0
	}
}

// WriteReg services a CPU write relative to the VIC-II I/O window.
func (v *VIC) WriteReg(addr uint16, val uint8) {
	if addr < 0x10 {
		s := &v.Sprites[addr/2]
		if addr%2 == 0 {
			s.setXLow(val)
		} else {
			s.Y = val
		}
		return
	}
	switch addr {
	case 0x10:
		for i, bit := range []uint8{1, 2, 4, 8, 16, 32, 64, 128} {
			if val&bit != 0 {
				v.Sprites[i].setXHigh(1)
			} else {
				v.Sprites[i].setXHigh(0)
			}
		}
	case 0x11:
		v.verticalScroll = val & 0x7
		v.screenHeight25 = val&0x8 != 0
		v.screenOn = val&0x10 != 0
		v.bitmapMode = val&0x20 != 0
		v.extendedBg = val&0x40 != 0
		rasterHigh := uint16(val&0x80) << 1
		v.rasterIRQLine = v.rasterIRQLine&0xFF | rasterHigh
	case 0x12:
		v.rasterIRQLine = v.rasterIRQLine&0xFF00 | uint16(val)
	case 0x13, 0x14:
		// light pen registers are read-only
	case 0x15:
		for i := range v.Sprites {
			v.Sprites[i].Enabled = val&(1<<uint(i)) != 0
		}
	case 0x16:
		v.horizontalScroll = val & 0x7
		v.screenWidth40 = val&0x8 != 0
		v.multicolor = val&0x10 != 0
	case 0x17:
		for i := range v.Sprites {
			v.Sprites[i].DoubleHeight = val&(1<<uint(i)) != 0
		}
	case 0x1D:
		for i := range v.Sprites {
			v.Sprites[i].DoubleWidth = val&(1<<uint(i)) != 0
		}
	case 0x20:
		v.BorderColor = val & 0xF
	case 0x21:
		v.BackgroundColor = val & 0xF
	case 0x22:
		v.BackgroundColorE1 = val & 0xF
	case 0x23:
		v.BackgroundColorE2 = val & 0xF
	case 0x24:
		v.BackgroundColorE3 = val & 0xF
	case 0x25:
		v.SpriteColorE1 = val & 0xF
	case 0x26:
		v.SpriteColorE2 = val & 0xF
	default:
		if addr >= 0x27 && addr <= 0x2E {
			v.Sprites[addr-0x27].Color = val & 0xF
		}
	}
}
