// Package nes implements the NES console: CPU memory map, PPU, cartridge
// DMA, and controller, wired together behind a single Console driver.
package nes

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kjhughes/retrosilicon/inesrom"
)

// PPU register addresses, relative to $2000.
const (
	regPPUCTRL   = 0x0
	regPPUMASK   = 0x1
	regPPUSTATUS = 0x2
	regOAMADDR   = 0x3
	regOAMDATA   = 0x4
	regPPUSCROLL = 0x5
	regPPUADDR   = 0x6
	regPPUDATA   = 0x7
)

// PPUCTRL bits.
const (
	ctrlNametableMask   = 0x03
	ctrlIncrement32     = 1 << 2
	ctrlSpritePattern8x = 1 << 3
	ctrlBgPattern       = 1 << 4
	ctrlSprite8x16      = 1 << 5
	ctrlNMIEnable       = 1 << 7
)

// PPUMASK bits.
const (
	maskGreyscale      = 1 << 0
	maskShowBgLeft     = 1 << 1
	maskShowSpriteLeft = 1 << 2
	maskShowBg         = 1 << 3
	maskShowSprites    = 1 << 4
)

// PPUSTATUS bits.
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)

// Mirroring modes a cartridge's Mirror() reports, shared with inesrom
// so a mapper's Mirror() return value needs no translation here.
const (
	MirrorHorizontal  = inesrom.MirrorHorizontal
	MirrorVertical    = inesrom.MirrorVertical
	MirrorFourScreen  = inesrom.MirrorFourScreen
	MirrorSingleLower = inesrom.MirrorSingleLower
	MirrorSingleUpper = inesrom.MirrorSingleUpper
)

// Bus is everything the PPU needs from its host console: CHR-space
// access through the cartridge mapper, the mirroring mode the
// cartridge currently wants, and a way to raise the CPU's NMI line at
// vblank.
type Bus interface {
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirror() uint8
	TriggerNMI()
}

const (
	screenWidth  = 256
	screenHeight = 240
)

// PPU implements the 2C02 picture processing unit: background
// rendering via the loopy v/t scroll registers and per-tile shift
// registers, 8-sprite-per-line evaluation with sprite-0-hit and
// overflow detection, and palette RAM with its background-mirror quirk.
type PPU struct {
	bus Bus

	ctrl, mask, status uint8
	oamAddr            uint8
	oam                [256]uint8
	secondaryOAM       [32]uint8
	spriteCount        int

	v, t loopyReg
	x    uint8 // fine X scroll
	w    bool  // write-toggle latch shared by PPUSCROLL/PPUADDR

	readBuffer uint8

	nametables [2][1024]uint8
	paletteRAM [32]uint8

	scanline int // 0-261; 261 is pre-render
	dot      int // 0-340
	oddFrame bool

	bgShiftPatternLo, bgShiftPatternHi uint16
	bgShiftAttrLo, bgShiftAttrHi       uint16
	nextTileID, nextTileAttr           uint8
	nextTileLSB, nextTileMSB           uint8

	spritePatternsLo, spritePatternsHi [8]uint8
	spriteX                            [8]uint8
	spriteAttr                         [8]uint8
	spriteIsZero                       [8]bool
	sprite0HitPossible                 bool
	sprite0BeingRendered               bool

	frame *image.RGBA
}

// New returns a PPU wired to bus, with all state in its documented
// power-up values.
func New(bus Bus) *PPU {
	return &PPU{
		bus:   bus,
		frame: image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight)),
	}
}

func (p *PPU) String() string {
	return fmt.Sprintf("scanline=%d dot=%d ctrl=%02x mask=%02x status=%02x v=%04x", p.scanline, p.dot, p.ctrl, p.mask, p.status, p.v.data)
}

// Resolution returns the fixed NES picture size.
func (p *PPU) Resolution() (int, int) { return screenWidth, screenHeight }

// Frame returns the current, completed framebuffer.
func (p *PPU) Frame() *image.RGBA { return p.frame }

// ReadReg services a CPU read of $2000-$2007 (already masked to that
// range by the caller).
func (p *PPU) ReadReg(reg uint16) uint8 {
	switch reg {
	case regPPUSTATUS:
		v := (p.status & 0xE0) | (p.readBuffer & 0x1F)
		p.status &^= statusVBlank
		p.w = false
		return v
	case regOAMDATA:
		return p.oam[p.oamAddr]
	case regPPUDATA:
		v := p.readBuffer
		p.readBuffer = p.readVRAM(p.v.data)
		if p.v.data >= 0x3F00 { // palette reads aren't delayed
			v = p.readBuffer
		}
		p.incrementVRAMAddr()
		return v
	default:
		return 0
	}
}

// WriteReg services a CPU write of $2000-$2007.
func (p *PPU) WriteReg(reg uint16, val uint8) {
	switch reg {
	case regPPUCTRL:
		p.ctrl = val
		p.t.setNametableBits(uint16(val & ctrlNametableMask))
	case regPPUMASK:
		p.mask = val
	case regOAMADDR:
		p.oamAddr = val
	case regOAMDATA:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case regPPUSCROLL:
		if !p.w {
			p.x = val & 0x07
			p.t.setCoarseX(uint16(val) >> 3)
		} else {
			p.t.setFineY(uint16(val) & 0x07)
			p.t.setCoarseY(uint16(val) >> 3)
		}
		p.w = !p.w
	case regPPUADDR:
		if !p.w {
			p.t.data = (p.t.data & 0x00FF) | (uint16(val&0x3F) << 8)
		} else {
			p.t.data = (p.t.data & 0xFF00) | uint16(val)
			p.v = p.t
		}
		p.w = !p.w
	case regPPUDATA:
		p.writeVRAM(p.v.data, val)
		p.incrementVRAMAddr()
	}
}

func (p *PPU) incrementVRAMAddr() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v.data += 32
	} else {
		p.v.data++
	}
}

// WriteOAMByte is used by OAM DMA to load a byte directly at the
// current OAM address, auto-incrementing it just like $2004 writes do.
func (p *PPU) WriteOAMByte(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

func (p *PPU) nametableMirror(addr uint16) uint16 {
	idx := (addr - 0x2000) % 0x1000
	table := idx / 0x400
	offset := idx % 0x400

	var bank uint16
	switch p.bus.Mirror() {
	case MirrorVertical:
		bank = table % 2
	case MirrorHorizontal:
		bank = table / 2
	case MirrorSingleLower:
		bank = 0
	case MirrorSingleUpper:
		bank = 1
	default: // four-screen: not modeled as separate banks here
		bank = table % 2
	}
	return bank<<10 | offset
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.bus.PPURead(addr)
	case addr < 0x3F00:
		a := p.nametableMirror(addr)
		return p.nametables[a>>10][a&0x3FF]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.bus.PPUWrite(addr, val)
	case addr < 0x3F00:
		a := p.nametableMirror(addr)
		p.nametables[a>>10][a&0x3FF] = val
	default:
		p.writePalette(addr, val)
	}
}

// palette index $10/$14/$18/$1C are mirrors of the universal background
// color at $00/$04/$08/$0C.
func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}

func (p *PPU) readPalette(addr uint16) uint8  { return p.paletteRAM[paletteIndex(addr)] }
func (p *PPU) writePalette(addr uint16, v uint8) { p.paletteRAM[paletteIndex(addr)] = v }

func (p *PPU) renderingEnabled() bool { return p.mask&(maskShowBg|maskShowSprites) != 0 }

// Tick advances the PPU by one pixel clock (dot). Callers drive it 3
// times per CPU cycle.
func (p *PPU) Tick() {
	if p.scanline < 240 || p.scanline == 261 {
		p.renderTick()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.bus.TriggerNMI()
		}
	}

	if p.scanline == 261 && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
	}

	p.dot++
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.oddFrame = !p.oddFrame
			if p.oddFrame && p.renderingEnabled() {
				p.dot = 1 // odd-frame skipped dot
			}
		}
	}
}

func (p *PPU) renderTick() {
	if !p.renderingEnabled() {
		return
	}

	if (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336) {
		p.updateShifters()
		switch p.dot % 8 {
		case 1:
			p.loadShifters()
			p.nextTileID = p.readVRAM(p.v.nametableAddr())
		case 3:
			p.nextTileAttr = p.readVRAM(p.v.attributeAddr())
			shift := ((p.v.coarseY() & 2) << 1) | (p.v.coarseX() & 2)
			p.nextTileAttr = (p.nextTileAttr >> shift) & 0x03
		case 5:
			base := uint16(0)
			if p.ctrl&ctrlBgPattern != 0 {
				base = 0x1000
			}
			p.nextTileLSB = p.readVRAM(base + uint16(p.nextTileID)*16 + p.v.fineY())
		case 7:
			base := uint16(0)
			if p.ctrl&ctrlBgPattern != 0 {
				base = 0x1000
			}
			p.nextTileMSB = p.readVRAM(base + uint16(p.nextTileID)*16 + p.v.fineY() + 8)
		case 0:
			p.v.incrementCoarseX()
		}
	}

	if p.dot == 256 {
		p.v.incrementY()
	}
	if p.dot == 257 {
		p.loadShifters()
		p.v.setCoarseX(p.t.coarseX())
		p.v.setNametableBits((p.t.data & 0x0400 >> 10) | (p.v.data & 0x0800 >> 11))
		p.evaluateSprites()
	}
	if p.scanline == 261 && p.dot >= 280 && p.dot <= 304 {
		p.v.setCoarseY(p.t.coarseY())
		p.v.setFineY(p.t.fineY())
		p.v.data = (p.v.data &^ 0x0800) | (p.t.data & 0x0800)
	}

	if p.dot >= 1 && p.dot <= 256 && p.scanline < 240 {
		p.renderPixel()
	}
}

func (p *PPU) loadShifters() {
	p.bgShiftPatternLo = (p.bgShiftPatternLo & 0xFF00) | uint16(p.nextTileLSB)
	p.bgShiftPatternHi = (p.bgShiftPatternHi & 0xFF00) | uint16(p.nextTileMSB)

	var lo, hi uint16
	if p.nextTileAttr&0x01 != 0 {
		lo = 0xFF
	}
	if p.nextTileAttr&0x02 != 0 {
		hi = 0xFF
	}
	p.bgShiftAttrLo = (p.bgShiftAttrLo & 0xFF00) | lo
	p.bgShiftAttrHi = (p.bgShiftAttrHi & 0xFF00) | hi
}

func (p *PPU) updateShifters() {
	if p.mask&maskShowBg != 0 {
		p.bgShiftPatternLo <<= 1
		p.bgShiftPatternHi <<= 1
		p.bgShiftAttrLo <<= 1
		p.bgShiftAttrHi <<= 1
	}
}

// evaluateSprites scans primary OAM for up to 8 sprites intersecting
// the NEXT scanline, sets the overflow flag per the real (quirky)
// hardware algorithm's outcome of "9th match found", and pre-fetches
// their pattern bytes.
func (p *PPU) evaluateSprites() {
	targetLine := p.scanline + 1
	height := 8
	if p.ctrl&ctrlSprite8x16 != 0 {
		height = 16
	}

	p.spriteCount = 0
	p.sprite0HitPossible = false
	var matched []int
	for i := 0; i < 64; i++ {
		y := int(p.oam[i*4])
		if targetLine < y || targetLine >= y+height {
			continue
		}
		if i == 0 {
			p.sprite0HitPossible = true
		}
		matched = append(matched, i)
		if len(matched) > 8 {
			p.status |= statusSpriteOverflow
			matched = matched[:8]
			break
		}
	}

	for slot, i := range matched {
		y := int(p.oam[i*4])
		tile := p.oam[i*4+1]
		attr := p.oam[i*4+2]
		x := p.oam[i*4+3]

		row := targetLine - y
		flipV := attr&0x80 != 0
		flipH := attr&0x40 != 0
		if flipV {
			row = height - 1 - row
		}

		var base uint16
		var idx int
		if height == 16 {
			base = uint16(tile&1) * 0x1000
			idx = int(tile &^ 1)
			if row >= 8 {
				idx++
				row -= 8
			}
		} else {
			if p.ctrl&ctrlSpritePattern8x != 0 {
				base = 0x1000
			}
			idx = int(tile)
		}

		lo := p.readVRAM(base + uint16(idx)*16 + uint16(row))
		hi := p.readVRAM(base + uint16(idx)*16 + uint16(row) + 8)
		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.spritePatternsLo[slot] = lo
		p.spritePatternsHi[slot] = hi
		p.spriteAttr[slot] = attr
		p.spriteX[slot] = x
		p.spriteIsZero[slot] = i == 0
	}
	p.spriteCount = len(matched)
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) renderPixel() {
	x := p.dot - 1

	var bgPixel, bgPalette uint8
	if p.mask&maskShowBg != 0 && (x >= 8 || p.mask&maskShowBgLeft != 0) {
		bitMux := uint16(0x8000) >> p.x
		p0 := uint8(0)
		p1 := uint8(0)
		if p.bgShiftPatternLo&bitMux != 0 {
			p0 = 1
		}
		if p.bgShiftPatternHi&bitMux != 0 {
			p1 = 1
		}
		bgPixel = p1<<1 | p0

		a0 := uint8(0)
		a1 := uint8(0)
		if p.bgShiftAttrLo&bitMux != 0 {
			a0 = 1
		}
		if p.bgShiftAttrHi&bitMux != 0 {
			a1 = 1
		}
		bgPalette = a1<<1 | a0
	}

	var fgPixel, fgPalette uint8
	fgPriorityBehind := false
	spriteZeroHere := false
	if p.mask&maskShowSprites != 0 && (x >= 8 || p.mask&maskShowSpriteLeft != 0) {
		for i := 0; i < p.spriteCount; i++ {
			offset := x - int(p.spriteX[i])
			if offset < 0 || offset > 7 {
				continue
			}
			lo := (p.spritePatternsLo[i] >> (7 - offset)) & 1
			hi := (p.spritePatternsHi[i] >> (7 - offset)) & 1
			px := hi<<1 | lo
			if px == 0 {
				continue
			}
			fgPixel = px
			fgPalette = (p.spriteAttr[i] & 0x03) + 4
			fgPriorityBehind = p.spriteAttr[i]&0x20 != 0
			spriteZeroHere = p.spriteIsZero[i]
			break
		}
	}

	var finalPixel, finalPalette uint8
	switch {
	case bgPixel == 0 && fgPixel == 0:
		finalPixel, finalPalette = 0, 0
	case bgPixel == 0 && fgPixel != 0:
		finalPixel, finalPalette = fgPixel, fgPalette
	case bgPixel != 0 && fgPixel == 0:
		finalPixel, finalPalette = bgPixel, bgPalette
	default:
		if fgPriorityBehind {
			finalPixel, finalPalette = bgPixel, bgPalette
		} else {
			finalPixel, finalPalette = fgPixel, fgPalette
		}
		if spriteZeroHere && p.sprite0HitPossible && x != 255 {
			p.status |= statusSprite0Hit
		}
	}

	idx := p.readPalette(0x3F00 + uint16(finalPalette)*4 + uint16(finalPixel))
	c := systemPalette[idx&0x3F]
	p.frame.Set(x, p.scanline, color.RGBA(c))
}
