package nes

// loopyReg packs the PPU's internal v/t scroll registers:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopyReg struct {
	data uint16 // only 15 bits used
}

func (l *loopyReg) coarseX() uint16 { return l.data & 0x001F }

func (l *loopyReg) setCoarseX(n uint16) { l.data = (l.data &^ 0x001F) | (n & 0x1F) }

func (l *loopyReg) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400 // switch horizontal nametable
		return
	}
	l.data++
}

func (l *loopyReg) coarseY() uint16 { return (l.data & 0x03E0) >> 5 }

func (l *loopyReg) setCoarseY(n uint16) { l.data = (l.data &^ 0x03E0) | ((n & 0x1F) << 5) }

func (l *loopyReg) incrementY() {
	if l.fineY() < 7 {
		l.data += 0x1000
		return
	}
	l.data &^= 0x7000
	y := l.coarseY()
	switch {
	case y == 29:
		l.data &^= 0x03E0
		l.data ^= 0x0800 // switch vertical nametable
	case y == 31:
		l.data &^= 0x03E0
	default:
		l.data += 0x0020
	}
}

func (l *loopyReg) nametableX() uint16 { return (l.data & 0x0400) >> 10 }
func (l *loopyReg) nametableY() uint16 { return (l.data & 0x0800) >> 11 }

func (l *loopyReg) fineY() uint16         { return (l.data & 0x7000) >> 12 }
func (l *loopyReg) setFineY(n uint16)     { l.data = (l.data &^ 0x7000) | ((n & 0x7) << 12) }
func (l *loopyReg) setNametableBits(n uint16) {
	l.data = (l.data &^ 0x0C00) | ((n & 0x3) << 10)
}

// nametableAddr returns the tile-map byte address (0x2000-0x2FFF) for
// the current coarse X/Y/nametable bits of v.
func (l *loopyReg) nametableAddr() uint16 {
	return 0x2000 | (l.data & 0x0FFF)
}

// attributeAddr returns the attribute-table byte address covering the
// tile v currently points at.
func (l *loopyReg) attributeAddr() uint16 {
	return 0x23C0 | (l.data & 0x0C00) | ((l.coarseY() >> 2) << 3) | (l.coarseX() >> 2)
}
