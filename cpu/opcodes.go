package cpu

// Addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	implicit = iota
	accumulator
	immediate
	zeroPage
	zeroPageX
	zeroPageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX // Indexed Indirect
	indirectY // Indirect Indexed
)

type opcode struct {
	name   string
	mode   uint8
	bytes  uint8
	cycles uint8
	exec   func(c *CPU, mode uint8)
}

// operandAddr resolves the effective address for mode, assuming PC
// already points at the first operand byte. ACCUMULATOR and IMPLICIT
// modes have no address and must be special-cased by the caller.
func (c *CPU) operandAddr(mode uint8) uint16 {
	switch mode {
	case immediate:
		return c.PC
	case zeroPage:
		return uint16(c.read(c.PC))
	case zeroPageX:
		return uint16(c.read(c.PC) + c.X)
	case zeroPageY:
		return uint16(c.read(c.PC) + c.Y)
	case absolute:
		return c.read16(c.PC)
	case absoluteX:
		base := c.read16(c.PC)
		addr := base + uint16(c.X)
		c.cycles += int(pageCrossed(base, addr))
		return addr
	case absoluteY:
		base := c.read16(c.PC)
		addr := base + uint16(c.Y)
		c.cycles += int(pageCrossed(base, addr))
		return addr
	case indirect:
		// Faithfully reproduces the 6502 page-wrap bug: if the
		// low byte of the pointer is 0xFF, the high byte is
		// fetched from the start of the same page, not the next.
		ptr := c.read16(c.PC)
		if ptr&0x00FF == 0x00FF {
			lo := uint16(c.read(ptr))
			hi := uint16(c.read(ptr & 0xFF00))
			return hi<<8 | lo
		}
		return c.read16(ptr)
	case indirectX:
		ptr := uint16(c.read(c.PC) + c.X)
		lo := uint16(c.read(ptr & 0xFF))
		hi := uint16(c.read((ptr + 1) & 0xFF))
		return hi<<8 | lo
	case indirectY:
		ptr := uint16(c.read(c.PC))
		lo := uint16(c.read(ptr & 0xFF))
		hi := uint16(c.read((ptr + 1) & 0xFF))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		c.cycles += int(pageCrossed(base, addr))
		return addr
	case relative:
		return (c.PC + 1) + uint16(int8(c.read(c.PC)))
	default:
		panic("cpu: addressing mode has no effective address")
	}
}

// opcodes holds every documented 6502 opcode. Entries absent from this
// table are treated by Step as invalid instructions; illegal/
// undocumented opcodes are out of scope (see DESIGN.md).
var opcodes = map[uint8]opcode{
	0x69: {"ADC", immediate, 2, 2, adc}, 0x65: {"ADC", zeroPage, 2, 3, adc},
	0x75: {"ADC", zeroPageX, 2, 4, adc}, 0x6D: {"ADC", absolute, 3, 4, adc},
	0x7D: {"ADC", absoluteX, 3, 4, adc}, 0x79: {"ADC", absoluteY, 3, 4, adc},
	0x61: {"ADC", indirectX, 2, 6, adc}, 0x71: {"ADC", indirectY, 2, 5, adc},

	0x29: {"AND", immediate, 2, 2, and}, 0x25: {"AND", zeroPage, 2, 3, and},
	0x35: {"AND", zeroPageX, 2, 4, and}, 0x2D: {"AND", absolute, 3, 4, and},
	0x3D: {"AND", absoluteX, 3, 4, and}, 0x39: {"AND", absoluteY, 3, 4, and},
	0x21: {"AND", indirectX, 2, 6, and}, 0x31: {"AND", indirectY, 2, 5, and},

	0x0A: {"ASL", accumulator, 1, 2, asl}, 0x06: {"ASL", zeroPage, 2, 5, asl},
	0x16: {"ASL", zeroPageX, 2, 6, asl}, 0x0E: {"ASL", absolute, 3, 6, asl},
	0x1E: {"ASL", absoluteX, 3, 7, asl},

	0x90: {"BCC", relative, 2, 2, bcc}, 0xB0: {"BCS", relative, 2, 2, bcs},
	0xF0: {"BEQ", relative, 2, 2, beq}, 0x30: {"BMI", relative, 2, 2, bmi},
	0xD0: {"BNE", relative, 2, 2, bne}, 0x10: {"BPL", relative, 2, 2, bpl},
	0x50: {"BVC", relative, 2, 2, bvc}, 0x70: {"BVS", relative, 2, 2, bvs},

	0x24: {"BIT", zeroPage, 2, 3, bit}, 0x2C: {"BIT", absolute, 3, 4, bit},

	0x00: {"BRK", implicit, 1, 7, brk},

	0x18: {"CLC", implicit, 1, 2, clc}, 0xD8: {"CLD", implicit, 1, 2, cld},
	0x58: {"CLI", implicit, 1, 2, cli}, 0xB8: {"CLV", implicit, 1, 2, clv},

	0xC9: {"CMP", immediate, 2, 2, cmp}, 0xC5: {"CMP", zeroPage, 2, 3, cmp},
	0xD5: {"CMP", zeroPageX, 2, 4, cmp}, 0xCD: {"CMP", absolute, 3, 4, cmp},
	0xDD: {"CMP", absoluteX, 3, 4, cmp}, 0xD9: {"CMP", absoluteY, 3, 4, cmp},
	0xC1: {"CMP", indirectX, 2, 6, cmp}, 0xD1: {"CMP", indirectY, 2, 5, cmp},

	0xE0: {"CPX", immediate, 2, 2, cpx}, 0xE4: {"CPX", zeroPage, 2, 3, cpx},
	0xEC: {"CPX", absolute, 3, 4, cpx},
	0xC0: {"CPY", immediate, 2, 2, cpy}, 0xC4: {"CPY", zeroPage, 2, 3, cpy},
	0xCC: {"CPY", absolute, 3, 4, cpy},

	0xC6: {"DEC", zeroPage, 2, 5, dec}, 0xD6: {"DEC", zeroPageX, 2, 6, dec},
	0xCE: {"DEC", absolute, 3, 6, dec}, 0xDE: {"DEC", absoluteX, 3, 7, dec},
	0xCA: {"DEX", implicit, 1, 2, dex}, 0x88: {"DEY", implicit, 1, 2, dey},

	0x49: {"EOR", immediate, 2, 2, eor}, 0x45: {"EOR", zeroPage, 2, 3, eor},
	0x55: {"EOR", zeroPageX, 2, 4, eor}, 0x4D: {"EOR", absolute, 3, 4, eor},
	0x5D: {"EOR", absoluteX, 3, 4, eor}, 0x59: {"EOR", absoluteY, 3, 4, eor},
	0x41: {"EOR", indirectX, 2, 6, eor}, 0x51: {"EOR", indirectY, 2, 5, eor},

	0xE6: {"INC", zeroPage, 2, 5, inc}, 0xF6: {"INC", zeroPageX, 2, 6, inc},
	0xEE: {"INC", absolute, 3, 6, inc}, 0xFE: {"INC", absoluteX, 3, 7, inc},
	0xE8: {"INX", implicit, 1, 2, inx}, 0xC8: {"INY", implicit, 1, 2, iny},

	0x4C: {"JMP", absolute, 3, 3, jmp}, 0x6C: {"JMP", indirect, 3, 5, jmp},
	0x20: {"JSR", absolute, 3, 6, jsr},

	0xA9: {"LDA", immediate, 2, 2, lda}, 0xA5: {"LDA", zeroPage, 2, 3, lda},
	0xB5: {"LDA", zeroPageX, 2, 4, lda}, 0xAD: {"LDA", absolute, 3, 4, lda},
	0xBD: {"LDA", absoluteX, 3, 4, lda}, 0xB9: {"LDA", absoluteY, 3, 4, lda},
	0xA1: {"LDA", indirectX, 2, 6, lda}, 0xB1: {"LDA", indirectY, 2, 5, lda},

	0xA2: {"LDX", immediate, 2, 2, ldx}, 0xA6: {"LDX", zeroPage, 2, 3, ldx},
	0xB6: {"LDX", zeroPageY, 2, 4, ldx}, 0xAE: {"LDX", absolute, 3, 4, ldx},
	0xBE: {"LDX", absoluteY, 3, 4, ldx},

	0xA0: {"LDY", immediate, 2, 2, ldy}, 0xA4: {"LDY", zeroPage, 2, 3, ldy},
	0xB4: {"LDY", zeroPageX, 2, 4, ldy}, 0xAC: {"LDY", absolute, 3, 4, ldy},
	0xBC: {"LDY", absoluteX, 3, 4, ldy},

	0x4A: {"LSR", accumulator, 1, 2, lsr}, 0x46: {"LSR", zeroPage, 2, 5, lsr},
	0x56: {"LSR", zeroPageX, 2, 6, lsr}, 0x4E: {"LSR", absolute, 3, 6, lsr},
	0x5E: {"LSR", absoluteX, 3, 7, lsr},

	0xEA: {"NOP", implicit, 1, 2, nop},

	0x09: {"ORA", immediate, 2, 2, ora}, 0x05: {"ORA", zeroPage, 2, 3, ora},
	0x15: {"ORA", zeroPageX, 2, 4, ora}, 0x0D: {"ORA", absolute, 3, 4, ora},
	0x1D: {"ORA", absoluteX, 3, 4, ora}, 0x19: {"ORA", absoluteY, 3, 4, ora},
	0x01: {"ORA", indirectX, 2, 6, ora}, 0x11: {"ORA", indirectY, 2, 5, ora},

	0x48: {"PHA", implicit, 1, 3, pha}, 0x08: {"PHP", implicit, 1, 3, php},
	0x68: {"PLA", implicit, 1, 4, pla}, 0x28: {"PLP", implicit, 1, 4, plp},

	0x2A: {"ROL", accumulator, 1, 2, rol}, 0x26: {"ROL", zeroPage, 2, 5, rol},
	0x36: {"ROL", zeroPageX, 2, 6, rol}, 0x2E: {"ROL", absolute, 3, 6, rol},
	0x3E: {"ROL", absoluteX, 3, 7, rol},

	0x6A: {"ROR", accumulator, 1, 2, ror}, 0x66: {"ROR", zeroPage, 2, 5, ror},
	0x76: {"ROR", zeroPageX, 2, 6, ror}, 0x6E: {"ROR", absolute, 3, 6, ror},
	0x7E: {"ROR", absoluteX, 3, 7, ror},

	0x40: {"RTI", implicit, 1, 6, rti}, 0x60: {"RTS", implicit, 1, 6, rts},

	0xE9: {"SBC", immediate, 2, 2, sbc}, 0xE5: {"SBC", zeroPage, 2, 3, sbc},
	0xF5: {"SBC", zeroPageX, 2, 4, sbc}, 0xED: {"SBC", absolute, 3, 4, sbc},
	0xFD: {"SBC", absoluteX, 3, 4, sbc}, 0xF9: {"SBC", absoluteY, 3, 4, sbc},
	0xE1: {"SBC", indirectX, 2, 6, sbc}, 0xF1: {"SBC", indirectY, 2, 5, sbc},

	0x38: {"SEC", implicit, 1, 2, sec}, 0xF8: {"SED", implicit, 1, 2, sed},
	0x78: {"SEI", implicit, 1, 2, sei},

	0x85: {"STA", zeroPage, 2, 3, sta}, 0x95: {"STA", zeroPageX, 2, 4, sta},
	0x8D: {"STA", absolute, 3, 4, sta}, 0x9D: {"STA", absoluteX, 3, 5, sta},
	0x99: {"STA", absoluteY, 3, 5, sta}, 0x81: {"STA", indirectX, 2, 6, sta},
	0x91: {"STA", indirectY, 2, 6, sta},

	0x86: {"STX", zeroPage, 2, 3, stx}, 0x96: {"STX", zeroPageY, 2, 4, stx},
	0x8E: {"STX", absolute, 3, 4, stx},
	0x84: {"STY", zeroPage, 2, 3, sty}, 0x94: {"STY", zeroPageX, 2, 4, sty},
	0x8C: {"STY", absolute, 3, 4, sty},

	0xAA: {"TAX", implicit, 1, 2, tax}, 0xA8: {"TAY", implicit, 1, 2, tay},
	0xBA: {"TSX", implicit, 1, 2, tsx}, 0x8A: {"TXA", implicit, 1, 2, txa},
	0x9A: {"TXS", implicit, 1, 2, txs}, 0x98: {"TYA", implicit, 1, 2, tya},
}

func adc(c *CPU, mode uint8) { c.addWithOverflow(c.read(c.operandAddr(mode))) }
func and(c *CPU, mode uint8) { c.A &= c.read(c.operandAddr(mode)); c.setZN(c.A) }

func asl(c *CPU, mode uint8) {
	var old, new uint8
	if mode == accumulator {
		old, c.A = c.A, c.A<<1
		new = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		new = old << 1
		c.write(addr, new)
	}
	c.flagsOff(FlagCarry)
	c.setZN(new)
	if old&0x80 != 0 {
		c.flagsOn(FlagCarry)
	}
}

func bcc(c *CPU, _ uint8) { c.branch(FlagCarry, false) }
func bcs(c *CPU, _ uint8) { c.branch(FlagCarry, true) }
func beq(c *CPU, _ uint8) { c.branch(FlagZero, true) }
func bmi(c *CPU, _ uint8) { c.branch(FlagNegative, true) }
func bne(c *CPU, _ uint8) { c.branch(FlagZero, false) }
func bpl(c *CPU, _ uint8) { c.branch(FlagNegative, false) }
func bvc(c *CPU, _ uint8) { c.branch(FlagOverflow, false) }
func bvs(c *CPU, _ uint8) { c.branch(FlagOverflow, true) }

func bit(c *CPU, mode uint8) {
	v := c.read(c.operandAddr(mode))
	c.flagsOff(FlagNegative | FlagOverflow | FlagZero)
	if v&c.A == 0 {
		c.flagsOn(FlagZero)
	}
	c.flagsOn(v & (FlagNegative | FlagOverflow))
}

func brk(c *CPU, _ uint8) {
	c.PC++ // BRK's second byte is a padding byte, skipped on return
	c.serviceInterrupt(vecBRK, true)
}

func clc(c *CPU, _ uint8) { c.flagsOff(FlagCarry) }
func cld(c *CPU, _ uint8) { c.flagsOff(FlagDecimal) }
func cli(c *CPU, _ uint8) { c.flagsOff(FlagInterruptDisable) }
func clv(c *CPU, _ uint8) { c.flagsOff(FlagOverflow) }

func cmp(c *CPU, mode uint8) { c.compare(c.A, c.read(c.operandAddr(mode))) }
func cpx(c *CPU, mode uint8) { c.compare(c.X, c.read(c.operandAddr(mode))) }
func cpy(c *CPU, mode uint8) { c.compare(c.Y, c.read(c.operandAddr(mode))) }

func dec(c *CPU, mode uint8) {
	addr := c.operandAddr(mode)
	v := c.read(addr) - 1
	c.write(addr, v)
	c.setZN(v)
}
func dex(c *CPU, _ uint8) { c.X--; c.setZN(c.X) }
func dey(c *CPU, _ uint8) { c.Y--; c.setZN(c.Y) }

func eor(c *CPU, mode uint8) { c.A ^= c.read(c.operandAddr(mode)); c.setZN(c.A) }

func inc(c *CPU, mode uint8) {
	addr := c.operandAddr(mode)
	v := c.read(addr) + 1
	c.write(addr, v)
	c.setZN(v)
}
func inx(c *CPU, _ uint8) { c.X++; c.setZN(c.X) }
func iny(c *CPU, _ uint8) { c.Y++; c.setZN(c.Y) }

func jmp(c *CPU, mode uint8) { c.PC = c.operandAddr(mode) }
func jsr(c *CPU, mode uint8) {
	target := c.operandAddr(mode)
	c.pushAddress(c.PC + 1) // points at the last byte of the operand
	c.PC = target
}

func lda(c *CPU, mode uint8) { c.A = c.read(c.operandAddr(mode)); c.setZN(c.A) }
func ldx(c *CPU, mode uint8) { c.X = c.read(c.operandAddr(mode)); c.setZN(c.X) }
func ldy(c *CPU, mode uint8) { c.Y = c.read(c.operandAddr(mode)); c.setZN(c.Y) }

func lsr(c *CPU, mode uint8) {
	var old, new uint8
	if mode == accumulator {
		old, c.A = c.A, c.A>>1
		new = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		new = old >> 1
		c.write(addr, new)
	}
	c.flagsOff(FlagCarry)
	c.setZN(new)
	if old&FlagCarry != 0 {
		c.flagsOn(FlagCarry)
	}
}

func nop(c *CPU, _ uint8) {}

func ora(c *CPU, mode uint8) { c.A |= c.read(c.operandAddr(mode)); c.setZN(c.A) }

func pha(c *CPU, _ uint8) { c.pushStack(c.A) }
func php(c *CPU, _ uint8) { c.pushStack(c.P | FlagBreak | flagUnused) }
func pla(c *CPU, _ uint8) { c.A = c.popStack(); c.setZN(c.A) }
func plp(c *CPU, _ uint8) { c.P = (c.popStack() &^ FlagBreak) | flagUnused }

func rol(c *CPU, mode uint8) {
	carry := c.P & FlagCarry
	var old, new uint8
	if mode == accumulator {
		old = c.A
		c.A = rotateLeft(old, carry)
		new = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		new = rotateLeft(old, carry)
		c.write(addr, new)
	}
	c.flagsOff(FlagCarry)
	c.setZN(new)
	if old&0x80 != 0 {
		c.flagsOn(FlagCarry)
	}
}

func ror(c *CPU, mode uint8) {
	carry := c.P & FlagCarry
	var old, new uint8
	if mode == accumulator {
		old = c.A
		c.A = rotateRight(old, carry)
		new = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		new = rotateRight(old, carry)
		c.write(addr, new)
	}
	c.flagsOff(FlagCarry)
	c.setZN(new)
	if old&FlagCarry != 0 {
		c.flagsOn(FlagCarry)
	}
}

func rti(c *CPU, _ uint8) {
	c.P = (c.popStack() &^ FlagBreak) | flagUnused
	c.PC = c.popAddress()
}
func rts(c *CPU, _ uint8) { c.PC = c.popAddress() + 1 }

func sbc(c *CPU, mode uint8) { c.addWithOverflow(^c.read(c.operandAddr(mode))) }

func sec(c *CPU, _ uint8) { c.flagsOn(FlagCarry) }
func sed(c *CPU, _ uint8) { c.flagsOn(FlagDecimal) }
func sei(c *CPU, _ uint8) { c.flagsOn(FlagInterruptDisable) }

func sta(c *CPU, mode uint8) { c.write(c.operandAddr(mode), c.A) }
func stx(c *CPU, mode uint8) { c.write(c.operandAddr(mode), c.X) }
func sty(c *CPU, mode uint8) { c.write(c.operandAddr(mode), c.Y) }

func tax(c *CPU, _ uint8) { c.X = c.A; c.setZN(c.X) }
func tay(c *CPU, _ uint8) { c.Y = c.A; c.setZN(c.Y) }
func tsx(c *CPU, _ uint8) { c.X = c.SP; c.setZN(c.X) }
func txa(c *CPU, _ uint8) { c.A = c.X; c.setZN(c.A) }
func txs(c *CPU, _ uint8) { c.SP = c.X }
func tya(c *CPU, _ uint8) { c.A = c.Y; c.setZN(c.A) }
