package cpu

import (
	"dmgcore/mask"
	"dmgcore/mem"
)

// execCB runs one CB-prefixed opcode. Every CB opcode has the shape
// fffff rrr, where rrr selects one of the eight getReg8/setReg8 targets
// and fffff selects the bit operation: the rotate/shift/swap family in
// 0x00-0x3F, BIT in 0x40-0x7F, RES in 0x80-0xBF, SET in 0xC0-0xFF.
func (c *Cpu) execCB(bus *mem.Bus, op byte) {
	reg := mask.Range(op, mask.I6, mask.I8)
	v := c.getReg8(bus, reg)

	switch {
	case op < 0x40:
		fn := mask.Range(op, mask.I3, mask.I5)
		c.setReg8(bus, reg, c.shiftOp(fn, v))

	case op < 0x80:
		bit := mask.Range(op, mask.I3, mask.I5)
		c.SetZero(v&(1<<bit) == 0)
		c.SetSubtract(false)
		c.SetHalfCarry(true)

	case op < 0xC0:
		bit := mask.Range(op, mask.I3, mask.I5)
		c.setReg8(bus, reg, v&^(1<<bit))

	default:
		bit := mask.Range(op, mask.I3, mask.I5)
		c.setReg8(bus, reg, v|(1<<bit))
	}
}

// shiftOp applies the rotate/shift/swap family selected by the 3-bit
// function field of a CB opcode below 0x40: rlc, rrc, rl, rr, sla, sra,
// swap, srl, in that order.
func (c *Cpu) shiftOp(fn byte, v byte) byte {
	var result byte
	var carry bool

	switch fn {
	case 0: // rlc
		carry = v&0x80 != 0
		result = v<<1 | btoi(carry)
	case 1: // rrc
		carry = v&0x01 != 0
		result = v>>1 | btoi(carry)<<7
	case 2: // rl
		carry = v&0x80 != 0
		result = v<<1 | btoi(c.Carry())
	case 3: // rr
		carry = v&0x01 != 0
		result = v>>1 | btoi(c.Carry())<<7
	case 4: // sla
		carry = v&0x80 != 0
		result = v << 1
	case 5: // sra
		carry = v&0x01 != 0
		result = v>>1 | v&0x80
	case 6: // swap
		result = v<<4 | v>>4
		carry = false
	case 7: // srl
		carry = v&0x01 != 0
		result = v >> 1
	}

	c.SetZero(result == 0)
	c.SetSubtract(false)
	c.SetHalfCarry(false)
	c.SetCarry(carry)
	return result
}
