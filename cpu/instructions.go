package cpu

import (
	"dmgcore/mask"
	"dmgcore/mem"
)

// Register index encoding used throughout the unprefixed and CB-prefixed
// opcode tables: 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func (c *Cpu) getReg8(bus *mem.Bus, idx byte) byte {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		v, _ := bus.Read(c.HL())
		return v
	default:
		return c.A
	}
}

func (c *Cpu) setReg8(bus *mem.Bus, idx byte, v byte) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		bus.Write(c.HL(), v)
	default:
		c.A = v
	}
}

// 16-bit register-pair index used by LD rr,d16 / ADD HL,rr / INC rr / DEC rr.
func (c *Cpu) getRP(idx byte) uint16 {
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *Cpu) setRP(idx byte, v uint16) {
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// Register-pair index used by PUSH/POP, where slot 3 is AF instead of SP.
func (c *Cpu) getRP2(idx byte) uint16 {
	if idx == 3 {
		return c.AF()
	}
	return c.getRP(idx)
}

func (c *Cpu) setRP2(idx byte, v uint16) {
	if idx == 3 {
		c.SetAF(v)
		return
	}
	c.setRP(idx, v)
}

func (c *Cpu) checkCond(cc byte) bool {
	switch cc {
	case 0:
		return !c.Zero()
	case 1:
		return c.Zero()
	case 2:
		return !c.Carry()
	default:
		return c.Carry()
	}
}

func (c *Cpu) push16(bus *mem.Bus, v uint16) {
	c.SP--
	bus.Write(c.SP, byte(v>>8))
	c.SP--
	bus.Write(c.SP, byte(v))
}

func (c *Cpu) pop16(bus *mem.Bus) uint16 {
	lo, _ := bus.Read(c.SP)
	c.SP++
	hi, _ := bus.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// exec runs the fully-decoded instruction currently held in c.cur, using
// c.arg8/c.arg16 for whatever operand it read during the DataRead phase.
// It is called once, from the Exec state, after both the EI/DI latch and
// the PC have already been resolved for this step.
func (c *Cpu) exec(bus *mem.Bus, instr Instruction) {
	op := instr.Opcode

	// Family decode for the big repetitive blocks: field positions follow
	// the conventional Game Boy opcode grid, read MSB-first via mask so
	// position 1 is bit 7 and position 8 is bit 0.
	switch {
	case op >= 0x40 && op <= 0x7F && op != 0x76:
		// 01 ddd sss -- ld r, r'
		dst := mask.Range(op, mask.I3, mask.I5)
		src := mask.Range(op, mask.I6, mask.I8)
		c.setReg8(bus, dst, c.getReg8(bus, src))
		return

	case (op&0xC7) == 0x04:
		// 00 rrr 100 -- inc r
		r := mask.Range(op, mask.I3, mask.I5)
		c.setReg8(bus, r, c.Inc8(c.getReg8(bus, r)))
		return

	case (op&0xC7) == 0x05:
		// 00 rrr 101 -- dec r
		r := mask.Range(op, mask.I3, mask.I5)
		c.setReg8(bus, r, c.Dec8(c.getReg8(bus, r)))
		return

	case (op&0xC7) == 0x06:
		// 00 rrr 110 -- ld r, d8
		r := mask.Range(op, mask.I3, mask.I5)
		c.setReg8(bus, r, c.arg8)
		return

	case op >= 0x80 && op <= 0xBF:
		// 10 xxx sss -- accumulator alu op against register sss
		fn := mask.Range(op, mask.I3, mask.I5)
		v := c.getReg8(bus, mask.Range(op, mask.I6, mask.I8))
		c.aluOp(fn, v)
		return

	case (op&0xCF) == 0x01:
		// 00 pp 0001 -- ld rr, d16
		c.setRP(mask.Range(op, mask.I3, mask.I4), c.arg16)
		return

	case (op&0xCF) == 0x03:
		// 00 pp 0011 -- inc rr
		rp := mask.Range(op, mask.I3, mask.I4)
		c.setRP(rp, c.getRP(rp)+1)
		return

	case (op&0xCF) == 0x0B:
		// 00 pp 1011 -- dec rr
		rp := mask.Range(op, mask.I3, mask.I4)
		c.setRP(rp, c.getRP(rp)-1)
		return

	case (op&0xCF) == 0x09:
		// 00 pp 1001 -- add HL, rr
		c.AddHL(c.getRP(mask.Range(op, mask.I3, mask.I4)))
		return

	case (op&0xCF) == 0xC5:
		// 11 pp 0101 -- push rr
		c.push16(bus, c.getRP2(mask.Range(op, mask.I3, mask.I4)))
		return

	case (op&0xCF) == 0xC1:
		// 11 pp 0001 -- pop rr
		c.setRP2(mask.Range(op, mask.I3, mask.I4), c.pop16(bus))
		return

	case (op&0xE7) == 0x20 && op != 0x18:
		// 00 1cc 000 -- jr cc, r8
		c.jrIf(c.checkCond(mask.Range(op, mask.I4, mask.I5)))
		return

	case (op&0xE7) == 0xC0 && op != 0xC9:
		// 11 0cc 000 -- ret cc
		c.retIf(bus, c.checkCond(mask.Range(op, mask.I4, mask.I5)))
		return

	case (op&0xE7) == 0xC2 && op != 0xC3:
		// 11 0cc 010 -- jp cc, a16
		c.jpIf(c.checkCond(mask.Range(op, mask.I4, mask.I5)))
		return

	case (op&0xC7) == 0xC4:
		// 11 0cc 100 -- call cc, a16
		c.callIf(bus, c.checkCond(mask.Range(op, mask.I4, mask.I5)))
		return

	case (op&0xC7) == 0xC7:
		// 11 xxx 111 -- rst xxx*8
		target := uint16(mask.Range(op, mask.I3, mask.I5)) * 8
		c.push16(bus, c.PC)
		c.PC = target
		return
	}

	c.execSingle(bus, op)
}

// aluOp applies the accumulator ALU family selected by the 3-bit function
// field of a 10xxxsss opcode (add, adc, sub, sbc, and, xor, or, cp).
func (c *Cpu) aluOp(fn byte, v byte) {
	switch fn {
	case 0:
		c.Add(v)
	case 1:
		c.Adc(v)
	case 2:
		c.Sub(v)
	case 3:
		c.Sbc(v)
	case 4:
		c.And(v)
	case 5:
		c.Xor(v)
	case 6:
		c.Or(v)
	case 7:
		c.Cp(v)
	}
}

// jrIf, jpIf, callIf and retIf all record whether they branched in
// c.branchTaken, since each backs a conditional opcode whose MinCycles
// (not taken) differs from its MaxCycles (taken); Step reads that flag
// once Exec returns to pick which one to charge.
func (c *Cpu) jrIf(take bool) {
	c.branchTaken = take
	if take {
		c.PC = uint16(int32(c.PC) + int32(int8(c.arg8)))
	}
}

func (c *Cpu) jpIf(take bool) {
	c.branchTaken = take
	if take {
		c.PC = c.arg16
	}
}

func (c *Cpu) callIf(bus *mem.Bus, take bool) {
	c.branchTaken = take
	if take {
		c.push16(bus, c.PC)
		c.PC = c.arg16
	}
}

func (c *Cpu) retIf(bus *mem.Bus, take bool) {
	c.branchTaken = take
	if take {
		c.PC = c.pop16(bus)
	}
}

// execSingle handles every opcode that does not fit one of the bit-family
// patterns above: the irregular loads, the 8-bit rotates/misc family, the
// unconditional control-flow instructions, and the one-off opcodes.
func (c *Cpu) execSingle(bus *mem.Bus, op byte) {
	switch op {
	case 0x00: // nop

	case 0x02:
		bus.Write(c.BC(), c.A)
	case 0x12:
		bus.Write(c.DE(), c.A)
	case 0x0A:
		c.A, _ = bus.Read(c.BC())
	case 0x1A:
		c.A, _ = bus.Read(c.DE())

	case 0x22:
		bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() + 1)
	case 0x2A:
		c.A, _ = bus.Read(c.HL())
		c.SetHL(c.HL() + 1)
	case 0x32:
		bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() - 1)
	case 0x3A:
		c.A, _ = bus.Read(c.HL())
		c.SetHL(c.HL() - 1)

	case 0x08: // ld (a16), SP
		bus.Write(c.arg16, byte(c.SP))
		bus.Write(c.arg16+1, byte(c.SP>>8))

	case 0x07: // rlca
		carry := c.A&0x80 != 0
		c.A = c.A<<1 | btoi(carry)
		c.SetZero(false)
		c.SetSubtract(false)
		c.SetHalfCarry(false)
		c.SetCarry(carry)
	case 0x17: // rla
		carry := c.A&0x80 != 0
		old := btoi(c.Carry())
		c.A = c.A<<1 | old
		c.SetZero(false)
		c.SetSubtract(false)
		c.SetHalfCarry(false)
		c.SetCarry(carry)
	case 0x0F: // rrca
		carry := c.A&0x01 != 0
		c.A = c.A>>1 | btoi(carry)<<7
		c.SetZero(false)
		c.SetSubtract(false)
		c.SetHalfCarry(false)
		c.SetCarry(carry)
	case 0x1F: // rra
		carry := c.A&0x01 != 0
		old := btoi(c.Carry())
		c.A = c.A>>1 | old<<7
		c.SetZero(false)
		c.SetSubtract(false)
		c.SetHalfCarry(false)
		c.SetCarry(carry)

	case 0x27:
		c.Daa()
	case 0x2F:
		c.Cpl()
	case 0x37:
		c.Scf()
	case 0x3F:
		c.Ccf()

	case 0x10: // stop: no timer/LCD to halt, so just freeze fetch like HALT
		c.Halted = true

	case 0x18: // jr r8 (unconditional)
		c.jrIf(true)

	case 0x34:
		v, _ := bus.Read(c.HL())
		bus.Write(c.HL(), c.Inc8(v))
	case 0x35:
		v, _ := bus.Read(c.HL())
		bus.Write(c.HL(), c.Dec8(v))
	case 0x36:
		bus.Write(c.HL(), c.arg8)

	case 0x76: // halt
		c.Halted = true

	case 0xC3: // jp a16
		c.jpIf(true)
	case 0xC9: // ret
		c.retIf(bus, true)
	case 0xCD: // call a16
		c.callIf(bus, true)
	case 0xD9: // reti
		c.retIf(bus, true)
		c.IME = true
	case 0xE9: // jp (HL)
		c.PC = c.HL()

	case 0xC6:
		c.Add(c.arg8)
	case 0xCE:
		c.Adc(c.arg8)
	case 0xD6:
		c.Sub(c.arg8)
	case 0xDE:
		c.Sbc(c.arg8)
	case 0xE6:
		c.And(c.arg8)
	case 0xEE:
		c.Xor(c.arg8)
	case 0xF6:
		c.Or(c.arg8)
	case 0xFE:
		c.Cp(c.arg8)

	case 0xE0: // ldh (a8), A
		bus.Write(0xFF00+uint16(c.arg8), c.A)
	case 0xF0: // ldh A, (a8)
		c.A, _ = bus.Read(0xFF00 + uint16(c.arg8))
	case 0xE2: // ld (C), A
		bus.Write(0xFF00+uint16(c.C), c.A)
	case 0xF2: // ld A, (C)
		c.A, _ = bus.Read(0xFF00 + uint16(c.C))
	case 0xEA: // ld (a16), A
		bus.Write(c.arg16, c.A)
	case 0xFA: // ld A, (a16)
		c.A, _ = bus.Read(c.arg16)

	case 0xE8: // add SP, r8
		c.SP = c.AddSP(int8(c.arg8))
	case 0xF8: // ld HL, SP+r8
		c.SetHL(c.AddSP(int8(c.arg8)))
	case 0xF9: // ld SP, HL
		c.SP = c.HL()

	case 0xF3: // di -- deferred, applied once the next instruction has run
		c.pendingDI = true
	case 0xFB: // ei -- deferred, applied once the next instruction has run
		c.pendingEI = true
	}
}

func btoi(b bool) byte {
	if b {
		return 1
	}
	return 0
}
