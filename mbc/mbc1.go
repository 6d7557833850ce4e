package mbc

import "dmgcore/internal/trace"

// mbc1Mode selects what the 0x4000-0x5FFF register controls.
type mbc1Mode int

const (
	mbc1RomSelect mbc1Mode = iota
	mbc1RamSelect
)

// mbc1 implements the original MBC1: a 5-bit ROM bank register combined
// with a 2-bit secondary register that, depending on mode, either extends
// the ROM bank to 7 bits or selects one of four RAM banks.
type mbc1 struct {
	rom, ram      []byte
	activeROMBank int
	activeRAMBank int
	ramEnabled    bool
	mode          mbc1Mode
}

func (c *mbc1) Kind() Kind { return MBC1 }

func (c *mbc1) effectiveROMBank() int {
	bank := c.activeROMBank
	if c.mode == mbc1RamSelect {
		// In RAM banking mode the secondary register drives the RAM
		// bank instead, so only the 5-bit primary register is live.
		bank &= 0x1F
	}
	// Bank 0 isn't switchable, and banks 0x20, 0x40, 0x60 are not usable:
	// accessing one of them accesses the following bank instead.
	switch bank {
	case 0, 0x20, 0x40, 0x60:
		bank++
	}
	return bank
}

func (c *mbc1) ReadROM(addr uint16) (byte, bool) {
	return readBankedROM(c.rom, addr, c.effectiveROMBank())
}

func (c *mbc1) WriteROM(addr uint16, data byte) {
	switch {
	case addr <= 0x1FFF:
		c.ramEnabled = ramEnableWrite(data, c.ramEnabled)

	case addr <= 0x3FFF:
		bank := int(data & 0x1F)
		c.activeROMBank = bank | (c.activeROMBank & 0x60)
		trace.Printf("mbc1: rom bank register now 0x%02X", c.activeROMBank)

	case addr <= 0x5FFF:
		bits := int(data & 0x03)
		if c.mode == mbc1RamSelect {
			c.activeRAMBank = bits
		} else {
			c.activeROMBank = (bits << 5) | (c.activeROMBank & 0x1F)
		}

	case addr <= 0x7FFF:
		switch data {
		case 0:
			c.mode = mbc1RomSelect
		case 1:
			c.mode = mbc1RamSelect
		}
	}
}

func (c *mbc1) ReadRAM(addr uint16) (byte, bool) {
	bank := 0
	if c.mode == mbc1RamSelect {
		bank = c.activeRAMBank
	}
	return readBankedRAM(c.ram, addr, bank, c.ramEnabled)
}

func (c *mbc1) WriteRAM(addr uint16, data byte) {
	bank := 0
	if c.mode == mbc1RamSelect {
		bank = c.activeRAMBank
	}
	writeBankedRAM(c.ram, addr, bank, c.ramEnabled, data)
}
