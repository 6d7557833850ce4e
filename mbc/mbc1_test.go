package mbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildBankedROM builds a ROM of the given number of 0x4000 banks, each
// bank's first byte equal to its bank number, for bank-switch assertions.
func buildBankedROM(banks int) []byte {
	rom := make([]byte, banks*romBankSize)
	for b := 0; b < banks; b++ {
		rom[b*romBankSize] = byte(b)
	}
	return rom
}

func TestMBC1BankSwitchReadsCorrectBank(t *testing.T) {
	rom := buildBankedROM(8)
	c := New(MBC1, rom, 0x2000)

	c.WriteROM(0x2000, 3) // select bank 3
	got, ok := c.ReadROM(0x4000)
	assert.True(t, ok)
	assert.Equal(t, byte(3), got)
}

func TestMBC1Bank0PromotesToBank1(t *testing.T) {
	rom := buildBankedROM(8)
	c := New(MBC1, rom, 0x2000)

	c.WriteROM(0x2000, 0) // select bank 0 -> promoted to bank 1
	got, ok := c.ReadROM(0x4000)
	assert.True(t, ok)
	assert.Equal(t, byte(1), got)
}

func TestMBC1Bank0x20PromotesToBank0x21(t *testing.T) {
	rom := buildBankedROM(0x40)
	c := New(MBC1, rom, 0x2000)

	c.WriteROM(0x2000, 0x00) // low 5 bits = 0
	c.WriteROM(0x4000, 0x01) // upper bits = 1 -> bank 0x20, promoted
	got, ok := c.ReadROM(0x4000)
	assert.True(t, ok)
	assert.Equal(t, byte(0x21), got)
}

func TestMBC1RAMDisabledByDefault(t *testing.T) {
	rom := buildBankedROM(2)
	c := New(MBC1, rom, 0x2000)
	_, ok := c.ReadRAM(0)
	assert.False(t, ok)
}

func TestMBC1RAMEnableWriteThenReadWrite(t *testing.T) {
	rom := buildBankedROM(2)
	c := New(MBC1, rom, 0x2000)
	c.WriteROM(0x0000, 0x0A) // enable RAM
	c.WriteRAM(0x10, 0x42)
	got, ok := c.ReadRAM(0x10)
	assert.True(t, ok)
	assert.Equal(t, byte(0x42), got)

	c.WriteROM(0x0000, 0x00) // disable RAM
	_, ok = c.ReadRAM(0x10)
	assert.False(t, ok)
}

func TestMBC1ModeSelectSwitchesRAMBank(t *testing.T) {
	rom := buildBankedROM(2)
	c := New(MBC1, rom, ramBankSize*4)
	c.WriteROM(0x0000, 0x0A)
	c.WriteROM(0x6000, 0x01) // RAM banking mode
	c.WriteROM(0x4000, 0x02) // select RAM bank 2
	c.WriteRAM(0x00, 0x77)

	c.WriteROM(0x4000, 0x00) // back to bank 0
	_, ok := c.ReadRAM(0x00)
	assert.True(t, ok)

	c.WriteROM(0x4000, 0x02)
	got, ok := c.ReadRAM(0x00)
	assert.True(t, ok)
	assert.Equal(t, byte(0x77), got)
}
