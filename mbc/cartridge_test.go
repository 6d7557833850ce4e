package mbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM returns a minimal, valid 32 KiB ROM image: the given feature,
// ROM-size and RAM-size bytes and title, correct logo, and a
// correctly-computed header checksum.
func buildROM(t *testing.T, featureByte, romSizeByte, ramSizeByte byte, title string) []byte {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[logoStart:logoStart+48], nintendoLogo[:])
	copy(rom[titleStart:titleEnd], []byte(title))
	rom[featureOffset] = featureByte
	rom[romSizeOffset] = romSizeByte
	rom[ramSizeOffset] = ramSizeByte

	var checksum byte
	for i := titleStart; i < headerChecksumAt; i++ {
		checksum = checksum - rom[i] - 1
	}
	rom[headerChecksumAt] = checksum
	return rom
}

func TestParseHeaderFields(t *testing.T) {
	rom := buildROM(t, 0x00, 0x00, 0x00, "TETRIS")
	cart, err := Parse(rom)
	require.NoError(t, err)
	assert.Equal(t, "TETRIS", cart.Title)
	assert.Equal(t, RomOnly, cart.Kind)
	assert.Equal(t, 0x8000, cart.ROMSize)
	assert.NoError(t, cart.Validate())
	assert.True(t, cart.IsValid())
}

func TestValidateDetectsLogoMismatch(t *testing.T) {
	rom := buildROM(t, 0x00, 0x00, 0x00, "BAD")
	rom[logoStart] = 0xFF
	cart, err := Parse(rom)
	require.NoError(t, err)
	err = cart.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x0104")
}

func TestValidateDetectsChecksumMismatch(t *testing.T) {
	rom := buildROM(t, 0x00, 0x00, 0x00, "BAD")
	rom[headerChecksumAt]++
	cart, err := Parse(rom)
	require.NoError(t, err)
	assert.Error(t, cart.Validate())
}

func TestFeatureByteSelectsController(t *testing.T) {
	rom := buildROM(t, 0x03, 0x00, 0x02, "MBC1GAME")
	cart, err := Parse(rom)
	require.NoError(t, err)
	assert.Equal(t, MBC1, cart.Kind)
	assert.Contains(t, cart.Features, HasRAM)
	assert.Contains(t, cart.Features, HasBattery)
	assert.Equal(t, MBC1, cart.MBC.Kind())
}

func TestParseRejectsShortImage(t *testing.T) {
	_, err := Parse(make([]byte, 0x10))
	assert.Error(t, err)
}
