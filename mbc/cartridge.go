package mbc

import (
	"fmt"
	"strings"
)

// Header offsets, all relative to the start of the ROM image.
const (
	titleStart       = 0x134
	titleEnd         = 0x143
	featureOffset    = 0x147
	romSizeOffset    = 0x148
	ramSizeOffset    = 0x149
	localeOffset     = 0x14A
	headerChecksumAt = 0x14D
	globalChecksumHi = 0x14E
	globalChecksumLo = 0x14F
	logoStart        = 0x104
	logoEnd          = 0x134
)

// nintendoLogo is the 48-byte bitmap every licensed cartridge must carry
// at 0x104-0x133; the boot ROM refuses to start a game whose copy does
// not match exactly.
var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Feature is a capability declared by the cartridge's feature byte
// (0x147), beyond the memory bank controller kind itself.
type Feature int

const (
	HasRAM Feature = iota
	HasBattery
	HasTimer
	HasRumble
	HasSensor
)

func (f Feature) String() string {
	switch f {
	case HasRAM:
		return "RAM"
	case HasBattery:
		return "Battery"
	case HasTimer:
		return "Timer"
	case HasRumble:
		return "Rumble"
	case HasSensor:
		return "Sensor"
	default:
		return "unknown"
	}
}

// Cartridge is a parsed cartridge image: its header metadata plus the
// Controller that arbitrates its ROM and RAM.
type Cartridge struct {
	Title           string
	Kind            Kind
	Features        []Feature
	ROMSize         int
	ROMBanks        int
	RAMSize         int
	RAMBanks        int
	Locale          string
	HeaderChecksum  byte
	GlobalChecksum  uint16

	MBC Controller
	rom []byte
}

// featureByte maps header byte 0x147 to (controller kind, feature set).
func featureByte(n byte) (Kind, []Feature) {
	switch n {
	case 0x00:
		return RomOnly, nil
	case 0x01:
		return MBC1, nil
	case 0x02:
		return MBC1, []Feature{HasRAM}
	case 0x03:
		return MBC1, []Feature{HasRAM, HasBattery}
	case 0x05:
		return MBC2, nil
	case 0x06:
		return MBC2, []Feature{HasBattery}
	case 0x08:
		return RomOnly, []Feature{HasRAM}
	case 0x09:
		return RomOnly, []Feature{HasRAM, HasBattery}
	case 0x0F:
		return MBC3, []Feature{HasBattery, HasTimer}
	case 0x10:
		return MBC3, []Feature{HasBattery, HasTimer, HasRAM}
	case 0x11:
		return MBC3, nil
	case 0x12:
		return MBC3, []Feature{HasRAM}
	case 0x13:
		return MBC3, []Feature{HasRAM, HasBattery}
	case 0x19:
		return MBC5, nil
	case 0x1A:
		return MBC5, []Feature{HasRAM}
	case 0x1B:
		return MBC5, []Feature{HasRAM, HasBattery}
	case 0x1C:
		return MBC5, []Feature{HasRumble}
	case 0x1D:
		return MBC5, []Feature{HasRumble, HasRAM}
	case 0x1E:
		return MBC5, []Feature{HasRumble, HasRAM, HasBattery}
	default:
		return RomOnly, nil
	}
}

func romSizeFor(n byte) (size, banks int) {
	switch {
	case n <= 0x08:
		return 0x8000 << n, 2 << n
	case n == 0x52:
		return 0x120000, 72
	case n == 0x53:
		return 0x140000, 80
	case n == 0x54:
		return 0x180000, 96
	default:
		return 0, 0
	}
}

func ramSizeFor(n byte) (size, banks int) {
	switch n {
	case 0x00:
		return 0, 0
	case 0x01:
		return 0x800, 1
	case 0x02:
		return 0x2000, 1
	case 0x03:
		return 0x8000, 4
	case 0x04:
		return 0x20000, 16
	case 0x05:
		return 0x10000, 8
	default:
		return 0, 0
	}
}

func byteAt(data []byte, offset int) byte {
	if offset < 0 || offset >= len(data) {
		return 0
	}
	return data[offset]
}

// Parse reads cartridge header metadata out of a raw ROM image and
// builds the matching Controller. It does not validate the header; call
// Validate for that.
func Parse(data []byte) (*Cartridge, error) {
	if len(data) < 0x150 {
		return nil, fmt.Errorf("cartridge image too short: %d bytes, need at least 0x150", len(data))
	}

	var title strings.Builder
	for i := titleStart; i < titleEnd; i++ {
		b := byteAt(data, i)
		if b == 0x00 {
			continue
		}
		title.WriteByte(b)
	}

	kind, features := featureByte(byteAt(data, featureOffset))
	romSize, romBanks := romSizeFor(byteAt(data, romSizeOffset))
	ramSize, ramBanks := ramSizeFor(byteAt(data, ramSizeOffset))

	locale := "Unknown"
	switch byteAt(data, localeOffset) {
	case 0:
		locale = "Japanese"
	case 1:
		locale = "Non-Japanese"
	}

	cart := &Cartridge{
		Title:          title.String(),
		Kind:           kind,
		Features:       features,
		ROMSize:        romSize,
		ROMBanks:       romBanks,
		RAMSize:        ramSize,
		RAMBanks:       ramBanks,
		Locale:         locale,
		HeaderChecksum: byteAt(data, headerChecksumAt),
		GlobalChecksum: uint16(byteAt(data, globalChecksumHi))<<8 | uint16(byteAt(data, globalChecksumLo)),
		rom:            data,
	}
	cart.MBC = New(kind, data, ramSize)
	return cart, nil
}

// Validate checks the two criteria the boot ROM checks before handing
// control to the cartridge: the scrolling Nintendo logo bitmap and the
// header checksum.
func (c *Cartridge) Validate() error {
	var mismatches []string
	for i, want := range nintendoLogo {
		got, ok := c.MBC.ReadROM(uint16(logoStart + i))
		if !ok || got != want {
			mismatches = append(mismatches, fmt.Sprintf(
				"at offset 0x%04X: expected 0x%02X, found 0x%02X", logoStart+i, want, got))
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("invalid Nintendo logo:\n%s", strings.Join(mismatches, "\n"))
	}

	var checksum byte
	for addr := titleStart; addr < headerChecksumAt; addr++ {
		b, _ := c.MBC.ReadROM(uint16(addr))
		checksum = checksum - b - 1
	}
	if checksum != c.HeaderChecksum {
		return fmt.Errorf("invalid header checksum: expected 0x%02X, computed 0x%02X", c.HeaderChecksum, checksum)
	}

	return nil
}

// IsValid reports whether Validate succeeds.
func (c *Cartridge) IsValid() bool {
	return c.Validate() == nil
}
