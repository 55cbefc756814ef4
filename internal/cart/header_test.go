package cart

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// buildROM makes a synthetic ROM with a valid header & checksums.
// size should match the ROM size code (e.g. 64*1024 for code 0x01).
func buildROM(title string, cartType, romSizeCode, ramSizeCode byte, size int) []byte {
	rom := make([]byte, size)

	copy(rom[0x0104:0x0104+len(nintendoLogo)], nintendoLogo[:])

	// Title 0x0134–0x0142 (15 bytes max)
	tbytes := []byte(title)
	if len(tbytes) > titleLen {
		tbytes = tbytes[:titleLen]
	}
	copy(rom[titleStart:titleStart+titleLen], tbytes)

	rom[0x0143] = 0x00                  // CGB flag
	rom[0x0144], rom[0x0145] = '0', '1' // New licensee ("01")
	rom[0x0146] = 0x00                  // SGB flag
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode
	rom[0x014A] = 0x01 // Destination: overseas
	rom[0x014B] = 0x33 // Old licensee (use new licensee)
	rom[0x014C] = 0x01 // Mask ROM version

	sealROM(rom)
	return rom
}

// sealROM recomputes both checksums after the header was edited.
func sealROM(rom []byte) {
	var hsum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[0x014D] = hsum

	var gsum uint16
	for i := 0; i < len(rom); i++ {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(rom[i])
	}
	binary.BigEndian.PutUint16(rom[0x014E:0x0150], gsum)
}

func TestParseHeader_Basic(t *testing.T) {
	rom := buildROM("TEST", 0x01, 0x01, 0x02, 64*1024) // MBC1, 64KiB, 8KiB RAM

	h, err := ParseHeader(rom)
	assert.NoError(t, err)
	assert.Equal(t, "TEST", h.Title)
	assert.Equal(t, byte(0x01), h.CartType)
	assert.Equal(t, "MBC1 (variants)", h.CartTypeStr)
	assert.Equal(t, byte(0x01), h.ROMSizeCode)
	assert.Equal(t, byte(0x02), h.RAMSizeCode)
	assert.Equal(t, 64*1024, h.ROMSizeBytes)
	assert.Equal(t, 4, h.ROMBanks)
	assert.Equal(t, 8*1024, h.RAMSizeBytes)
	assert.Equal(t, "01", h.NewLicensee)
	assert.True(t, h.LogoOK)
	assert.False(t, h.ColorSupport)
	assert.False(t, h.SuperSupport)
	assert.False(t, h.Japanese)
	assert.True(t, HeaderChecksumOK(rom))

	var gsum uint16
	for i := 0; i < len(rom); i++ {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(rom[i])
	}
	assert.Equal(t, gsum, h.GlobalChecksum)
}

func TestParseHeader_TitleStripsNulls(t *testing.T) {
	rom := make([]byte, 0x8000)
	copy(rom[0x0134:], "TESTGAME")

	h, err := ParseHeader(rom)
	assert.NoError(t, err)
	assert.Equal(t, "TESTGAME", h.Title)
	assert.Equal(t, 8, len(h.Title))
}

func TestParseHeader_TitleIgnoresColorByte(t *testing.T) {
	rom := buildROM("ABCDEFGHIJKLMNO", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0143] = 0x80
	sealROM(rom)

	h, err := ParseHeader(rom)
	assert.NoError(t, err)
	assert.Equal(t, "ABCDEFGHIJKLMNO", h.Title)
	assert.True(t, h.ColorSupport)
}

func TestParseHeader_Flags(t *testing.T) {
	tests := []struct {
		name  string
		off   int
		value byte
		color bool
		super bool
		japan bool
	}{
		{"color 0x80", 0x0143, 0x80, true, false, false},
		{"color-only 0xC0 is not 0x80", 0x0143, 0xC0, false, false, false},
		{"super 0x03", 0x0146, 0x03, false, true, false},
		{"super other", 0x0146, 0x01, false, false, false},
		{"japanese", 0x014A, 0x00, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := buildROM("FLAGS", 0x00, 0x00, 0x00, 32*1024)
			rom[tt.off] = tt.value

			h, err := ParseHeader(rom)
			assert.NoError(t, err)
			assert.Equal(t, tt.color, h.ColorSupport)
			assert.Equal(t, tt.super, h.SuperSupport)
			assert.Equal(t, tt.japan, h.Japanese)
		})
	}
}

func TestParseHeader_MissingLogo(t *testing.T) {
	rom := buildROM("NOLOGO", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0104] = 0x00

	h, err := ParseHeader(rom)
	assert.NoError(t, err)
	assert.False(t, h.LogoOK)
}

func TestHeaderChecksum_Bad(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0134] ^= 0xFF // corrupt a header byte
	assert.False(t, HeaderChecksumOK(rom))
}

func TestParseHeader_ShortROM(t *testing.T) {
	short := make([]byte, 0x140) // too small (header needs through 0x014F)
	_, err := ParseHeader(short)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooSmall))
}

func TestDecodeSizes(t *testing.T) {
	size, banks := decodeROMSize(0x00)
	assert.Equal(t, 32*1024, size)
	assert.Equal(t, 2, banks)

	size, banks = decodeROMSize(0x08)
	assert.Equal(t, 8*1024*1024, size)
	assert.Equal(t, 512, banks)

	size, banks = decodeROMSize(0x7F)
	assert.Equal(t, 0, size)
	assert.Equal(t, 0, banks)

	assert.Equal(t, 0, decodeRAMSize(0x00))
	assert.Equal(t, 2*1024, decodeRAMSize(0x01))
	assert.Equal(t, 64*1024, decodeRAMSize(0x05))
}
