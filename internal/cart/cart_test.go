package cart

import (
	"testing"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrogolib/assert"
)

func TestCartridge_ROMAccess(t *testing.T) {
	rom := buildROM("ROMONLY", 0x00, 0x00, 0x00, 32*1024)
	rom[0x4123] = 0x42
	c, err := New(rom, true)
	assert.NoError(t, err)

	assert.Equal(t, "ROMONLY", c.Header().Title)
	assert.Equal(t, byte(0x42), c.ReadROM(0x4123))
	assert.False(t, c.HasRAM())
	assert.Equal(t, 0, c.RAMSize())

	c.WriteROM(0x4123, 0x99)
	assert.Equal(t, byte(0x99), c.ReadROM(0x4123))
	assert.Equal(t, byte(0x99), c.ROM()[0x4123])
	assert.Equal(t, byte(0x42), rom[0x4123])
}

func TestCartridge_ShortImage(t *testing.T) {
	rom := make([]byte, 0x200)
	c, err := New(rom, false)
	assert.NoError(t, err)

	assert.Equal(t, byte(0xFF), c.ReadROM(0x7FFF))
	c.WriteROM(0x7FFF, 0x01) // dropped
	assert.Equal(t, 0x200, len(c.ROM()))
}

func TestCartridge_ExternalRAM(t *testing.T) {
	rom := buildROM("RAM", 0x03, 0x01, 0x02, 64*1024) // 8 KiB RAM

	c, err := New(rom, true)
	assert.NoError(t, err)
	assert.True(t, c.HasRAM())
	assert.Equal(t, 8*1024, c.RAMSize())

	c.WriteRAM(0x0010, 0xAB)
	assert.Equal(t, byte(0xAB), c.ReadRAM(0x0010))

	c, err = New(rom, false)
	assert.NoError(t, err)
	assert.False(t, c.HasRAM())
}

func TestCartridge_SmallRAMMirrors(t *testing.T) {
	rom := buildROM("RAM2K", 0x08, 0x00, 0x01, 32*1024) // 2 KiB RAM

	c, err := New(rom, true)
	assert.NoError(t, err)
	c.WriteRAM(0x0001, 0x5A)
	assert.Equal(t, byte(0x5A), c.ReadRAM(0x0801))
}

func TestCartridge_Fingerprint(t *testing.T) {
	rom := buildROM("HASH", 0x00, 0x00, 0x00, 32*1024)
	want := xxhash.Sum64(rom)

	c, err := New(rom, false)
	assert.NoError(t, err)
	assert.Equal(t, want, c.Fingerprint())

	c.WriteROM(0x0200, 0x11)
	assert.Equal(t, want, c.Fingerprint())
}

func TestCartridge_RejectsShortHeader(t *testing.T) {
	_, err := New(make([]byte, 0x100), true)
	assert.Error(t, err)
}
