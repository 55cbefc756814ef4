package cart

import (
	"github.com/cespare/xxhash"
)

// Cartridge is a loaded cartridge image without a memory bank controller:
// the switchable ROM window aliases the same buffer as bank 0.
// External RAM is present only when allocated from the header.
type Cartridge struct {
	header *Header
	rom    []byte
	ram    []byte
	sum    uint64
}

// New parses the header of rom and wraps a copy of it. When allocRAM is set,
// external RAM is allocated with the size the header declares; otherwise the
// cartridge exposes no external RAM at all.
func New(rom []byte, allocRAM bool) (*Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	c := &Cartridge{
		header: h,
		rom:    append([]byte(nil), rom...),
		sum:    xxhash.Sum64(rom),
	}
	if allocRAM && h.RAMSizeBytes > 0 {
		c.ram = make([]byte, h.RAMSizeBytes)
	}
	return c, nil
}

// Header returns the parsed header.
func (c *Cartridge) Header() *Header { return c.header }

// ROM returns the raw image backing the ROM region.
func (c *Cartridge) ROM() []byte { return c.rom }

// Fingerprint is the xxhash64 of the image as loaded.
func (c *Cartridge) Fingerprint() uint64 { return c.sum }

// ReadROM returns the byte at a ROM address. Reads past the end of a short
// image return 0xFF.
func (c *Cartridge) ReadROM(addr uint16) byte {
	if int(addr) < len(c.rom) {
		return c.rom[addr]
	}
	return 0xFF
}

// WriteROM stores into the image itself. There is no bank controller to
// intercept the write; bytes past the end of the image are dropped.
func (c *Cartridge) WriteROM(addr uint16, value byte) {
	if int(addr) < len(c.rom) {
		c.rom[addr] = value
	}
}

// HasRAM reports whether external RAM was allocated.
func (c *Cartridge) HasRAM() bool { return len(c.ram) > 0 }

// RAMSize is the allocated external RAM size in bytes.
func (c *Cartridge) RAMSize() int { return len(c.ram) }

// ReadRAM reads external RAM at an offset from 0xA000. Offsets beyond a
// smaller RAM chip mirror it.
func (c *Cartridge) ReadRAM(off uint16) byte {
	return c.ram[int(off)%len(c.ram)]
}

// WriteRAM writes external RAM at an offset from 0xA000.
func (c *Cartridge) WriteRAM(off uint16, value byte) {
	c.ram[int(off)%len(c.ram)] = value
}

// RAM exposes the external RAM backing store, nil when none is allocated.
func (c *Cartridge) RAM() []byte { return c.ram }
