package bus

import (
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cart"
)

// Bus is the memory controller: it owns every RAM region and routes each
// CPU access to exactly one of them.
type Bus struct {
	cart *cart.Cartridge
	vram [0x2000]byte // 8KB video RAM
	wram [0x2000]byte // 8KB internal RAM
	hram [0x80]byte   // FF80–FFFF, includes IE at FFFF
	ifr  byte         // FF0F interrupt flags
}

// New creates a bus around a loaded cartridge.
func New(c *cart.Cartridge) *Bus {
	return &Bus{cart: c}
}

// Cartridge returns the cartridge backing the ROM and external RAM regions.
func (b *Bus) Cartridge() *cart.Cartridge { return b.cart }

// Read returns the byte at addr.
func (b *Bus) Read(addr uint16) (byte, error) {
	switch r := Decode(addr); r {
	case RegionROM0, RegionROMX:
		// No banking: the switchable window reads the same buffer.
		return b.cart.ReadROM(addr), nil
	case RegionVRAM:
		return b.vram[addr-0x8000], nil
	case RegionExtRAM:
		if !b.cart.HasRAM() {
			return 0xFF, &AccessError{Addr: addr, Region: r, Err: ErrUnallocatedExternalRAM}
		}
		return b.cart.ReadRAM(addr - 0xA000), nil
	case RegionWRAM:
		return b.wram[addr-0xC000], nil
	case RegionEcho:
		return b.wram[addr-0xE000], nil
	case RegionIO:
		return b.readIO(addr)
	case RegionHRAM:
		return b.hram[addr-0xFF80], nil
	default:
		return 0xFF, &AccessError{Addr: addr, Region: r, Err: ErrUnimplementedRegion}
	}
}

// Write stores value at addr.
func (b *Bus) Write(addr uint16, value byte) error {
	switch r := Decode(addr); r {
	case RegionROM0, RegionROMX:
		b.cart.WriteROM(addr, value)
	case RegionVRAM:
		b.vram[addr-0x8000] = value
	case RegionExtRAM:
		if !b.cart.HasRAM() {
			return &AccessError{Addr: addr, Region: r, Write: true, Err: ErrUnallocatedExternalRAM}
		}
		b.cart.WriteRAM(addr-0xA000, value)
	case RegionWRAM:
		b.wram[addr-0xC000] = value
	case RegionEcho:
		b.wram[addr-0xE000] = value
	case RegionIO:
		return b.writeIO(addr, value)
	case RegionHRAM:
		b.hram[addr-0xFF80] = value
	default:
		return &AccessError{Addr: addr, Region: r, Write: true, Err: ErrUnimplementedRegion}
	}
	return nil
}

// ReadWord reads two bytes, high byte at addr and low byte at addr+1.
func (b *Bus) ReadWord(addr uint16) (uint16, error) {
	hi, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	lo, err := b.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord stores value high byte first: addr gets the high byte, addr+1
// the low byte.
func (b *Bus) WriteWord(addr uint16, value uint16) error {
	if err := b.Write(addr, byte(value>>8)); err != nil {
		return err
	}
	return b.Write(addr+1, byte(value))
}

// Peek reads addr for diagnostics; faulting regions read as 0xFF.
func (b *Bus) Peek(addr uint16) byte {
	v, err := b.Read(addr)
	if err != nil {
		return 0xFF
	}
	return v
}
