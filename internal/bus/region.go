package bus

// Region identifies one of the disjoint areas of the 16-bit address space.
type Region uint8

const (
	RegionROM0     Region = iota // 0x0000–0x3FFF fixed ROM bank
	RegionROMX                   // 0x4000–0x7FFF switchable ROM window (aliases bank 0 buffer)
	RegionVRAM                   // 0x8000–0x9FFF
	RegionExtRAM                 // 0xA000–0xBFFF cartridge RAM
	RegionWRAM                   // 0xC000–0xDFFF
	RegionEcho                   // 0xE000–0xFDFF mirror of 0xC000–0xDDFF
	RegionOAM                    // 0xFE00–0xFE9F sprite attributes
	RegionUnusable               // 0xFEA0–0xFEFF
	RegionIO                     // 0xFF00–0xFF7F
	RegionHRAM                   // 0xFF80–0xFFFF
)

var regionNames = [...]string{
	RegionROM0:     "ROM0",
	RegionROMX:     "ROMX",
	RegionVRAM:     "VRAM",
	RegionExtRAM:   "external RAM",
	RegionWRAM:     "WRAM",
	RegionEcho:     "echo RAM",
	RegionOAM:      "OAM",
	RegionUnusable: "unusable",
	RegionIO:       "I/O",
	RegionHRAM:     "HRAM",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "unknown"
}

// Decode returns the single region that claims addr.
func Decode(addr uint16) Region {
	switch {
	case addr < 0x4000:
		return RegionROM0
	case addr < 0x8000:
		return RegionROMX
	case addr < 0xA000:
		return RegionVRAM
	case addr < 0xC000:
		return RegionExtRAM
	case addr < 0xE000:
		return RegionWRAM
	case addr < 0xFE00:
		return RegionEcho
	case addr < 0xFEA0:
		return RegionOAM
	case addr < 0xFF00:
		return RegionUnusable
	case addr < 0xFF80:
		return RegionIO
	default:
		return RegionHRAM
	}
}

// Base is the first address of the region.
func (r Region) Base() uint16 {
	switch r {
	case RegionROM0:
		return 0x0000
	case RegionROMX:
		return 0x4000
	case RegionVRAM:
		return 0x8000
	case RegionExtRAM:
		return 0xA000
	case RegionWRAM:
		return 0xC000
	case RegionEcho:
		return 0xE000
	case RegionOAM:
		return 0xFE00
	case RegionUnusable:
		return 0xFEA0
	case RegionIO:
		return 0xFF00
	default:
		return 0xFF80
	}
}
