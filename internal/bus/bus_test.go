package bus

import (
	"errors"
	"testing"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cart"
)

// newBus builds a 32KiB ROM-only cartridge. ramCode is the header RAM size
// code; allocRAM controls whether that RAM is actually backed.
func newBus(t *testing.T, ramCode byte, allocRAM bool) *Bus {
	t.Helper()
	rom := make([]byte, 0x8000)
	rom[0x0149] = ramCode
	c, err := cart.New(rom, allocRAM)
	if err != nil {
		t.Fatalf("cart.New: %v", err)
	}
	return New(c)
}

func TestDecode_TotalAndDisjoint(t *testing.T) {
	counts := map[Region]int{}
	prev := Decode(0)
	if prev.Base() != 0 {
		t.Fatalf("first region base %04x", prev.Base())
	}
	for a := 0; a <= 0xFFFF; a++ {
		r := Decode(uint16(a))
		counts[r]++
		if r != prev {
			// regions are contiguous and appear in order
			if r != prev+1 {
				t.Fatalf("addr %04x: region %v follows %v", a, r, prev)
			}
			if int(r.Base()) != a {
				t.Fatalf("region %v starts at %04x, Base says %04x", r, a, r.Base())
			}
			prev = r
		}
	}
	want := map[Region]int{
		RegionROM0: 0x4000, RegionROMX: 0x4000, RegionVRAM: 0x2000,
		RegionExtRAM: 0x2000, RegionWRAM: 0x2000, RegionEcho: 0x1E00,
		RegionOAM: 0xA0, RegionUnusable: 0x60, RegionIO: 0x80, RegionHRAM: 0x80,
	}
	total := 0
	for r, n := range want {
		if counts[r] != n {
			t.Fatalf("%v covers %d addresses, want %d", r, counts[r], n)
		}
		total += n
	}
	if total != 0x10000 {
		t.Fatalf("regions cover %d addresses", total)
	}
}

func TestBus_ROMAndRAM(t *testing.T) {
	b := newBus(t, 0x00, false)
	b.Cartridge().ROM()[0x0100] = 0x42

	got, err := b.Read(0x0100)
	if err != nil || got != 0x42 {
		t.Fatalf("ROM read got %02x, %v; want 42", got, err)
	}

	// ROM writes land in the image
	if err := b.Write(0x4001, 0x77); err != nil {
		t.Fatalf("ROM write: %v", err)
	}
	if got := b.Cartridge().ROM()[0x4001]; got != 0x77 {
		t.Fatalf("ROM image got %02x, want 77", got)
	}

	for _, addr := range []uint16{0x8000, 0x9FFF, 0xC000, 0xDFFF, 0xFF80, 0xFFFE, 0xFFFF} {
		if err := b.Write(addr, 0x99); err != nil {
			t.Fatalf("write %04x: %v", addr, err)
		}
		got, err := b.Read(addr)
		if err != nil || got != 0x99 {
			t.Fatalf("read %04x got %02x, %v; want 99", addr, got, err)
		}
	}
}

func TestBus_EchoMirrorsWRAM(t *testing.T) {
	b := newBus(t, 0x00, false)

	_ = b.Write(0xE000, 0x55)
	if got, _ := b.Read(0xC000); got != 0x55 {
		t.Fatalf("echo write did not mirror to WRAM: got %02x", got)
	}
	_ = b.Write(0xDDFF, 0xAA)
	if got, _ := b.Read(0xFDFF); got != 0xAA {
		t.Fatalf("WRAM write not visible through echo: got %02x", got)
	}
}

func TestBus_UnimplementedRegions(t *testing.T) {
	b := newBus(t, 0x00, false)

	for _, addr := range []uint16{0xFE00, 0xFE9F, 0xFEA0, 0xFEFF, 0xFF00, 0xFF40, 0xFF7F} {
		_, err := b.Read(addr)
		if !errors.Is(err, ErrUnimplementedRegion) {
			t.Fatalf("read %04x: got %v, want ErrUnimplementedRegion", addr, err)
		}
		err = b.Write(addr, 0)
		if !errors.Is(err, ErrUnimplementedRegion) {
			t.Fatalf("write %04x: got %v, want ErrUnimplementedRegion", addr, err)
		}
		var ae *AccessError
		if !errors.As(err, &ae) || ae.Addr != addr || !ae.Write {
			t.Fatalf("write %04x: access error %+v", addr, ae)
		}
	}
}

func TestBus_TimerAndInterruptRegs(t *testing.T) {
	b := newBus(t, 0x00, false)

	for _, addr := range []uint16{0xFF04, 0xFF05, 0xFF06, 0xFF07} {
		if err := b.Write(addr, 0x12); err != nil {
			t.Fatalf("timer write %04x: %v", addr, err)
		}
		if got, err := b.Read(addr); err != nil || got != 0 {
			t.Fatalf("timer read %04x got %02x, %v; want 00", addr, got, err)
		}
	}

	_ = b.Write(0xFF0F, 0x1F)
	if got, err := b.Read(0xFF0F); err != nil || got != 0x1F {
		t.Fatalf("IF read got %02x, %v; want 1F", got, err)
	}
}

func TestBus_ExternalRAM(t *testing.T) {
	b := newBus(t, 0x00, false)
	_, err := b.Read(0xA123)
	if !errors.Is(err, ErrUnallocatedExternalRAM) {
		t.Fatalf("ROM-only cart: got %v, want ErrUnallocatedExternalRAM", err)
	}

	// header says 8KiB but the session chose not to back it
	b = newBus(t, 0x02, false)
	if err := b.Write(0xA000, 1); !errors.Is(err, ErrUnallocatedExternalRAM) {
		t.Fatalf("unbacked RAM write: got %v", err)
	}

	b = newBus(t, 0x02, true)
	_ = b.Write(0xBFFF, 0x5A)
	if got, err := b.Read(0xBFFF); err != nil || got != 0x5A {
		t.Fatalf("ext RAM got %02x, %v; want 5A", got, err)
	}
}

func TestBus_WordByteOrder(t *testing.T) {
	b := newBus(t, 0x00, false)

	if err := b.WriteWord(0xC100, 0xBEEF); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	hi, _ := b.Read(0xC100)
	lo, _ := b.Read(0xC101)
	if hi != 0xBE || lo != 0xEF {
		t.Fatalf("bytes got %02x %02x, want BE EF", hi, lo)
	}
	w, err := b.ReadWord(0xC100)
	if err != nil || w != 0xBEEF {
		t.Fatalf("ReadWord got %04x, %v", w, err)
	}

	// a word straddling into OAM faults on the second byte
	if _, err := b.ReadWord(0xFDFF); !errors.Is(err, ErrUnimplementedRegion) {
		t.Fatalf("straddling read: got %v", err)
	}
}

func TestBus_Peek(t *testing.T) {
	b := newBus(t, 0x00, false)
	_ = b.Write(0xC000, 0x33)
	if got := b.Peek(0xC000); got != 0x33 {
		t.Fatalf("Peek got %02x", got)
	}
	if got := b.Peek(0xFE00); got != 0xFF {
		t.Fatalf("Peek OAM got %02x, want FF", got)
	}
}

func TestBus_SaveLoadState(t *testing.T) {
	b := newBus(t, 0x01, true)
	_ = b.Write(0x8000, 0x11)
	_ = b.Write(0xC000, 0x22)
	_ = b.Write(0xFF80, 0x33)
	_ = b.Write(0xFF0F, 0x04)
	_ = b.Write(0xA7FF, 0x44)
	_ = b.Write(0x4000, 0x07)
	s := b.SaveState()

	_ = b.Write(0xC000, 0x00)
	_ = b.Write(0xA7FF, 0x00)
	_ = b.Write(0x4000, 0x08)
	if err := b.LoadState(s); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	for addr, want := range map[uint16]byte{0x4000: 0x07, 0x8000: 0x11, 0xC000: 0x22, 0xFF80: 0x33, 0xFF0F: 0x04, 0xA7FF: 0x44} {
		if got, _ := b.Read(addr); got != want {
			t.Fatalf("%04x got %02x want %02x", addr, got, want)
		}
	}

	other := newBus(t, 0x00, false)
	if err := other.LoadState(s); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("mismatched state: got %v", err)
	}
}

func TestBus_LoadStateRejectsOtherROMSize(t *testing.T) {
	s := newBus(t, 0x00, false).SaveState()

	c, err := cart.New(make([]byte, 0x4000), false)
	if err != nil {
		t.Fatalf("cart.New: %v", err)
	}
	short := New(c)
	_ = short.Write(0xC000, 0x55)
	if err := short.LoadState(s); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("ROM size mismatch: got %v", err)
	}
	if got, _ := short.Read(0xC000); got != 0x55 {
		t.Fatalf("rejected state modified WRAM: got %02x want 55", got)
	}
}
