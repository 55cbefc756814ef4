package bus

import (
	"errors"
	"fmt"
)

// ErrStateMismatch is returned when a saved state does not fit this bus.
var ErrStateMismatch = errors.New("state does not match memory layout")

// State is a copy of every writable region. The ROM image is included
// since writes to it are not intercepted.
type State struct {
	ROM    []byte
	VRAM   []byte
	WRAM   []byte
	HRAM   []byte
	IF     byte
	ExtRAM []byte
}

// SaveState copies the writable memory.
func (b *Bus) SaveState() State {
	s := State{
		ROM:  append([]byte(nil), b.cart.ROM()...),
		VRAM: append([]byte(nil), b.vram[:]...),
		WRAM: append([]byte(nil), b.wram[:]...),
		HRAM: append([]byte(nil), b.hram[:]...),
		IF:   b.ifr,
	}
	if b.cart.HasRAM() {
		s.ExtRAM = append([]byte(nil), b.cart.RAM()...)
	}
	return s
}

// LoadState restores memory saved by SaveState. Nothing is modified when
// the region sizes differ.
func (b *Bus) LoadState(s State) error {
	if len(s.VRAM) != len(b.vram) || len(s.WRAM) != len(b.wram) || len(s.HRAM) != len(b.hram) {
		return ErrStateMismatch
	}
	if len(s.ROM) != len(b.cart.ROM()) {
		return fmt.Errorf("%w: ROM %d bytes, have %d", ErrStateMismatch, len(s.ROM), len(b.cart.ROM()))
	}
	if len(s.ExtRAM) != b.cart.RAMSize() {
		return fmt.Errorf("%w: external RAM %d bytes, have %d", ErrStateMismatch, len(s.ExtRAM), b.cart.RAMSize())
	}
	copy(b.cart.ROM(), s.ROM)
	copy(b.vram[:], s.VRAM)
	copy(b.wram[:], s.WRAM)
	copy(b.hram[:], s.HRAM)
	copy(b.cart.RAM(), s.ExtRAM)
	b.ifr = s.IF
	return nil
}
