package emu

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/bus"
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cpu"
	"github.com/retroenv/retrogolib/log"
)

// ErrStateCartridge is returned when a state was saved from another image.
var ErrStateCartridge = errors.New("state belongs to a different cartridge")

// --- Save/Load state ---
type machineState struct {
	Fingerprint uint64
	CPU         cpu.State
	Bus         bus.State
}

// SaveState serializes CPU and memory. The ROM itself is not included.
func (m *Machine) SaveState() ([]byte, error) {
	if m.cpu == nil {
		return nil, ErrNoCartridge
	}
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	s := machineState{
		Fingerprint: m.cart.Fingerprint(),
		CPU:         m.cpu.Snapshot(),
		Bus:         m.bus.SaveState(),
	}
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a state saved from the same cartridge. A latched
// fault is cleared.
func (m *Machine) LoadState(data []byte) error {
	if m.cpu == nil {
		return ErrNoCartridge
	}
	var s machineState
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}
	if s.Fingerprint != m.cart.Fingerprint() {
		return ErrStateCartridge
	}
	if err := m.bus.LoadState(s.Bus); err != nil {
		return err
	}
	m.cpu.Restore(s.CPU)
	m.fault = nil
	m.logger.Debug("State restored", log.Hex("pc", s.CPU.PC))
	return nil
}

// StatePath is where the hosts keep the state for the current ROM file.
func (m *Machine) StatePath() string {
	if m.romPath == "" {
		return ""
	}
	return m.romPath + ".state"
}

func (m *Machine) SaveStateToFile(path string) error {
	data, err := m.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (m *Machine) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.LoadState(data)
}
