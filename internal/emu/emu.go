package emu

import (
	"errors"
	"fmt"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/bus"
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cart"
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cpu"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrNoCartridge is returned by operations that need a loaded cartridge.
	ErrNoCartridge = errors.New("no cartridge loaded")
	// ErrSessionFaulted is returned by every step after the first fault.
	ErrSessionFaulted = errors.New("session faulted")
)

// Machine is one emulation session: a cartridge, the bus built around it
// and the CPU executing against that bus.
type Machine struct {
	cfg    Config
	logger *log.Logger

	cart    *cart.Cartridge
	bus     *bus.Bus
	cpu     *cpu.CPU
	romPath string

	fault error
}

func New(cfg Config, logger *log.Logger) *Machine {
	return &Machine{cfg: cfg, logger: logger}
}

// LoadCartridge replaces the session with a fresh one around rom.
func (m *Machine) LoadCartridge(rom []byte) error {
	c, err := cart.New(rom, m.cfg.ExternalRAM)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	m.cart = c
	m.bus = bus.New(c)
	m.cpu = cpu.New(m.bus)
	m.romPath = ""
	m.fault = nil

	h := c.Header()
	m.logger.Info("Cartridge loaded",
		log.String("title", h.Title),
		log.String("type", h.CartTypeStr),
		log.Int("rom_bytes", len(rom)),
		log.Int("ext_ram_bytes", c.RAMSize()),
		log.Hex("fingerprint", c.Fingerprint()))
	if !h.LogoOK {
		m.logger.Warn("Cartridge logo does not match")
	}
	if !cart.HeaderChecksumOK(rom) {
		m.logger.Warn("Cartridge header checksum mismatch", log.Hex("checksum", h.HeaderChecksum))
	}
	return nil
}

// LoadROMFromFile loads a cartridge image from disk. Compressed and
// archived images are unpacked first.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := cart.LoadFile(path)
	if err != nil {
		return err
	}
	if err := m.LoadCartridge(data); err != nil {
		return err
	}
	m.romPath = path
	return nil
}

// ROMPath returns the file the current cartridge was loaded from, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// Loaded reports whether a cartridge is present.
func (m *Machine) Loaded() bool { return m.cpu != nil }

// Reset puts the CPU back into its power-on state and clears a latched
// fault. Memory contents are kept.
func (m *Machine) Reset() {
	if m.cpu == nil {
		return
	}
	m.cpu.Reset()
	m.fault = nil
}

// Fault returns the error that ended the session, or nil.
func (m *Machine) Fault() error { return m.fault }

// Step executes one instruction and returns its cost in machine cycles.
func (m *Machine) Step() (int, error) {
	if m.cpu == nil {
		return 0, ErrNoCartridge
	}
	if m.fault != nil {
		return 0, fmt.Errorf("%w: %w", ErrSessionFaulted, m.fault)
	}
	if m.cfg.Trace && !m.cpu.Halted {
		m.trace()
	}
	n, err := m.cpu.Step()
	if err != nil {
		m.fault = err
		m.logger.Error("CPU fault", log.Err(err), log.Hex("pc", m.cpu.PC))
		return n, err
	}
	return n, nil
}

// RunInstructions executes at most n instructions and returns the machine
// cycles they cost. Hosts call it once per scheduling tick.
func (m *Machine) RunInstructions(n int) (int, error) {
	total := 0
	for i := 0; i < n; i++ {
		c, err := m.Step()
		total += c
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Run executes until budget machine cycles are spent or the CPU halts.
func (m *Machine) Run(budget int) (int, error) {
	total := 0
	for total < budget {
		if m.Halted() {
			break
		}
		c, err := m.Step()
		total += c
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (m *Machine) trace() {
	pc := m.cpu.PC
	op := m.bus.Peek(pc)
	m.logger.Debug("Step",
		log.Hex("pc", pc),
		log.Hex("opcode", op),
		log.String("instr", cpu.Disassemble(op, m.bus.Peek(pc+1))),
		log.String("state", m.cpu.Snapshot().String()))
}

// Snapshot returns a copy of the CPU state. It is the zero State when no
// cartridge is loaded.
func (m *Machine) Snapshot() cpu.State {
	if m.cpu == nil {
		return cpu.State{}
	}
	return m.cpu.Snapshot()
}

// Halted reports whether the CPU is waiting after HALT or STOP.
func (m *Machine) Halted() bool { return m.cpu != nil && m.cpu.Halted }

// PC is the address of the next instruction.
func (m *Machine) PC() uint16 {
	if m.cpu == nil {
		return 0
	}
	return m.cpu.PC
}

// Peek reads memory for display without faulting the session.
func (m *Machine) Peek(addr uint16) byte {
	if m.bus == nil {
		return 0xFF
	}
	return m.bus.Peek(addr)
}

// Header returns the parsed cartridge header, nil when nothing is loaded.
func (m *Machine) Header() *cart.Header {
	if m.cart == nil {
		return nil
	}
	return m.cart.Header()
}

// Title is the cartridge title from the header.
func (m *Machine) Title() string {
	if h := m.Header(); h != nil {
		return h.Title
	}
	return ""
}

// IsColor reports whether the header declares color support.
func (m *Machine) IsColor() bool {
	h := m.Header()
	return h != nil && h.ColorSupport
}

func (m *Machine) CartType() byte {
	if h := m.Header(); h != nil {
		return h.CartType
	}
	return 0
}

func (m *Machine) ROMSizeCode() byte {
	if h := m.Header(); h != nil {
		return h.ROMSizeCode
	}
	return 0
}

func (m *Machine) RAMSizeCode() byte {
	if h := m.Header(); h != nil {
		return h.RAMSizeCode
	}
	return 0
}

// Fingerprint is the xxhash64 of the loaded image.
func (m *Machine) Fingerprint() uint64 {
	if m.cart == nil {
		return 0
	}
	return m.cart.Fingerprint()
}

// ROM returns the cartridge image, including any writes the program made.
func (m *Machine) ROM() []byte {
	if m.cart == nil {
		return nil
	}
	return m.cart.ROM()
}

// RenderROMDump renders the whole image as hex dump text.
func (m *Machine) RenderROMDump() string {
	return cart.RenderROMDump(m.ROM())
}
