package cpu

import (
	"fmt"
)

// Memory is the address space the CPU executes against. *bus.Bus
// implements it. Words are stored high byte first.
type Memory interface {
	Read(addr uint16) (byte, error)
	Write(addr uint16, value byte) error
	ReadWord(addr uint16) (uint16, error)
	WriteWord(addr uint16, value uint16) error
}

// Interrupt control requests take effect one instruction after DI/EI.
const interruptDelay = 2

// CPU is an LR35902 interpreter. It is not safe for concurrent use.
type CPU struct {
	Registers

	Cycles     int    // machine cycles of the last step
	Total      uint64 // machine cycles since reset
	Halted     bool
	Interrupts bool // master interrupt enable

	diTimer byte
	eiTimer byte

	mem Memory
}

// New creates a CPU over mem in its power-on state.
func New(mem Memory) *CPU {
	c := &CPU{mem: mem}
	c.Reset()
	return c
}

// Reset restores the power-on state: PC=0x0100, SP=0xFFFE, all other
// registers zero and interrupts enabled.
func (c *CPU) Reset() {
	c.Registers = Registers{PC: 0x0100, SP: 0xFFFE}
	c.Cycles = 0
	c.Total = 0
	c.Halted = false
	c.Interrupts = true
	c.diTimer = 0
	c.eiTimer = 0
}

// Step executes one instruction and returns its cost in machine cycles.
// A halted CPU does nothing and costs one cycle. On error the instruction
// is abandoned and the returned cost is zero.
func (c *CPU) Step() (cycles int, err error) {
	if c.Halted {
		c.Cycles = 1
		c.Total++
		return 1, nil
	}

	pc := c.PC
	name := "fetch"
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fault)
			if !ok {
				panic(r)
			}
			c.Cycles = 0
			cycles, err = 0, fmt.Errorf("%s at %04X: %w", name, pc, f.err)
		}
	}()

	op := c.fetch()
	in := &primary[op]
	if op == 0xCB {
		cb := c.fetch()
		in = &extended[cb]
		if in.exec == nil {
			return 0, &OpcodeError{PC: pc, Opcode: cb, Extended: true}
		}
	} else if in.exec == nil {
		return 0, &OpcodeError{PC: pc, Opcode: op}
	}
	name = in.name

	var arg uint16
	switch in.operands {
	case 1:
		arg = uint16(c.fetch())
	case 2:
		lo := c.fetch()
		hi := c.fetch()
		arg = uint16(hi)<<8 | uint16(lo)
	}

	cycles = in.cycles
	if in.cond == nil || in.cond(c) {
		in.exec(c, arg)
		if in.taken != 0 {
			cycles = in.taken
		}
	}

	c.Cycles = cycles
	c.Total += uint64(cycles)
	c.tickInterruptTimers()
	return cycles, nil
}

// Run steps until at least budget machine cycles have been spent, the CPU
// halts, or an instruction fails. It returns the cycles spent.
func (c *CPU) Run(budget int) (int, error) {
	spent := 0
	for spent < budget && !c.Halted {
		n, err := c.Step()
		spent += n
		if err != nil {
			return spent, err
		}
	}
	return spent, nil
}

func (c *CPU) tickInterruptTimers() {
	if c.diTimer > 0 {
		c.diTimer--
		if c.diTimer == 0 {
			c.Interrupts = false
		}
	}
	if c.eiTimer > 0 {
		c.eiTimer--
		if c.eiTimer == 0 {
			c.Interrupts = true
		}
	}
}

func (c *CPU) read(addr uint16) byte {
	v, err := c.mem.Read(addr)
	if err != nil {
		panic(fault{err})
	}
	return v
}

func (c *CPU) write(addr uint16, v byte) {
	if err := c.mem.Write(addr, v); err != nil {
		panic(fault{err})
	}
}

func (c *CPU) fetch() byte {
	b := c.read(c.PC)
	c.PC++
	return b
}

func (c *CPU) push(v uint16) {
	c.SP -= 2
	if err := c.mem.WriteWord(c.SP, v); err != nil {
		panic(fault{err})
	}
}

func (c *CPU) pop() uint16 {
	v, err := c.mem.ReadWord(c.SP)
	if err != nil {
		panic(fault{err})
	}
	c.SP += 2
	return v
}

// State is a copy of the CPU's externally visible state.
type State struct {
	Registers
	Cycles     int
	Total      uint64
	Halted     bool
	Interrupts bool
	DIPending  bool
	EIPending  bool
}

// Snapshot returns a copy of the current state.
func (c *CPU) Snapshot() State {
	return State{
		Registers:  c.Registers,
		Cycles:     c.Cycles,
		Total:      c.Total,
		Halted:     c.Halted,
		Interrupts: c.Interrupts,
		DIPending:  c.diTimer > 0,
		EIPending:  c.eiTimer > 0,
	}
}

// Restore loads a state produced by Snapshot. Pending DI/EI requests
// resolve after the next instruction.
func (c *CPU) Restore(s State) {
	c.Registers = s.Registers
	c.F &= flagMask
	c.Cycles = s.Cycles
	c.Total = s.Total
	c.Halted = s.Halted
	c.Interrupts = s.Interrupts
	c.diTimer = b2u(s.DIPending)
	c.eiTimer = b2u(s.EIPending)
}

func (s State) String() string {
	return fmt.Sprintf("PC=%04X SP=%04X AF=%04X BC=%04X DE=%04X HL=%04X F=%s IME=%d HALT=%d",
		s.PC, s.SP, s.AF(), s.BC(), s.DE(), s.HL(), s.F, b2u(s.Interrupts), b2u(s.Halted))
}
