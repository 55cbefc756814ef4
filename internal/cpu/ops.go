package cpu

// instruction is one dispatch table entry. cycles is the cost when cond is
// nil; for conditional entries cycles is the not-taken cost and taken the
// cost when cond holds. A zero entry (nil exec) is an unknown opcode.
type instruction struct {
	name     string
	operands int // immediate bytes following the opcode: 0, 1 or 2
	cycles   int
	taken    int
	cond     func(*CPU) bool
	exec     func(c *CPU, arg uint16)
}

var (
	primary  [256]instruction
	extended [256]instruction
)

// Operand encodings: r (3 bits), rr (2 bits), cc (2 bits).
var (
	regNames   = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames  = [4]string{"BC", "DE", "HL", "SP"}
	stackNames = [4]string{"BC", "DE", "HL", "AF"}
	condNames  = [4]string{"NZ", "Z", "NC", "C"}
	aluNames   = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
)

const regHL = 6

func init() {
	initPrimary()
	initExtended()
}

// reg reads register index i; index 6 is the byte at (HL).
func (c *CPU) reg(i byte) byte {
	switch i {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case regHL:
		return c.read(c.HL())
	}
	return c.A
}

func (c *CPU) setReg(i, v byte) {
	switch i {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case regHL:
		c.write(c.HL(), v)
	default:
		c.A = v
	}
}

func (c *CPU) pair(i byte) uint16 {
	switch i {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	}
	return c.SP
}

func (c *CPU) setPair(i byte, v uint16) {
	switch i {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

func condition(cc byte) func(*CPU) bool {
	switch cc {
	case 0:
		return func(c *CPU) bool { return !c.F.Has(FlagZero) }
	case 1:
		return func(c *CPU) bool { return c.F.Has(FlagZero) }
	case 2:
		return func(c *CPU) bool { return !c.F.Has(FlagCarry) }
	}
	return func(c *CPU) bool { return c.F.Has(FlagCarry) }
}

func (c *CPU) alu(i, v byte) {
	carry := c.F.Has(FlagCarry)
	switch i {
	case 0:
		c.A, c.F = add8(c.A, v)
	case 1:
		c.A, c.F = adc8(c.A, v, carry)
	case 2:
		c.A, c.F = sub8(c.A, v)
	case 3:
		c.A, c.F = sbc8(c.A, v, carry)
	case 4:
		c.A, c.F = and8(c.A, v)
	case 5:
		c.A, c.F = xor8(c.A, v)
	case 6:
		c.A, c.F = or8(c.A, v)
	default:
		c.F = cp8(c.A, v)
	}
}

func jumpRelative(c *CPU, arg uint16) { c.PC += uint16(int8(byte(arg))) }
func jump(c *CPU, arg uint16)         { c.PC = arg }
func call(c *CPU, arg uint16)         { c.push(c.PC); c.PC = arg }
func ret(c *CPU, _ uint16)            { c.PC = c.pop() }

func initPrimary() {
	p := &primary

	p[0x00] = instruction{name: "NOP", cycles: 1, exec: func(*CPU, uint16) {}}
	p[0x08] = instruction{name: "LD (a16),SP", operands: 2, cycles: 5, exec: func(c *CPU, a uint16) {
		if err := c.mem.WriteWord(a, c.SP); err != nil {
			panic(fault{err})
		}
	}}
	p[0x10] = instruction{name: "STOP", cycles: 1, exec: func(c *CPU, _ uint16) {
		// STOP is two bytes only when the padding byte is zero.
		if c.read(c.PC) == 0x00 {
			c.PC++
			c.Halted = true
		}
	}}
	p[0x18] = instruction{name: "JR r8", operands: 1, cycles: 3, exec: jumpRelative}

	for rr := byte(0); rr < 4; rr++ {
		p[0x01|rr<<4] = instruction{name: "LD " + pairNames[rr] + ",d16", operands: 2, cycles: 3,
			exec: func(c *CPU, a uint16) { c.setPair(rr, a) }}
		p[0x03|rr<<4] = instruction{name: "INC " + pairNames[rr], cycles: 2,
			exec: func(c *CPU, _ uint16) { c.setPair(rr, c.pair(rr)+1) }}
		p[0x0B|rr<<4] = instruction{name: "DEC " + pairNames[rr], cycles: 2,
			exec: func(c *CPU, _ uint16) { c.setPair(rr, c.pair(rr)-1) }}
		p[0x09|rr<<4] = instruction{name: "ADD HL," + pairNames[rr], cycles: 2,
			exec: func(c *CPU, _ uint16) {
				v, f := add16(c.HL(), c.pair(rr))
				c.SetHL(v)
				c.setFlags(f, FlagSubtract|FlagHalfCarry|FlagCarry)
			}}
	}

	// Indirect loads through BC, DE and HL with post increment/decrement.
	indirect := [4]struct {
		name string
		addr func(*CPU) uint16
	}{
		{"(BC)", (*CPU).BC},
		{"(DE)", (*CPU).DE},
		{"(HL+)", func(c *CPU) uint16 { hl := c.HL(); c.SetHL(hl + 1); return hl }},
		{"(HL-)", func(c *CPU) uint16 { hl := c.HL(); c.SetHL(hl - 1); return hl }},
	}
	for i, m := range indirect {
		p[0x02|i<<4] = instruction{name: "LD " + m.name + ",A", cycles: 2,
			exec: func(c *CPU, _ uint16) { c.write(m.addr(c), c.A) }}
		p[0x0A|i<<4] = instruction{name: "LD A," + m.name, cycles: 2,
			exec: func(c *CPU, _ uint16) { c.A = c.read(m.addr(c)) }}
	}

	for r := byte(0); r < 8; r++ {
		mem := r == regHL
		cost := func(reg, hl int) int {
			if mem {
				return hl
			}
			return reg
		}
		p[0x04|r<<3] = instruction{name: "INC " + regNames[r], cycles: cost(1, 3),
			exec: func(c *CPU, _ uint16) {
				v, f := inc8(c.reg(r))
				c.setReg(r, v)
				c.setFlags(f, FlagZero|FlagSubtract|FlagHalfCarry)
			}}
		p[0x05|r<<3] = instruction{name: "DEC " + regNames[r], cycles: cost(1, 3),
			exec: func(c *CPU, _ uint16) {
				v, f := dec8(c.reg(r))
				c.setReg(r, v)
				c.setFlags(f, FlagZero|FlagSubtract|FlagHalfCarry)
			}}
		p[0x06|r<<3] = instruction{name: "LD " + regNames[r] + ",d8", operands: 1, cycles: cost(2, 3),
			exec: func(c *CPU, a uint16) { c.setReg(r, byte(a)) }}

		for src := byte(0); src < 8; src++ {
			op := 0x40 | r<<3 | src
			if op == 0x76 {
				continue
			}
			cycles := 1
			if mem || src == regHL {
				cycles = 2
			}
			p[op] = instruction{name: "LD " + regNames[r] + "," + regNames[src], cycles: cycles,
				exec: func(c *CPU, _ uint16) { c.setReg(r, c.reg(src)) }}
		}

		// r doubles as the ALU operation index here.
		src := r
		for fn := byte(0); fn < 8; fn++ {
			p[0x80|fn<<3|src] = instruction{name: aluNames[fn] + regNames[src], cycles: cost(1, 2),
				exec: func(c *CPU, _ uint16) { c.alu(fn, c.reg(src)) }}
		}
		fn := r
		p[0xC6|fn<<3] = instruction{name: aluNames[fn] + "d8", operands: 1, cycles: 2,
			exec: func(c *CPU, a uint16) { c.alu(fn, byte(a)) }}
		p[0xC7|r<<3] = instruction{name: rstName(r), cycles: 4,
			exec: func(c *CPU, _ uint16) { call(c, uint16(r)<<3) }}
	}
	p[0x76] = instruction{name: "HALT", cycles: 1, exec: func(c *CPU, _ uint16) { c.Halted = true }}

	p[0x07] = instruction{name: "RLCA", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.A, c.F = rlc(c.A)
		c.F &^= FlagZero
	}}
	p[0x0F] = instruction{name: "RRCA", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.A, c.F = rrc(c.A)
		c.F &^= FlagZero
	}}
	p[0x17] = instruction{name: "RLA", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.A, c.F = rl(c.A, c.F.Has(FlagCarry))
		c.F &^= FlagZero
	}}
	p[0x1F] = instruction{name: "RRA", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.A, c.F = rr(c.A, c.F.Has(FlagCarry))
		c.F &^= FlagZero
	}}
	p[0x27] = instruction{name: "DAA", cycles: 1, exec: func(c *CPU, _ uint16) { c.A, c.F = daa(c.A, c.F) }}
	p[0x2F] = instruction{name: "CPL", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.A = ^c.A
		c.F |= FlagSubtract | FlagHalfCarry
	}}
	p[0x37] = instruction{name: "SCF", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.setFlags(FlagCarry, FlagSubtract|FlagHalfCarry|FlagCarry)
	}}
	p[0x3F] = instruction{name: "CCF", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.setFlags(^c.F&FlagCarry, FlagSubtract|FlagHalfCarry|FlagCarry)
	}}

	for cc := byte(0); cc < 4; cc++ {
		cond := condition(cc)
		p[0x20|cc<<3] = instruction{name: "JR " + condNames[cc] + ",r8", operands: 1,
			cycles: 2, taken: 3, cond: cond, exec: jumpRelative}
		p[0xC0|cc<<3] = instruction{name: "RET " + condNames[cc],
			cycles: 2, taken: 5, cond: cond, exec: ret}
		p[0xC2|cc<<3] = instruction{name: "JP " + condNames[cc] + ",a16", operands: 2,
			cycles: 3, taken: 4, cond: cond, exec: jump}
		p[0xC4|cc<<3] = instruction{name: "CALL " + condNames[cc] + ",a16", operands: 2,
			cycles: 3, taken: 6, cond: cond, exec: call}
	}

	for rr := byte(0); rr < 4; rr++ {
		p[0xC1|rr<<4] = instruction{name: "POP " + stackNames[rr], cycles: 3,
			exec: func(c *CPU, _ uint16) {
				v := c.pop()
				if rr == 3 {
					c.SetAF(v)
					return
				}
				c.setPair(rr, v)
			}}
		p[0xC5|rr<<4] = instruction{name: "PUSH " + stackNames[rr], cycles: 4,
			exec: func(c *CPU, _ uint16) {
				if rr == 3 {
					c.push(c.AF())
					return
				}
				c.push(c.pair(rr))
			}}
	}

	p[0xC3] = instruction{name: "JP a16", operands: 2, cycles: 4, exec: jump}
	p[0xC9] = instruction{name: "RET", cycles: 4, exec: ret}
	p[0xCB] = instruction{name: "PREFIX CB", cycles: 1}
	p[0xCD] = instruction{name: "CALL a16", operands: 2, cycles: 6, exec: call}
	p[0xD9] = instruction{name: "RETI", cycles: 4, exec: func(c *CPU, _ uint16) {
		c.PC = c.pop()
		c.Interrupts = true
		c.diTimer, c.eiTimer = 0, 0
	}}

	p[0xE0] = instruction{name: "LDH (a8),A", operands: 1, cycles: 3,
		exec: func(c *CPU, a uint16) { c.write(0xFF00|a, c.A) }}
	p[0xF0] = instruction{name: "LDH A,(a8)", operands: 1, cycles: 3,
		exec: func(c *CPU, a uint16) { c.A = c.read(0xFF00 | a) }}
	p[0xE2] = instruction{name: "LD (C),A", cycles: 2,
		exec: func(c *CPU, _ uint16) { c.write(0xFF00|uint16(c.C), c.A) }}
	p[0xF2] = instruction{name: "LD A,(C)", cycles: 2,
		exec: func(c *CPU, _ uint16) { c.A = c.read(0xFF00 | uint16(c.C)) }}
	p[0xEA] = instruction{name: "LD (a16),A", operands: 2, cycles: 4,
		exec: func(c *CPU, a uint16) { c.write(a, c.A) }}
	p[0xFA] = instruction{name: "LD A,(a16)", operands: 2, cycles: 4,
		exec: func(c *CPU, a uint16) { c.A = c.read(a) }}

	p[0xE8] = instruction{name: "ADD SP,r8", operands: 1, cycles: 4,
		exec: func(c *CPU, a uint16) { c.SP, c.F = addSP(c.SP, byte(a)) }}
	p[0xF8] = instruction{name: "LD HL,SP+r8", operands: 1, cycles: 3,
		exec: func(c *CPU, a uint16) {
			v, f := addSP(c.SP, byte(a))
			c.SetHL(v)
			c.F = f
		}}
	p[0xE9] = instruction{name: "JP HL", cycles: 1, exec: func(c *CPU, _ uint16) { c.PC = c.HL() }}
	p[0xF9] = instruction{name: "LD SP,HL", cycles: 2, exec: func(c *CPU, _ uint16) { c.SP = c.HL() }}

	p[0xF3] = instruction{name: "DI", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.diTimer, c.eiTimer = interruptDelay, 0
	}}
	p[0xFB] = instruction{name: "EI", cycles: 1, exec: func(c *CPU, _ uint16) {
		c.eiTimer, c.diTimer = interruptDelay, 0
	}}
}

func rstName(n byte) string {
	const hex = "0123456789ABCDEF"
	v := n << 3
	return "RST " + string([]byte{hex[v>>4], hex[v&0x0F]}) + "H"
}

// Disassemble returns the mnemonic for op, or for the extended opcode cb
// when op is the 0xCB prefix. Unknown opcodes render as "??".
func Disassemble(op, cb byte) string {
	in := &primary[op]
	if op == 0xCB {
		in = &extended[cb]
	}
	if in.exec == nil {
		return "??"
	}
	return in.name
}

// Length is the number of bytes an instruction starting with op occupies.
func Length(op byte) int {
	if op == 0xCB {
		return 2
	}
	return 1 + primary[op].operands
}
