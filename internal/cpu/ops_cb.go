package cpu

var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

func (c *CPU) rotate(kind, v byte) (byte, Flags) {
	carry := c.F.Has(FlagCarry)
	switch kind {
	case 0:
		return rlc(v)
	case 1:
		return rrc(v)
	case 2:
		return rl(v, carry)
	case 3:
		return rr(v, carry)
	case 4:
		return sla(v)
	case 5:
		return sra(v)
	case 6:
		return swap(v)
	}
	return srl(v)
}

// initExtended fills all 256 CB-prefixed entries. Opcode layout is
// xx yyy zzz: x selects rotate/BIT/RES/SET, y the rotate kind or bit
// number and z the register.
func initExtended() {
	for i := 0; i < 256; i++ {
		op := byte(i)
		x, y, r := op>>6, (op>>3)&7, op&7
		mem := r == regHL

		cycles := 2
		if mem {
			cycles = 4
		}
		bit := string(rune('0' + y))

		var in instruction
		switch x {
		case 0:
			in = instruction{name: rotNames[y] + " " + regNames[r], exec: func(c *CPU, _ uint16) {
				v, f := c.rotate(y, c.reg(r))
				c.setReg(r, v)
				c.F = f
			}}
		case 1:
			if mem {
				cycles = 3
			}
			in = instruction{name: "BIT " + bit + "," + regNames[r], exec: func(c *CPU, _ uint16) {
				c.setFlags(testBit(c.reg(r), uint(y)), FlagZero|FlagSubtract|FlagHalfCarry)
			}}
		case 2:
			in = instruction{name: "RES " + bit + "," + regNames[r], exec: func(c *CPU, _ uint16) {
				c.setReg(r, resetBit(c.reg(r), uint(y)))
			}}
		default:
			in = instruction{name: "SET " + bit + "," + regNames[r], exec: func(c *CPU, _ uint16) {
				c.setReg(r, setBit(c.reg(r), uint(y)))
			}}
		}
		in.cycles = cycles
		extended[op] = in
	}
}
