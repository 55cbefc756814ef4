package cpu

// ALU helpers. Each returns the result together with the flags it decides;
// callers that must keep a flag (INC/DEC keep C, ADD HL keeps Z) merge with
// setFlags.

func b2u(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func zero(v byte) Flags {
	if v == 0 {
		return FlagZero
	}
	return 0
}

func add8(x, y byte) (byte, Flags) { return adc8(x, y, false) }

func adc8(x, y byte, carry bool) (byte, Flags) {
	ci := b2u(carry)
	sum := uint16(x) + uint16(y) + uint16(ci)
	r := byte(sum)
	f := zero(r)
	if x&0x0F+y&0x0F+ci > 0x0F {
		f |= FlagHalfCarry
	}
	if sum > 0xFF {
		f |= FlagCarry
	}
	return r, f
}

func sub8(x, y byte) (byte, Flags) { return sbc8(x, y, false) }

func sbc8(x, y byte, carry bool) (byte, Flags) {
	ci := int(b2u(carry))
	diff := int(x) - int(y) - ci
	r := byte(diff)
	f := zero(r) | FlagSubtract
	if int(x&0x0F)-int(y&0x0F)-ci < 0 {
		f |= FlagHalfCarry
	}
	if diff < 0 {
		f |= FlagCarry
	}
	return r, f
}

// cp8 is sub8 with the difference discarded.
func cp8(x, y byte) Flags {
	_, f := sub8(x, y)
	return f
}

// add16 decides H (carry out of bit 11) and C (carry out of bit 15) only.
func add16(x, y uint16) (uint16, Flags) {
	var f Flags
	if x&0x0FFF+y&0x0FFF > 0x0FFF {
		f |= FlagHalfCarry
	}
	if uint32(x)+uint32(y) > 0xFFFF {
		f |= FlagCarry
	}
	return x + y, f
}

// addSP adds a signed offset to sp. H and C come from the unsigned add of
// the low byte; Z and N are always cleared.
func addSP(sp uint16, e byte) (uint16, Flags) {
	var f Flags
	if sp&0x0F+uint16(e&0x0F) > 0x0F {
		f |= FlagHalfCarry
	}
	if sp&0xFF+uint16(e) > 0xFF {
		f |= FlagCarry
	}
	return sp + uint16(int8(e)), f
}

func and8(x, y byte) (byte, Flags) {
	r := x & y
	return r, zero(r) | FlagHalfCarry
}

func or8(x, y byte) (byte, Flags) {
	r := x | y
	return r, zero(r)
}

func xor8(x, y byte) (byte, Flags) {
	r := x ^ y
	return r, zero(r)
}

// inc8 and dec8 leave C undecided.
func inc8(x byte) (byte, Flags) {
	r := x + 1
	f := zero(r)
	if x&0x0F == 0x0F {
		f |= FlagHalfCarry
	}
	return r, f
}

func dec8(x byte) (byte, Flags) {
	r := x - 1
	f := zero(r) | FlagSubtract
	if x&0x0F == 0 {
		f |= FlagHalfCarry
	}
	return r, f
}

func shifted(r, out byte) (byte, Flags) {
	f := zero(r)
	if out != 0 {
		f |= FlagCarry
	}
	return r, f
}

func rlc(x byte) (byte, Flags) { return shifted(x<<1|x>>7, x>>7) }
func rrc(x byte) (byte, Flags) { return shifted(x>>1|x<<7, x&1) }

// rl and rr rotate through the carry flag passed in.
func rl(x byte, carry bool) (byte, Flags) { return shifted(x<<1|b2u(carry), x>>7) }
func rr(x byte, carry bool) (byte, Flags) { return shifted(x>>1|b2u(carry)<<7, x&1) }

func sla(x byte) (byte, Flags) { return shifted(x<<1, x>>7) }
func sra(x byte) (byte, Flags) { return shifted(x>>1|x&0x80, x&1) }
func srl(x byte) (byte, Flags) { return shifted(x>>1, x&1) }

func swap(x byte) (byte, Flags) {
	r := x<<4 | x>>4
	return r, zero(r)
}

// testBit decides Z, N and H for BIT n; C is left to the caller.
func testBit(x byte, n uint) Flags {
	f := FlagHalfCarry
	if x&(1<<n) == 0 {
		f |= FlagZero
	}
	return f
}

func setBit(x byte, n uint) byte   { return x | 1<<n }
func resetBit(x byte, n uint) byte { return x &^ (1 << n) }

// daa adjusts A to packed BCD after an addition or subtraction. N is kept,
// H is cleared.
func daa(a byte, f Flags) (byte, Flags) {
	carry := f.Has(FlagCarry)
	var adj byte
	if !f.Has(FlagSubtract) {
		if carry || a > 0x99 {
			adj |= 0x60
			carry = true
		}
		if f.Has(FlagHalfCarry) || a&0x0F > 0x09 {
			adj |= 0x06
		}
		a += adj
	} else {
		if carry {
			adj |= 0x60
		}
		if f.Has(FlagHalfCarry) {
			adj |= 0x06
		}
		a -= adj
	}
	out := zero(a) | f&FlagSubtract
	if carry {
		out |= FlagCarry
	}
	return a, out
}
