package cpu

// Flags is the F register. Only the high nibble exists in hardware.
type Flags byte

const (
	FlagZero      Flags = 1 << 7
	FlagSubtract  Flags = 1 << 6
	FlagHalfCarry Flags = 1 << 5
	FlagCarry     Flags = 1 << 4

	flagMask = FlagZero | FlagSubtract | FlagHalfCarry | FlagCarry
)

// Has reports whether every bit in x is set.
func (f Flags) Has(x Flags) bool { return f&x == x }

// String renders the flags as "ZNHC" with '-' for cleared bits.
func (f Flags) String() string {
	b := []byte("----")
	for i, x := range [...]Flags{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		if f&x != 0 {
			b[i] = "ZNHC"[i]
		}
	}
	return string(b)
}

// Registers is the LR35902 register file. The 16-bit pairs are views over
// the 8-bit registers and hold no state of their own.
type Registers struct {
	A byte
	F Flags
	B, C byte
	D, E byte
	H, L byte

	SP uint16
	PC uint16
}

// SetF stores v into F with the low nibble cleared.
func (r *Registers) SetF(v byte) { r.F = Flags(v) & flagMask }

func (r *Registers) AF() uint16     { return uint16(r.A)<<8 | uint16(r.F&flagMask) }
func (r *Registers) SetAF(v uint16) { r.A = byte(v >> 8); r.SetF(byte(v)) }
func (r *Registers) BC() uint16     { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }
func (r *Registers) DE() uint16     { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }
func (r *Registers) HL() uint16     { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

// setFlags replaces the bits in mask with those from f, keeping the rest.
func (r *Registers) setFlags(f, mask Flags) {
	r.F = (r.F&^mask | f&mask) & flagMask
}
