package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode         = errors.New("unknown opcode")
	ErrUnknownExtendedOpcode = errors.New("unknown extended opcode")
)

// OpcodeError reports an opcode with no table entry. It matches
// ErrUnknownOpcode or ErrUnknownExtendedOpcode under errors.Is.
type OpcodeError struct {
	PC       uint16 // address of the opcode (the 0xCB prefix for extended ones)
	Opcode   byte
	Extended bool
}

func (e *OpcodeError) Error() string {
	if e.Extended {
		return fmt.Sprintf("%v CB %02X at %04X", ErrUnknownExtendedOpcode, e.Opcode, e.PC)
	}
	return fmt.Sprintf("%v %02X at %04X", ErrUnknownOpcode, e.Opcode, e.PC)
}

func (e *OpcodeError) Unwrap() error {
	if e.Extended {
		return ErrUnknownExtendedOpcode
	}
	return ErrUnknownOpcode
}

// fault carries a memory error out of an instruction body. Step recovers it.
type fault struct{ err error }
