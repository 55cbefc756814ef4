package bus

import (
	"errors"
	"fmt"
)

var (
	// ErrUnimplementedRegion is returned for OAM, the unusable strip and
	// every I/O port that is not modelled.
	ErrUnimplementedRegion = errors.New("unimplemented memory region")

	// ErrUnallocatedExternalRAM is returned for 0xA000–0xBFFF when the
	// cartridge has no external RAM.
	ErrUnallocatedExternalRAM = errors.New("external RAM not allocated")
)

// AccessError describes a failed bus access.
type AccessError struct {
	Addr   uint16
	Region Region
	Write  bool
	Err    error
}

func (e *AccessError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("%s %s at %04X: %v", op, e.Region, e.Addr, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }
