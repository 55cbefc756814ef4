package bus

// I/O ports that are modelled. Everything else in FF00–FF7F faults.
const (
	regDIV  = 0xFF04
	regTIMA = 0xFF05
	regTMA  = 0xFF06
	regTAC  = 0xFF07
	regIF   = 0xFF0F
)

func (b *Bus) readIO(addr uint16) (byte, error) {
	switch addr {
	case regDIV, regTIMA, regTMA, regTAC:
		// timer is not emulated
		return 0x00, nil
	case regIF:
		return b.ifr, nil
	}
	return 0xFF, &AccessError{Addr: addr, Region: RegionIO, Err: ErrUnimplementedRegion}
}

func (b *Bus) writeIO(addr uint16, value byte) error {
	switch addr {
	case regDIV, regTIMA, regTMA, regTAC:
		return nil
	case regIF:
		b.ifr = value
		return nil
	}
	return &AccessError{Addr: addr, Region: RegionIO, Write: true, Err: ErrUnimplementedRegion}
}
