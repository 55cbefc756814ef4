package emu

import (
	"github.com/retroenv/retrogolib/log"
)

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace       bool // log every instruction at debug level
	ExternalRAM bool // back 0xA000–0xBFFF with the RAM size the header declares
}

// DefaultConfig returns the settings used by the hosts.
func DefaultConfig() Config {
	return Config{ExternalRAM: true}
}

// NewLogger creates the logger shared by a machine and its host.
func NewLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
