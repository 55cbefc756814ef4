package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cart"
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/emu"
	"github.com/retroenv/retrogolib/log"
)

// deadline checks are amortized over this many instructions
const timeoutCheckEvery = 4096

func main() {
	romPath := flag.String("rom", "", "path to ROM (.gb, .gbc, .gz, .zip, .7z)")
	steps := flag.Int("steps", 5_000_000, "max CPU instructions to run")
	trace := flag.Bool("trace", false, "log every instruction (implies -debug)")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	dump := flag.Bool("dump", false, "print the ROM hex dump before running")
	info := flag.Bool("info", false, "print the cartridge header and exit")
	noRAM := flag.Bool("no-extram", false, "do not allocate external cartridge RAM")
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "only log errors")
	flag.Parse()

	logger := emu.NewLogger(*debug || *trace, *quiet)
	if *romPath == "" {
		logger.Fatal("-rom is required")
	}

	cfg := emu.DefaultConfig()
	cfg.Trace = *trace
	cfg.ExternalRAM = !*noRAM
	m := emu.New(cfg, logger)
	if err := m.LoadROMFromFile(*romPath); err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}

	if *info {
		printHeader(m.Header(), m.Fingerprint())
		return
	}
	if *dump {
		if err := cart.Dump(os.Stdout, m.ROM()); err != nil {
			logger.Fatal("Writing dump failed", log.Err(err))
		}
	}

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	var cycles int
	done := func(n int) {
		fmt.Printf("%s\n", m.Snapshot())
		fmt.Printf("Done: steps=%d cycles=%d elapsed=%s\n", n, cycles, time.Since(start).Truncate(time.Millisecond))
	}
	for i := 0; i < *steps; i++ {
		c, err := m.Step()
		cycles += c
		if err != nil {
			logger.Error("Execution stopped", log.Err(err))
			done(i)
			os.Exit(1)
		}
		if m.Halted() {
			logger.Info("CPU halted", log.Hex("pc", m.PC()))
			done(i + 1)
			return
		}
		if !deadline.IsZero() && i%timeoutCheckEvery == 0 && time.Now().After(deadline) {
			fmt.Printf("Timeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			done(i + 1)
			os.Exit(2)
		}
	}
	done(*steps)
}

func printHeader(h *cart.Header, sum uint64) {
	fmt.Printf("Title:        %s\n", h.Title)
	fmt.Printf("Type:         %02X (%s)\n", h.CartType, h.CartTypeStr)
	fmt.Printf("ROM size:     %02X (%d bytes, %d banks)\n", h.ROMSizeCode, h.ROMSizeBytes, h.ROMBanks)
	fmt.Printf("RAM size:     %02X (%d bytes)\n", h.RAMSizeCode, h.RAMSizeBytes)
	fmt.Printf("Color:        %t\n", h.ColorSupport)
	fmt.Printf("Super:        %t\n", h.SuperSupport)
	fmt.Printf("Japanese:     %t\n", h.Japanese)
	fmt.Printf("Version:      %d\n", h.ROMVersion)
	fmt.Printf("Logo OK:      %t\n", h.LogoOK)
	fmt.Printf("Checksum:     %02X\n", h.HeaderChecksum)
	fmt.Printf("Fingerprint:  %016x\n", sum)
}
