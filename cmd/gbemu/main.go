package main

import (
	"flag"
	"path/filepath"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/ui"
	"github.com/retroenv/retrogolib/log"
)

type CLIFlags struct {
	ROMPath      string
	ROMsDir      string
	Scale        int
	Title        string
	StepsPerTick int
	Trace        bool
	NoExtRAM     bool
	Debug        bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.gb, .gbc, .gz, .zip, .7z); empty opens the ROM picker")
	flag.StringVar(&f.ROMsDir, "romdir", "roms", "directory listed by the ROM picker")
	flag.IntVar(&f.Scale, "scale", 2, "window scale")
	flag.StringVar(&f.Title, "title", "gbemu", "window title")
	flag.IntVar(&f.StepsPerTick, "steps-per-tick", 1000, "instructions executed per frame while running")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log (implies -debug)")
	flag.BoolVar(&f.NoExtRAM, "no-extram", false, "do not allocate external cartridge RAM")
	flag.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	logger := emu.NewLogger(f.Debug || f.Trace, false)

	cfg := emu.DefaultConfig()
	cfg.Trace = f.Trace
	cfg.ExternalRAM = !f.NoExtRAM
	m := emu.New(cfg, logger)
	if f.ROMPath != "" {
		// prefer absolute path for state file placement consistency
		path := f.ROMPath
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := m.LoadROMFromFile(path); err != nil {
			logger.Fatal("Loading ROM failed", log.Err(err))
		}
	}

	uiCfg := ui.Config{
		Title:        f.Title,
		Scale:        f.Scale,
		ROMsDir:      f.ROMsDir,
		StepsPerTick: f.StepsPerTick,
	}
	app := ui.NewApp(uiCfg, m, logger)
	if err := app.Run(); err != nil {
		logger.Fatal("UI exited", log.Err(err))
	}
}
