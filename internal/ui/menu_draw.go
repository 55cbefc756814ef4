package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cart"
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cpu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	marginX  = 10
	regRows  = 5 // register pane height in lines
	menuTopY = 40
)

func (a *App) drawRomMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Select ROM (Enter to load, Backspace/Esc to return)", marginX, 4)
	// show configured ROMs directory
	d := truncateText("Dir: "+a.cfg.ROMsDir, maxChars(marginX))
	ebitenutil.DebugPrintAt(screen, d, marginX, 4+lineH)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "No ROMs found", marginX, menuTopY)
		return
	}
	end := a.romOff + a.menuRows()
	if end > len(a.romList) {
		end = len(a.romList)
	}
	width := maxChars(marginX) - 2 // account for "> " prefix
	for i, path := range a.romList[a.romOff:end] {
		prefix := "  "
		if a.romOff+i == a.romSel {
			prefix = "> "
		}
		name, err := filepath.Rel(a.cfg.ROMsDir, path)
		if err != nil {
			name = filepath.Base(path)
		}
		ebitenutil.DebugPrintAt(screen, prefix+truncateText(name, width), marginX, menuTopY+i*lineH)
	}
}

func (a *App) drawRegisters(screen *ebiten.Image) {
	for i, s := range a.statusLines() {
		ebitenutil.DebugPrintAt(screen, s, marginX, 4+i*lineH)
	}
}

// statusLines is the register pane text.
func (a *App) statusLines() []string {
	if !a.m.Loaded() {
		return []string{"No cartridge. Esc: open ROM picker"}
	}
	s := a.m.Snapshot()
	state := "running"
	switch {
	case a.m.Fault() != nil:
		state = "FAULT"
	case s.Halted:
		state = "halted"
	case a.paused:
		state = "paused"
	}
	op := a.m.Peek(s.PC)
	return []string{
		fmt.Sprintf("%s  type %02X  rom %02X  ram %02X  xxh %016x",
			a.m.Title(), a.m.CartType(), a.m.ROMSizeCode(), a.m.RAMSizeCode(), a.m.Fingerprint()),
		registerLine(s),
		fmt.Sprintf("next %-14s  last %d cyc  total %d  [%s]",
			cpu.Disassemble(op, a.m.Peek(s.PC+1)), s.Cycles, s.Total, state),
		faultLine(a.m.Fault()),
		"P pause  N step  R reset  F5/F9 state  PgUp/PgDn dump  Esc ROMs",
	}
}

func registerLine(s cpu.State) string {
	return fmt.Sprintf("A %02X F %s  BC %04X DE %04X HL %04X SP %04X PC %04X IME %t",
		s.A, s.F, s.BC(), s.DE(), s.HL(), s.SP, s.PC, s.Interrupts)
}

func faultLine(err error) string {
	if err == nil {
		return ""
	}
	return truncateText("! "+err.Error(), maxChars(marginX))
}

func (a *App) drawDump(screen *ebiten.Image) {
	rom := a.m.ROM()
	top := 4 + (regRows+1)*lineH
	for i := 0; i < a.dumpRows(); i++ {
		line := cart.DumpLine(rom, a.dumpOff+i)
		if line == "" {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, marginX, top+i*lineH)
	}
}

func (a *App) drawToast(screen *ebiten.Image) {
	if a.toastMsg == "" || time.Now().After(a.toastUntil) {
		return
	}
	ebitenutil.DebugPrintAt(screen, truncateText(a.toastMsg, maxChars(marginX)), marginX, screenH-lineH-4)
}

func (a *App) dumpRows() int {
	rows := (screenH - 4 - (regRows+1)*lineH - lineH) / lineH
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a *App) menuRows() int {
	rows := (screenH - menuTopY) / lineH
	if rows < 1 {
		rows = 1
	}
	return rows
}

// maxChars is how many glyphs fit on a line starting at x.
func maxChars(x int) int {
	return (screenW - 2*x) / glyphW
}

func truncateText(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
