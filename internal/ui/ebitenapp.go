package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cart"
	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
)

// Logical screen size. ebitenutil's debug font is 6x16 pixels per glyph.
const (
	screenW = 480
	screenH = 360
	lineH   = 16
	glyphW  = 6
)

type App struct {
	cfg    Config
	m      *emu.Machine
	logger *log.Logger

	paused bool

	// ROM dump view
	dumpOff int // first visible line

	// ROM picker overlay
	showMenu bool
	romList  []string
	romSel   int
	romOff   int

	toastMsg   string
	toastUntil time.Time
}

func NewApp(cfg Config, m *emu.Machine, logger *log.Logger) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(screenW*cfg.Scale, screenH*cfg.Scale)
	a := &App{cfg: cfg, m: m, logger: logger}
	a.updateTitle()
	if !m.Loaded() {
		a.openMenu()
	}
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	// Toggle ROM picker (Escape)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if a.showMenu {
			a.showMenu = false
		} else {
			a.openMenu()
		}
	}
	if a.showMenu {
		a.updateRomMenu()
		return nil
	}

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.m.Reset()
		a.toast("Reset")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.saveState()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.loadState()
	}
	a.updateDumpScroll()

	if !a.m.Loaded() || a.m.Fault() != nil {
		return nil
	}
	// Instruction-step when paused (N)
	if a.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			a.run(1)
		}
		return nil
	}
	a.run(a.cfg.StepsPerTick)
	return nil
}

// run executes a bounded batch so Update always returns within one tick.
func (a *App) run(n int) {
	if _, err := a.m.RunInstructions(n); err != nil {
		a.paused = true
		a.toast("Stopped: " + err.Error())
	}
}

func (a *App) saveState() {
	path := a.m.StatePath()
	if path == "" {
		a.toast("No ROM file to save state for")
		return
	}
	if err := a.m.SaveStateToFile(path); err != nil {
		a.toast("Save failed: " + err.Error())
		return
	}
	a.toast("Saved " + filepath.Base(path))
}

func (a *App) loadState() {
	path := a.m.StatePath()
	if path == "" {
		return
	}
	err := a.m.LoadStateFromFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		a.toast("No saved state")
	case err != nil:
		a.toast("Load failed: " + err.Error())
	default:
		a.toast("Loaded " + filepath.Base(path))
	}
}

func (a *App) updateDumpScroll() {
	page := a.dumpRows()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		a.dumpOff += page
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		a.dumpOff -= page
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.dumpOff++
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.dumpOff--
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		a.dumpOff = 0
	}
	a.dumpOff = clampOffset(a.dumpOff, cart.DumpLines(len(a.m.ROM())), page)
}

// clampOffset keeps a scrolled window of rows inside n lines.
func clampOffset(off, n, rows int) int {
	if off > n-rows {
		off = n - rows
	}
	if off < 0 {
		off = 0
	}
	return off
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(3 * time.Second)
	a.logger.Info(msg)
}

func (a *App) updateTitle() {
	title := a.cfg.Title
	if t := a.m.Title(); t != "" {
		title = fmt.Sprintf("%s - [%s]", a.cfg.Title, t)
	}
	ebiten.SetWindowTitle(title)
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.showMenu {
		a.drawRomMenu(screen)
		return
	}
	a.drawRegisters(screen)
	a.drawDump(screen)
	a.drawToast(screen)
}

func (a *App) Layout(outW, outH int) (int, int) { return screenW, screenH }
