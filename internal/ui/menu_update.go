package ui

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/FabianRolfMatthiasNoll/GameBoyCore/internal/cart"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
)

func (a *App) openMenu() {
	roms, err := findROMs(a.cfg.ROMsDir)
	if err != nil {
		a.logger.Warn("Scanning ROM directory failed", log.String("dir", a.cfg.ROMsDir), log.Err(err))
	}
	a.romList = roms
	a.romSel = 0
	a.romOff = 0
	a.showMenu = true
}

func (a *App) updateRomMenu() {
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			a.showMenu = false
		}
		return
	}
	// compute window to maintain selection visibility
	maxRows := a.menuRows()
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	if a.romSel < a.romOff {
		a.romOff = a.romSel
	}
	if a.romSel >= a.romOff+maxRows {
		a.romOff = a.romSel - maxRows + 1
	}
	a.romOff = clampOffset(a.romOff, n, maxRows)

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.loadROM(a.romList[a.romSel])
	}
	// Back with Backspace
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

func (a *App) loadROM(path string) {
	if err := a.m.LoadROMFromFile(path); err != nil {
		a.toast("ROM load failed: " + err.Error())
		return
	}
	a.toast("Loaded ROM: " + filepath.Base(path))
	a.showMenu = false
	a.paused = false
	a.dumpOff = 0
	a.updateTitle()
}

// findROMs recursively collects cartridge files under dir, sorted by path.
func findROMs(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && cart.IsCartridgeFile(d.Name()) {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}
