package main

import (
	"fmt"
	"time"

	"github.com/taigrr/dimenshift/pkg/game"
)

// HUD draws a one-line status bar at the top and bottom of the terminal.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render writes the overlay with ANSI escapes after the frame is flushed.
func (h *HUD) Render(width, height int, show bool, g *game.Game, edges int) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		fgYellow  = "\x1b[93m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// always clear so toggling off works
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !show {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	name := g.Active().Name
	titleCol := max((width-len(name)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, name, reset))

	edgeStr := fmt.Sprintf("%d edges", edges)
	fmt.Print(moveTo(1, max(width-len(edgeStr)-1, 1)) + fmt.Sprintf("%s%s%s %s %s", bgBlack, fgCyan, bold, edgeStr, reset))

	orbit := "[ ]"
	if g.Orbiting() {
		orbit = "[✓]"
	}
	fmt.Print(moveTo(height, 1) + fmt.Sprintf("%s%s %s Orbit  focal %.2f %s",
		bgBlack, fgWhite, orbit, g.Camera().FocalLength, reset))

	hint := "Tab shape  O orbit  Space kick  R reset"
	fmt.Print(moveTo(height, max(width-len(hint)-1, 1)) + fmt.Sprintf("%s%s%s %s %s", bgBlack, dim, fgYellow, hint, reset))
}
