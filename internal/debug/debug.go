// Package debug draws the viewer's runtime counters.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Counters sit under the status line.
	top = 48
	// Text is refreshed every refreshEvery frames to limit allocations.
	refreshEvery = 30
)

// Debug is the FPS and heap overlay.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool

	font    rl.Font
	frames  uint32
	lines   [2]string
	memStat runtime.MemStats
}

// New returns an overlay with both counters shown or hidden.
func New(show bool) *Debug {
	return &Debug{ShowFPS: show, ShowMemAlloc: show}
}

// Toggle flips both counters.
func (d *Debug) Toggle() {
	d.ShowFPS = !d.ShowFPS
	d.ShowMemAlloc = d.ShowFPS
}

// SetFont sets the overlay font. A zero texture ID keeps raylib's default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

func (d *Debug) refresh() {
	d.lines[0] = fmt.Sprintf("FPS: %d", rl.GetFPS())
	runtime.ReadMemStats(&d.memStat)
	d.lines[1] = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStat.Alloc)/(1024*1024))
}

// Draw draws the enabled counters top-left. Call last in the frame.
func (d *Debug) Draw() {
	if !d.ShowFPS && !d.ShowMemAlloc {
		return
	}
	if d.frames%refreshEvery == 0 || d.lines[0] == "" {
		d.refresh()
	}
	d.frames++

	y := float32(top)
	for i, show := range []bool{d.ShowFPS, d.ShowMemAlloc} {
		if !show {
			continue
		}
		if d.font.Texture.ID != 0 {
			rl.DrawTextEx(d.font, d.lines[i], rl.NewVector2(padding, y), fontSize, 1, rl.Green)
		} else {
			rl.DrawText(d.lines[i], padding, int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}
