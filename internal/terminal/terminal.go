// Package terminal is the console overlay of the viewer: the recent console entries and an
// input bar at the bottom of the screen, shown and hidden with ESC.
package terminal

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"game-studio/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays clear of the window border.
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	maxLinesOnScreen  = 14
	lineHeight        = fontSize + 4
	maxLineLen        = 200
)

var (
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
	warnColor       = rl.NewColor(250, 204, 21, 255)
	errorColor      = rl.NewColor(248, 113, 113, 255)
)

// Terminal captures keyboard input while open. Submitted lines go to OnSubmit, which the
// host forwards to the event loop; "cmd " lines are commands, anything else is an AI prompt.
type Terminal struct {
	input    Input
	open     bool
	font     rl.Font
	OnSubmit func(line string)
}

// New returns a closed terminal.
func New(onSubmit func(line string)) *Terminal {
	return &Terminal{OnSubmit: onSubmit}
}

// IsOpen reports whether the terminal is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the font of the overlay. A zero texture ID keeps raylib's default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Update handles ESC and, while open, typing, paste, history and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrl && rl.IsKeyPressed(rl.KeyV) {
		t.input.Insert(rl.GetClipboardText())
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.input.Insert(string(rune(c)))
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace):
		t.input.Backspace()
	case rl.IsKeyPressed(rl.KeyUp):
		t.input.Prev()
	case rl.IsKeyPressed(rl.KeyDown):
		t.input.Next()
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		if line, ok := t.input.Submit(); ok && t.OnSubmit != nil {
			t.OnSubmit(line)
		}
	}
}

// Draw draws the input bar and the last console entries above it while open.
func (t *Terminal) Draw(entries []logger.Entry) {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	chatHeight := int32(maxLinesOnScreen * lineHeight)
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight, chatY = barY, 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, termChatBgColor)
	}
	start := max(0, len(entries)-maxLinesOnScreen)
	for i, e := range entries[start:] {
		line := e.String()
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		t.text(line, padding, chatY+int32(i*lineHeight)+padding, levelColor(e.Level))
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, termBarColor)
	rl.DrawRectangle(0, barY, screenW, 1, termLineColor)
	t.text(prompt+t.input.Text()+"|", padding, barY+padding, rl.White)
}

func (t *Terminal) text(s string, x, y int32, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, x, y, fontSize, c)
}

func levelColor(l logger.Level) rl.Color {
	switch l {
	case logger.LevelWarn:
		return warnColor
	case logger.LevelError:
		return errorColor
	}
	return rl.LightGray
}
