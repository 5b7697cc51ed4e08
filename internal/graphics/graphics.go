package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window configures the viewer window. Zero width or height with Fullscreen false opens a
// 1280x720 window.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
}

// Run opens the window and runs the main loop until the window is closed. Each frame it
// calls update (input), then clears the screen and calls draw. It must be called from the
// main goroutine.
func Run(win Window, update, draw func()) {
	if win.Width == 0 || win.Height == 0 {
		win.Width, win.Height = 1280, 720
	}
	if win.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), win.Title)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(win.Width, win.Height, win.Title)
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC toggles the console; close via window button
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(17, 19, 24, 255))
		draw()
		rl.EndDrawing()
	}
}
