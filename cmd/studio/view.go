package main

import (
	"context"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"game-studio/internal/commands"
	"game-studio/internal/config"
	"game-studio/internal/debug"
	"game-studio/internal/fonts"
	"game-studio/internal/graphics"
	"game-studio/internal/hierarchy"
	"game-studio/internal/logger"
	"game-studio/internal/project"
	"game-studio/internal/render"
	"game-studio/internal/scene"
	"game-studio/internal/terminal"
)

const fontSize = 20

// consoleWriter turns command output into console lines. In the main menu there is no
// project console, so lines go to menu instead. Writes happen on the event loop.
type consoleWriter struct {
	session *project.Session
	menu    *logger.Logger
}

func (w consoleWriter) Write(p []byte) (int, error) {
	dst := w.session.Console()
	if dst == nil {
		dst = w.menu
	}
	text := strings.TrimRight(string(p), "\n")
	if text == "" {
		return len(p), nil
	}
	for _, line := range strings.Split(text, "\n") {
		dst.Log("%s", line)
	}
	return len(p), nil
}

func runView(ctx context.Context, prefs config.Prefs, fullscreen bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := start(ctx, prefs)
	menu := logger.New()
	menu.Log("Welcome. Press ESC and run: cmd new basic")
	out := consoleWriter{session: a.session, menu: menu}
	studio := commands.NewStudio(ctx, a.session, a.ai, a.loop.Post, out)

	viewer := render.New()
	viewer.GridVisible = prefs.GridVisible
	dbg := debug.New(prefs.ShowFPS)
	term := terminal.New(func(line string) {
		a.loop.Post(func() {
			// Refusals are already on the console as warnings.
			if err := studio.Handle(line); err != nil && !hierarchy.IsRefused(err) {
				dst := a.session.Console()
				if dst == nil {
					dst = menu
				}
				dst.Error("%v", err)
			}
		})
	})

	withDoc := func(fn func()) {
		a.loop.Post(func() {
			if a.session.Doc() != nil {
				fn()
			}
		})
	}
	viewer.OnSelect = func(id string) {
		withDoc(func() { _ = a.session.Doc().SelectObject(id) })
	}
	viewer.OnWalk = func(o scene.Object) {
		withDoc(func() { _ = a.session.Doc().UpdateObject(o) })
	}
	viewer.OnGuiClick = func(id string) {
		withDoc(func() {
			if n, ok := a.session.Doc().Find(id); ok {
				a.session.Console().Log("GUI: %s clicked.", n.Name)
			}
		})
	}

	var frame render.Frame
	var menuLog []logger.Entry
	fontLoaded := false
	update := func() {
		if !fontLoaded {
			fontLoaded = true
			if path, ok := fonts.Find(prefs.Font); ok {
				f := rl.LoadFontEx(path, fontSize*2, nil, 0)
				viewer.SetFont(f)
				term.SetFont(f)
				dbg.SetFont(f)
			}
		}
		if err := a.loop.Do(ctx, func() {
			frame = render.Capture(a.session)
			menuLog = menu.Entries()
		}); err != nil {
			return
		}
		term.Update()
		keyboard := !term.IsOpen()
		if keyboard && rl.IsKeyPressed(rl.KeyF3) {
			dbg.Toggle()
		}
		viewer.Update(frame, keyboard)
	}
	draw := func() {
		viewer.Draw(frame)
		if frame.State == project.Editor {
			term.Draw(frame.Console)
		} else {
			term.Draw(menuLog)
		}
		dbg.Draw()
	}

	graphics.Run(graphics.Window{Title: "Game Studio", Width: 1280, Height: 720, Fullscreen: fullscreen}, update, draw)
	return nil
}
