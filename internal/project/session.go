// Package project owns the lifecycle of an editing session: opening a template, the save
// status machine, and the periodic autosave and backup tasks that run while the project is
// in auto-save mode.
package project

import (
	"errors"
	"time"

	"game-studio/internal/document"
	"game-studio/internal/logger"
	"game-studio/internal/templates"
)

// State is the top-level screen of the session.
type State string

const (
	MainMenu State = "main-menu"
	Editor   State = "editor"
)

// SaveStatus tracks whether the open document has pending changes.
type SaveStatus string

const (
	Unsaved    SaveStatus = "unsaved"
	Saving     SaveStatus = "saving"
	AutoSaving SaveStatus = "auto-saving"
	Saved      SaveStatus = "saved"
)

const (
	DefaultSaveDelay     = time.Second
	DefaultAutosaveEvery = 10 * time.Second
	DefaultBackupEvery   = 60 * time.Second
)

var ErrNoProject = errors.New("no project open")

// Options configures a Session. Zero fields take the defaults.
type Options struct {
	Clock         Clock
	Post          func(func()) // hands timer callbacks to the event loop
	SaveDelay     time.Duration
	AutosaveEvery time.Duration
	BackupEvery   time.Duration
	LogFile       string // mirrors the console when set
}

// Session is the editing session. Like Document it is confined to the event loop.
type Session struct {
	opts   Options
	state  State
	status SaveStatus
	doc    *document.Document

	saveGen   uint64
	saveTimer Timer
	autosave  *ticker
	backup    *ticker
}

func NewSession(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Post == nil {
		opts.Post = func(fn func()) { fn() }
	}
	if opts.SaveDelay == 0 {
		opts.SaveDelay = DefaultSaveDelay
	}
	if opts.AutosaveEvery == 0 {
		opts.AutosaveEvery = DefaultAutosaveEvery
	}
	if opts.BackupEvery == 0 {
		opts.BackupEvery = DefaultBackupEvery
	}
	s := &Session{opts: opts, state: MainMenu, status: Saved}
	s.autosave = &ticker{clock: opts.Clock, post: opts.Post, period: opts.AutosaveEvery, fn: func() {
		s.log("Project auto-saved.")
	}}
	s.backup = &ticker{clock: opts.Clock, post: opts.Post, period: opts.BackupEvery, fn: func() {
		s.log("Project backup created.")
	}}
	return s
}

func (s *Session) State() State { return s.state }

func (s *Session) Status() SaveStatus { return s.status }

// Doc returns the open document, or nil in the main menu.
func (s *Session) Doc() *document.Document { return s.doc }

// Console returns the console of the open project, or nil in the main menu.
func (s *Session) Console() *logger.Logger {
	if s.doc == nil {
		return nil
	}
	return s.doc.Console()
}

// Open instantiates templateID and enters the editor with status Unsaved. A project that
// is already open is discarded first.
func (s *Session) Open(templateID string) error {
	if s.state == Editor {
		s.ReturnToMenu()
	}
	console := logger.New()
	if s.opts.LogFile != "" {
		console = logger.NewWithFile(s.opts.LogFile)
	}
	doc, err := document.New(templates.Instantiate(templateID), console)
	if err != nil {
		return err
	}
	doc.OnChange(s.markDirty)
	s.doc = doc
	s.state = Editor
	s.setStatus(Unsaved)
	return nil
}

// ReturnToMenu discards the document and cancels every pending timer.
func (s *Session) ReturnToMenu() {
	s.cancelSave()
	s.doc = nil
	s.state = MainMenu
	s.setStatus(Saved)
}

// Save starts a save. It only applies while the status is Unsaved and reports whether a
// save was started.
func (s *Session) Save() (bool, error) {
	if s.state != Editor {
		return false, ErrNoProject
	}
	if s.status != Unsaved {
		return false, nil
	}
	s.setStatus(Saving)
	s.log("Saving project...")
	s.saveGen++
	gen := s.saveGen
	s.saveTimer = s.opts.Clock.AfterFunc(s.opts.SaveDelay, func() {
		s.opts.Post(func() { s.finishSave(gen) })
	})
	return true, nil
}

func (s *Session) finishSave(gen uint64) {
	if gen != s.saveGen || s.state != Editor || s.status != Saving {
		return
	}
	s.saveTimer = nil
	s.setStatus(AutoSaving)
	s.log("Project saved. Auto-save enabled.")
}

func (s *Session) cancelSave() {
	s.saveGen++
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
}

// markDirty runs after every applied document mutation. A save in flight is left to
// finish.
func (s *Session) markDirty() {
	if s.status == AutoSaving || s.status == Saved {
		s.setStatus(Unsaved)
	}
}

// setStatus is the only place the status changes; the periodic tasks run exactly while
// the editor is open in auto-save mode.
func (s *Session) setStatus(status SaveStatus) {
	s.status = status
	if s.state == Editor && s.status == AutoSaving {
		s.autosave.start()
		s.backup.start()
		return
	}
	s.autosave.stop()
	s.backup.stop()
}

// TasksRunning reports whether the autosave and backup tasks are active.
func (s *Session) TasksRunning() bool {
	return s.autosave.active && s.backup.active
}

func (s *Session) log(msg string) {
	if s.doc != nil {
		s.doc.Console().Append(logger.LevelLog, msg)
	}
}
