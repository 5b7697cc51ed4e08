package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-studio/internal/instance"
	"game-studio/internal/logger"
	"game-studio/internal/templates"
)

func newTestSession(t *testing.T, post func(func())) (*Session, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewSession(Options{Clock: clock, Post: post})
	require.NoError(t, s.Open("basic"))
	return s, clock
}

func countMessages(l *logger.Logger, msg string) int {
	n := 0
	for _, e := range l.Entries() {
		if e.Message == msg {
			n++
		}
	}
	return n
}

func TestOpenEntersEditorUnsaved(t *testing.T) {
	s := NewSession(Options{Clock: NewFakeClock(time.Now())})
	assert.Equal(t, MainMenu, s.State())
	assert.Nil(t, s.Doc())

	require.NoError(t, s.Open("basic"))
	assert.Equal(t, Editor, s.State())
	assert.Equal(t, Unsaved, s.Status())
	assert.Len(t, s.Doc().Files(), 9)
}

func TestSaveFlow(t *testing.T) {
	s, clock := newTestSession(t, nil)

	started, err := s.Save()
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, Saving, s.Status())
	assert.Equal(t, 1, countMessages(s.Console(), "Saving project..."))

	started, _ = s.Save()
	assert.False(t, started)

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, Saving, s.Status())

	clock.Advance(time.Millisecond)
	assert.Equal(t, AutoSaving, s.Status())
	assert.Equal(t, 1, countMessages(s.Console(), "Project saved. Auto-save enabled."))
	assert.True(t, s.TasksRunning())
}

func TestPeriodicTasks(t *testing.T) {
	s, clock := newTestSession(t, nil)
	_, _ = s.Save()
	clock.Advance(time.Second)

	clock.Advance(60 * time.Second)
	assert.Equal(t, 6, countMessages(s.Console(), "Project auto-saved."))
	assert.Equal(t, 1, countMessages(s.Console(), "Project backup created."))
	assert.Equal(t, 2, clock.Pending())
}

func TestEditStopsTasks(t *testing.T) {
	s, clock := newTestSession(t, nil)
	_, _ = s.Save()
	clock.Advance(time.Second)
	clock.Advance(10 * time.Second)
	require.Equal(t, 1, countMessages(s.Console(), "Project auto-saved."))

	_, err := s.Doc().AddInstance(templates.Workspace, instance.Part, "")
	require.NoError(t, err)
	assert.Equal(t, Unsaved, s.Status())
	assert.False(t, s.TasksRunning())
	assert.Zero(t, clock.Pending())

	clock.Advance(5 * time.Minute)
	assert.Equal(t, 1, countMessages(s.Console(), "Project auto-saved."))
	assert.Zero(t, countMessages(s.Console(), "Project backup created."))
}

func TestEditWhileSavingKeepsSaving(t *testing.T) {
	s, clock := newTestSession(t, nil)
	_, _ = s.Save()
	require.NoError(t, s.Doc().RenameInstance("cube-1", "Crate"))
	assert.Equal(t, Saving, s.Status())
	clock.Advance(time.Second)
	assert.Equal(t, AutoSaving, s.Status())
}

func TestRefusalDoesNotDirty(t *testing.T) {
	s, clock := newTestSession(t, nil)
	_, _ = s.Save()
	clock.Advance(time.Second)

	assert.Error(t, s.Doc().DeleteInstance(templates.Workspace))
	assert.Equal(t, AutoSaving, s.Status())
	assert.True(t, s.TasksRunning())
}

func TestStaleTickIsDropped(t *testing.T) {
	var queue []func()
	post := func(fn func()) { queue = append(queue, fn) }
	drain := func() {
		for len(queue) > 0 {
			fn := queue[0]
			queue = queue[1:]
			fn()
		}
	}
	s, clock := newTestSession(t, post)

	_, _ = s.Save()
	clock.Advance(time.Second)
	drain()
	require.Equal(t, AutoSaving, s.Status())

	clock.Advance(10 * time.Second)
	require.Len(t, queue, 1)

	_, err := s.Doc().AddInstance(templates.Workspace, instance.Wedge, "")
	require.NoError(t, err)
	drain()
	assert.Zero(t, countMessages(s.Console(), "Project auto-saved."))
	assert.Zero(t, clock.Pending())
}

func TestReturnToMenuCancelsEverything(t *testing.T) {
	s, clock := newTestSession(t, nil)
	_, _ = s.Save()
	clock.Advance(time.Second)
	require.True(t, s.TasksRunning())

	s.ReturnToMenu()
	assert.Equal(t, MainMenu, s.State())
	assert.Nil(t, s.Doc())
	assert.False(t, s.TasksRunning())
	assert.Zero(t, clock.Pending())

	_, err := s.Save()
	assert.ErrorIs(t, err, ErrNoProject)
}

func TestReturnToMenuDuringSave(t *testing.T) {
	s, clock := newTestSession(t, nil)
	_, _ = s.Save()
	s.ReturnToMenu()
	require.NoError(t, s.Open("blank"))

	clock.Advance(2 * time.Second)
	assert.Equal(t, Unsaved, s.Status())
	assert.Zero(t, countMessages(s.Console(), "Project saved. Auto-save enabled."))
}

func TestOpenReplacesProject(t *testing.T) {
	s, _ := newTestSession(t, nil)
	require.NoError(t, s.Open("blank"))
	_, ok := s.Doc().Find("cube-1")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Console().Len())
}
