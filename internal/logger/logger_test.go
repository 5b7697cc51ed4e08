package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 1, 2, 13, 4, 5, 0, time.Local) }
}

func TestLevelsAndOrder(t *testing.T) {
	l := New()
	l.SetClock(fixedClock())
	l.Log("first %d", 1)
	l.Warn("Cannot delete protected system folder: %s", "Workspace")
	l.Error("boom")

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Level: LevelLog, Message: "first 1", Timestamp: "13:04:05"}, entries[0])
	assert.Equal(t, LevelWarn, entries[1].Level)
	assert.Equal(t, "Cannot delete protected system folder: Workspace", entries[1].Message)
	assert.Equal(t, 1, l.Count(LevelError))
}

func TestSinceAndClear(t *testing.T) {
	l := New()
	l.Log("a")
	l.Log("b")
	l.Log("c")
	assert.Len(t, l.Since(1), 2)
	assert.Nil(t, l.Since(3))
	assert.Len(t, l.Since(-4), 3)

	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestSeedCopiesInput(t *testing.T) {
	seed := []Entry{{Level: LevelLog, Message: "New blank project created."}}
	l := New()
	l.Seed(seed)
	seed[0].Message = "changed"
	assert.Equal(t, "New blank project created.", l.Entries()[0].Message)
}

func TestFileMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "console.txt")
	l := NewWithFile(path)
	l.SetClock(fixedClock())
	l.Log("saved")
	l.Warn("careful")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[13:04:05] log   saved", lines[0])
	assert.Equal(t, "[13:04:05] warn  careful", lines[1])
}
