package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultFilePath is where the console is mirrored when file output is enabled, relative to
// the working directory.
const DefaultFilePath = "logs/console.txt"

// Level is the severity of a console entry.
type Level string

const (
	LevelLog   Level = "log"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one line of the editor console.
type Entry struct {
	Level     Level  `json:"type" yaml:"type"`
	Message   string `json:"message" yaml:"message"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// String renders the entry as "[timestamp] LEVEL message".
func (e Entry) String() string {
	if e.Timestamp == "" {
		return fmt.Sprintf("%-5s %s", e.Level, e.Message)
	}
	return fmt.Sprintf("[%s] %-5s %s", e.Timestamp, e.Level, e.Message)
}

// Logger keeps the ordered console entries of a project in memory and optionally appends
// each entry to a file on disk.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	path    string
	now     func() time.Time
}

// New returns an empty console that keeps entries in memory only.
func New() *Logger {
	return &Logger{now: time.Now}
}

// NewWithFile returns a console that also appends every entry to path. The directory is
// created if needed.
func NewWithFile(path string) *Logger {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	l := New()
	l.path = path
	return l
}

// SetClock replaces the timestamp source.
func (l *Logger) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

// Log appends an informational entry.
func (l *Logger) Log(format string, args ...any) {
	l.Append(LevelLog, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logger) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logger) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}

// Append adds an entry stamped with the current local time.
func (l *Logger) Append(level Level, message string) {
	l.mu.Lock()
	e := Entry{Level: level, Message: message, Timestamp: l.now().Format("15:04:05")}
	l.entries = append(l.entries, e)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(e.String() + "\n")
	_ = f.Close()
}

// Seed replaces the entries with seed, keeping the timestamps it carries.
func (l *Logger) Seed(seed []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Entry(nil), seed...)
}

// Entries returns a copy of all entries.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns the entries appended after the first n.
func (l *Logger) Since(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n >= len(l.entries) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	out := make([]Entry, len(l.entries)-n)
	copy(out, l.entries[n:])
	return out
}

// Len returns the number of entries.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Count returns the number of entries at level.
func (l *Logger) Count(level Level) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Clear removes all entries. The mirror file is left as is.
func (l *Logger) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
