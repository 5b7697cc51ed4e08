package terminal

import "unicode/utf8"

// maxHistory bounds the recall buffer of submitted lines.
const maxHistory = 50

// Input is the editable line of the terminal with a recall history of submitted lines.
type Input struct {
	buf     string
	history []string
	recall  int // index into history while browsing; len(history) when not
}

// Text returns the current line.
func (in *Input) Text() string {
	return in.buf
}

// Insert appends typed or pasted text. Newlines from a paste are dropped.
func (in *Input) Insert(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		in.buf += string(r)
	}
}

// Backspace removes the last rune.
func (in *Input) Backspace() {
	if in.buf == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(in.buf)
	in.buf = in.buf[:len(in.buf)-size]
}

// Submit returns the line, records it in the history and clears the buffer. An empty line
// is not submitted.
func (in *Input) Submit() (string, bool) {
	line := in.buf
	if line == "" {
		return "", false
	}
	in.buf = ""
	if len(in.history) == 0 || in.history[len(in.history)-1] != line {
		in.history = append(in.history, line)
		if len(in.history) > maxHistory {
			in.history = in.history[1:]
		}
	}
	in.recall = len(in.history)
	return line, true
}

// Prev replaces the line with the previous history entry.
func (in *Input) Prev() {
	if in.recall > 0 {
		in.recall--
		in.buf = in.history[in.recall]
	}
}

// Next moves forward through the history, ending on an empty line.
func (in *Input) Next() {
	if in.recall >= len(in.history) {
		return
	}
	in.recall++
	if in.recall == len(in.history) {
		in.buf = ""
		return
	}
	in.buf = in.history[in.recall]
}
