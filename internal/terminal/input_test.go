package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputEditing(t *testing.T) {
	var in Input
	in.Insert("cmd trée\n")
	assert.Equal(t, "cmd trée", in.Text())
	in.Backspace()
	in.Backspace()
	assert.Equal(t, "cmd tr", in.Text())

	_, ok := (&Input{}).Submit()
	assert.False(t, ok)
}

func TestInputHistory(t *testing.T) {
	var in Input
	for _, l := range []string{"cmd save", "cmd status", "cmd status"} {
		in.Insert(l)
		line, ok := in.Submit()
		assert.True(t, ok)
		assert.Equal(t, l, line)
	}
	assert.Empty(t, in.Text())

	in.Prev()
	assert.Equal(t, "cmd status", in.Text())
	in.Prev()
	assert.Equal(t, "cmd save", in.Text())
	in.Prev()
	assert.Equal(t, "cmd save", in.Text())
	in.Next()
	assert.Equal(t, "cmd status", in.Text())
	in.Next()
	assert.Empty(t, in.Text())
	in.Next()
	assert.Empty(t, in.Text())
}
