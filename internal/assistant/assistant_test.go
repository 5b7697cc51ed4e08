package assistant

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-studio/internal/document"
	"game-studio/internal/llm"
	"game-studio/internal/logger"
	"game-studio/internal/templates"
)

type fakeText struct {
	reply string
	err   error
	got   llm.Request
}

func (f *fakeText) Complete(_ context.Context, req llm.Request) (string, error) {
	f.got = req
	return f.reply, f.err
}

type fakeImages struct {
	img llm.Image
	err error
}

func (f *fakeImages) Image(context.Context, llm.ImageRequest) (llm.Image, error) {
	return f.img, f.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "print(1)", StripFences("```lua\nprint(1)\n```"))
	assert.Equal(t, "print(1)", StripFences("```\nprint(1)\n```"))
	assert.Equal(t, "print(1)", StripFences("  print(1)\n"))
}

func TestGenerateCodeSettings(t *testing.T) {
	text := &fakeText{reply: "```lua\nlocal x = 1\n```"}
	s := New(text, nil, Options{})
	out, err := s.GenerateCode(context.Background(), "make x")
	require.NoError(t, err)
	assert.Equal(t, "local x = 1", out)
	assert.Equal(t, 0.4, text.got.Temperature)
	assert.Equal(t, 0.95, text.got.TopP)
	assert.Equal(t, 1024, text.got.MaxTokens)
	assert.Empty(t, text.got.Model, "provider default")
	assert.Contains(t, text.got.System, "Lua")
}

func TestNotConfigured(t *testing.T) {
	s := New(nil, nil, Options{})
	r := s.Generate(context.Background(), Code, "x")
	assert.EqualError(t, r.Err, "API key not configured.")
	r = s.Generate(context.Background(), Texture, "x")
	assert.ErrorIs(t, r.Err, ErrNotConfigured)
}

func TestProviderFailureIsWrapped(t *testing.T) {
	cause := errors.New("gemini: 500")
	s := New(&fakeText{err: cause}, nil, Options{})
	r := s.Generate(context.Background(), Code, "x")
	assert.EqualError(t, r.Err, "Failed to generate code.")
	assert.ErrorIs(t, r.Err, cause)
}

func TestGenerateTextureInline(t *testing.T) {
	s := New(nil, &fakeImages{img: llm.Image{MIMEType: "image/png", Data: pngBytes(t, 8, 8)}}, Options{})
	out, err := s.GenerateTexture(context.Background(), "stone")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
}

func TestGenerateTextureByURL(t *testing.T) {
	fetched := ""
	s := New(nil, &fakeImages{img: llm.Image{URL: "https://img/x"}}, Options{
		Fetch: func(_ context.Context, url string) ([]byte, string, error) {
			fetched = url
			return pngBytes(t, 4, 4), "image/png", nil
		},
	})
	_, err := s.GenerateTexture(context.Background(), "stone")
	require.NoError(t, err)
	assert.Equal(t, "https://img/x", fetched)
}

func TestEmptyPrompt(t *testing.T) {
	s := New(&fakeText{}, nil, Options{})
	r := s.Generate(context.Background(), Code, "   ")
	assert.ErrorIs(t, r.Err, ErrEmptyPrompt)
	_, ok := s.LastPrompt(Code)
	assert.False(t, ok)
}

func TestStartAndRetry(t *testing.T) {
	text := &fakeText{reply: "print(2)"}
	s := New(text, nil, Options{})
	assert.ErrorIs(t, s.Retry(context.Background(), Code, func(Result) {}), ErrNoPrompt)

	results := make(chan Result, 1)
	s.Start(context.Background(), Code, " spin it ", func(r Result) { results <- r })
	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, "spin it", r.Prompt)
		assert.Equal(t, "print(2)", r.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("no result")
	}

	require.NoError(t, s.Retry(context.Background(), Code, func(r Result) { results <- r }))
	r := <-results
	assert.Equal(t, "spin it", r.Prompt)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Texture")
	require.NoError(t, err)
	assert.Equal(t, Texture, k)
	_, err = ParseKind("audio")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func newDoc(t *testing.T) *document.Document {
	t.Helper()
	d, err := document.New(templates.Instantiate("basic"), logger.New())
	require.NoError(t, err)
	return d
}

func lastMessage(l *logger.Logger) logger.Entry {
	e := l.Entries()
	return e[len(e)-1]
}

func TestReport(t *testing.T) {
	l := logger.New()
	Announce(l, Code, "spin")
	assert.Equal(t, `AI Assistant: Generating code for prompt "spin"...`, lastMessage(l).Message)

	Report(l, Result{Kind: Texture, Content: "x"})
	assert.Equal(t, "AI Assistant: texture generated successfully.", lastMessage(l).Message)

	Report(l, Result{Kind: Code, Err: ErrNotConfigured})
	assert.Equal(t, logger.Entry{Level: logger.LevelError, Message: "AI Assistant Error: API key not configured.", Timestamp: lastMessage(l).Timestamp}, lastMessage(l))
}

func TestInsertCode(t *testing.T) {
	d := newDoc(t)
	require.NoError(t, InsertCode(d, "print('ai')"))
	content, err := d.ActiveContent()
	require.NoError(t, err)
	assert.Equal(t, "print('ai')", content)
	assert.Equal(t, "AI code inserted into current script.", lastMessage(d.Console()).Message)
}

func TestCreateScript(t *testing.T) {
	d := newDoc(t)
	n, err := CreateScript(d, "print('new')")
	require.NoError(t, err)
	assert.Equal(t, n.ID, d.Selection().ActiveScript)
}

func TestApplyTexture(t *testing.T) {
	d := newDoc(t)
	require.NoError(t, d.SelectObject("cube-1"))
	require.NoError(t, ApplyTexture(d, "data:image/png;base64,AAAA"))
	o, _ := d.Object("cube-1")
	assert.Equal(t, "data:image/png;base64,AAAA", o.Texture)
	assert.Equal(t, "Texture applied to CoolCube", lastMessage(d.Console()).Message)

	require.NoError(t, d.SelectObject(""))
	assert.ErrorIs(t, ApplyTexture(d, "x"), ErrNoObjectSelected)
}
