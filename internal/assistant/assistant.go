// Package assistant generates Lua code and textures for the editor from natural-language
// prompts. Requests run off the event loop and report back with exactly one Result.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"game-studio/internal/download"
	"game-studio/internal/llm"
	"game-studio/internal/texture"
)

// Kind selects the generator.
type Kind string

const (
	Code    Kind = "code"
	Texture Kind = "texture"
)

const DefaultTimeout = 90 * time.Second

var (
	// ErrNotConfigured is shown to the user verbatim.
	ErrNotConfigured = errors.New("API key not configured.")
	ErrEmptyPrompt   = errors.New("prompt is empty")
	ErrNoPrompt      = errors.New("nothing to retry")
	ErrUnknownKind   = errors.New("unknown generator")
)

// GenerationError hides provider details behind a short message for the console. The cause
// stays reachable through errors.Unwrap.
type GenerationError struct {
	Task Kind
	Err  error
}

func (e *GenerationError) Error() string { return "Failed to generate " + string(e.Task) + "." }

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseKind accepts "code" or "texture".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Code, Texture:
		return k, nil
	}
	return "", ErrUnknownKind
}

// Result is the terminal outcome of one request.
type Result struct {
	Kind    Kind
	Prompt  string
	Content string
	Err     error
}

// Options configures a Service. Zero fields take the defaults.
type Options struct {
	// Empty models leave the choice to the provider.
	CodeModel  string
	ImageModel string
	Timeout    time.Duration
	// Fetch downloads images returned by URL. Defaults to download.Fetch.
	Fetch func(ctx context.Context, url string) ([]byte, string, error)
}

// Service talks to the text and image models. A nil client means the provider has no API
// key; requests then fail with ErrNotConfigured.
type Service struct {
	text   llm.Client
	images llm.ImageClient
	opts   Options

	mu   sync.Mutex
	last map[Kind]string
}

func New(text llm.Client, images llm.ImageClient, opts Options) *Service {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Fetch == nil {
		opts.Fetch = download.Fetch
	}
	return &Service{text: text, images: images, opts: opts, last: make(map[Kind]string)}
}

// GenerateCode returns Lua source for prompt with any markdown fences removed.
func (s *Service) GenerateCode(ctx context.Context, prompt string) (string, error) {
	if s.text == nil {
		return "", ErrNotConfigured
	}
	out, err := s.text.Complete(ctx, llm.Request{
		Model:       s.opts.CodeModel,
		System:      codeSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.4,
		TopP:        0.95,
		TopK:        64,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", &GenerationError{Task: Code, Err: err}
	}
	return StripFences(out), nil
}

// GenerateTexture returns a normalized PNG data URL for prompt.
func (s *Service) GenerateTexture(ctx context.Context, prompt string) (string, error) {
	if s.images == nil {
		return "", ErrNotConfigured
	}
	img, err := s.images.Image(ctx, llm.ImageRequest{Model: s.opts.ImageModel, Prompt: prompt, Size: "512x512"})
	if err != nil {
		return "", &GenerationError{Task: Texture, Err: err}
	}
	data := img.Data
	if len(data) == 0 && img.URL != "" {
		data, _, err = s.opts.Fetch(ctx, img.URL)
		if err != nil {
			return "", &GenerationError{Task: Texture, Err: err}
		}
	}
	url, err := texture.Normalize(data)
	if err != nil {
		return "", &GenerationError{Task: Texture, Err: err}
	}
	return url, nil
}

// Generate runs the generator for kind synchronously.
func (s *Service) Generate(ctx context.Context, kind Kind, prompt string) Result {
	prompt = strings.TrimSpace(prompt)
	r := Result{Kind: kind, Prompt: prompt}
	if prompt == "" {
		r.Err = ErrEmptyPrompt
		return r
	}
	s.mu.Lock()
	s.last[kind] = prompt
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	switch kind {
	case Code:
		r.Content, r.Err = s.GenerateCode(ctx, prompt)
	case Texture:
		r.Content, r.Err = s.GenerateTexture(ctx, prompt)
	default:
		r.Err = ErrUnknownKind
	}
	return r
}

// Start runs the generator on its own goroutine and calls deliver once with the outcome.
// deliver runs on that goroutine; hosts post it to their event loop.
func (s *Service) Start(ctx context.Context, kind Kind, prompt string, deliver func(Result)) {
	go func() {
		deliver(s.Generate(ctx, kind, prompt))
	}()
}

// Retry repeats the last prompt sent to kind.
func (s *Service) Retry(ctx context.Context, kind Kind, deliver func(Result)) error {
	s.mu.Lock()
	prompt, ok := s.last[kind]
	s.mu.Unlock()
	if !ok {
		return ErrNoPrompt
	}
	s.Start(ctx, kind, prompt, deliver)
	return nil
}

// LastPrompt returns the last prompt sent to kind.
func (s *Service) LastPrompt(kind Kind) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.last[kind]
	return p, ok
}

// StripFences removes a leading ``` or ```lua fence and the closing fence.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "lua")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
