package llm

import (
	"context"
	"errors"
)

// ErrNoKey is returned by hosted providers constructed without an API key.
var ErrNoKey = errors.New("API key not set")

// Request is a single-turn completion request. Zero sampling fields leave the provider
// default in place.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

// Client sends a prompt to an LLM and returns the reply text.
// Model is provider-specific (e.g. "gemini-2.5-pro", "gpt-4o-mini"); empty picks the
// provider's default.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ImageRequest asks an image model for one picture.
type ImageRequest struct {
	Model  string
	Prompt string
	Size   string // e.g. "512x512"; ignored by providers without size control
}

// Image is a generated picture. Providers return either the bytes or a URL to fetch them
// from.
type Image struct {
	MIMEType string
	Data     []byte
	URL      string
}

// ImageClient generates images from text.
type ImageClient interface {
	Image(ctx context.Context, req ImageRequest) (Image, error)
}

func orDefault(model, def string) string {
	if model == "" {
		return def
	}
	return model
}
