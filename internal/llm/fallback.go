package llm

import "context"

// Fallback tries primary first; if it returns an error, tries secondary.
// Use when the primary provider may be unreachable (e.g. a local Ollama that is not running).
type Fallback struct {
	Primary   Client
	Secondary Client
}

// Complete calls Primary.Complete; on any error, calls Secondary.Complete with the
// secondary's default model, since model names do not carry across providers.
func (f *Fallback) Complete(ctx context.Context, req Request) (string, error) {
	s, err := f.Primary.Complete(ctx, req)
	if err != nil && f.Secondary != nil {
		req.Model = ""
		return f.Secondary.Complete(ctx, req)
	}
	return s, err
}
