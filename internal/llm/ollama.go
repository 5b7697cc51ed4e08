package llm

import (
	"context"
	"net/http"
	"strings"
)

// DefaultOllamaBaseURL is the default base URL for a local Ollama server.
const DefaultOllamaBaseURL = "http://localhost:11434"

const ollamaModel = "qwen2.5-coder"

// Ollama implements Client using the Ollama /api/chat endpoint (e.g. Qwen 2.5 Coder, Llama).
type Ollama struct {
	baseURL string
	client  *http.Client
}

// NewOllama returns a Client that uses the Ollama API at baseURL (e.g. http://localhost:11434).
// If baseURL is empty, DefaultOllamaBaseURL is used.
func NewOllama(baseURL string) *Ollama {
	u := strings.TrimSuffix(baseURL, "/")
	if u == "" {
		u = DefaultOllamaBaseURL
	}
	return &Ollama{
		baseURL: u,
		client:  http.DefaultClient,
	}
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaChatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

// Complete sends system and user messages to Ollama and returns the assistant reply.
func (c *Ollama) Complete(ctx context.Context, req Request) (string, error) {
	body := ollamaChatRequest{
		Model:  orDefault(req.Model, ollamaModel),
		Stream: false,
		Messages: []message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Options: ollamaOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			TopK:        req.TopK,
			NumPredict:  req.MaxTokens,
		},
	}
	var out ollamaChatResponse
	if err := postJSON(ctx, httpClient(c.client), "ollama", c.baseURL+"/api/chat", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message.Content, nil
}
