package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	groqBaseURL   = "https://api.groq.com/openai/v1"
)

// OpenAI implements Client and ImageClient against the OpenAI API and any service that
// speaks the same Chat Completions protocol.
type OpenAI struct {
	BaseURL    string
	name       string
	textModel  string
	imageModel string
	apiKey     string
	client     *http.Client
}

// NewOpenAI returns a Client that uses the OpenAI API with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		BaseURL:    openAIBaseURL,
		name:       "openai",
		textModel:  "gpt-4o-mini",
		imageModel: "gpt-image-1",
		apiKey:     apiKey,
		client:     http.DefaultClient,
	}
}

// NewGroq returns a Client that uses Groq's OpenAI-compatible API with the given API key.
func NewGroq(apiKey string) *OpenAI {
	return &OpenAI{BaseURL: groqBaseURL, name: "groq", textModel: "llama-3.3-70b-versatile", apiKey: apiKey, client: http.DefaultClient}
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	TopP        float64   `json:"top_p,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func (c *OpenAI) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.apiKey)
	return h
}

func (c *OpenAI) url(path string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + path
}

// Complete sends system and user messages to the chat endpoint and returns the assistant reply.
func (c *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: %w", c.name, ErrNoKey)
	}
	body := openAIRequest{
		Model:       orDefault(req.Model, c.textModel),
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, message{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, message{Role: "user", Content: req.Prompt})

	var out openAIResponse
	if err := postJSON(ctx, httpClient(c.client), c.name, c.url("/chat/completions"), c.header(), body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}
	return out.Choices[0].Message.Content, nil
}

type openAIImageRequest struct {
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

// Image calls the images endpoint. Base64 payloads are decoded; URL payloads are returned
// for the caller to fetch.
func (c *OpenAI) Image(ctx context.Context, req ImageRequest) (Image, error) {
	if c.apiKey == "" {
		return Image{}, fmt.Errorf("%s: %w", c.name, ErrNoKey)
	}
	body := openAIImageRequest{Model: orDefault(req.Model, c.imageModel), Prompt: req.Prompt, N: 1, Size: req.Size}
	var out openAIImageResponse
	if err := postJSON(ctx, httpClient(c.client), c.name, c.url("/images/generations"), c.header(), body, &out); err != nil {
		return Image{}, err
	}
	if len(out.Data) == 0 {
		return Image{}, fmt.Errorf("%s: no image in response", c.name)
	}
	d := out.Data[0]
	if d.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(d.B64JSON)
		if err != nil {
			return Image{}, fmt.Errorf("%s: %w", c.name, err)
		}
		return Image{MIMEType: "image/png", Data: data}, nil
	}
	if d.URL != "" {
		return Image{URL: d.URL}, nil
	}
	return Image{}, fmt.Errorf("%s: empty image in response", c.name)
}
