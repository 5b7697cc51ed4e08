package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	geminiTextModel  = "gemini-2.5-pro"
	geminiImageModel = "gemini-2.5-flash-image"
)

// Gemini implements Client and ImageClient using the Gemini generateContent endpoint.
type Gemini struct {
	BaseURL string
	apiKey  string
	client  *http.Client
}

// NewGemini returns a Client that uses the Gemini API with the given API key.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{BaseURL: geminiBaseURL, apiKey: apiKey, client: http.DefaultClient}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiConfig struct {
	Temperature        float64  `json:"temperature,omitempty"`
	TopP               float64  `json:"topP,omitempty"`
	TopK               int      `json:"topK,omitempty"`
	MaxOutputTokens    int      `json:"maxOutputTokens,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  geminiConfig    `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *Gemini) generate(ctx context.Context, model string, body geminiRequest) ([]geminiPart, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNoKey)
	}
	endpoint := strings.TrimSuffix(c.BaseURL, "/") + "/models/" + url.PathEscape(model) + ":generateContent"
	h := http.Header{}
	h.Set("x-goog-api-key", c.apiKey)
	var out geminiResponse
	if err := postJSON(ctx, httpClient(c.client), "gemini", endpoint, h, body, &out); err != nil {
		return nil, err
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates in response")
	}
	return out.Candidates[0].Content.Parts, nil
}

// Complete sends the prompt with the system instruction and returns the concatenated text
// parts of the first candidate.
func (c *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiConfig{
			Temperature:     req.Temperature,
			TopP:            req.TopP,
			TopK:            req.TopK,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	parts, err := c.generate(ctx, orDefault(req.Model, geminiTextModel), body)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// Image asks an image-capable model for a picture and returns the first inline image part.
func (c *Gemini) Image(ctx context.Context, req ImageRequest) (Image, error) {
	body := geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiConfig{ResponseModalities: []string{"IMAGE"}},
	}
	parts, err := c.generate(ctx, orDefault(req.Model, geminiImageModel), body)
	if err != nil {
		return Image{}, err
	}
	for _, p := range parts {
		if p.InlineData == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return Image{}, fmt.Errorf("gemini: %w", err)
		}
		return Image{MIMEType: p.InlineData.MIMEType, Data: data}, nil
	}
	return Image{}, fmt.Errorf("gemini: no image was generated")
}
