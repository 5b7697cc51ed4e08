package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiComplete(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"print("},{"text":"1)"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGemini("k")
	c.BaseURL = srv.URL
	out, err := c.Complete(context.Background(), Request{
		Model: "gemini-2.5-pro", System: "sys", Prompt: "spin", Temperature: 0.4, TopP: 0.95, MaxTokens: 1024,
	})
	require.NoError(t, err)
	assert.Equal(t, "print(1)", out)
	assert.Equal(t, "sys", got.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "spin", got.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.4, got.GenerationConfig.Temperature)
	assert.Equal(t, 1024, got.GenerationConfig.MaxOutputTokens)
}

func TestGeminiImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, []string{"IMAGE"}, req.GenerationConfig.ResponseModalities)
		json.NewEncoder(w).Encode(geminiResponse{Candidates: []struct {
			Content geminiContent `json:"content"`
		}{{Content: geminiContent{Parts: []geminiPart{
			{Text: "here you go"},
			{InlineData: &geminiInlineData{MIMEType: "image/png", Data: base64.StdEncoding.EncodeToString(png)}},
		}}}}})
	}))
	defer srv.Close()

	c := NewGemini("k")
	c.BaseURL = srv.URL
	img, err := c.Image(context.Background(), ImageRequest{Model: "img", Prompt: "stone wall"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, png, img.Data)
}

func TestGeminiNoImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`))
	}))
	defer srv.Close()
	c := NewGemini("k")
	c.BaseURL = srv.URL
	_, err := c.Image(context.Background(), ImageRequest{Prompt: "x"})
	assert.ErrorContains(t, err, "no image was generated")
}

func TestMissingKey(t *testing.T) {
	_, err := NewGemini("").Complete(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNoKey)
	_, err = NewOpenAI("").Image(context.Background(), ImageRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestOpenAICompleteAndStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		if calls == 2 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		var req openAIRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Len(t, req.Messages, 2)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewGroq("k")
	c.BaseURL = srv.URL
	out, err := c.Complete(context.Background(), Request{Model: "m", System: "s", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = c.Complete(context.Background(), Request{Prompt: "p"})
	assert.ErrorContains(t, err, "groq: 429 Too Many Requests: rate limited")
}

func TestDefaultModels(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		got = append(got, req.Model)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	for _, c := range []*OpenAI{NewOpenAI("k"), NewGroq("k")} {
		c.BaseURL = srv.URL
		_, err := c.Complete(context.Background(), Request{Prompt: "p"})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"gpt-4o-mini", "llama-3.3-70b-versatile"}, got)
}

func TestOpenAIImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		w.Write([]byte(`{"data":[{"url":"https://example.com/a.png"}]}`))
	}))
	defer srv.Close()
	c := NewOpenAI("k")
	c.BaseURL = srv.URL
	img, err := c.Image(context.Background(), ImageRequest{Prompt: "x", Size: "512x512"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", img.URL)
}

func TestOllama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "qwen2.5-coder", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 1024, req.Options.NumPredict)
		w.Write([]byte(`{"message":{"role":"assistant","content":"local"}}`))
	}))
	defer srv.Close()
	out, err := NewOllama(srv.URL+"/").Complete(context.Background(), Request{Prompt: "p", MaxTokens: 1024})
	require.NoError(t, err)
	assert.Equal(t, "local", out)
}

type stubClient struct {
	out string
	err error
}

func (s stubClient) Complete(context.Context, Request) (string, error) { return s.out, s.err }

func TestFallback(t *testing.T) {
	f := &Fallback{Primary: stubClient{err: errors.New("down")}, Secondary: stubClient{out: "backup"}}
	out, err := f.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "backup", out)

	f = &Fallback{Primary: stubClient{err: errors.New("down")}}
	_, err = f.Complete(context.Background(), Request{})
	assert.Error(t, err)
}
