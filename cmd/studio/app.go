package main

import (
	"context"
	"log"

	"game-studio/internal/assistant"
	"game-studio/internal/config"
	"game-studio/internal/env"
	"game-studio/internal/llm"
	"game-studio/internal/project"
)

// app is the running core shared by every front end: one event loop owning the session.
type app struct {
	loop    *project.Loop
	session *project.Session
	ai      *assistant.Service
}

// start creates the session and runs its event loop until ctx is done.
func start(ctx context.Context, prefs config.Prefs) *app {
	loop := project.NewLoop()
	go func() {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("event loop stopped: %v", err)
		}
	}()
	return &app{
		loop:    loop,
		session: project.NewSession(project.Options{Post: loop.Post, LogFile: prefs.LogFile}),
		ai:      newAssistant(prefs),
	}
}

// newAssistant picks the providers named by the preferences. Hosted providers need an API
// key; without one the assistant reports "API key not configured." on every request. A
// configured Ollama URL backs up hosted text generation.
func newAssistant(prefs config.Prefs) *assistant.Service {
	// Interfaces stay untyped nil when a provider is missing.
	var text llm.Client
	var images llm.ImageClient

	switch prefs.Provider {
	case "openai":
		if key := env.First("OPENAI_API_KEY"); key != "" {
			c := llm.NewOpenAI(key)
			text, images = c, c
		}
	case "groq":
		if key := env.First("GROQ_API_KEY"); key != "" {
			text = llm.NewGroq(key)
		}
	case "ollama":
		text = llm.NewOllama(prefs.OllamaURL)
	default:
		if key := env.First("GEMINI_API_KEY", "API_KEY"); key != "" {
			c := llm.NewGemini(key)
			text, images = c, c
		}
	}
	if text != nil && prefs.Provider != "ollama" && prefs.OllamaURL != "" {
		text = &llm.Fallback{Primary: text, Secondary: llm.NewOllama(prefs.OllamaURL)}
	}
	if text == nil {
		log.Printf("no API key for provider %q; AI generation is disabled", prefs.Provider)
	}
	return assistant.New(text, images, assistant.Options{CodeModel: prefs.CodeModel, ImageModel: prefs.ImageModel})
}
