package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultPath is the path to the studio config file, relative to the process working directory.
const DefaultPath = "config/studio.json"

// Prefs holds studio preferences (AI provider, server address, viewer overlays). Persisted
// across runs. Project content is never stored here.
type Prefs struct {
	Provider        string `json:"provider"` // gemini, openai, groq or ollama
	CodeModel       string `json:"code_model,omitempty"`
	ImageModel      string `json:"image_model,omitempty"`
	OllamaURL       string `json:"ollama_url,omitempty"`
	DefaultTemplate string `json:"default_template"`
	ServerAddr      string `json:"server_addr"`
	LogFile         string `json:"log_file,omitempty"`
	Font            string `json:"font,omitempty"` // family searched under assets/fonts
	GridVisible     bool   `json:"grid_visible"`
	ShowFPS         bool   `json:"show_fps"`
}

// Default returns default preferences (Gemini, basic template, grid on).
func Default() Prefs {
	return Prefs{
		Provider:        "gemini",
		DefaultTemplate: "basic",
		ServerAddr:      "localhost:8080",
		GridVisible:     true,
	}
}

// Load reads preferences from path. Fields missing from the file keep their defaults. If the
// file is missing, returns Default() and does not create a file.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), err
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
