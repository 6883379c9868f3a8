// Package config holds runtime settings for the aipulse client and the
// layered loading scheme: defaults, then a JSON file, then command-line
// flags, with later sources taking precedence.
package config

import (
	"os"
	"time"
)

// Provider kinds selectable at startup.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds runtime settings for the aipulse client.
//
// Fields:
//   - Provider: which content-provider adapter to use ("gemini" or "ollama").
//   - GeminiModel / GeminiAPIKey: Gemini adapter settings; the key comes from
//     the GEMINI_API_KEY environment variable (a .env file is honored).
//   - OllamaModel: model name for the local ollama adapter.
//   - RequestTimeout: per-request deadline for provider calls.
//   - DBPath: sqlite file holding accounts, session and read state.
//   - LogPath: log file; the TUI owns the terminal so logs go to disk.
type Config struct {
	Provider       string
	GeminiModel    string
	GeminiAPIKey   string
	OllamaModel    string
	RequestTimeout time.Duration
	DBPath         string
	LogPath        string
	Debug          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Provider = ProviderGemini
	c.GeminiModel = "gemini-2.5-flash"
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.OllamaModel = "llama3.2"
	c.RequestTimeout = 30 * time.Second
	c.DBPath = "aipulse.db"
	c.LogPath = "aipulse.log"
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
