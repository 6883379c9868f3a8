package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkoval85/aipulse/internal/flagx"
	"github.com/dkoval85/aipulse/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be given either as a string like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	Provider       string         `json:"provider"`
	GeminiModel    string         `json:"gemini_model"`
	OllamaModel    string         `json:"ollama_model"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DBPath         string         `json:"db_path"`
	LogPath        string         `json:"log_path"`
	Debug          *bool          `json:"debug"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; if neither is set, nothing is loaded.
// Absent fields leave the current value in place. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Provider != "" {
		cfg.Provider = jc.Provider
	}
	if jc.GeminiModel != "" {
		cfg.GeminiModel = jc.GeminiModel
	}
	if jc.OllamaModel != "" {
		cfg.OllamaModel = jc.OllamaModel
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.LogPath != "" {
		cfg.LogPath = jc.LogPath
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
