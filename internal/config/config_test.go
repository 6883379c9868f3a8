package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"aipulse"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ProviderGemini, cfg.Provider)
	require.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	require.Equal(t, "test-key", cfg.GeminiAPIKey)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "aipulse.db", cfg.DBPath)
	require.False(t, cfg.Debug)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-p", "ollama", "-m", "mistral", "-t", "10", "-d", "x.db")

	cfg := LoadConfig()

	require.Equal(t, ProviderOllama, cfg.Provider)
	require.Equal(t, "mistral", cfg.OllamaModel)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "x.db", cfg.DBPath)
}

func TestLoadConfig_DoubleDashFlags(t *testing.T) {
	withArgs(t, "--p=ollama", "--debug")

	cfg := LoadConfig()

	require.Equal(t, ProviderOllama, cfg.Provider)
	require.True(t, cfg.Debug)
}

func TestLoadConfig_ModelFlagTargetsSelectedProvider(t *testing.T) {
	withArgs(t, "-m", "gemini-2.5-pro")

	cfg := LoadConfig()

	require.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	require.Equal(t, "llama3.2", cfg.OllamaModel)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"provider": "ollama",
		"ollama_model": "qwen3",
		"request_timeout": "45s",
		"log_path": "other.log",
		"debug": true
	}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	require.Equal(t, ProviderOllama, cfg.Provider)
	require.Equal(t, "qwen3", cfg.OllamaModel)
	require.Equal(t, 45*time.Second, cfg.RequestTimeout)
	require.Equal(t, "other.log", cfg.LogPath)
	require.True(t, cfg.Debug)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider": "ollama", "request_timeout": "45s"}`), 0o600))

	withArgs(t, "-c", path, "-p", "gemini", "-t", "5")

	cfg := LoadConfig()

	require.Equal(t, ProviderGemini, cfg.Provider)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JsonAbsentFieldsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider": "ollama"}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	require.Equal(t, ProviderOllama, cfg.Provider)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "aipulse.db", cfg.DBPath)
}
