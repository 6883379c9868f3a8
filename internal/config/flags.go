package config

import (
	"flag"
	"os"
	"time"

	"github.com/dkoval85/aipulse/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-p string   provider adapter: gemini or ollama
//	-m string   model name for the selected provider
//	-t int      provider request timeout in seconds
//	-d string   sqlite database path
//	-l string   log file path
//	-debug      enable debug logging
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-m", "-t", "-d", "-l", "-debug"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Provider, "p", cfg.Provider, "content provider: gemini or ollama")
	model := fs.String("m", "", "model name for the selected provider")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "provider request timeout (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "log file path")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second

	if *model != "" {
		switch cfg.Provider {
		case ProviderOllama:
			cfg.OllamaModel = *model
		default:
			cfg.GeminiModel = *model
		}
	}
}
