package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/dkoval85/aipulse/internal/config"
	"github.com/dkoval85/aipulse/internal/logging"
	"github.com/dkoval85/aipulse/internal/provider"
	"github.com/dkoval85/aipulse/internal/services"
	"github.com/dkoval85/aipulse/internal/storage"
	"github.com/dkoval85/aipulse/internal/tui"
)

func main() {
	// A .env next to the binary may carry GEMINI_API_KEY.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "aipulse requires an interactive terminal")
		os.Exit(1)
	}

	logger, closeLog, err := logging.NewFileLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = closeLog() }()

	ctx := context.Background()

	kv, db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	client, err := newProviderClient(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing content provider: %v", err)
	}

	authService := services.NewAuthService(kv, logger)
	contentService := services.NewContentService(client, logger)

	logger.Info(ctx, "starting", "version", tui.Version, "provider", cfg.Provider)

	m := tui.New(ctx, authService, contentService, kv, logger)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error(ctx, "ui loop failed", "err", err)
		log.Fatalf("%v", err)
	}
}

func newProviderClient(ctx context.Context, cfg *config.Config) (provider.Client, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return provider.NewOllamaFromEnvironment(cfg.OllamaModel, cfg.RequestTimeout)
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is not set")
		}
		return provider.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RequestTimeout)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
