// Package provider contains thin adapters over external generative-AI
// services. Adapters parse and validate provider output at the boundary;
// anything structurally off becomes an error here, never a half-filled item
// downstream.
package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkoval85/aipulse/internal/common"
	"github.com/dkoval85/aipulse/internal/models"
)

// RawItem is one synthesized news entry as the provider returns it, before
// the content service turns it into a models.NewsItem.
type RawItem struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Summary      string `json:"summary"`
	Source       string `json:"source"`
	VisualPrompt string `json:"visualPrompt"`
}

// Client is the content-provider port.
//
// Contract:
//   - GenerateNews: ask for count synthesized items matching the structured
//     output schema; a malformed response is an error, not a partial list.
//   - GroundedAnswer: free-text answer plus citations; citations missing
//     either URI or title are filtered out by the adapter.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	GenerateNews(ctx context.Context, prompt string, count int) ([]RawItem, error)
	GroundedAnswer(ctx context.Context, query string) (string, []models.Source, error)
}

// decodeItems parses a JSON array of raw items and validates the structured
// output contract. Source may be empty (the content service substitutes a
// default); everything else is required.
func decodeItems(data []byte) ([]RawItem, error) {
	var items []RawItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProviderResponse, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty item list", common.ErrProviderResponse)
	}
	for i, item := range items {
		if item.Title == "" || item.Category == "" || item.Summary == "" || item.VisualPrompt == "" {
			return nil, fmt.Errorf("%w: item %d is missing required fields", common.ErrProviderResponse, i)
		}
	}
	return items, nil
}
