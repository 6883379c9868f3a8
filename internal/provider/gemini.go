package provider

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/dkoval85/aipulse/internal/common"
	"github.com/dkoval85/aipulse/internal/models"
)

// Gemini adapts the Google Gemini API to the Client port. Feeds use JSON
// structured output; research uses the googleSearch tool and reads citations
// from the grounding metadata.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

func newsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":        {Type: genai.TypeString},
				"category":     {Type: genai.TypeString},
				"summary":      {Type: genai.TypeString},
				"source":       {Type: genai.TypeString},
				"visualPrompt": {Type: genai.TypeString, Description: "A keyword describing the thumbnail image"},
			},
			Required: []string{"title", "category", "summary", "source", "visualPrompt"},
		},
	}
}

func (g *Gemini) GenerateNews(ctx context.Context, prompt string, count int) ([]RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   newsSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
	}

	items, err := decodeItems([]byte(resp.Text()))
	if err != nil {
		return nil, err
	}
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

func (g *Gemini) GroundedAnswer(ctx context.Context, query string) (string, []models.Source, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(query), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
	}

	var sources []models.Source
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			web := chunk.Web
			// Citations need both a URI and a title to be usable.
			if web == nil || web.URI == "" || web.Title == "" {
				continue
			}
			sources = append(sources, models.Source{URI: web.URI, Title: web.Title})
		}
	}

	return resp.Text(), sources, nil
}
