package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"

	"github.com/dkoval85/aipulse/internal/common"
	"github.com/dkoval85/aipulse/internal/models"
)

// newsFormat is the JSON schema handed to ollama's structured output mode.
// It mirrors the Gemini response schema.
var newsFormat = json.RawMessage(`{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"title":        {"type": "string"},
			"category":     {"type": "string"},
			"summary":      {"type": "string"},
			"source":       {"type": "string"},
			"visualPrompt": {"type": "string"}
		},
		"required": ["title", "category", "summary", "source", "visualPrompt"]
	}
}`)

// Ollama adapts a local ollama model to the Client port. Local models have no
// web grounding, so research answers come back without citations.
type Ollama struct {
	client  *ollama.Client
	model   string
	timeout time.Duration
}

// NewOllamaFromEnvironment connects to the ollama host configured via
// OLLAMA_HOST (or the default local address).
func NewOllamaFromEnvironment(model string, timeout time.Duration) (*Ollama, error) {
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	return &Ollama{client: client, model: model, timeout: timeout}, nil
}

func (o *Ollama) generate(ctx context.Context, prompt string, format json.RawMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var response strings.Builder
	err := o.client.Generate(ctx, &ollama.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Format: format,
		Options: map[string]interface{}{
			"temperature": 0.2,
		},
	}, func(res ollama.GenerateResponse) error {
		response.WriteString(res.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
	}

	return removeThinkBlock(response.String()), nil
}

func (o *Ollama) GenerateNews(ctx context.Context, prompt string, count int) ([]RawItem, error) {
	out, err := o.generate(ctx, prompt, newsFormat)
	if err != nil {
		return nil, err
	}

	items, err := decodeItems([]byte(out))
	if err != nil {
		return nil, err
	}
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

func (o *Ollama) GroundedAnswer(ctx context.Context, query string) (string, []models.Source, error) {
	out, err := o.generate(ctx, query, nil)
	if err != nil {
		return "", nil, err
	}
	return out, nil, nil
}

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// removeThinkBlock strips reasoning traces some local models emit before the
// actual answer.
func removeThinkBlock(input string) string {
	return strings.TrimSpace(thinkBlockRe.ReplaceAllString(input, ""))
}
