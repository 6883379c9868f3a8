package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkoval85/aipulse/internal/logging"
	"github.com/dkoval85/aipulse/internal/models"
	"github.com/dkoval85/aipulse/internal/provider"
)

const (
	primaryFeedCount  = 5
	trendingFeedCount = 4

	defaultNewsSource  = "AI Daily"
	defaultTrendSource = "Social Sphere"

	trendingCategory  = "TRENDING"
	trendingTimestamp = "LIVE"

	researchFallback = "Connection to global knowledge base interrupted. Please try again."
	emptyAnswer      = "No insights found."
)

const primaryFeedPrompt = `Generate 5 futuristic, cutting-edge news headlines about Artificial Intelligence, LLMs, Robotics, and Quantum Computing.
Imagine this is a news feed from next week.
Focus on breakthroughs, ethics, and hardware.
The content should feel technical and exciting.`

const trendingFeedPrompt = `Identify 4 distinct "Viral" or "Trending" topics in the world of AI right now.
Focus on controversial, highly debated, or "mind-blowing" demonstrations.
Examples: New model releases, deepfake controversies, AGI predictions.
Return them as news items.`

// ContentService turns raw provider output into display-ready news items and
// research results, applying the swallow-errors contract the UI relies on:
// feed fetches degrade to an empty list, research degrades to a fallback
// answer.
type ContentService struct {
	client provider.Client
	log    logging.Logger
	now    func() time.Time
}

func NewContentService(client provider.Client, log logging.Logger) *ContentService {
	return &ContentService{client: client, log: log, now: time.Now}
}

// FetchPrimaryFeed requests the synthesized home feed. An empty result means
// the fetch failed; the caller keeps the previous list.
func (s *ContentService) FetchPrimaryFeed(ctx context.Context) []models.NewsItem {
	raw, err := s.client.GenerateNews(ctx, primaryFeedPrompt, primaryFeedCount)
	if err != nil {
		s.log.Warn(ctx, "primary feed fetch failed", "err", err)
		return nil
	}

	items := make([]models.NewsItem, 0, len(raw))
	for i, r := range raw {
		items = append(items, models.NewsItem{
			ID:        uuid.NewString(),
			Title:     r.Title,
			Category:  strings.ToUpper(r.Category),
			Summary:   r.Summary,
			Timestamp: s.now().Format("3:04 PM"),
			ImageURL:  imageURL(r.VisualPrompt, i, ""),
			Source:    orDefault(r.Source, defaultNewsSource),
		})
	}
	return items
}

// FetchTrendingFeed requests the viral-topics feed. Category and timestamp
// are forced to constant markers; the same empty-on-error contract applies.
func (s *ContentService) FetchTrendingFeed(ctx context.Context) []models.NewsItem {
	raw, err := s.client.GenerateNews(ctx, trendingFeedPrompt, trendingFeedCount)
	if err != nil {
		s.log.Warn(ctx, "trending feed fetch failed", "err", err)
		return nil
	}

	items := make([]models.NewsItem, 0, len(raw))
	for i, r := range raw {
		items = append(items, models.NewsItem{
			ID:        uuid.NewString(),
			Title:     r.Title,
			Category:  trendingCategory,
			Summary:   r.Summary,
			Timestamp: trendingTimestamp,
			ImageURL:  imageURL(r.VisualPrompt, i, "trend"),
			Source:    orDefault(r.Source, defaultTrendSource),
		})
	}
	return items
}

// Research runs a grounded free-text query. Provider failures come back as a
// fixed fallback answer rather than an error; sources are deduplicated by URI
// keeping the first occurrence.
func (s *ContentService) Research(ctx context.Context, query string) models.SearchResult {
	text, sources, err := s.client.GroundedAnswer(ctx, query)
	if err != nil {
		s.log.Warn(ctx, "research query failed", "err", err)
		return models.SearchResult{Text: researchFallback, Sources: []models.Source{}}
	}
	if text == "" {
		text = emptyAnswer
	}
	return models.SearchResult{Text: text, Sources: dedupeSources(sources)}
}

// AnalysisPrompt builds the auto-query used when the user opens an article
// for deep analysis.
func AnalysisPrompt(title string) string {
	return fmt.Sprintf("Analyze and explain this topic in depth: %q", title)
}

func dedupeSources(in []models.Source) []models.Source {
	out := make([]models.Source, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, src := range in {
		if _, ok := seen[src.URI]; ok {
			continue
		}
		seen[src.URI] = struct{}{}
		out = append(out, src)
	}
	return out
}

func imageURL(keyword string, index int, suffix string) string {
	seed := strings.ReplaceAll(keyword, " ", "")
	return fmt.Sprintf("https://picsum.photos/seed/%s%s%d/800/600", seed, suffix, index)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
