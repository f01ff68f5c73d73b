package search

import (
	"context"
	"fmt"
	"log/slog"

	"scout/internal/trace"

	bravesearch "github.com/cnosuke/go-brave-search"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const maxDescription = 300

// Source is one candidate reference found before the agent run starts.
type Source struct {
	Title       string
	URL         string
	Description string
}

// Client seeds prompts with fresh links from Brave web search. The
// hosted agent loop does its own searching; this is only a pre-flight
// pass so the prompt can point at concrete starting URLs.
type Client struct {
	brave *bravesearch.Client
}

func New(apiKey string) (*Client, error) {
	client, err := bravesearch.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("brave client: %w", err)
	}
	return &Client{brave: client}, nil
}

// Seed returns up to count sources for the topic.
func (c *Client) Seed(ctx context.Context, topic string, count int) ([]Source, error) {
	if count <= 0 {
		count = 5
	}
	if count > 20 {
		count = 20
	}

	ctx, span := trace.Tracer().Start(ctx, "search.seed",
		oteltrace.WithAttributes(
			attribute.String("search.topic", topic),
			attribute.Int("search.count", count),
		),
	)
	defer span.End()

	slog.Debug("search: seeding sources", "topic", topic, "count", count)

	resp, err := c.brave.WebSearch(ctx, topic, &bravesearch.WebSearchParams{
		Count: count,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("brave search: %w", err)
	}

	results := resp.GetWebResults()
	sources := make([]Source, 0, len(results))
	for _, r := range results {
		desc := r.Description
		if len(desc) > maxDescription {
			desc = desc[:maxDescription]
		}
		sources = append(sources, Source{
			Title:       r.Title,
			URL:         r.URL,
			Description: desc,
		})
	}

	span.SetAttributes(attribute.Int("search.results", len(sources)))
	slog.Debug("search: seeding done", "topic", topic, "results", len(sources))
	return sources, nil
}
