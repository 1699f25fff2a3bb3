// Package search fans a query out to the configured content sources and
// normalizes what they return.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/anonto42/curious/backend/internal/metrics"
	"github.com/anonto42/curious/backend/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/customsearch/v1"
)

// Provider runs one query against one scoped search engine
type Provider interface {
	Search(ctx context.Context, engineID, query string) ([]*customsearch.Result, error)
}

// Source names a content source and the engine that searches it
type Source struct {
	Name     string
	EngineID string
}

// Gateway queries every source concurrently. A failing source yields an
// empty list; it never fails the call.
type Gateway struct {
	provider Provider
	sources  []Source
	timeout  time.Duration
	logger   *zap.Logger
}

func NewGateway(provider Provider, sources []Source, timeout time.Duration, logger *zap.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		sources:  sources,
		timeout:  timeout,
		logger:   logger.Named("search"),
	}
}

// SourceNames returns the source names in their fixed iteration order
func (g *Gateway) SourceNames() []string {
	names := make([]string, len(g.sources))
	for i, s := range g.sources {
		names[i] = s.Name
	}
	return names
}

// SearchAll returns a map holding every source name. It blocks until all
// sources have answered or timed out.
func (g *Gateway) SearchAll(ctx context.Context, query string) map[string][]models.ContentCandidate {
	results := make([][]models.ContentCandidate, len(g.sources))

	var wg sync.WaitGroup
	for i, src := range g.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i] = g.searchOne(ctx, src, query)
		}(i, src)
	}
	wg.Wait()

	out := make(map[string][]models.ContentCandidate, len(g.sources))
	for i, src := range g.sources {
		out[src.Name] = results[i]
	}
	return out
}

func (g *Gateway) searchOne(ctx context.Context, src Source, query string) []models.ContentCandidate {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	items, err := g.provider.Search(ctx, src.EngineID, query)
	metrics.SearchLatency.WithLabelValues(src.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequests.WithLabelValues(src.Name, "degraded").Inc()
		g.logger.Warn("Search failed, continuing without source",
			zap.String("source", src.Name),
			zap.String("query", query),
			zap.Error(err))
		return []models.ContentCandidate{}
	}
	metrics.SearchRequests.WithLabelValues(src.Name, "ok").Inc()

	candidates := Normalize(items, src.Name)
	g.logger.Debug("Search finished",
		zap.String("source", src.Name),
		zap.Int("items", len(items)),
		zap.Int("kept", len(candidates)))
	return candidates
}
