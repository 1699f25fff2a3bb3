package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// CustomSearch is the Provider backed by the Google Programmable Search
// JSON API. Every source shares the API key and differs by engine ID.
type CustomSearch struct {
	svc *customsearch.Service
	num int64
}

// NewCustomSearch builds the client. An empty endpoint keeps the public
// Google endpoint; num is the number of results requested per query.
func NewCustomSearch(ctx context.Context, apiKey, endpoint string, num int64) (*CustomSearch, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}
	return &CustomSearch{svc: svc, num: num}, nil
}

func (c *CustomSearch) Search(ctx context.Context, engineID, query string) ([]*customsearch.Result, error) {
	resp, err := c.svc.Cse.List().
		Cx(engineID).
		Q(query).
		Start(1).
		Num(c.num).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search engine %s: %w", engineID, err)
	}
	return resp.Items, nil
}
