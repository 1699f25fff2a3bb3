package search

import (
	"encoding/json"

	"github.com/anonto42/curious/backend/internal/models"
	"google.golang.org/api/customsearch/v1"
)

// NotAvailable fills fields a result does not carry
const NotAvailable = "N/A"

type pagemap struct {
	Metatags []map[string]any `json:"metatags"`
}

// Normalize maps raw results to candidates tagged with source. Results
// without pagemap metatags are dropped.
func Normalize(items []*customsearch.Result, source string) []models.ContentCandidate {
	out := make([]models.ContentCandidate, 0, len(items))
	for _, item := range items {
		if item == nil || len(item.Pagemap) == 0 {
			continue
		}
		var pm pagemap
		if err := json.Unmarshal(item.Pagemap, &pm); err != nil || len(pm.Metatags) == 0 {
			continue
		}
		meta := pm.Metatags[0]

		out = append(out, models.ContentCandidate{
			Title:           orNA(item.Title),
			Snippet:         orNA(item.Snippet),
			Link:            orNA(item.Link),
			LongDescription: metaString(meta, "og:description"),
			Image:           metaString(meta, "og:image"),
			Source:          source,
		})
	}
	return out
}

func metaString(meta map[string]any, key string) string {
	if s, ok := meta[key].(string); ok && s != "" {
		return s
	}
	return NotAvailable
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
