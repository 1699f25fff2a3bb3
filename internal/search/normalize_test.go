package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
)

func TestNormalize(t *testing.T) {
	items := []*customsearch.Result{
		{
			Title:   "How volcanoes work",
			Snippet: "A primer",
			Link:    "https://example.com/a",
			Pagemap: googleapi.RawMessage(`{"metatags": [{"og:description": "Long text", "og:image": "https://example.com/a.png"}]}`),
		},
		{
			Title: "No pagemap",
			Link:  "https://example.com/b",
		},
		{
			Title:   "Empty metatags",
			Pagemap: googleapi.RawMessage(`{"metatags": []}`),
		},
		{
			Title:   "Other pagemap keys",
			Pagemap: googleapi.RawMessage(`{"cse_image": [{"src": "x"}]}`),
		},
		{
			Link:    "https://example.com/c",
			Pagemap: googleapi.RawMessage(`{"metatags": [{"og:type": "video", "og:image": 3}]}`),
		},
		nil,
	}

	out := Normalize(items, "youtube")
	require.Len(t, out, 2)

	assert.Equal(t, "How volcanoes work", out[0].Title)
	assert.Equal(t, "A primer", out[0].Snippet)
	assert.Equal(t, "https://example.com/a", out[0].Link)
	assert.Equal(t, "Long text", out[0].LongDescription)
	assert.Equal(t, "https://example.com/a.png", out[0].Image)
	assert.Equal(t, "youtube", out[0].Source)

	assert.Equal(t, NotAvailable, out[1].Title)
	assert.Equal(t, NotAvailable, out[1].Snippet)
	assert.Equal(t, "https://example.com/c", out[1].Link)
	assert.Equal(t, NotAvailable, out[1].LongDescription)
	assert.Equal(t, NotAvailable, out[1].Image)
}

func TestNormalize_Empty(t *testing.T) {
	out := Normalize(nil, "reddit")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
