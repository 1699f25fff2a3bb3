package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchServer(t *testing.T, status int, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCustomSearch_Search(t *testing.T) {
	var query url.Values
	srv := newSearchServer(t, http.StatusOK, `{
		"kind": "customsearch#search",
		"items": [
			{
				"title": "Volcano 101",
				"link": "https://youtube.com/watch?v=1",
				"snippet": "Intro",
				"pagemap": {"metatags": [{"og:description": "All about volcanoes", "og:image": "https://i.ytimg.com/1.jpg"}]}
			}
		]
	}`, &query)

	cs, err := NewCustomSearch(context.Background(), "test-key", srv.URL+"/", 2)
	require.NoError(t, err)

	items, err := cs.Search(context.Background(), "engine-yt", "Volcanology eruptions")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Volcano 101", items[0].Title)

	assert.Equal(t, "engine-yt", query.Get("cx"))
	assert.Equal(t, "Volcanology eruptions", query.Get("q"))
	assert.Equal(t, "1", query.Get("start"))
	assert.Equal(t, "2", query.Get("num"))

	candidates := Normalize(items, "youtube")
	require.Len(t, candidates, 1)
	assert.Equal(t, "All about volcanoes", candidates[0].LongDescription)
}

func TestCustomSearch_HTTPError(t *testing.T) {
	srv := newSearchServer(t, http.StatusTooManyRequests, `{"error": {"code": 429, "message": "quota"}}`, nil)

	cs, err := NewCustomSearch(context.Background(), "test-key", srv.URL+"/", 2)
	require.NoError(t, err)

	_, err = cs.Search(context.Background(), "engine-yt", "volcano")
	assert.Error(t, err)
}
