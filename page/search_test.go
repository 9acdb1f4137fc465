package page_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Builditluc/wiki-tui/page"
)

func TestSearchFirstPageWithContinuation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"batchcomplete": true,
			"continue": {"sroffset": "10"},
			"query": {
				"searchinfo": {"totalhits": 42, "suggestion": "go", "rewrittenquery": "go"},
				"search": [
					{"ns": 0, "title": "Go", "pageid": 1, "size": 1024, "wordcount": 120, "timestamp": "2024-01-01T00:00:00Z", "snippet": "a language"}
				]
			}
		}`)
	}))
	defer server.Close()

	result, err := page.Search(context.Background(), newTestClient(), server.URL, "go", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 42, result.TotalHits)
	assert.True(t, result.HasMore)
	assert.Equal(t, 10, result.NextOffset)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Go", result.Hits[0].Title)
}

func TestSearchLastPageHasNoContinuation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"batchcomplete": true, "query": {"searchinfo": {"totalhits": 1}, "search": []}}`)
	}))
	defer server.Close()

	result, err := page.Search(context.Background(), newTestClient(), server.URL, "go", 10, 10)
	require.NoError(t, err)
	assert.False(t, result.HasMore)
	assert.Empty(t, result.Hits)
}
