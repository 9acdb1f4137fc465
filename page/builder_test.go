package page_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Builditluc/wiki-tui/language"
	"github.com/Builditluc/wiki-tui/page"
)

func newTestClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 0
	return client
}

func TestFetchMissingIdentifierFails(t *testing.T) {
	_, err := page.NewBuilder("https://en.wikipedia.org/w/api.php", language.Unknown).Fetch(context.Background())
	require.Error(t, err)
}

func TestFetchShapesTitleSectionsAndLangLinks(t *testing.T) {
	const body = `{
		"parse": {
			"title": "Go (programming language)",
			"pageid": 25039021,
			"revid": 1,
			"text": "<body><p>Hello <b>world</b></p></body>",
			"sections": [
				{"toclevel": 1, "level": "1", "line": "History", "number": "1", "index": "1", "byteoffset": 120, "anchor": "History", "linkAnchor": "History", "fromtitle": "Go (programming language)"},
				{"toclevel": 2, "level": "2", "line": "<i>Naming</i>", "number": "1.1", "index": "2", "byteoffset": 980, "anchor": "Naming", "linkAnchor": "Naming", "fromtitle": "Go (programming language)"}
			],
			"langlinks": [
				{"lang": "de", "url": "https://de.wikipedia.org/wiki/Go_(Programmiersprache)", "title": "Go (Programmiersprache)", "langname": "German", "autonym": "Deutsch"}
			]
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	en, ok := language.FromCode("en")
	require.True(t, ok)

	p, err := page.NewBuilder(server.URL, en).
		Title("Go (programming language)").
		HTTPClient(newTestClient()).
		Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Go (programming language)", p.Title)
	assert.EqualValues(t, 25039021, p.PageID)
	require.NotNil(t, p.Document)

	require.Len(t, p.Sections, 3)
	assert.Equal(t, "(Top)", p.Sections[0].Line)
	assert.Equal(t, 0, p.Sections[0].Index)
	assert.Equal(t, "History", p.Sections[1].Line)
	assert.Equal(t, 1, p.Sections[1].Index)
	assert.Equal(t, "Naming", p.Sections[2].Line, "HTML markup in the section line is stripped")
	assert.Equal(t, 2, p.Sections[2].Index)

	require.Len(t, p.LanguageLinks, 1)
	assert.Equal(t, "de", p.LanguageLinks[0].Language.Code())
	parsed, err := url.Parse(p.LanguageLinks[0].Endpoint)
	require.NoError(t, err)
	assert.Equal(t, "de.wikipedia.org", parsed.Host)
}

func TestFetchSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"code": "missingtitle"}}`)
	}))
	defer server.Close()

	_, err := page.NewBuilder(server.URL, language.Unknown).
		Title("Nonexistent").
		HTTPClient(newTestClient()).
		Fetch(context.Background())
	require.Error(t, err)
}
