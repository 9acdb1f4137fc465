package link_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Builditluc/wiki-tui/language"
	"github.com/Builditluc/wiki-tui/link"
)

const endpoint = "https://en.wikipedia.org/w/api.php"

func TestClassifyAnchorOnly(t *testing.T) {
	// S1
	got, err := link.Classify(endpoint, "#See_also", nil, language.Unknown)
	require.NoError(t, err)
	a, ok := got.(link.AnchorLink)
	require.True(t, ok)
	assert.Equal(t, "See_also", a.Anchor)
	assert.Equal(t, "See also", a.Title)
}

func TestClassifyInternalWithNamespaceAndAnchor(t *testing.T) {
	// S2
	title := "Help:Editing pages"
	got, err := link.Classify(endpoint, "/wiki/Help:Editing_pages#Preview", &title, language.Unknown)
	require.NoError(t, err)
	in, ok := got.(link.Internal)
	require.True(t, ok)
	assert.Equal(t, link.NamespaceHelp, in.Namespace)
	assert.Equal(t, "Editing_pages", in.Page)
	assert.Equal(t, "Help:Editing pages", in.Title)
	require.NotNil(t, in.AnchorRef)
	assert.Equal(t, "Preview", in.AnchorRef.Anchor)
	assert.Equal(t, "Preview", in.AnchorRef.Title)
}

func TestClassifyRedLink(t *testing.T) {
	// S3
	title := "Help:Links/example2 (page does not exist)"
	got, err := link.Classify(endpoint, "/w/index.php?title=Help:Links/example2&action=edit&redlink=1", &title, language.Unknown)
	require.NoError(t, err)
	rl, ok := got.(link.RedLink)
	require.True(t, ok)
	assert.Equal(t, title, rl.Title)
	assert.Contains(t, rl.URL, "redlink=1")
}

func TestClassifyCrossWikiInternal(t *testing.T) {
	// S4
	title := "Foo"
	got, err := link.Classify(endpoint, "//fr.wikipedia.org/wiki/Foo", &title, language.Unknown)
	require.NoError(t, err)
	_, ok := got.(link.ExternalToInternal)
	assert.True(t, ok)
}

func TestClassifyExternal(t *testing.T) {
	got, err := link.Classify(endpoint, "https://example.com/page", nil, language.Unknown)
	require.NoError(t, err)
	ext, ok := got.(link.External)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/page", ext.URL)
}

// Media is not a Classify outcome; it is derived by htmlparser from an
// External result plus the <a> element's rel attribute (see
// htmlparser.TestParseMediaLinkUpgradesExternalToMedia). An absolute href
// with no wiki/redlink markers is always External regardless of what it
// points at.
func TestClassifyMediaHrefIsExternal(t *testing.T) {
	got, err := link.Classify(endpoint, "https://upload.wikimedia.org/wikipedia/commons/a.png", nil, language.Unknown)
	require.NoError(t, err)
	_, ok := got.(link.External)
	assert.True(t, ok)
}

func TestClassifyInternalMissingTitleFails(t *testing.T) {
	_, err := link.Classify(endpoint, "/wiki/Foo", nil, language.Unknown)
	require.Error(t, err)
}

func TestClassifyInvalidNamespaceFails(t *testing.T) {
	title := "Bogus:Thing"
	_, err := link.Classify(endpoint, "/wiki/Bogus:Thing", &title, language.Unknown)
	require.Error(t, err)
}

func TestClassifyInternalLanguageFromMatchingHostSubdomain(t *testing.T) {
	title := "Chat"
	got, err := link.Classify(endpoint, "https://en.wikipedia.org/wiki/Chat", &title, language.Unknown)
	require.NoError(t, err)
	in, ok := got.(link.Internal)
	require.True(t, ok)
	assert.Equal(t, "en", in.Language.Code())
}

func TestClassifyInternalLanguageInherited(t *testing.T) {
	fr, ok := language.FromCode("fr")
	require.True(t, ok)
	title := "Chat"
	got, err := link.Classify(endpoint, "/wiki/Chat", &title, fr)
	require.NoError(t, err)
	in, ok := got.(link.Internal)
	require.True(t, ok)
	assert.Equal(t, "fr", in.Language.Code())
}
