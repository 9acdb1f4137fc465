package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Builditluc/wiki-tui/document"
	"github.com/Builditluc/wiki-tui/language"
	"github.com/Builditluc/wiki-tui/page"
	"github.com/Builditluc/wiki-tui/store"
)

func newPage(t *testing.T, title string) *page.Page {
	t.Helper()
	lang, _ := language.FromCode("en")
	return &page.Page{
		ID:       uuid.New(),
		Title:    title,
		PageID:   1,
		Endpoint: "https://en.wikipedia.org/w/api.php",
		Language: lang,
		Document: document.New(),
	}
}

func TestDisplayPushesOntoActiveStack(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "pages.json"), zerolog.Nop())
	p := newPage(t, "Go (programming language)")

	s.Display(p)
	require.NotNil(t, s.Current())
	assert.Equal(t, p.Title, s.Current().Title)
}

func TestDisplaySameUUIDPushesCachedClone(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "pages.json"), zerolog.Nop())
	p := newPage(t, "Go (programming language)")

	s.Display(p)
	s.Pop()
	s.Display(p)

	require.NotNil(t, s.Current())
	assert.Equal(t, p.ID, s.Current().ID)
	assert.NotSame(t, p, s.Current())
}

func TestDisplaySameTitleReplacesOldUUID(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "pages.json"), zerolog.Nop())
	first := newPage(t, "Go (programming language)")
	s.Display(first)

	second := newPage(t, "Go (programming language)")
	s.Display(second)

	got := s.GetCached("Go (programming language)", "en")
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
}

func TestPopAndCurrentOnEmptyStack(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "pages.json"), zerolog.Nop())
	s.Pop()
	assert.Nil(t, s.Current())
}

func TestGetCachedMissReturnsNil(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "pages.json"), zerolog.Nop())
	assert.Nil(t, s.GetCached("Nonexistent", "en"))
}

func TestSyncAndSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	s := store.New(path, zerolog.Nop())
	p := newPage(t, "Go (programming language)")
	s.Display(p)

	s.SyncAndSave()
	_, err := os.Stat(path)
	require.NoError(t, err)

	reloaded := store.New(path, zerolog.Nop())
	reloaded.Load()

	got := reloaded.GetCached("Go (programming language)", "en")
	require.NotNil(t, got)
	assert.Equal(t, p.Title, got.Title)
}

func TestLoadMissingFileIsEmptyCache(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "missing.json"), zerolog.Nop())
	s.Load()
	assert.Nil(t, s.GetCached("Anything", "en"))
}
