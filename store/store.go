// Package store holds the active navigation stack and the persistent
// page cache. It is the only place page.Page values are shared
// across the core; everywhere else gets its own clone.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gitlab.com/tozd/go/x"

	"github.com/Builditluc/wiki-tui/page"
)

// secondaryKey indexes the cache by the identity a freshly fetched page
// arrives with, before it has a UUID: its title and language edition.
type secondaryKey struct {
	title    string
	language string
}

// Store is the page cache plus the active back-stack the user navigates.
// The active stack and cache/index are the two pieces of shared mutable
// state the core serialises access to; Store itself does no locking of
// its own: callers on a single goroutine need none, and a
// concurrent caller is expected to hold its own lock around a Store.
type Store struct {
	logger zerolog.Logger
	path   string

	active []*page.Page

	cache     map[uuid.UUID]*page.Page
	secondary map[secondaryKey]uuid.UUID
	hot       *hotCache
}

// New returns an empty Store that persists to path.
func New(path string, logger zerolog.Logger) *Store {
	return &Store{
		logger:    logger,
		path:      path,
		cache:     map[uuid.UUID]*page.Page{},
		secondary: map[secondaryKey]uuid.UUID{},
		hot:       newHotCache(hotCacheSize),
	}
}

func keyOf(p *page.Page) secondaryKey {
	return secondaryKey{title: p.Title, language: p.Language.Code()}
}

// Display pushes p onto the active stack, reconciling it against the
// hot cache and then the full cache: a UUID hit pushes a clone of the
// cached page; a title/language hit replaces the old entry's document
// under a fresh UUID (the new fetch may be newer); otherwise p is
// inserted fresh.
func (s *Store) Display(p *page.Page) {
	if cached, ok := s.hot.Get(p.ID); ok {
		s.active = append(s.active, cached.Clone())
		return
	}
	if cached, ok := s.cache[p.ID]; ok {
		s.hot.Add(cached)
		s.active = append(s.active, cached.Clone())
		return
	}

	if oldID, ok := s.secondary[keyOf(p)]; ok {
		delete(s.cache, oldID)
		s.cache[p.ID] = p
		s.secondary[keyOf(p)] = p.ID
		s.hot.Add(p)
		s.active = append(s.active, p.Clone())
		return
	}

	s.cache[p.ID] = p
	s.secondary[keyOf(p)] = p.ID
	s.hot.Add(p)
	s.active = append(s.active, p.Clone())
}

// Pop removes the top of the active stack, if any.
func (s *Store) Pop() {
	if len(s.active) == 0 {
		return
	}
	s.active = s.active[:len(s.active)-1]
}

// Current returns the top of the active stack, or nil if it is empty.
func (s *Store) Current() *page.Page {
	if len(s.active) == 0 {
		return nil
	}
	return s.active[len(s.active)-1]
}

// GetCached consults the secondary index and returns a clone of the
// matching page, or nil if there is none.
func (s *Store) GetCached(title string, lang string) *page.Page {
	id, ok := s.secondary[secondaryKey{title: title, language: lang}]
	if !ok {
		return nil
	}
	if cached, ok := s.hot.Get(id); ok {
		return cached.Clone()
	}
	p := s.cache[id]
	s.hot.Add(p)
	return p.Clone()
}

// persistedCache is the on-disk shape of the whole store: every active
// page copied into the cache under its UUID and index, serialised in
// one shot. There is no incremental persistence.
type persistedCache struct {
	Pages map[uuid.UUID]*page.Page `json:"pages"`
}

// SyncAndSave copies every active page into the cache (so a page the
// user is currently viewing but never re-displayed is still persisted),
// then writes the whole cache to disk as a single atomic file replace.
func (s *Store) SyncAndSave() {
	for _, p := range s.active {
		s.cache[p.ID] = p
		s.secondary[keyOf(p)] = p.ID
	}

	s.logger.Debug().Uint64("misses", s.hot.MissCount()).Int("size", len(s.cache)).Msg("page cache stats")

	data, errE := x.MarshalWithoutEscapeHTML(persistedCache{Pages: s.cache})
	if errE != nil {
		s.logger.Error().Err(errE).Msg("failed to marshal page cache")
		return
	}

	if errE := writeFileAtomically(s.path, data); errE != nil {
		s.logger.Error().Err(errE).Msg("failed to persist page cache")
	}
}

// Load reads the persisted cache from disk, rebuilding the secondary
// index. A missing file is not an error: it just means an empty cache.
// Entries that fail to deserialise are dropped and logged, matching
// forward compatibility with older cache files; a totally unreadable or corrupt file
// is logged and treated as an empty cache.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error().Err(err).Msg("failed to read page cache, starting empty")
		}
		return
	}

	var raw struct {
		Pages map[uuid.UUID]json.RawMessage `json:"pages"`
	}
	if errE := x.Unmarshal(data, &raw); errE != nil {
		s.logger.Error().Err(errE).Msg("failed to parse page cache, starting empty")
		return
	}

	for id, entry := range raw.Pages {
		var p page.Page
		if errE := x.UnmarshalWithoutUnknownFields(entry, &p); errE != nil {
			s.logger.Warn().Err(errE).Str("id", id.String()).Msg("dropping unreadable cached page")
			continue
		}
		s.cache[id] = &p
		s.secondary[keyOf(&p)] = id
	}
}

// writeFileAtomically writes data to path by writing a sibling temp file
// and renaming it over the destination, so a crash mid-write never
// leaves a truncated cache file behind. No library in the dependency
// set covers atomic single-file persistence, so this is the one place
// store relies on the standard library for I/O rather than a
// third-party client.
func writeFileAtomically(path string, data []byte) errors.E {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWith(errors.WithStack(err), ErrCacheIO)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.json")
	if err != nil {
		return errors.WrapWith(errors.WithStack(err), ErrCacheIO)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.WrapWith(errors.WithStack(err), ErrCacheIO)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.WrapWith(errors.WithStack(err), ErrCacheIO)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.WrapWith(errors.WithStack(err), ErrCacheIO)
	}
	return nil
}

// DefaultPath returns the OS-appropriate per-user cache file location
// for the page cache.
func DefaultPath() (string, errors.E) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.WithStack(err)
	}
	return filepath.Join(dir, "wiki-tui", "pages.json"), nil
}
