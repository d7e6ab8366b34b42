package watchlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// RecordKey names the persisted record holding the JSON array of entries.
const RecordKey = "watchlist"

// ErrNotFound reports a removal of a title that is not on the watchlist.
var ErrNotFound = errors.New("title is not on the watchlist")

// Store owns the watchlist. Every mutation is a full read-modify-write of the
// persisted record, serialized within the process. Screens read membership
// from View and learn about changes through Subscribe.
type Store struct {
	backend Backend
	logger  *slog.Logger
	scoped  bool

	mu   sync.RWMutex
	view View

	subsMu  sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

type Option func(*Store)

// WithMediaTypeScope makes Toggle and View membership match on (id, media
// type). Contains and Remove always keep their id-only meaning.
func WithMediaTypeScope(on bool) Option {
	return func(s *Store) { s.scoped = on }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
		subs:    make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = newView(s.load(), s.scoped)
	return s
}

// Load returns the persisted collection in stored order. Missing, unreadable
// or corrupt storage yields an empty slice.
func (s *Store) Load() []Entry {
	return s.load()
}

// Contains reports whether any entry has the given id, whatever its media type.
func (s *Store) Contains(id int) bool {
	return slices.ContainsFunc(s.load(), func(e Entry) bool { return e.ID == id })
}

func (s *Store) ContainsTitle(id int, mt MediaType) bool {
	k := Key{ID: id, MediaType: mt}
	return slices.ContainsFunc(s.load(), func(e Entry) bool { return e.Key() == k })
}

// Add appends e and persists the collection. It does not deduplicate.
func (s *Store) Add(e Entry) error {
	e = normalize(e)
	return s.mutate(func(cur []Entry) ([]Entry, EventKind, Key) {
		return append(cur, e), EventAdded, e.Key()
	})
}

// Remove deletes every entry with the given id. Removing an absent id is a no-op.
func (s *Store) Remove(id int) error {
	return s.removeWhere(func(e Entry) bool { return e.ID == id }, Key{ID: id})
}

func (s *Store) RemoveTitle(id int, mt MediaType) error {
	k := Key{ID: id, MediaType: mt}
	return s.removeWhere(func(e Entry) bool { return e.Key() == k }, k)
}

// Toggle removes e when it is present and adds it otherwise, returning the new
// membership. The check and the write happen under one lock. On a failed
// write the previous membership is returned with the error.
func (s *Store) Toggle(e Entry) (bool, error) {
	e = normalize(e)
	match := s.matcher(e)

	var added bool
	err := s.mutate(func(cur []Entry) ([]Entry, EventKind, Key) {
		if slices.ContainsFunc(cur, match) {
			return slices.DeleteFunc(cur, match), EventRemoved, e.Key()
		}
		added = true
		return append(cur, e), EventAdded, e.Key()
	})
	if err != nil {
		return !added, err
	}
	return added, nil
}

// Clear removes all entries.
func (s *Store) Clear() error {
	return s.mutate(func(cur []Entry) ([]Entry, EventKind, Key) {
		if len(cur) == 0 {
			return cur, 0, Key{}
		}
		return []Entry{}, EventCleared, Key{}
	})
}

// View returns the cached projection built after the last mutation or refresh.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Refresh re-reads storage and rebuilds the projection. Subscribers are
// notified only when the content differs from the cached projection.
func (s *Store) Refresh() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	if !slices.Equal(entries, s.view.entries) {
		s.view = newView(entries, s.scoped)
		s.publish(Event{Kind: EventReloaded, View: s.view})
	}
	return s.view
}

func (s *Store) matcher(e Entry) func(Entry) bool {
	if s.scoped {
		k := e.Key()
		return func(x Entry) bool { return x.Key() == k }
	}
	return func(x Entry) bool { return x.ID == e.ID }
}

func (s *Store) removeWhere(match func(Entry) bool, k Key) error {
	return s.mutate(func(cur []Entry) ([]Entry, EventKind, Key) {
		if !slices.ContainsFunc(cur, match) {
			return cur, 0, Key{}
		}
		return slices.DeleteFunc(cur, match), EventRemoved, k
	})
}

// mutate runs one read-modify-write cycle. fn returns a zero kind when it made
// no change, in which case nothing is written.
func (s *Store) mutate(fn func([]Entry) ([]Entry, EventKind, Key)) error {
	s.mu.Lock()
	next, kind, key := fn(s.load())
	if kind == 0 {
		s.mu.Unlock()
		return nil
	}
	if err := s.write(next); err != nil {
		s.mu.Unlock()
		s.logger.Error("watchlist write failed", "error", err, "key", key.String())
		return fmt.Errorf("save watchlist: %w", err)
	}
	s.view = newView(next, s.scoped)
	v := s.view
	// Publish under the lock so subscribers see views in write order.
	s.publish(Event{Kind: kind, Key: key, View: v})
	s.mu.Unlock()

	s.logger.Debug("watchlist updated", "kind", kind.String(), "key", key.String(), "size", v.Len())
	return nil
}

func (s *Store) read() ([]Entry, error) {
	data, ok, err := s.backend.Get(RecordKey)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode watchlist: %w", err)
	}
	return entries, nil
}

func (s *Store) load() []Entry {
	entries, err := s.read()
	if err != nil {
		s.logger.Warn("watchlist unreadable, treating as empty", "error", err)
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	return entries
}

func (s *Store) write(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.backend.Set(RecordKey, data)
}

func normalize(e Entry) Entry {
	if e.MediaType == "" {
		e.MediaType = Movie
	}
	return e
}
