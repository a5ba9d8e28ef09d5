package config

import "sync"

// Store caches resolved documents by configuration identity. Each identity
// is resolved at most once; later lookups return the cached document
// without touching any file. Loads of different identities do not wait
// for each other.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
}

type storeEntry struct {
	mu  sync.Mutex
	doc *Document
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*storeEntry)}
}

// Resolve returns the document cached for id, calling load to produce it
// on first use. A failed load caches nothing. The boolean reports whether
// the document came from the cache.
func (s *Store) Resolve(id string, load func() (*Document, error)) (*Document, bool, error) {
	e := s.entry(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc != nil {
		return e.doc, true, nil
	}

	doc, err := load()
	if err != nil {
		return nil, false, err
	}
	e.doc = doc
	return doc, false, nil
}

// Lookup returns the cached document for id, if any. Unknown identities
// are not recorded.
func (s *Store) Lookup(id string) (*Document, bool) {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc, e.doc != nil
}

// Len returns the number of resolved identities.
func (s *Store) Len() int {
	s.mu.Lock()
	entries := make([]*storeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	n := 0
	for _, e := range entries {
		e.mu.Lock()
		if e.doc != nil {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

func (s *Store) entry(id string) *storeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &storeEntry{}
		s.entries[id] = e
	}
	return e
}
