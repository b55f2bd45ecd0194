package docfill

import (
	"container/list"
	"slices"
	"sync"
)

// ParseCache memoizes Parse results by token text. Templates repeat the same
// tokens across body, headers and footers, and a batch fill parses every
// template's inventory again.
type ParseCache struct {
	mu      sync.Mutex
	entries map[string]*parseEntry
	lru     *list.List
	maxSize int
}

type parseEntry struct {
	token   string
	field   FieldData
	err     error
	element *list.Element
}

// NewParseCache creates a cache holding at most size tokens. A size of 0
// disables caching; Parse then always parses.
func NewParseCache(size int) *ParseCache {
	if size < 0 {
		size = 0
	}
	return &ParseCache{
		entries: make(map[string]*parseEntry),
		lru:     list.New(),
		maxSize: size,
	}
}

// Parse returns the cached result for token, parsing it on a miss.
func (pc *ParseCache) Parse(token string) (FieldData, error) {
	if pc == nil || pc.maxSize == 0 {
		return Parse(token)
	}

	pc.mu.Lock()
	if entry, ok := pc.entries[token]; ok {
		pc.lru.MoveToFront(entry.element)
		field, err := entry.field, entry.err
		pc.mu.Unlock()
		return cloneField(field), err
	}
	pc.mu.Unlock()

	field, err := Parse(token)

	pc.mu.Lock()
	defer pc.mu.Unlock()

	// another goroutine may have parsed the same token meanwhile
	if _, ok := pc.entries[token]; !ok {
		if pc.lru.Len() >= pc.maxSize {
			if oldest := pc.lru.Back(); oldest != nil {
				delete(pc.entries, oldest.Value.(*parseEntry).token)
				pc.lru.Remove(oldest)
			}
		}
		entry := &parseEntry{token: token, field: cloneField(field), err: err}
		entry.element = pc.lru.PushFront(entry)
		pc.entries[token] = entry
	}
	return field, err
}

// Len returns the number of cached tokens.
func (pc *ParseCache) Len() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.entries)
}

// Clear drops every cached token.
func (pc *ParseCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.entries = make(map[string]*parseEntry)
	pc.lru = list.New()
}

// cloneField copies the groups so callers can not mutate cached state.
func cloneField(f FieldData) FieldData {
	if f.Groups != nil {
		f.Groups = slices.Clone(f.Groups)
	}
	return f
}
