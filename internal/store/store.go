// Package store implements the in-memory episodic memory store and its
// search operations.
//
// A single Store instance owns all entries. Add and DeleteByID are the only
// mutations and run under mutual exclusion; every search and analytics
// operation is a pure reader over a consistent snapshot of the entry list,
// so readers may run concurrently with each other and with writers. Entries
// are immutable once stored: results are shared with callers and must be
// treated as read-only.
package store

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/episodic-memory/internal/model"
	"github.com/rcliao/episodic-memory/internal/signature"
)

// Store is the in-memory episodic memory store.
type Store struct {
	mu         sync.RWMutex
	entries    []*model.Entry
	byID       map[string]*model.Entry
	byType     map[string][]*model.Entry
	signatures map[string]signature.Vector
	signer     signature.Signer
	entropy    *rand.Rand
}

// New constructs an empty store using the default hashed signer.
func New() *Store {
	return &Store{
		byID:       make(map[string]*model.Entry),
		byType:     make(map[string][]*model.Entry),
		signatures: make(map[string]signature.Vector),
		signer:     signature.Hashed{},
		entropy:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Store) newID(ts time.Time) string {
	return ulid.MustNew(ulid.Timestamp(ts), s.entropy).String()
}

// Add validates and appends an entry, assigning id and timestamp when the
// caller did not supply them, and returns the stored entry. The input is
// cloned so later caller mutation cannot reach store-owned state.
func (s *Store) Add(e *model.Entry) (*model.Entry, error) {
	if e == nil || strings.TrimSpace(e.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if strings.TrimSpace(e.Type) == "" {
		return nil, fmt.Errorf("%w: type is required", ErrValidation)
	}

	stored := e.Clone()
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored.ID == "" {
		stored.ID = s.newID(stored.Timestamp)
	} else if _, exists := s.byID[stored.ID]; exists {
		return nil, fmt.Errorf("%w: duplicate id %s", ErrValidation, stored.ID)
	}

	s.entries = append(s.entries, stored)
	s.byID[stored.ID] = stored
	s.byType[stored.Type] = append(s.byType[stored.Type], stored)
	s.signatures[stored.ID] = s.signer.Sign(signatureSource(stored))

	return stored, nil
}

// signatureSource is the text a similarity signature is derived from:
// the content plus the stringified metadata values.
func signatureSource(e *model.Entry) string {
	if len(e.Metadata) == 0 {
		return e.Content
	}
	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(e.Content)
	for _, k := range keys {
		b.WriteByte(' ')
		fmt.Fprint(&b, e.Metadata[k])
	}
	return b.String()
}

// GetByID returns the entry with the given id.
func (s *Store) GetByID(id string) (*model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// DeleteByID removes the entry with the given id.
func (s *Store) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for i, cur := range s.entries {
		if cur.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	typed := s.byType[e.Type]
	for i, cur := range typed {
		if cur.ID == id {
			s.byType[e.Type] = append(typed[:i], typed[i+1:]...)
			break
		}
	}
	if len(s.byType[e.Type]) == 0 {
		delete(s.byType, e.Type)
	}
	delete(s.byID, id)
	delete(s.signatures, id)
	return nil
}

// RetrieveByType returns all entries with the exact type tag, in insertion
// order.
func (s *Store) RetrieveByType(entryType string) []*model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	typed := s.byType[entryType]
	out := make([]*model.Entry, len(typed))
	copy(out, typed)
	return out
}

// Last returns the n most recent entries, newest first. Non-positive n
// returns nil.
func (s *Store) Last(n int) []*model.Entry {
	if n <= 0 {
		return nil
	}
	entries := s.snapshot()
	sortNewestFirst(entries)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// LastByType returns the n most recent entries of one type, newest first.
// An empty type behaves like Last.
func (s *Store) LastByType(entryType string, n int) []*model.Entry {
	if entryType == "" {
		return s.Last(n)
	}
	if n <= 0 {
		return nil
	}
	entries := s.RetrieveByType(entryType)
	sortNewestFirst(entries)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Count reports the number of stored entries, restricted to one type when
// typeFilter is non-empty.
func (s *Store) Count(typeFilter string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if typeFilter != "" {
		return len(s.byType[typeFilter])
	}
	return len(s.entries)
}

// Stats returns entry counts per type. The counts come from a full scan of
// the current contents, so they are always consistent with what is stored.
func (s *Store) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, e := range s.entries {
		counts[e.Type]++
	}
	return counts
}

// Clear removes every entry, or every entry of one type when typeFilter is
// non-empty, and reports how many were removed.
func (s *Store) Clear(typeFilter string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if typeFilter == "" {
		n := len(s.entries)
		s.entries = nil
		s.byID = make(map[string]*model.Entry)
		s.byType = make(map[string][]*model.Entry)
		s.signatures = make(map[string]signature.Vector)
		return n
	}

	removed := s.byType[typeFilter]
	if len(removed) == 0 {
		return 0
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Type == typeFilter {
			delete(s.byID, e.ID)
			delete(s.signatures, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	delete(s.byType, typeFilter)
	return len(removed)
}

// All returns every entry in insertion order.
func (s *Store) All() []*model.Entry {
	return s.snapshot()
}

// snapshot copies the entry list under the read lock so in-flight searches
// are unaffected by concurrent adds and deletes.
func (s *Store) snapshot() []*model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// sortNewestFirst orders entries by descending timestamp, ties broken by
// id descending so output is deterministic.
func sortNewestFirst(entries []*model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
}

// SortOldestFirst orders entries by ascending timestamp, ties broken by id
// ascending.
func SortOldestFirst(entries []*model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		}
		return entries[i].ID < entries[j].ID
	})
}
