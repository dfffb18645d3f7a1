package store

import (
	"fmt"

	"github.com/rcliao/episodic-memory/internal/model"
)

// Query is a single search request resolved by a Strategy.
type Query struct {
	Text       string // keyword, regex pattern, similarity query, or metadata substring
	TypeFilter string // restrict results to one entry type; empty means all
	Key        string // metadata key for the metadata strategy; empty scans all keys
	TopN       int    // cap on results; <= 0 means unlimited (similarity requires > 0)
}

// Strategy resolves a query against the store's current snapshot. Every
// implementation here is a linear scan, acceptable at modest entry counts;
// the interface exists so an inverted or vector index can be substituted
// without touching call sites.
type Strategy interface {
	Search(q Query) ([]*model.Entry, error)
}

// KeywordStrategy matches content by case-insensitive substring.
type KeywordStrategy struct {
	Store *Store
}

func (s KeywordStrategy) Search(q Query) ([]*model.Entry, error) {
	return capResults(filterType(s.Store.SearchByText(q.Text), q.TypeFilter), q.TopN), nil
}

// RegexStrategy matches content against a regular expression.
type RegexStrategy struct {
	Store *Store
}

func (s RegexStrategy) Search(q Query) ([]*model.Entry, error) {
	matches, err := s.Store.SearchByRegex(q.Text)
	if err != nil {
		return nil, err
	}
	return capResults(filterType(matches, q.TypeFilter), q.TopN), nil
}

// MetadataStrategy matches stringified metadata values by substring.
type MetadataStrategy struct {
	Store *Store
}

func (s MetadataStrategy) Search(q Query) ([]*model.Entry, error) {
	return capResults(filterType(s.Store.SearchByMetadataValue(q.Key, q.Text), q.TypeFilter), q.TopN), nil
}

// SimilarityStrategy ranks by hashed-signature cosine similarity.
type SimilarityStrategy struct {
	Store *Store
}

func (s SimilarityStrategy) Search(q Query) ([]*model.Entry, error) {
	topN := q.TopN
	if topN <= 0 {
		topN = 5
	}
	return s.Store.SearchBySimilarity(q.Text, topN, q.TypeFilter), nil
}

// StrategyFor maps a mode name to its Strategy.
func StrategyFor(mode string, s *Store) (Strategy, error) {
	switch mode {
	case "keyword":
		return KeywordStrategy{Store: s}, nil
	case "regex":
		return RegexStrategy{Store: s}, nil
	case "metadata":
		return MetadataStrategy{Store: s}, nil
	case "semantic":
		return SimilarityStrategy{Store: s}, nil
	}
	return nil, fmt.Errorf("%w: unknown search mode %q (valid: keyword, regex, metadata, semantic)", ErrInvalidQuery, mode)
}

// filterType keeps only entries of the given type; an empty filter keeps
// everything. Applied after the text match per the keyword search contract.
func filterType(entries []*model.Entry, typeFilter string) []*model.Entry {
	if typeFilter == "" {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Type == typeFilter {
			kept = append(kept, e)
		}
	}
	return kept
}

func capResults(entries []*model.Entry, topN int) []*model.Entry {
	if topN > 0 && len(entries) > topN {
		return entries[:topN]
	}
	return entries
}
