package store

import (
	"sort"
	"strings"

	"github.com/rcliao/episodic-memory/internal/model"
	"github.com/rcliao/episodic-memory/internal/signature"
)

// scored pairs an entry with its similarity to a query signature.
type scored struct {
	entry *model.Entry
	sig   signature.Vector
	score float64
}

// SearchBySimilarity ranks entries by hashed-signature cosine similarity
// to the query, most similar first, and returns at most topN of them.
// Ties break newest-timestamp-first. Entries scoring <= 0 are dropped.
// A blank query or non-positive topN is a documented no-op returning nil.
// A non-empty typeFilter narrows the candidate set before ranking.
func (s *Store) SearchBySimilarity(query string, topN int, typeFilter string) []*model.Entry {
	if strings.TrimSpace(query) == "" || topN <= 0 {
		return nil
	}
	queryVec := s.signer.Sign(query)

	// Candidate entries and their signatures are captured under the read
	// lock; signatures are immutable after Add, so scoring happens outside
	// the critical section.
	s.mu.RLock()
	candidates := make([]scored, 0, len(s.entries))
	for _, e := range s.entries {
		if typeFilter != "" && e.Type != typeFilter {
			continue
		}
		candidates = append(candidates, scored{entry: e, sig: s.signatures[e.ID]})
	}
	s.mu.RUnlock()

	ranked := candidates[:0]
	for _, c := range candidates {
		c.score = signature.Cosine(queryVec, c.sig)
		if c.score > 0 {
			ranked = append(ranked, c)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].entry.Timestamp.After(ranked[j].entry.Timestamp)
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	out := make([]*model.Entry, len(ranked))
	for i, c := range ranked {
		out[i] = c.entry
	}
	return out
}
