// Package retriever provides analytical read-only queries over a memory
// store: time-window filters, relational joins across entries, summaries,
// and frequency-based pattern mining. Every function is a pure reader
// composed from the store's primitive search operations.
package retriever

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rcliao/episodic-memory/internal/model"
	"github.com/rcliao/episodic-memory/internal/store"
)

// patternKeys are the metadata keys pattern mining groups events by.
var patternKeys = []string{"category", "activity_type", "project_name"}

// maxPatternExamples caps the example snippets kept per pattern group.
const maxPatternExamples = 5

// NoRecentEvents is the sentinel summary returned when no events exist.
const NoRecentEvents = "No recent events recorded."

// Retriever answers analytics queries against one injected store instance.
type Retriever struct {
	store *store.Store
}

// New constructs a Retriever over the given store.
func New(s *store.Store) *Retriever {
	return &Retriever{store: s}
}

// LastDecisions returns the n most recent decision entries, newest first.
func (r *Retriever) LastDecisions(n int) []*model.Entry {
	if n <= 0 {
		return nil
	}
	decisions := r.store.RetrieveByType(model.TypeDecision)
	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].Timestamp.After(decisions[j].Timestamp)
	})
	if len(decisions) > n {
		decisions = decisions[:n]
	}
	return decisions
}

// EntriesByKeyword searches content by keyword, case-insensitively, with
// the type filter applied after the text match. Blank keywords are a no-op.
func (r *Retriever) EntriesByKeyword(keyword, typeFilter string) []*model.Entry {
	matches := r.store.SearchByText(keyword)
	if typeFilter == "" {
		return matches
	}
	kept := matches[:0]
	for _, e := range matches {
		if e.Type == typeFilter {
			kept = append(kept, e)
		}
	}
	return kept
}

// RelatedEntries returns entries whose metadata[key] equals value exactly.
// Useful for following related_to references between entries.
func (r *Retriever) RelatedEntries(key string, value any) []*model.Entry {
	return r.store.SearchByMetadata(key, value)
}

// SemanticSearch ranks entries by hashed-signature similarity to the query.
func (r *Retriever) SemanticSearch(query string, topN int, typeFilter string) []*model.Entry {
	return r.store.SearchBySimilarity(query, topN, typeFilter)
}

// EntriesInTimeframe returns entries with start <= timestamp <= end,
// ascending by timestamp. A zero end means now. A non-empty typeFilter
// restricts the scan to that type.
func (r *Retriever) EntriesInTimeframe(start, end time.Time, typeFilter string) []*model.Entry {
	if end.IsZero() {
		end = time.Now()
	}

	var candidates []*model.Entry
	if typeFilter != "" {
		candidates = r.store.RetrieveByType(typeFilter)
	} else {
		candidates = r.store.All()
	}

	var matches []*model.Entry
	for _, e := range candidates {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			matches = append(matches, e)
		}
	}
	store.SortOldestFirst(matches)
	return matches
}

// RecentErrors returns error entries from the last given number of days,
// oldest first. Non-positive days is a documented no-op returning nil.
func (r *Retriever) RecentErrors(days int) []*model.Entry {
	if days <= 0 {
		return nil
	}
	start := time.Now().AddDate(0, 0, -days)
	return r.EntriesInTimeframe(start, time.Time{}, model.TypeError)
}

// DecisionHistoryForProject returns every decision tied to the named
// project, oldest first: decisions whose project_name matches directly,
// plus decisions whose related_to references any entry carrying that
// project_name. Each decision appears once however many criteria it
// satisfies; ties in timestamp break by id ascending.
func (r *Retriever) DecisionHistoryForProject(projectName string) []*model.Entry {
	projectEntries := r.store.SearchByMetadata("project_name", projectName)
	if len(projectEntries) == 0 {
		return nil
	}
	projectIDs := make(map[string]bool, len(projectEntries))
	for _, e := range projectEntries {
		projectIDs[e.ID] = true
	}

	seen := make(map[string]bool)
	var history []*model.Entry
	for _, d := range r.store.RetrieveByType(model.TypeDecision) {
		if seen[d.ID] {
			continue
		}
		related, _ := d.Metadata["related_to"].(string)
		if projectIDs[related] || d.Metadata["project_name"] == projectName {
			seen[d.ID] = true
			history = append(history, d)
		}
	}

	store.SortOldestFirst(history)
	return history
}

// SummarizeRecentEvents renders the n most recent events as a bullet list,
// newest first. With no events it returns the NoRecentEvents sentinel
// rather than an error.
func (r *Retriever) SummarizeRecentEvents(n int) string {
	if n <= 0 {
		return NoRecentEvents
	}
	events := r.store.RetrieveByType(model.TypeEvent)
	if len(events) == 0 {
		return NoRecentEvents
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if len(events) > n {
		events = events[:n]
	}

	var b strings.Builder
	b.WriteString("Recent events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "• %s: %s\n", e.Timestamp.Format("15:04"), e.Content)
	}
	return b.String()
}

// CountsByType returns entry counts per type.
func (r *Retriever) CountsByType() map[string]int {
	return r.store.Stats()
}

// Pattern is one recurring metadata group found among recent events.
type Pattern struct {
	PatternType  string   `json:"pattern_type"`
	PatternValue string   `json:"pattern_value"`
	Count        int      `json:"count"`
	Examples     []string `json:"examples"`
}

// FindPatternsInEvents groups events from the last windowDays by the
// category, activity_type, and project_name metadata keys and returns the
// groups ordered by descending count, pure frequency with no significance
// testing. Equal counts order by group key. Up to five example snippets
// are kept per group.
func (r *Retriever) FindPatternsInEvents(windowDays int) []Pattern {
	if windowDays <= 0 {
		return nil
	}
	start := time.Now().AddDate(0, 0, -windowDays)
	events := r.EntriesInTimeframe(start, time.Time{}, model.TypeEvent)
	if len(events) == 0 {
		return nil
	}

	groups := make(map[string]*Pattern)
	var order []string
	for _, e := range events {
		for _, key := range patternKeys {
			v, ok := e.Metadata[key]
			if !ok {
				continue
			}
			groupKey := fmt.Sprintf("%s:%v", key, v)
			g, ok := groups[groupKey]
			if !ok {
				g = &Pattern{PatternType: key, PatternValue: fmt.Sprint(v)}
				groups[groupKey] = g
				order = append(order, groupKey)
			}
			g.Count++
			if len(g.Examples) < maxPatternExamples {
				g.Examples = append(g.Examples, e.Content)
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if groups[order[i]].Count != groups[order[j]].Count {
			return groups[order[i]].Count > groups[order[j]].Count
		}
		return order[i] < order[j]
	})

	patterns := make([]Pattern, len(order))
	for i, k := range order {
		patterns[i] = *groups[k]
	}
	return patterns
}
