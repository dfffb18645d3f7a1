// Package model defines the core episodic memory data types.
package model

import (
	"time"
)

// Conventional entry types. The type tag is an open string; these are the
// values the rest of the system knows how to interpret, not a closed enum.
const (
	TypeEvent       = "event"
	TypeDecision    = "decision"
	TypeInsight     = "insight"
	TypeProject     = "project"
	TypeInteraction = "interaction"
	TypeReflection  = "reflection"
	TypeError       = "error"
	TypeGoal        = "goal"
)

// RecommendedTypes lists the documented entry types. Writes with other
// type tags are accepted; readers treat unrecognized types generically.
var RecommendedTypes = map[string]bool{
	TypeEvent:       true,
	TypeDecision:    true,
	TypeInsight:     true,
	TypeProject:     true,
	TypeInteraction: true,
	TypeReflection:  true,
	TypeError:       true,
	TypeGoal:        true,
}

// Metadata is an open key/value map attached to an entry. Values are
// strings, numbers, or booleans; keys such as "project_name", "related_to",
// "category", and "activity_type" are used for relational joins and
// pattern mining.
type Metadata map[string]any

// Entry is a single immutable episodic memory record. Entries are created
// and deleted, never updated in place; the id is assigned once and never
// reused.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

// Age reports how old the entry is.
func (e *Entry) Age() time.Duration {
	return time.Since(e.Timestamp)
}

// Clone returns a copy of the entry with its own metadata map, so callers
// can hold results without aliasing store-owned state.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Metadata != nil {
		c.Metadata = make(Metadata, len(e.Metadata))
		for k, v := range e.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
