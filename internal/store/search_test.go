package store

import (
	"errors"
	"testing"

	"github.com/rcliao/episodic-memory/internal/model"
)

func newSearchStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	addEntry(t, s, "project", "Started work on the ML financial forecasting project",
		model.Metadata{"project_name": "ML Forecasting", "priority": "high"})
	addEntry(t, s, "decision", "Decided to allocate 2 hours per day to the ML project",
		model.Metadata{"project_name": "ML Forecasting", "confidence": 0.8})
	addEntry(t, s, "event", "Completed strength training session",
		model.Metadata{"category": "health", "duration_minutes": 60})
	return s
}

func TestSearchByText_CaseInsensitive(t *testing.T) {
	s := newSearchStore(t)

	got := s.SearchByText("ml")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for 'ml', got %d", len(got))
	}
	if got[0].Type != "project" || got[1].Type != "decision" {
		t.Error("expected insertion order")
	}
}

func TestSearchByText_BlankIsNoOp(t *testing.T) {
	s := newSearchStore(t)
	if got := s.SearchByText("  "); got != nil {
		t.Errorf("expected nil for blank query, got %d entries", len(got))
	}
}

func TestSearchByText_NoMatch(t *testing.T) {
	s := newSearchStore(t)
	if got := s.SearchByText("quantum"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestSearchByRegex(t *testing.T) {
	s := newSearchStore(t)

	got, err := s.SearchByRegex(`\d+ hours`)
	if err != nil {
		t.Fatalf("regex: %v", err)
	}
	if len(got) != 1 || got[0].Type != "decision" {
		t.Fatalf("expected the decision entry, got %d matches", len(got))
	}
}

func TestSearchByRegex_InvalidPattern(t *testing.T) {
	s := newSearchStore(t)

	_, err := s.SearchByRegex("(")
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	// A bad pattern must not disturb the store.
	if s.Count("") != 3 {
		t.Errorf("expected store unchanged, count = %d", s.Count(""))
	}
}

func TestSearchByRegex_EmptyPattern(t *testing.T) {
	s := newSearchStore(t)
	if _, err := s.SearchByRegex("  "); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestSearchByMetadata_Exact(t *testing.T) {
	s := newSearchStore(t)

	got := s.SearchByMetadata("project_name", "ML Forecasting")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got := s.SearchByMetadata("project_name", "ml forecasting"); len(got) != 0 {
		t.Errorf("exact match must be case-sensitive, got %d", len(got))
	}
}

func TestSearchByMetadata_NumericEquivalence(t *testing.T) {
	s := newSearchStore(t)

	// JSON decoding produces float64; callers may hold int.
	if got := s.SearchByMetadata("duration_minutes", float64(60)); len(got) != 1 {
		t.Errorf("expected 1 match for float64(60), got %d", len(got))
	}
	if got := s.SearchByMetadata("duration_minutes", 60); len(got) != 1 {
		t.Errorf("expected 1 match for int 60, got %d", len(got))
	}
}

func TestSearchByMetadata_RelationalJoin(t *testing.T) {
	s := New()
	project := addEntry(t, s, "project", "New research project", model.Metadata{"project_name": "Research"})
	related := addEntry(t, s, "decision", "Research daily at 9am", model.Metadata{"related_to": project.ID})
	addEntry(t, s, "decision", "Unrelated decision", nil)

	got := s.SearchByMetadata("related_to", project.ID)
	if len(got) != 1 || got[0].ID != related.ID {
		t.Fatalf("expected the related decision, got %d matches", len(got))
	}
}

func TestSearchByMetadataValue_SingleKey(t *testing.T) {
	s := newSearchStore(t)

	got := s.SearchByMetadataValue("project_name", "forecast")
	if len(got) != 2 {
		t.Errorf("expected 2 partial matches, got %d", len(got))
	}
	if got := s.SearchByMetadataValue("category", "forecast"); len(got) != 0 {
		t.Errorf("expected no matches under category, got %d", len(got))
	}
}

func TestSearchByMetadataValue_AllKeys(t *testing.T) {
	s := newSearchStore(t)

	// "60" appears only as a numeric duration; stringified values match too.
	got := s.SearchByMetadataValue("", "60")
	if len(got) != 1 || got[0].Type != "event" {
		t.Fatalf("expected the event entry, got %d matches", len(got))
	}
}

func TestSearchByMetadataValue_BlankIsNoOp(t *testing.T) {
	s := newSearchStore(t)
	if got := s.SearchByMetadataValue("category", " "); got != nil {
		t.Errorf("expected nil for blank value, got %d", len(got))
	}
}
