package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rcliao/episodic-memory/internal/model"
)

func addEntry(t *testing.T, s *Store, entryType, content string, md model.Metadata) *model.Entry {
	t.Helper()
	e, err := s.Add(&model.Entry{Type: entryType, Content: content, Metadata: md})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return e
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	s := New()
	before := time.Now()
	e := addEntry(t, s, "event", "user logged in", nil)

	if e.ID == "" {
		t.Error("expected non-empty id")
	}
	if e.Timestamp.Before(before) {
		t.Errorf("expected timestamp >= %v, got %v", before, e.Timestamp)
	}
}

func TestAddPreservesSuppliedFields(t *testing.T) {
	s := New()
	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	e, err := s.Add(&model.Entry{ID: "fixed-id", Timestamp: ts, Type: "event", Content: "replayed"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID != "fixed-id" {
		t.Errorf("expected supplied id kept, got %q", e.ID)
	}
	if !e.Timestamp.Equal(ts) {
		t.Errorf("expected supplied timestamp kept, got %v", e.Timestamp)
	}
}

func TestAddValidation(t *testing.T) {
	s := New()
	tests := []struct {
		name  string
		entry *model.Entry
	}{
		{"missing content", &model.Entry{Type: "event"}},
		{"blank content", &model.Entry{Type: "event", Content: "   "}},
		{"missing type", &model.Entry{Content: "something happened"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Add(tt.entry); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
	if s.Count("") != 0 {
		t.Errorf("rejected writes must not be stored, count = %d", s.Count(""))
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := New()
	e := addEntry(t, s, "event", "first", nil)
	_, err := s.Add(&model.Entry{ID: e.ID, Type: "event", Content: "second"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate id, got %v", err)
	}
}

func TestAddClonesInput(t *testing.T) {
	s := New()
	md := model.Metadata{"category": "work"}
	in := &model.Entry{Type: "event", Content: "meeting", Metadata: md}
	stored, err := s.Add(in)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	md["category"] = "mutated"
	got, _ := s.GetByID(stored.ID)
	if got.Metadata["category"] != "work" {
		t.Errorf("caller mutation leaked into store: %v", got.Metadata["category"])
	}
}

func TestGetByIDRoundTrip(t *testing.T) {
	s := New()
	e := addEntry(t, s, "decision", "use sqlite for the journal", model.Metadata{"confidence": 0.8})

	got, err := s.GetByID(e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != e.Content || got.Type != e.Type || !got.Timestamp.Equal(e.Timestamp) {
		t.Errorf("round-trip mismatch: %+v vs %+v", got, e)
	}
	if got.Metadata["confidence"] != 0.8 {
		t.Errorf("expected metadata preserved, got %v", got.Metadata)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := New()
	if _, err := s.GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	s := New()
	e := addEntry(t, s, "event", "to be removed", nil)

	if err := s.DeleteByID(e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetByID(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteByID(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
	if got := s.RetrieveByType("event"); len(got) != 0 {
		t.Errorf("expected type index cleaned up, got %d entries", len(got))
	}
}

func TestRetrieveByTypeExactSubset(t *testing.T) {
	s := New()
	first := addEntry(t, s, "event", "event one", nil)
	addEntry(t, s, "decision", "decision one", nil)
	second := addEntry(t, s, "event", "event two", nil)

	events := s.RetrieveByType("event")
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Insertion order is part of the contract.
	if events[0].ID != first.ID || events[1].ID != second.ID {
		t.Error("expected events in insertion order")
	}
	if got := s.RetrieveByType("reflection"); len(got) != 0 {
		t.Errorf("expected no reflections, got %d", len(got))
	}
}

func TestLast(t *testing.T) {
	s := New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Add(&model.Entry{
			Type:      "event",
			Content:   fmt.Sprintf("event %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	last := s.Last(3)
	if len(last) != 3 {
		t.Fatalf("expected 3, got %d", len(last))
	}
	if last[0].Content != "event 4" || last[2].Content != "event 2" {
		t.Errorf("expected newest first, got %q ... %q", last[0].Content, last[2].Content)
	}
	if got := s.Last(0); got != nil {
		t.Errorf("expected nil for n=0, got %d entries", len(got))
	}
}

func TestStatsFullScan(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		addEntry(t, s, "event", fmt.Sprintf("event %d", i), nil)
	}
	for i := 0; i < 2; i++ {
		addEntry(t, s, "decision", fmt.Sprintf("decision %d", i), nil)
	}

	stats := s.Stats()
	if stats["event"] != 3 || stats["decision"] != 2 {
		t.Errorf("expected {event:3 decision:2}, got %v", stats)
	}
	if len(stats) != 2 {
		t.Errorf("expected 2 types, got %d", len(stats))
	}

	// Stats must track deletes with no cached counters.
	events := s.RetrieveByType("event")
	s.DeleteByID(events[0].ID)
	if got := s.Stats()["event"]; got != 2 {
		t.Errorf("expected event count 2 after delete, got %d", got)
	}
}

func TestClear(t *testing.T) {
	s := New()
	addEntry(t, s, "event", "a", nil)
	addEntry(t, s, "event", "b", nil)
	kept := addEntry(t, s, "decision", "c", nil)

	if n := s.Clear("event"); n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	if s.Count("") != 1 {
		t.Errorf("expected 1 remaining, got %d", s.Count(""))
	}
	if _, err := s.GetByID(kept.ID); err != nil {
		t.Errorf("decision should survive event clear: %v", err)
	}

	if n := s.Clear(""); n != 1 {
		t.Errorf("expected 1 removed, got %d", n)
	}
	if s.Count("") != 0 {
		t.Errorf("expected empty store, got %d", s.Count(""))
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	s := New()
	for i := 0; i < 50; i++ {
		addEntry(t, s, "event", fmt.Sprintf("seed event %d", i), model.Metadata{"category": "seed"})
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				e, err := s.Add(&model.Entry{Type: "event", Content: fmt.Sprintf("writer %d event %d", w, i)})
				if err != nil {
					t.Errorf("add: %v", err)
					return
				}
				if i%3 == 0 {
					s.DeleteByID(e.ID)
				}
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.SearchByText("event")
				s.SearchBySimilarity("writer event", 5, "")
				s.Stats()
				s.Last(10)
			}
		}()
	}
	wg.Wait()

	// 50 seeds + 4 writers x 50 adds - 4 writers x 17 deletes
	want := 50 + 4*50 - 4*17
	if got := s.Count(""); got != want {
		t.Errorf("expected %d entries after concurrent run, got %d", want, got)
	}
}
