package store

import (
	"fmt"
	"testing"
	"time"
)

func TestRecordAssignsIdentity(t *testing.T) {
	s := New(10)
	s.Record("hi", "prompt", "reply", map[string]interface{}{"name": "Ana"}, false, 0.9, "")

	entries := s.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ID == "" || entry.SessionID != s.SessionID() {
		t.Fatalf("expected id and session assigned, got %+v", entry)
	}
	if entry.UserMessage != "hi" || entry.Prompt != "prompt" || entry.Response != "reply" {
		t.Fatalf("unexpected entry content: %+v", entry)
	}
}

func TestRecentReturnsNewestEntriesInOrder(t *testing.T) {
	s := New(10)
	for i := 0; i < 5; i++ {
		s.Record(fmt.Sprintf("msg-%d", i), "p", "r", nil, false, 0.5, "")
	}

	recent := s.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].UserMessage != "msg-3" || recent[1].UserMessage != "msg-4" {
		t.Fatalf("expected the two newest entries oldest-first, got %v", recent)
	}
}

func TestRecentWithoutLimitReturnsAll(t *testing.T) {
	s := New(10)
	s.Record("a", "p", "r", nil, false, 0.5, "")
	s.Record("b", "p", "r", nil, false, 0.5, "")

	if got := len(s.Recent(0)); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := New(3)
	for i := 0; i < 5; i++ {
		s.Record(fmt.Sprintf("msg-%d", i), "p", "r", nil, false, 0.5, "")
	}

	entries := s.All()
	if len(entries) != 3 {
		t.Fatalf("expected capacity cap of 3, got %d", len(entries))
	}
	if entries[0].UserMessage != "msg-2" {
		t.Fatalf("expected oldest entries evicted, first is %q", entries[0].UserMessage)
	}
}

func TestBySessionFiltersForeignEntries(t *testing.T) {
	s := New(10)
	s.Record("mine", "p", "r", nil, false, 0.5, "")

	if got := s.BySession(s.SessionID()); len(got) != 1 {
		t.Fatalf("expected 1 entry for own session, got %d", len(got))
	}
	if got := s.BySession("session_other"); len(got) != 0 {
		t.Fatalf("expected no entries for foreign session, got %d", len(got))
	}
}

func TestSinceUsesRecencyWindow(t *testing.T) {
	s := New(10)
	current := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.Record("old", "p", "r", nil, false, 0.5, "")
	current = current.Add(5 * time.Hour)
	s.Record("recent", "p", "r", nil, false, 0.5, "")

	within := s.Since(2)
	if len(within) != 1 || within[0].UserMessage != "recent" {
		t.Fatalf("expected only the recent entry, got %v", within)
	}
	if got := len(s.Since(24)); got != 2 {
		t.Fatalf("expected both entries within 24h, got %d", got)
	}
}

func TestClearDropsEverything(t *testing.T) {
	s := New(10)
	s.Record("a", "p", "r", nil, false, 0.5, "")
	s.Clear()

	if got := len(s.All()); got != 0 {
		t.Fatalf("expected empty store after clear, got %d", got)
	}
}

func TestNonPositiveCapacityFallsBackToDefault(t *testing.T) {
	s := New(0)
	if s.capacity != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, s.capacity)
	}
}
