// Package store holds the in-memory, process-lifetime log of every model
// prompt/response exchanged during lead qualification. Observability only:
// entries are lost on restart by design.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity bounds the log when no capacity is configured.
const DefaultCapacity = 1000

// Entry is one logged prompt/response tuple.
type Entry struct {
	ID            string      `json:"id"`
	Timestamp     time.Time   `json:"timestamp"`
	SessionID     string      `json:"sessionId"`
	UserMessage   string      `json:"userMessage"`
	Prompt        string      `json:"prompt"`
	Response      string      `json:"response"`
	ExtractedData interface{} `json:"extractedData"`
	IsComplete    bool        `json:"isComplete"`
	Confidence    float64     `json:"confidence"`
	LeadID        string      `json:"leadId,omitempty"`
}

// Store is a mutex-guarded bounded log. Once the capacity is reached the
// oldest entries are evicted.
type Store struct {
	mu        sync.Mutex
	entries   []Entry
	capacity  int
	sessionID string
	now       func() time.Time
}

// New creates a store with the given capacity; non-positive values fall
// back to DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity:  capacity,
		sessionID: fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), randomSuffix(7)),
		now:       time.Now,
	}
}

// Record appends one exchange. Satisfies the leads service's PromptRecorder.
func (s *Store) Record(userMessage, prompt, response string, extractedData interface{}, isComplete bool, confidence float64, leadID string) {
	now := s.now()
	entry := Entry{
		ID:            fmt.Sprintf("prompt_%d_%s", now.UnixMilli(), randomSuffix(7)),
		Timestamp:     now,
		SessionID:     s.sessionID,
		UserMessage:   userMessage,
		Prompt:        prompt,
		Response:      response,
		ExtractedData: extractedData,
		IsComplete:    isComplete,
		Confidence:    confidence,
		LeadID:        leadID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if overflow := len(s.entries) - s.capacity; overflow > 0 {
		s.entries = append([]Entry(nil), s.entries[overflow:]...)
	}
}

// All returns every retained entry, oldest first.
func (s *Store) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Recent returns the newest limit entries, oldest first.
func (s *Store) Recent(limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit >= len(s.entries) {
		return append([]Entry(nil), s.entries...)
	}
	return append([]Entry(nil), s.entries[len(s.entries)-limit:]...)
}

// BySession returns entries recorded under the given session id.
func (s *Store) BySession(sessionID string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]Entry, 0)
	for _, entry := range s.entries {
		if entry.SessionID == sessionID {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Since returns entries newer than the given number of hours.
func (s *Store) Since(hours int) []Entry {
	cutoff := s.now().Add(-time.Duration(hours) * time.Hour)

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]Entry, 0)
	for _, entry := range s.entries {
		if entry.Timestamp.After(cutoff) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Clear drops every retained entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// SessionID returns the id this process records entries under.
func (s *Store) SessionID() string {
	return s.sessionID
}

func randomSuffix(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
