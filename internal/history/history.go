// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     history
// Description: Conversation transcript log
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"sync"
	"time"
)

// Entry roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Entry is one line of the conversation transcript
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Store is the interface for transcript persistence
type Store interface {
	// Append adds an entry to the transcript
	Append(ctx context.Context, entry *Entry) error

	// Entries returns up to limit entries for a session, oldest first.
	// A limit of 0 returns all entries.
	Entries(ctx context.Context, sessionID string, limit int) ([]*Entry, error)

	// Clear removes all entries for a session
	Clear(ctx context.Context, sessionID string) error

	// Close releases resources
	Close() error
}

// MemoryStore keeps the transcript in memory for the session lifetime
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]*Entry
}

// NewMemoryStore creates an in-memory transcript store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]*Entry),
	}
}

// Append adds an entry to the transcript
func (s *MemoryStore) Append(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	stored := *entry
	s.entries[entry.SessionID] = append(s.entries[entry.SessionID], &stored)
	return nil
}

// Entries returns up to limit entries for a session, oldest first
func (s *MemoryStore) Entries(ctx context.Context, sessionID string, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.entries[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}

	out := make([]*Entry, len(all))
	for i, e := range all {
		copied := *e
		out[i] = &copied
	}
	return out, nil
}

// Clear removes all entries for a session
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
