// ABOUTME: Per-session conversation history with bounded sessions and turns
// ABOUTME: Session eviction picks the session with the oldest first interaction
package memory

import (
	"log/slog"
	"sync"
	"time"

	"github.com/harper/tablescout/internal/models"
)

const (
	// DefaultMaxSessions bounds the number of concurrently tracked sessions
	DefaultMaxSessions = 50
	// DefaultMaxHistoryPerSession bounds turns kept per session
	DefaultMaxHistoryPerSession = 15
)

// ConversationMemory stores per-session interaction history for the process
// lifetime. All mutation is serialized behind a single mutex so the
// check-evict-insert sequence stays atomic under concurrent requests.
type ConversationMemory struct {
	mu          sync.Mutex
	sessions    map[string][]models.Interaction
	maxSessions int
	maxHistory  int
	log         *slog.Logger
}

// NewConversationMemory creates a memory bounded to maxSessions sessions of
// maxHistory interactions each. Non-positive bounds fall back to defaults.
func NewConversationMemory(maxSessions, maxHistory int) *ConversationMemory {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistoryPerSession
	}
	log := slog.With("component", "conversation_memory")
	log.Info("initialized conversation memory", "max_sessions", maxSessions, "max_history", maxHistory)
	return &ConversationMemory{
		sessions:    make(map[string][]models.Interaction),
		maxSessions: maxSessions,
		maxHistory:  maxHistory,
		log:         log,
	}
}

// AddInteraction appends a (user, bot) turn pair to the session, creating the
// session if needed, evicting the oldest session past the session bound, and
// trimming the session to the most recent maxHistory interactions.
func (m *ConversationMemory) AddInteraction(sessionID, userMessage, botResponse string, metadata map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		m.sessions[sessionID] = nil
		m.log.Info("created new session", "session_id", sessionID)
	}

	if len(m.sessions) > m.maxSessions {
		oldest := m.oldestSessionLocked()
		delete(m.sessions, oldest)
		m.log.Info("session limit reached, removed oldest session", "session_id", oldest)
	}

	if metadata == nil {
		metadata = map[string]any{}
	}
	m.sessions[sessionID] = append(m.sessions[sessionID], models.Interaction{
		Timestamp:   time.Now(),
		UserMessage: userMessage,
		BotResponse: botResponse,
		Metadata:    metadata,
	})

	if len(m.sessions[sessionID]) > m.maxHistory {
		history := m.sessions[sessionID]
		m.sessions[sessionID] = history[len(history)-m.maxHistory:]
		m.log.Debug("trimmed session history", "session_id", sessionID)
	}
}

// oldestSessionLocked returns the session whose first stored interaction has
// the smallest timestamp. Empty sessions count as "now", so one is never the
// true oldest unless every session is empty.
func (m *ConversationMemory) oldestSessionLocked() string {
	var oldestID string
	var oldestTime time.Time
	for id, history := range m.sessions {
		first := time.Now()
		if len(history) > 0 {
			first = history[0].Timestamp
		}
		if oldestID == "" || first.Before(oldestTime) {
			oldestID = id
			oldestTime = first
		}
	}
	return oldestID
}

// History returns up to limit of the most recent interactions for a session,
// oldest first. limit <= 0 returns the full stored history.
func (m *ConversationMemory) History(sessionID string, limit int) []models.Interaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	history, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	out := make([]models.Interaction, len(history))
	copy(out, history)
	return out
}

// SessionCount returns the number of tracked sessions
func (m *ConversationMemory) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// HasSession reports whether a session is currently tracked
func (m *ConversationMemory) HasSession(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionID]
	return ok
}
