package main

import "sync"

// DialogStep names the current state of a dialogue session.
type DialogStep int

const (
	StepNone DialogStep = iota

	// Event creation, strictly ordered.
	StepName
	StepDescription
	StepPrice
	StepAddress
	StepMaxParticipants
	StepDate
	StepTime
	StepPoster

	// Single-field edit.
	StepEditValue
)

// Session is the transient dialogue state for one (chat, user) pair. It
// is owned exclusively by that conversation and discarded on completion
// or cancellation.
type Session struct {
	Step  DialogStep
	Draft EventDraft

	// EventID is assigned once the draft has been persisted, for the
	// optional poster step.
	EventID int64

	// Edit dialogue target.
	EditEventID int64
	EditField   EditableField
}

type sessionKey struct {
	ChatID int64
	UserID int64
}

// SessionStore keeps at most one dialogue session per (chat, user).
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[sessionKey]*Session
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[sessionKey]*Session)}
}

// Get returns the active session for the pair, or nil.
func (s *SessionStore) Get(chatID, userID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionKey{chatID, userID}]
}

// Start discards any prior session for the pair and returns a fresh one.
func (s *SessionStore) Start(chatID, userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{}
	s.sessions[sessionKey{chatID, userID}] = sess
	return sess
}

// Clear removes the session for the pair, if any.
func (s *SessionStore) Clear(chatID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{chatID, userID})
}
