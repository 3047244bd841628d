package session

import (
	"sync"
	"time"
)

// RiskSession is the transient per-user state of an in-progress risk
// questionnaire. It is never persisted and is lost on restart.
type RiskSession struct {
	Score         int
	QuestionIndex int
	UpdatedAt     time.Time
}

// Store owns the in-memory map of risk sessions keyed by chat id.
// It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]RiskSession
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]RiskSession),
	}
}

// Begin creates or resets the session for a chat with score 0 and index 0.
func (s *Store) Begin(chatID int64) RiskSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := RiskSession{UpdatedAt: time.Now()}
	s.sessions[chatID] = sess
	return sess
}

// Get returns a copy of the session for a chat, if one exists.
func (s *Store) Get(chatID int64) (RiskSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Put stores the session for a chat, refreshing its activity timestamp.
func (s *Store) Put(chatID int64, sess RiskSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.UpdatedAt = time.Now()
	s.sessions[chatID] = sess
}

// Delete removes the session for a chat. Deleting an absent session is a no-op.
func (s *Store) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// SweepIdle removes sessions idle for at least maxIdle and returns how many
// were removed. A swept session behaves like a stale callback afterwards.
func (s *Store) SweepIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for chatID, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, chatID)
			removed++
		}
	}
	return removed
}
