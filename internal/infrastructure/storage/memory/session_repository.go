package memory

import (
	"context"
	"sync"
	"time"

	"bookshelf/internal/domain/session"
)

type sessionEntry struct {
	userID    int
	expiresAt time.Time
}

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

func (r *SessionRepository) Create(_ context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[tokenHash] = sessionEntry{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *SessionRepository) Validate(_ context.Context, tokenHash string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[tokenHash]
	if !ok || !r.now().Before(s.expiresAt) {
		return 0, session.ErrInvalidSession
	}
	return s.userID, nil
}

func (r *SessionRepository) Revoke(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[tokenHash]; !ok {
		return session.ErrInvalidSession
	}
	delete(r.sessions, tokenHash)
	return nil
}
