package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/lumina-store/internal/domain"
)

// SessionStore keeps sessions for the life of the process.
// Reads and updates hand out deep copies; the stored value is only
// mutated inside UpdateSession under the lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (s *SessionStore) CreateSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return domain.ErrSessionExists
	}

	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return sess.Clone(), nil
}

// UpdateSession applies fn to a working copy and commits it only when fn
// succeeds, so a failed update leaves the session untouched.
func (s *SessionStore) UpdateSession(
	ctx context.Context,
	id domain.SessionID,
	fn func(*domain.Session) error,
) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	working := sess.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	s.sessions[id] = working
	return working.Clone(), nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len is the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
