package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
)

// MemoryStore is a process-local SessionStore. Expired sessions are dropped
// lazily on Get and on every Save.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]account.Session
	clock    ports.Clock
}

func NewMemoryStore(clock ports.Clock) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]account.Session), clock: clock}
}

func (s *MemoryStore) Save(_ context.Context, session account.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	now := s.clock.Now()
	if session.IsExpired(now) {
		return errs.NewValueIsInvalidErrorWithCause("session", errors.New("already expired"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for token, existing := range s.sessions {
		if existing.IsExpired(now) {
			delete(s.sessions, token)
		}
	}
	s.sessions[session.Token()] = session
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (account.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return account.Session{}, fmt.Errorf("%w: unknown session", errs.ErrUnauthorized)
	}
	if session.IsExpired(s.clock.Now()) {
		delete(s.sessions, token)
		return account.Session{}, fmt.Errorf("%w: session expired", errs.ErrUnauthorized)
	}
	return session, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
