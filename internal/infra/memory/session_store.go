// Package memory provides an in-process SessionStore for development and the
// dev-mode config. It holds the same contract as the Redis store minus TTL
// expiry; stale sessions simply stay parked until cleared.
package memory

import (
	"context"
	"sync"

	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

type SessionStore struct {
	mu    sync.RWMutex
	store map[int64]*model.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{store: make(map[int64]*model.Session)}
}

func (s *SessionStore) Get(_ context.Context, tgID int64) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.store[tgID]
	if !ok {
		return nil, nil
	}
	return cloneSession(sess), nil
}

func (s *SessionStore) Set(_ context.Context, tgID int64, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[tgID] = cloneSession(sess)
	return nil
}

func (s *SessionStore) Clear(_ context.Context, tgID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, tgID)
	return nil
}

// cloneSession copies the session so callers never share the stored map.
func cloneSession(s *model.Session) *model.Session {
	cp := &model.Session{Step: s.Step, Data: make(map[string]string, len(s.Data))}
	for k, v := range s.Data {
		cp.Data[k] = v
	}
	return cp
}
