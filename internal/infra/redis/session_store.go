package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore keeps conversational state in Redis. Keys expire after ttl so
// abandoned flows clean themselves up; the engine sees an expired session as
// "no active flow".
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		// Give users 15 minutes to complete any conversational flow.
		ttl = 15 * time.Minute
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(tgID int64) string {
	return fmt.Sprintf("conv_state:%d", tgID)
}

func (s *SessionStore) Get(ctx context.Context, tgID int64) (*model.Session, error) {
	data, err := s.client.Get(ctx, s.key(tgID))
	if IsNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Set(ctx context.Context, tgID int64, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(tgID), data, s.ttl)
}

func (s *SessionStore) Clear(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.key(tgID))
}
