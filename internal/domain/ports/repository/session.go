package repository

import (
	"context"

	"telegram-smm-storefront/internal/domain/model"
)

// SessionStore is the port for managing a user's conversational state.
// Get returns (nil, nil) when the user has no active session, so callers can
// distinguish "no flow" from a store failure.
type SessionStore interface {
	Get(ctx context.Context, tgID int64) (*model.Session, error)
	Set(ctx context.Context, tgID int64, session *model.Session) error
	Clear(ctx context.Context, tgID int64) error
}
