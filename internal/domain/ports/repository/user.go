package repository

import (
	"context"

	"telegram-smm-storefront/internal/domain/model"
)

// UserRepository persists storefront users.
type UserRepository interface {
	Save(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}
