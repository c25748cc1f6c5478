package repository

import (
	"context"

	"telegram-smm-storefront/internal/domain/model"
)

// OrderRepository persists accepted orders.
type OrderRepository interface {
	Save(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	ListByTelegramID(ctx context.Context, tgID int64, limit int) ([]*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}
