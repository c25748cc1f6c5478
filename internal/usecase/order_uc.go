package usecase

import (
	"context"

	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/adapter"
	"telegram-smm-storefront/internal/domain/ports/repository"
	"telegram-smm-storefront/internal/infra/logging"
	"telegram-smm-storefront/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time checks
var (
	_ OrderUseCase      = (*orderUC)(nil)
	_ adapter.OrderSink = (*orderUC)(nil)
)

// OrderUseCase records accepted orders and serves order listings. It is also
// the OrderSink the conversation engine hands completed drafts to.
type OrderUseCase interface {
	Submit(ctx context.Context, tgID int64, draft model.OrderDraft) (string, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, tgID int64, limit int) ([]*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type orderUC struct {
	orders repository.OrderRepository
	log    *zerolog.Logger
}

func NewOrderUseCase(orders repository.OrderRepository, logger *zerolog.Logger) *orderUC {
	return &orderUC{orders: orders, log: logger}
}

// Submit persists the draft as a pending order and returns its id.
func (o *orderUC) Submit(ctx context.Context, tgID int64, draft model.OrderDraft) (string, error) {
	defer logging.TraceDuration(o.log, "OrderUC.Submit")()

	order, err := model.NewOrder(tgID, draft)
	if err != nil {
		return "", err
	}
	if err := o.orders.Save(ctx, order); err != nil {
		metrics.IncDBError("orders", "save")
		return "", err
	}
	metrics.IncOrder(string(order.Status))
	metrics.ObserveOrderAmount(order.Amount)
	logging.With(logging.WithOrderID(ctx, order.ID), o.log).Info().
		Int64("tg_id", tgID).
		Str("platform", order.Platform).
		Int("quantity", order.Quantity).
		Float64("amount", order.Amount).
		Msg("order created")
	return order.ID, nil
}

func (o *orderUC) Get(ctx context.Context, id string) (*model.Order, error) {
	return o.orders.FindByID(ctx, id)
}

func (o *orderUC) ListByUser(ctx context.Context, tgID int64, limit int) ([]*model.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return o.orders.ListByTelegramID(ctx, tgID, limit)
}

func (o *orderUC) ListRecent(ctx context.Context, limit int) ([]*model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return o.orders.ListRecent(ctx, limit)
}

func (o *orderUC) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	defer logging.TraceDuration(o.log, "OrderUC.UpdateStatus")()
	if err := o.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	metrics.IncOrder(string(status))
	return nil
}
