package model

import (
	"crypto/rand"
	"time"

	"telegram-smm-storefront/internal/domain"

	"github.com/oklog/ulid/v2"
)

// OrderDraft is the validated, fully assembled result of one order-intake
// conversation. It is immutable once handed to the order sink.
type OrderDraft struct {
	Platform    string
	ServiceID   string
	PackageName string
	PackageRate string
	Link        string
	Quantity    int
	CouponCode  string // empty when the coupon step was skipped
	Amount      float64
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusRejected   OrderStatus = "rejected"
)

// Order is a persisted, accepted order.
type Order struct {
	ID          string
	TelegramID  int64
	Platform    string
	ServiceID   string
	PackageName string
	PackageRate string
	Link        string
	Quantity    int
	CouponCode  string
	Amount      float64
	Status      OrderStatus
	CreatedAt   time.Time
}

// NewOrder materializes a draft into a pending order with a ULID so IDs
// sort by creation time.
func NewOrder(tgID int64, d OrderDraft) (*Order, error) {
	if tgID <= 0 || d.Link == "" || d.Quantity <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	id := ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
	return &Order{
		ID:          id,
		TelegramID:  tgID,
		Platform:    d.Platform,
		ServiceID:   d.ServiceID,
		PackageName: d.PackageName,
		PackageRate: d.PackageRate,
		Link:        d.Link,
		Quantity:    d.Quantity,
		CouponCode:  d.CouponCode,
		Amount:      d.Amount,
		Status:      OrderStatusPending,
		CreatedAt:   now,
	}, nil
}
