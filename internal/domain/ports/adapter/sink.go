package adapter

import (
	"context"

	"telegram-smm-storefront/internal/domain/model"
)

// OrderSink accepts a completed order draft and returns the created order id.
// The conversation engine treats Submit as fire-and-forget: the session is
// cleared whether or not downstream processing later succeeds.
type OrderSink interface {
	Submit(ctx context.Context, tgID int64, draft model.OrderDraft) (string, error)
}

// CouponPolicy decides whether a coupon code is accepted for a draft.
// The engine calls it but does not define the policy.
type CouponPolicy interface {
	Redeem(ctx context.Context, code string, draft model.OrderDraft) (accepted bool, err error)
}
