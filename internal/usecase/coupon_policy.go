package usecase

import (
	"context"

	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/adapter"
)

var _ adapter.CouponPolicy = (*RejectAllCoupons)(nil)

// RejectAllCoupons is the currently shipped coupon policy: no codes are
// active, so every code is turned away and the user is offered the skip
// affordance instead. The flow engine only consumes the CouponPolicy port,
// so a real redemption backend can be swapped in without touching it.
type RejectAllCoupons struct{}

func (RejectAllCoupons) Redeem(_ context.Context, _ string, _ model.OrderDraft) (bool, error) {
	return false, nil
}
