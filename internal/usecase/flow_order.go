package usecase

import (
	"context"
	"strconv"

	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/infra/metrics"
	"telegram-smm-storefront/internal/pricing"
	"telegram-smm-storefront/internal/validate"
)

// handleOrderStep runs one transition of the order-intake machine:
// AwaitingLink → AwaitingQuantity → AwaitingCoupon → ConfirmingOrder.
// The coupon step is the only skippable one.
func (u *flowUC) handleOrderStep(ctx context.Context, tgID int64, sess *model.Session, in Input) (*Outcome, error) {
	switch sess.Step {
	case model.StepAwaitLink:
		domains := model.DomainsFor(sess.Get(model.FieldPlatform))
		link, reason := validate.Link(in.Text, domains)
		if !reason.OK() {
			return u.reprompt(sess, reason), nil
		}
		sess.Set(model.FieldLink, link)
		if err := u.advance(ctx, tgID, sess, model.StepAwaitQuantity); err != nil {
			return nil, err
		}
		return &Outcome{Kind: OutcomeAdvanced, Step: sess.Step, Draft: draftFromSession(sess)}, nil

	case model.StepAwaitQuantity:
		qty, reason := validate.Quantity(in.Text)
		if !reason.OK() {
			return u.reprompt(sess, reason), nil
		}
		rate := sess.Get(model.FieldPackageRate)
		amount, parsed := pricing.ComputeAmountChecked(rate, qty)
		if !parsed {
			// Deliberate lenient fallback: price to zero but surface it.
			metrics.PricingFallback()
			u.log.Warn().Int64("tg_id", tgID).Str("rate", rate).Msg("unparsable rate spec, amount set to 0")
		}
		sess.Set(model.FieldQuantity, strconv.Itoa(qty))
		sess.Set(model.FieldAmount, strconv.FormatFloat(amount, 'f', 2, 64))
		if err := u.advance(ctx, tgID, sess, model.StepAwaitCoupon); err != nil {
			return nil, err
		}
		return &Outcome{Kind: OutcomeAdvanced, Step: sess.Step, Draft: draftFromSession(sess)}, nil

	case model.StepAwaitCoupon:
		if in.Signal != SignalSkip {
			accepted, err := u.coupons.Redeem(ctx, in.Text, *draftFromSession(sess))
			if err != nil {
				return nil, err
			}
			if !accepted {
				return u.reprompt(sess, validate.CouponRejected), nil
			}
			sess.Set(model.FieldCouponCode, in.Text)
		}
		if err := u.advance(ctx, tgID, sess, model.StepConfirmOrder); err != nil {
			return nil, err
		}
		return &Outcome{Kind: OutcomeAdvanced, Step: sess.Step, Draft: draftFromSession(sess)}, nil

	case model.StepConfirmOrder:
		// Terminal step: only the confirm signal moves us; free text just
		// re-asks the question. Cancel is handled before dispatch.
		if in.Signal != SignalConfirm {
			return u.reprompt(sess, validate.ReasonNone), nil
		}
		draft := draftFromSession(sess)
		orderID, err := u.sink.Submit(ctx, tgID, *draft)
		if err != nil {
			return nil, err
		}
		if err := u.sessions.Clear(ctx, tgID); err != nil {
			return nil, err
		}
		metrics.FlowAdvanced("order", "completed")
		return &Outcome{Kind: OutcomeCompleted, Step: model.StepNone, Draft: draft, OrderID: orderID}, nil
	}
	return nil, nil
}
