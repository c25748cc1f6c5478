package usecase

import (
	"context"
	"errors"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/infra/logging"
	"telegram-smm-storefront/internal/validate"
)

// handleLoginStep runs the AwaitingPhone → AwaitingEmail login flow. On
// completion the collected contact details are written to the user record.
func (u *flowUC) handleLoginStep(ctx context.Context, tgID int64, sess *model.Session, in Input) (*Outcome, error) {
	switch sess.Step {
	case model.StepAwaitPhone:
		phone, reason := validate.Phone(in.Text)
		if !reason.OK() {
			return u.reprompt(sess, reason), nil
		}
		sess.Set(model.FieldPhone, phone)
		if err := u.advance(ctx, tgID, sess, model.StepAwaitEmail); err != nil {
			return nil, err
		}
		return &Outcome{Kind: OutcomeAdvanced, Step: sess.Step}, nil

	case model.StepAwaitEmail:
		email, reason := validate.Email(in.Text)
		if !reason.OK() {
			return u.reprompt(sess, reason), nil
		}
		user, err := u.users.FindByTelegramID(ctx, tgID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		if err != nil {
			return nil, err
		}
		user.Phone = sess.Get(model.FieldPhone)
		user.Email = email
		user.Touch()
		if err := u.users.Save(ctx, user); err != nil {
			return nil, err
		}
		if err := u.sessions.Clear(ctx, tgID); err != nil {
			return nil, err
		}
		u.log.Info().Int64("tg_id", tgID).Str("phone", logging.Redact(user.Phone, false)).Msg("login completed")
		return &Outcome{Kind: OutcomeCompleted, Step: model.StepNone, User: user}, nil
	}
	return nil, nil
}

// handleProfileStep runs the single-step short-name edit flow.
func (u *flowUC) handleProfileStep(ctx context.Context, tgID int64, sess *model.Session, in Input) (*Outcome, error) {
	name, reason := validate.ShortName(in.Text)
	if !reason.OK() {
		return u.reprompt(sess, reason), nil
	}
	user, err := u.users.FindByTelegramID(ctx, tgID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.ShortName = name
	user.Touch()
	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := u.sessions.Clear(ctx, tgID); err != nil {
		return nil, err
	}
	return &Outcome{Kind: OutcomeCompleted, Step: model.StepNone, User: user}, nil
}
