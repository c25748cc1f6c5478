package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/adapter"
	"telegram-smm-storefront/internal/domain/ports/repository"
	"telegram-smm-storefront/internal/infra/logging"
	"telegram-smm-storefront/internal/infra/metrics"
	"telegram-smm-storefront/internal/validate"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ FlowUseCase = (*flowUC)(nil)

// FlowUseCase drives every multi-step conversation: order intake, login and
// profile edits. One input event per user is processed at a time; the session
// store is mutated in place with no other isolation.
type FlowUseCase interface {
	// StartOrder seeds an order-intake session for the chosen package,
	// replacing any flow already in progress.
	StartOrder(ctx context.Context, tgID int64, packageID string) (*Outcome, error)
	// StartLogin seeds the phone → email login flow.
	StartLogin(ctx context.Context, tgID int64) (*Outcome, error)
	// StartNameEdit seeds the single-step short-name edit flow.
	StartNameEdit(ctx context.Context, tgID int64) (*Outcome, error)
	// HandleInput applies one raw input or control signal to the user's
	// current step. With no active flow it returns domain.ErrNoActiveFlow.
	HandleInput(ctx context.Context, tgID int64, in Input) (*Outcome, error)
	// Active reports the step the user is currently parked in, StepNone if idle.
	Active(ctx context.Context, tgID int64) (model.FlowStep, error)
}

type flowUC struct {
	sessions repository.SessionStore
	packages repository.PackageRepository
	users    repository.UserRepository
	sink     adapter.OrderSink
	coupons  adapter.CouponPolicy
	log      *zerolog.Logger

	locks sync.Map // tgID -> *sync.Mutex
}

func NewFlowUseCase(
	sessions repository.SessionStore,
	packages repository.PackageRepository,
	users repository.UserRepository,
	sink adapter.OrderSink,
	coupons adapter.CouponPolicy,
	logger *zerolog.Logger,
) *flowUC {
	return &flowUC{
		sessions: sessions,
		packages: packages,
		users:    users,
		sink:     sink,
		coupons:  coupons,
		log:      logger,
	}
}

// lock serializes processing per user. Sessions of different users stay fully
// independent.
func (u *flowUC) lock(tgID int64) func() {
	v, _ := u.locks.LoadOrStore(tgID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (u *flowUC) StartOrder(ctx context.Context, tgID int64, packageID string) (*Outcome, error) {
	defer logging.TraceDuration(u.log, "FlowUC.StartOrder")()
	defer u.lock(tgID)()

	pkg, err := u.packages.FindByID(ctx, packageID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	if pkg.IsZero() || !pkg.Active {
		return nil, domain.ErrPackageNotFound
	}

	sess := model.NewSession(model.StepAwaitLink)
	sess.Set(model.FieldPlatform, pkg.Platform)
	sess.Set(model.FieldServiceID, pkg.ServiceID)
	sess.Set(model.FieldPackageName, pkg.Name)
	sess.Set(model.FieldPackageRate, pkg.Rate)
	if err := u.sessions.Set(ctx, tgID, sess); err != nil {
		return nil, err
	}

	metrics.FlowAdvanced("order", string(model.StepAwaitLink))
	return &Outcome{Kind: OutcomeAdvanced, Flow: "order", Step: model.StepAwaitLink, Draft: draftFromSession(sess)}, nil
}

func (u *flowUC) StartLogin(ctx context.Context, tgID int64) (*Outcome, error) {
	defer logging.TraceDuration(u.log, "FlowUC.StartLogin")()
	defer u.lock(tgID)()

	if err := u.sessions.Set(ctx, tgID, model.NewSession(model.StepAwaitPhone)); err != nil {
		return nil, err
	}
	metrics.FlowAdvanced("login", string(model.StepAwaitPhone))
	return &Outcome{Kind: OutcomeAdvanced, Flow: "login", Step: model.StepAwaitPhone}, nil
}

func (u *flowUC) StartNameEdit(ctx context.Context, tgID int64) (*Outcome, error) {
	defer logging.TraceDuration(u.log, "FlowUC.StartNameEdit")()
	defer u.lock(tgID)()

	if err := u.sessions.Set(ctx, tgID, model.NewSession(model.StepAwaitShortName)); err != nil {
		return nil, err
	}
	metrics.FlowAdvanced("profile", string(model.StepAwaitShortName))
	return &Outcome{Kind: OutcomeAdvanced, Flow: "profile", Step: model.StepAwaitShortName}, nil
}

func (u *flowUC) Active(ctx context.Context, tgID int64) (model.FlowStep, error) {
	sess, err := u.sessions.Get(ctx, tgID)
	if err != nil {
		return model.StepNone, err
	}
	if sess == nil {
		return model.StepNone, nil
	}
	return sess.Step, nil
}

func (u *flowUC) HandleInput(ctx context.Context, tgID int64, in Input) (*Outcome, error) {
	defer logging.TraceDuration(u.log, "FlowUC.HandleInput")()
	defer u.lock(tgID)()

	sess, err := u.sessions.Get(ctx, tgID)
	if err != nil {
		return nil, err
	}
	if sess.IsZero() {
		return nil, domain.ErrNoActiveFlow
	}

	// Cancellation is honored at every step of every flow.
	if in.Signal == SignalCancel {
		if err := u.sessions.Clear(ctx, tgID); err != nil {
			return nil, err
		}
		metrics.FlowCancelled(flowName(sess.Step))
		return &Outcome{Kind: OutcomeCancelled, Flow: flowName(sess.Step), Step: model.StepNone}, nil
	}

	var out *Outcome
	switch sess.Step {
	case model.StepAwaitLink, model.StepAwaitQuantity, model.StepAwaitCoupon, model.StepConfirmOrder:
		out, err = u.handleOrderStep(ctx, tgID, sess, in)
	case model.StepAwaitPhone, model.StepAwaitEmail:
		out, err = u.handleLoginStep(ctx, tgID, sess, in)
	case model.StepAwaitShortName:
		out, err = u.handleProfileStep(ctx, tgID, sess, in)
	default:
		u.log.Warn().Int64("tg_id", tgID).Str("step", string(sess.Step)).Msg("unknown step, resetting session")
		if err := u.sessions.Clear(ctx, tgID); err != nil {
			return nil, err
		}
		return nil, domain.ErrNoActiveFlow
	}
	if out != nil && out.Flow == "" {
		out.Flow = flowName(sess.Step)
	}
	return out, err
}

// reprompt rejects the input in place: the step and draft stay untouched.
func (u *flowUC) reprompt(sess *model.Session, reason validate.Reason) *Outcome {
	metrics.FlowRejected(flowName(sess.Step), string(sess.Step), string(reason))
	return &Outcome{Kind: OutcomeReprompt, Step: sess.Step, Reason: reason, Draft: draftFromSession(sess)}
}

// advance persists the mutated session at its next step.
func (u *flowUC) advance(ctx context.Context, tgID int64, sess *model.Session, next model.FlowStep) error {
	sess.Step = next
	if err := u.sessions.Set(ctx, tgID, sess); err != nil {
		return err
	}
	metrics.FlowAdvanced(flowName(next), string(next))
	return nil
}

func flowName(step model.FlowStep) string {
	switch step {
	case model.StepAwaitLink, model.StepAwaitQuantity, model.StepAwaitCoupon, model.StepConfirmOrder:
		return "order"
	case model.StepAwaitPhone, model.StepAwaitEmail:
		return "login"
	case model.StepAwaitShortName:
		return "profile"
	default:
		return "none"
	}
}

// draftFromSession assembles the order fields accumulated so far.
func draftFromSession(s *model.Session) *model.OrderDraft {
	d := &model.OrderDraft{
		Platform:    s.Get(model.FieldPlatform),
		ServiceID:   s.Get(model.FieldServiceID),
		PackageName: s.Get(model.FieldPackageName),
		PackageRate: s.Get(model.FieldPackageRate),
		Link:        s.Get(model.FieldLink),
		CouponCode:  s.Get(model.FieldCouponCode),
	}
	if q := s.Get(model.FieldQuantity); q != "" {
		d.Quantity, _ = strconv.Atoi(q)
	}
	if a := s.Get(model.FieldAmount); a != "" {
		d.Amount, _ = strconv.ParseFloat(a, 64)
	}
	return d
}
