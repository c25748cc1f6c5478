package usecase

import (
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/validate"
)

// Signal is a control event delivered by the presentation layer instead of
// free text, e.g. a tapped inline button.
type Signal int

const (
	SignalNone Signal = iota
	SignalSkip
	SignalConfirm
	SignalCancel
)

// Input is one raw event for the conversation engine: either user text or a
// control signal, never both.
type Input struct {
	Text   string
	Signal Signal
}

func TextInput(text string) Input { return Input{Text: text} }
func SignalInput(s Signal) Input  { return Input{Signal: s} }

type OutcomeKind string

const (
	// OutcomeReprompt: input rejected, step unchanged, Reason set.
	OutcomeReprompt OutcomeKind = "reprompt"
	// OutcomeAdvanced: input accepted, session moved to Step.
	OutcomeAdvanced OutcomeKind = "advanced"
	// OutcomeCompleted: flow finished, session cleared.
	OutcomeCompleted OutcomeKind = "completed"
	// OutcomeCancelled: flow aborted, session cleared.
	OutcomeCancelled OutcomeKind = "cancelled"
)

// Outcome is what HandleInput reports back for the presentation adapter to
// render. Draft carries the order fields accumulated so far; OrderID and User
// are set on completion of the order and login/profile flows respectively.
type Outcome struct {
	Kind    OutcomeKind
	Flow    string // "order" | "login" | "profile"
	Step    model.FlowStep
	Reason  validate.Reason
	Draft   *model.OrderDraft
	OrderID string
	User    *model.User
}
