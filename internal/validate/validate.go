// Package validate holds the pure input validators used by the conversation
// flows. Each validator normalizes one piece of raw user text and returns the
// parsed value together with a stable reason code on rejection, so callers
// can render deterministic error prompts without inspecting free text.
package validate

// Reason is a stable, enumerable identifier for why validation failed.
// Codes are part of the prompt-rendering contract; do not rename them.
type Reason string

const (
	ReasonNone Reason = ""

	// quantity
	NotANumber  Reason = "NOT_A_NUMBER"
	NotPositive Reason = "NOT_POSITIVE"

	// link
	BadURLFormat   Reason = "BAD_URL_FORMAT"
	DomainMismatch Reason = "DOMAIN_MISMATCH"

	// coupon (policy rejection, modeled like an input error)
	CouponRejected Reason = "COUPON_REJECTED"

	// phone
	MissingCountryCode   Reason = "MISSING_COUNTRY_CODE"
	WrongLength          Reason = "WRONG_LENGTH"
	InvalidStartingDigit Reason = "INVALID_STARTING_DIGIT"
	RepeatedPattern      Reason = "REPEATED_PATTERN"
	SequentialPattern    Reason = "SEQUENTIAL_PATTERN"
	TooManyZeros         Reason = "TOO_MANY_ZEROS"
	ReservedRange        Reason = "RESERVED_RANGE"
	KnownTestNumber      Reason = "KNOWN_TEST_NUMBER"

	// email
	BadEmailFormat Reason = "BAD_EMAIL_FORMAT"

	// short name
	NameLength Reason = "NAME_LENGTH"
)

func (r Reason) OK() bool { return r == ReasonNone }
