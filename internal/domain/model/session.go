package model

// FlowStep identifies where a user currently is inside a multi-step
// conversation. The empty value means no flow is active.
type FlowStep string

const (
	StepNone FlowStep = ""

	// Order intake flow
	StepAwaitLink     FlowStep = "awaiting_link"
	StepAwaitQuantity FlowStep = "awaiting_quantity"
	StepAwaitCoupon   FlowStep = "awaiting_coupon"
	StepConfirmOrder  FlowStep = "confirming_order"

	// Login flow
	StepAwaitPhone FlowStep = "awaiting_phone"
	StepAwaitEmail FlowStep = "awaiting_email"

	// Profile edit flow
	StepAwaitShortName FlowStep = "awaiting_short_name"
)

// Draft field keys stored in Session.Data. A key is only present once its
// owning step completed successfully.
const (
	FieldPlatform    = "platform"
	FieldServiceID   = "service_id"
	FieldPackageName = "package_name"
	FieldPackageRate = "package_rate"
	FieldLink        = "link"
	FieldQuantity    = "quantity"
	FieldCouponCode  = "coupon_code"
	FieldAmount      = "amount"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldShortName   = "short_name"
)

// Session holds a user's progress through any multi-step conversation.
type Session struct {
	Step FlowStep          `json:"step"`
	Data map[string]string `json:"data"`
}

// NewSession starts a session at the given step with an empty draft.
func NewSession(step FlowStep) *Session {
	return &Session{Step: step, Data: make(map[string]string)}
}

func (s *Session) IsZero() bool { return s == nil || s.Step == StepNone }

// Set stores a validated draft field. Data is allocated lazily so sessions
// deserialized with a nil map stay usable.
func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

func (s *Session) Get(key string) string {
	if s.Data == nil {
		return ""
	}
	return s.Data[key]
}
