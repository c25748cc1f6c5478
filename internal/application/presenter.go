package application

import (
	"errors"
	"strings"
	"unicode"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/adapter"
	"telegram-smm-storefront/internal/infra/i18n"
	"telegram-smm-storefront/internal/usecase"
	"telegram-smm-storefront/internal/validate"
)

// Callback data prefixes shared between the presenter (which builds keyboards)
// and the Telegram router (which dispatches taps).
const (
	CBPlatformPrefix = "plat:"
	CBPackagePrefix  = "pkg:"
	CBCouponSkip     = "coupon:skip"
	CBOrderConfirm   = "order:confirm"
	CBOrderCancel    = "order:cancel"
	CBMenu           = "cmd:menu"
	CBOrders         = "cmd:orders"
	CBLogin          = "cmd:login"
	CBNewOrder       = "cmd:new_order"
)

// Presenter turns conversation outcomes and catalog data into chat text plus
// reply markup. All user-facing strings resolve through the translator so the
// engine itself stays display-free.
type Presenter struct {
	tr *i18n.Translator
}

func NewPresenter(tr *i18n.Translator) *Presenter {
	return &Presenter{tr: tr}
}

// Render maps one Outcome to the message that should go back to the chat.
func (p *Presenter) Render(out *usecase.Outcome) (string, *adapter.ReplyMarkup) {
	switch out.Kind {
	case usecase.OutcomeCancelled:
		return p.tr.T("flow_cancelled"), p.MenuKeyboard()
	case usecase.OutcomeCompleted:
		return p.renderCompleted(out)
	case usecase.OutcomeReprompt:
		return p.renderReprompt(out)
	case usecase.OutcomeAdvanced:
		return p.renderStepPrompt(out)
	}
	return p.tr.T("error_generic"), nil
}

func (p *Presenter) renderCompleted(out *usecase.Outcome) (string, *adapter.ReplyMarkup) {
	switch out.Flow {
	case "order":
		return p.tr.T("order_created", out.OrderID), p.MenuKeyboard()
	case "login":
		return p.tr.T("login_done"), p.MenuKeyboard()
	case "profile":
		name := ""
		if out.User != nil {
			name = out.User.ShortName
		}
		return p.tr.T("profile_name_saved", name), p.MenuKeyboard()
	}
	return p.tr.T("error_generic"), nil
}

func (p *Presenter) renderReprompt(out *usecase.Outcome) (string, *adapter.ReplyMarkup) {
	// A rejected input re-asks the same step, prefixed with the reason when
	// one was reported. Free text at the confirmation step has no reason.
	prompt, markup := p.stepPrompt(out)
	if out.Reason == validate.ReasonNone {
		return prompt, markup
	}
	return p.reasonText(out) + "\n\n" + prompt, markup
}

func (p *Presenter) renderStepPrompt(out *usecase.Outcome) (string, *adapter.ReplyMarkup) {
	return p.stepPrompt(out)
}

func (p *Presenter) stepPrompt(out *usecase.Outcome) (string, *adapter.ReplyMarkup) {
	switch out.Step {
	case model.StepAwaitLink:
		if out.Draft != nil && out.Draft.PackageName != "" {
			return p.tr.T("package_selected", out.Draft.PackageName, out.Draft.PackageRate, out.Draft.Platform), nil
		}
		return p.tr.T("prompt_link"), nil
	case model.StepAwaitQuantity:
		return p.tr.T("prompt_quantity"), nil
	case model.StepAwaitCoupon:
		return p.tr.T("prompt_coupon"), p.skipKeyboard()
	case model.StepConfirmOrder:
		return p.renderSummary(out.Draft), p.confirmKeyboard()
	case model.StepAwaitPhone:
		return p.tr.T("login_prompt_phone"), p.contactKeyboard()
	case model.StepAwaitEmail:
		return p.tr.T("login_prompt_email"), nil
	case model.StepAwaitShortName:
		return p.tr.T("profile_prompt_name"), nil
	}
	return p.tr.T("error_generic"), nil
}

func (p *Presenter) renderSummary(d *model.OrderDraft) string {
	if d == nil {
		return p.tr.T("error_generic")
	}
	summary := p.tr.T("order_summary", d.PackageName, d.Link, d.Quantity, d.Amount)
	return summary + "\n\n" + p.tr.T("confirm_question")
}

func (p *Presenter) reasonText(out *usecase.Outcome) string {
	key := "err_" + string(out.Reason)
	if out.Reason == validate.DomainMismatch && out.Draft != nil {
		domains := model.DomainsFor(out.Draft.Platform)
		return p.tr.T(key, strings.Join(domains, ", "))
	}
	return p.tr.T(key)
}

// RenderError maps engine errors to a user-facing message. Unknown errors get
// the generic line so internals never leak into the chat.
func (p *Presenter) RenderError(err error) string {
	switch {
	case isErr(err, domain.ErrNoActiveFlow):
		return p.tr.T("no_active_flow")
	case isErr(err, domain.ErrUserNotFound):
		return p.tr.T("error_user_not_found")
	case isErr(err, domain.ErrPackageNotFound), isErr(err, domain.ErrNoPackage):
		return p.tr.T("error_no_package")
	}
	return p.tr.T("error_generic")
}

// Menu re-shows the main menu without a greeting.
func (p *Presenter) Menu() (string, *adapter.ReplyMarkup) {
	return p.tr.T("menu_prompt"), p.MenuKeyboard()
}

// Welcome is the /start greeting.
func (p *Presenter) Welcome(username string) (string, *adapter.ReplyMarkup) {
	return p.tr.T("welcome", username), p.MenuKeyboard()
}

// PlatformList renders the platform picker.
func (p *Presenter) PlatformList(platforms []string) (string, *adapter.ReplyMarkup) {
	rows := make([][]adapter.Button, 0, len(platforms))
	for _, plat := range platforms {
		rows = append(rows, []adapter.Button{{
			Text: title(plat),
			Data: CBPlatformPrefix + plat,
		}})
	}
	return p.tr.T("pick_platform"), &adapter.ReplyMarkup{Buttons: rows, IsInline: true}
}

// PackageList renders the package picker for one platform.
func (p *Presenter) PackageList(platform string, pkgs []*model.ServicePackage) (string, *adapter.ReplyMarkup) {
	if len(pkgs) == 0 {
		return p.tr.T("no_packages"), p.MenuKeyboard()
	}
	rows := make([][]adapter.Button, 0, len(pkgs)+1)
	for _, pkg := range pkgs {
		rows = append(rows, []adapter.Button{{
			Text: p.tr.T("package_line", pkg.Name, pkg.Rate),
			Data: CBPackagePrefix + pkg.ID,
		}})
	}
	rows = append(rows, []adapter.Button{{Text: p.tr.T("btn_back_menu"), Data: CBMenu}})
	return p.tr.T("pick_package", title(platform)), &adapter.ReplyMarkup{Buttons: rows, IsInline: true}
}

// OrderList renders the user's recent orders.
func (p *Presenter) OrderList(orders []*model.Order) (string, *adapter.ReplyMarkup) {
	if len(orders) == 0 {
		return p.tr.T("orders_empty"), p.MenuKeyboard()
	}
	sb := strings.Builder{}
	sb.WriteString(p.tr.T("orders_header"))
	for _, o := range orders {
		sb.WriteString("\n")
		sb.WriteString(p.tr.T("orders_line", o.PackageName, o.Platform, o.Quantity, o.Amount, string(o.Status)))
	}
	return sb.String(), p.MenuKeyboard()
}

// AdminStats summarizes user and recent-order totals for the admin command.
func (p *Presenter) AdminStats(users int, orders []*model.Order) string {
	byStatus := map[string]int{}
	var revenue float64
	for _, o := range orders {
		byStatus[string(o.Status)]++
		if o.Status != model.OrderStatusRejected {
			revenue += o.Amount
		}
	}
	sb := strings.Builder{}
	sb.WriteString(p.tr.T("stats_header", users, len(orders), revenue))
	for _, status := range []string{
		string(model.OrderStatusPending),
		string(model.OrderStatusProcessing),
		string(model.OrderStatusCompleted),
		string(model.OrderStatusRejected),
	} {
		if n := byStatus[status]; n > 0 {
			sb.WriteString("\n")
			sb.WriteString(p.tr.T("stats_line", status, n))
		}
	}
	return sb.String()
}

// OrderStatusUpdate is the push message sent when an admin moves an order.
func (p *Presenter) OrderStatusUpdate(orderID string, status model.OrderStatus) string {
	return p.tr.T("order_status_update", orderID, string(status))
}

// RateLimited is the throttle message.
func (p *Presenter) RateLimited() string { return p.tr.T("rate_limited") }

// MenuKeyboard is the main inline menu shown after /start and at flow ends.
func (p *Presenter) MenuKeyboard() *adapter.ReplyMarkup {
	return &adapter.ReplyMarkup{
		IsInline: true,
		Buttons: [][]adapter.Button{
			{{Text: p.tr.T("btn_new_order"), Data: CBNewOrder}},
			{{Text: p.tr.T("btn_orders"), Data: CBOrders}, {Text: p.tr.T("btn_login"), Data: CBLogin}},
		},
	}
}

func (p *Presenter) skipKeyboard() *adapter.ReplyMarkup {
	return &adapter.ReplyMarkup{
		IsInline: true,
		Buttons: [][]adapter.Button{
			{{Text: p.tr.T("btn_skip"), Data: CBCouponSkip}},
			{{Text: p.tr.T("btn_cancel"), Data: CBOrderCancel}},
		},
	}
}

func (p *Presenter) confirmKeyboard() *adapter.ReplyMarkup {
	return &adapter.ReplyMarkup{
		IsInline: true,
		Buttons: [][]adapter.Button{
			{{Text: p.tr.T("btn_confirm"), Data: CBOrderConfirm}, {Text: p.tr.T("btn_cancel"), Data: CBOrderCancel}},
		},
	}
}

func (p *Presenter) contactKeyboard() *adapter.ReplyMarkup {
	return &adapter.ReplyMarkup{
		IsInline: false,
		Buttons: [][]adapter.Button{
			{{Text: p.tr.T("btn_share_contact"), RequestContact: true}},
		},
	}
}

func isErr(err, target error) bool {
	return errors.Is(err, target)
}

// title uppercases the first letter for display ("instagram" -> "Instagram").
func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}
