package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-smm-storefront/internal/application"
	"telegram-smm-storefront/internal/infra/logging"
	"telegram-smm-storefront/internal/infra/metrics"
	red "telegram-smm-storefront/internal/infra/redis"
	"telegram-smm-storefront/internal/usecase"
)

type cbHandler func(ctx context.Context, chatID int64, data string) error

// Exact-match callbacks.
func (r *RealBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		application.CBMenu: func(ctx context.Context, id int64, _ string) error {
			return r.sendMenu(ctx, id)
		},
		application.CBNewOrder: func(ctx context.Context, id int64, _ string) error {
			return r.sendPlatforms(ctx, id)
		},
		application.CBOrders: func(ctx context.Context, id int64, _ string) error {
			return r.sendOrders(ctx, id)
		},
		application.CBLogin: func(ctx context.Context, id int64, _ string) error {
			out, err := r.flowUC.StartLogin(ctx, id)
			return r.renderOutcome(ctx, id, out, err)
		},
		application.CBCouponSkip: func(ctx context.Context, id int64, _ string) error {
			out, err := r.flowUC.HandleInput(ctx, id, usecase.SignalInput(usecase.SignalSkip))
			return r.renderOutcome(ctx, id, out, err)
		},
		application.CBOrderConfirm: func(ctx context.Context, id int64, _ string) error {
			out, err := r.flowUC.HandleInput(ctx, id, usecase.SignalInput(usecase.SignalConfirm))
			return r.renderOutcome(ctx, id, out, err)
		},
		application.CBOrderCancel: func(ctx context.Context, id int64, _ string) error {
			out, err := r.flowUC.HandleInput(ctx, id, usecase.SignalInput(usecase.SignalCancel))
			return r.renderOutcome(ctx, id, out, err)
		},
	}
}

// Prefix-match callbacks.
func (r *RealBotAdapter) cbPrefixRoutes() []struct {
	Prefix string
	Fn     cbHandler
} {
	return []struct {
		Prefix string
		Fn     cbHandler
	}{
		{
			Prefix: application.CBPlatformPrefix,
			Fn: func(ctx context.Context, id int64, data string) error {
				platform := strings.TrimPrefix(data, application.CBPlatformPrefix)
				return r.sendPackages(ctx, id, platform)
			},
		},
		{
			Prefix: application.CBPackagePrefix,
			Fn: func(ctx context.Context, id int64, data string) error {
				pkgID := strings.TrimPrefix(data, application.CBPackagePrefix)
				out, err := r.flowUC.StartOrder(ctx, id, pkgID)
				return r.renderOutcome(ctx, id, out, err)
			},
		},
	}
}

func (r *RealBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	msg := update.Message
	tgID := msg.From.ID
	ctx = logging.WithTgID(ctx, tgID)

	if !r.allow(ctx, tgID) {
		metrics.IncRateLimited()
		return r.reply(ctx, tgID, r.presenter.RateLimited(), nil)
	}

	// A shared contact at the phone step counts as typed phone input.
	if msg.Contact != nil {
		phone := msg.Contact.PhoneNumber
		if !strings.HasPrefix(phone, "+") {
			phone = "+" + phone
		}
		out, err := r.flowUC.HandleInput(ctx, tgID, usecase.TextInput(phone))
		return r.renderOutcome(ctx, tgID, out, err)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		return r.handleCommand(ctx, tgID, msg.From.UserName, strings.Fields(text)[0])
	}

	out, err := r.flowUC.HandleInput(ctx, tgID, usecase.TextInput(text))
	return r.renderOutcome(ctx, tgID, out, err)
}

func (r *RealBotAdapter) handleCommand(ctx context.Context, tgID int64, username, command string) error {
	switch command {
	case "/start":
		if _, err := r.userUC.RegisterOrFetch(ctx, tgID, username); err != nil {
			return r.reply(ctx, tgID, r.presenter.RenderError(err), nil)
		}
		text, markup := r.presenter.Welcome(username)
		return r.reply(ctx, tgID, text, markup)

	case "/cancel":
		out, err := r.flowUC.HandleInput(ctx, tgID, usecase.SignalInput(usecase.SignalCancel))
		return r.renderOutcome(ctx, tgID, out, err)

	case "/orders":
		return r.sendOrders(ctx, tgID)

	case "/login":
		out, err := r.flowUC.StartLogin(ctx, tgID)
		return r.renderOutcome(ctx, tgID, out, err)

	case "/name":
		out, err := r.flowUC.StartNameEdit(ctx, tgID)
		return r.renderOutcome(ctx, tgID, out, err)

	case "/stats":
		if _, ok := r.adminIDs[tgID]; !ok {
			return r.sendMenu(ctx, tgID)
		}
		return r.sendStats(ctx, tgID)

	default:
		return r.sendMenu(ctx, tgID)
	}
}

func (r *RealBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the telegram spinner when we return.
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	chatID := query.From.ID
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	}
	if chatID == 0 {
		return nil
	}
	ctx = logging.WithTgID(ctx, chatID)

	if !r.allow(ctx, chatID) {
		metrics.IncRateLimited()
		return r.reply(ctx, chatID, r.presenter.RateLimited(), nil)
	}

	data := strings.TrimSpace(query.Data)
	if fn, ok := r.cbRoutes()[data]; ok {
		return fn(ctx, chatID, data)
	}
	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, pr.Prefix) {
			return pr.Fn(ctx, chatID, data)
		}
	}
	return errors.New("unknown callback data: " + data)
}

// allow checks the per-user fixed-window limit. Without Redis there is no
// limiter and everything passes.
func (r *RealBotAdapter) allow(ctx context.Context, tgID int64) bool {
	if r.limiter == nil {
		return true
	}
	allowed, err := r.limiter.Allow(ctx, red.UserUpdateKey(tgID), r.cfg.RateLimit.PerUser, r.cfg.RateLimit.Window)
	if err != nil {
		r.log.Warn().Err(err).Msg("rate limiter unavailable, letting update through")
		return true
	}
	return allowed
}

// renderOutcome is the common tail of every flow interaction: engine errors
// become user-facing messages, outcomes render through the presenter.
func (r *RealBotAdapter) renderOutcome(ctx context.Context, chatID int64, out *usecase.Outcome, err error) error {
	if err != nil {
		return r.reply(ctx, chatID, r.presenter.RenderError(err), nil)
	}
	text, markup := r.presenter.Render(out)
	return r.reply(ctx, chatID, text, markup)
}

func (r *RealBotAdapter) sendMenu(ctx context.Context, chatID int64) error {
	text, markup := r.presenter.Menu()
	return r.reply(ctx, chatID, text, markup)
}

func (r *RealBotAdapter) sendPlatforms(ctx context.Context, chatID int64) error {
	platforms := r.catalogUC.Platforms(ctx)
	text, markup := r.presenter.PlatformList(platforms)
	return r.reply(ctx, chatID, text, markup)
}

func (r *RealBotAdapter) sendPackages(ctx context.Context, chatID int64, platform string) error {
	pkgs, err := r.catalogUC.ListByPlatform(ctx, platform)
	if err != nil {
		return r.reply(ctx, chatID, r.presenter.RenderError(err), nil)
	}
	text, markup := r.presenter.PackageList(platform, pkgs)
	return r.reply(ctx, chatID, text, markup)
}

func (r *RealBotAdapter) sendStats(ctx context.Context, chatID int64) error {
	users, err := r.userUC.Count(ctx)
	if err != nil {
		return r.reply(ctx, chatID, r.presenter.RenderError(err), nil)
	}
	orders, err := r.orderUC.ListRecent(ctx, 100)
	if err != nil {
		return r.reply(ctx, chatID, r.presenter.RenderError(err), nil)
	}
	return r.reply(ctx, chatID, r.presenter.AdminStats(users, orders), nil)
}

func (r *RealBotAdapter) sendOrders(ctx context.Context, chatID int64) error {
	orders, err := r.orderUC.ListByUser(ctx, chatID, 10)
	if err != nil {
		return r.reply(ctx, chatID, r.presenter.RenderError(err), nil)
	}
	text, markup := r.presenter.OrderList(orders)
	return r.reply(ctx, chatID, text, markup)
}
