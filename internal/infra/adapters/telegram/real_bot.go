package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-smm-storefront/internal/application"
	"telegram-smm-storefront/internal/config"
	"telegram-smm-storefront/internal/domain/ports/adapter"
	"telegram-smm-storefront/internal/infra/logging"
	"telegram-smm-storefront/internal/infra/metrics"
	red "telegram-smm-storefront/internal/infra/redis"
	"telegram-smm-storefront/internal/usecase"
)

var _ adapter.TelegramBotAdapter = (*RealBotAdapter)(nil)

// RealBotAdapter polls Telegram updates through tgbotapi and routes them to
// the conversation engine. Updates fan out to a worker pool so one slow user
// never stalls the poll loop.
type RealBotAdapter struct {
	bot       *tgbotapi.BotAPI
	cfg       *config.Config
	flowUC    usecase.FlowUseCase
	userUC    usecase.UserUseCase
	orderUC   usecase.OrderUseCase
	catalogUC usecase.CatalogUseCase
	presenter *application.Presenter
	limiter   *red.RateLimiter
	log       *zerolog.Logger

	adminIDs      map[int64]struct{}
	cancelPolling context.CancelFunc
}

// NewRealBotAdapter connects to the Bot API. limiter may be nil, in which
// case updates are not throttled (memory session mode has no Redis).
func NewRealBotAdapter(
	cfg *config.Config,
	flowUC usecase.FlowUseCase,
	userUC usecase.UserUseCase,
	orderUC usecase.OrderUseCase,
	catalogUC usecase.CatalogUseCase,
	presenter *application.Presenter,
	limiter *red.RateLimiter,
	logger *zerolog.Logger,
) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if flowUC == nil || userUC == nil || orderUC == nil || catalogUC == nil || presenter == nil {
		return nil, errors.New("missing usecase or presenter")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}

	adminIDs := map[int64]struct{}{}
	for _, id := range cfg.Bot.AdminIDs {
		adminIDs[id] = struct{}{}
	}

	return &RealBotAdapter{
		bot:       bot,
		cfg:       cfg,
		flowUC:    flowUC,
		userUC:    userUC,
		orderUC:   orderUC,
		catalogUC: catalogUC,
		presenter: presenter,
		limiter:   limiter,
		log:       logger,
		adminIDs:  adminIDs,
	}, nil
}

// StartPolling blocks until ctx is cancelled or StopPolling is called.
func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.cfg.Bot.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					uctx := logging.WithTraceID(ctx, uuid.NewString())
					if err := r.handleUpdate(uctx, up); err != nil {
						logging.With(uctx, r.log).Error().Err(err).Int("worker", id).Msg("telegram update failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// SendMessage implements the outbound port.
func (r *RealBotAdapter) SendMessage(ctx context.Context, params adapter.SendMessageParams) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(params.ChatID, params.Text)
	if params.ReplyMarkup != nil {
		msg.ReplyMarkup = toTgMarkup(params.ReplyMarkup)
	}
	_, err := r.bot.Send(msg)
	metrics.IncTelegramSend(err == nil)
	return err
}

func (r *RealBotAdapter) reply(ctx context.Context, chatID int64, text string, markup *adapter.ReplyMarkup) error {
	return r.SendMessage(ctx, adapter.SendMessageParams{ChatID: chatID, Text: text, ReplyMarkup: markup})
}

// toTgMarkup converts the transport-agnostic markup to tgbotapi's. Inline
// keyboards route taps via callback data; reply keyboards are one-time and
// carry the contact request button for the login flow.
func toTgMarkup(m *adapter.ReplyMarkup) interface{} {
	if m.IsInline {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(m.Buttons))
		for _, row := range m.Buttons {
			if len(row) == 0 {
				continue
			}
			out := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, btn := range row {
				label := strings.TrimSpace(btn.Text)
				if label == "" {
					label = "•"
				}
				switch {
				case btn.URL != "":
					out = append(out, tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL))
				case btn.Data != "":
					out = append(out, tgbotapi.NewInlineKeyboardButtonData(label, btn.Data))
				default:
					out = append(out, tgbotapi.NewInlineKeyboardButtonData(label, label))
				}
			}
			rows = append(rows, out)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(m.Buttons))
	for _, row := range m.Buttons {
		out := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, btn := range row {
			if btn.RequestContact {
				out = append(out, tgbotapi.NewKeyboardButtonContact(btn.Text))
				continue
			}
			out = append(out, tgbotapi.NewKeyboardButton(btn.Text))
		}
		rows = append(rows, out)
	}
	kb := tgbotapi.NewOneTimeReplyKeyboard(rows...)
	return kb
}
