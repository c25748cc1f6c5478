package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-smm-storefront/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter logs outbound messages instead of talking to Telegram.
// Useful for local runs without a bot token.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, params adapter.SendMessageParams) error {
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	ev := b.log.Info().Int64("chat_id", params.ChatID).Str("text", params.Text)
	if params.ReplyMarkup != nil {
		ev = ev.Int("keyboard_rows", len(params.ReplyMarkup.Buttons))
	}
	ev.Msg("noop telegram send")
	return nil
}
