package adapter

import "context"

// Button is one key of a reply markup. Data routes callbacks, URL opens a
// link, RequestContact asks Telegram for the user's phone number.
type Button struct {
	Text           string
	Data           string
	URL            string
	RequestContact bool
}

// ReplyMarkup is a transport-agnostic keyboard description. IsInline selects
// between inline and reply keyboards.
type ReplyMarkup struct {
	Buttons  [][]Button
	IsInline bool
}

type SendMessageParams struct {
	ChatID      int64
	Text        string
	ReplyMarkup *ReplyMarkup
}

// TelegramBotAdapter is the outbound port the core uses to talk back to the
// chat. The real implementation wraps tgbotapi; tests use a capture mock.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
}
