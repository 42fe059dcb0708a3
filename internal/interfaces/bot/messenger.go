// Package bot adaptadores del bot de Telegram: polling, mensajería y cliente de la API.
package bot

import (
	"context"
	"time"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
	"github.com/jhoicas/staffops-api/internal/infrastructure/telegram"
)

// TelegramAPI subconjunto de telegram.Client que usa el bot.
type TelegramAPI interface {
	GetMe(ctx context.Context) (*telegram.User, error)
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string, markup any) error
	DeleteWebhook(ctx context.Context, dropPending bool) error
	GetWebhookInfo(ctx context.Context) (*telegram.WebhookInfo, error)
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}

var (
	_ TelegramAPI       = (*telegram.Client)(nil)
	_ botflow.Messenger = (*Messenger)(nil)
)

// Messenger traduce botflow.Reply a sendMessage.
type Messenger struct {
	api TelegramAPI
}

// NewMessenger construye el adaptador de salida.
func NewMessenger(api TelegramAPI) *Messenger {
	return &Messenger{api: api}
}

// Send envía el texto con teclado de respuesta si lo hay.
func (m *Messenger) Send(ctx context.Context, chatID int64, r botflow.Reply) error {
	var markup any
	if len(r.Keyboard) > 0 {
		markup = replyKeyboard(r)
	}
	return m.api.SendMessage(ctx, chatID, r.Text, markup)
}

// AnswerCallback confirma la pulsación de un botón inline.
func (m *Messenger) AnswerCallback(ctx context.Context, callbackID string) error {
	if callbackID == "" {
		return nil
	}
	return m.api.AnswerCallbackQuery(ctx, callbackID)
}

func replyKeyboard(r botflow.Reply) telegram.ReplyKeyboardMarkup {
	rows := make([][]telegram.KeyboardButton, 0, len(r.Keyboard))
	for _, row := range r.Keyboard {
		buttons := make([]telegram.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, telegram.KeyboardButton{Text: label})
		}
		rows = append(rows, buttons)
	}
	return telegram.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: r.OneTime,
	}
}
