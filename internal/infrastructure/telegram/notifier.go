package telegram

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffops-api/internal/application/ports"
)

var (
	_ ports.Notifier        = (*Notifier)(nil)
	_ ports.BotTokenChecker = (*Client)(nil)
)

// Notifier envía avisos como mensajes privados: en Telegram el chat privado tiene el id del usuario.
type Notifier struct {
	client *Client
}

// NewNotifier construye el adaptador de notificaciones.
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

// NotifyUser telegramID 0 se descarta sin error.
func (n *Notifier) NotifyUser(ctx context.Context, telegramID int64, text string) error {
	if telegramID == 0 {
		return nil
	}
	if err := n.client.SendMessage(ctx, telegramID, text, nil); err != nil {
		return fmt.Errorf("notificar %d: %w", telegramID, err)
	}
	return nil
}

// CheckToken llama a getMe con un token arbitrario y devuelve el username del bot.
func (c *Client) CheckToken(ctx context.Context, token string) (string, error) {
	me, err := c.WithToken(token).GetMe(ctx)
	if err != nil {
		return "", err
	}
	return me.Username, nil
}
