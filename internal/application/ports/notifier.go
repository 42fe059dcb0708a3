package ports

import "context"

// Notifier puerto de salida para avisos al personal (Telegram u otro canal).
// Los adaptadores deben tolerar destinatarios sin canal vinculado devolviendo nil.
type Notifier interface {
	NotifyUser(ctx context.Context, telegramID int64, text string) error
}

// NopNotifier descarta todos los avisos.
type NopNotifier struct{}

// NotifyUser no hace nada.
func (NopNotifier) NotifyUser(context.Context, int64, string) error { return nil }

// BotTokenChecker valida un token de bot contra la API de Telegram (getMe).
type BotTokenChecker interface {
	CheckToken(ctx context.Context, token string) (username string, err error)
}
