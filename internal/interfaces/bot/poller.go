package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
	"github.com/jhoicas/staffops-api/internal/infrastructure/telegram"
)

const defaultRetryDelay = 2 * time.Second

// Poller bucle de long polling: un update a la vez, en orden.
type Poller struct {
	api        TelegramAPI
	store      botflow.SessionStore
	flow       *botflow.Flow
	log        zerolog.Logger
	timeout    time.Duration
	retryDelay time.Duration
	offset     int64
}

// NewPoller timeout es el de getUpdates (0 = respuesta inmediata).
func NewPoller(api TelegramAPI, store botflow.SessionStore, flow *botflow.Flow, timeout time.Duration, log zerolog.Logger) *Poller {
	return &Poller{
		api:        api,
		store:      store,
		flow:       flow,
		log:        log,
		timeout:    timeout,
		retryDelay: defaultRetryDelay,
	}
}

// SetRetryDelay pausa tras un getUpdates fallido.
func (p *Poller) SetRetryDelay(d time.Duration) { p.retryDelay = d }

// Prepare borra el webhook y registra el estado del bot.
func (p *Poller) Prepare(ctx context.Context) error {
	if err := p.api.DeleteWebhook(ctx, true); err != nil {
		return fmt.Errorf("deleteWebhook: %w", err)
	}
	me, err := p.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("getMe: %w", err)
	}
	ev := p.log.Info().Int64("bot_id", me.ID).Str("bot_username", me.Username)
	if info, err := p.api.GetWebhookInfo(ctx); err == nil {
		ev = ev.Str("webhook_url", info.URL).Int("pending_updates", info.PendingUpdateCount)
	} else {
		p.log.Warn().Err(err).Msg("getWebhookInfo")
	}
	ev.Msg("bot listo para long polling")
	return nil
}

// Run hasta que ctx se cancele. Un token rechazado termina el bucle con error.
func (p *Poller) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		updates, err := p.api.GetUpdates(ctx, p.offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if telegram.IsUnauthorized(err) {
				return err
			}
			p.log.Warn().Err(err).Msg("getUpdates falló, reintentando")
			if !sleep(ctx, p.retryDelay) {
				return nil
			}
			continue
		}
		for _, u := range updates {
			p.HandleUpdate(ctx, u)
			if u.UpdateID >= p.offset {
				p.offset = u.UpdateID + 1
			}
		}
	}
}

// HandleUpdate procesa un update; los errores se registran y no detienen el bucle.
func (p *Poller) HandleUpdate(ctx context.Context, u telegram.Update) {
	chatID, userID, ok := origin(u)
	if !ok {
		return
	}

	s, err := p.store.Load(ctx, userID)
	if err != nil {
		p.log.Error().Err(err).Int64("update_id", u.UpdateID).Int64("user_id", userID).Msg("cargar sesión")
		return
	}
	if s.AlreadySeen(u.UpdateID) {
		p.logUpdate(p.log.Info(), u.UpdateID, chatID, userID, s).Msg("ignored")
		return
	}
	p.logUpdate(p.log.Debug(), u.UpdateID, chatID, userID, s).Msg("before")

	if u.CallbackQuery != nil {
		s, err = p.flow.HandleCallback(ctx, chatID, userID, u.CallbackQuery.Data, u.CallbackQuery.ID, s)
	} else {
		s, err = p.flow.HandleMessage(ctx, chatID, userID, u.Message.Text, s)
	}
	if err != nil {
		p.log.Error().Err(err).Int64("update_id", u.UpdateID).Int64("chat_id", chatID).Msg("procesar update")
	}

	s.MarkSeen(u.UpdateID)
	if err := p.store.Save(ctx, userID, s); err != nil {
		p.log.Error().Err(err).Int64("update_id", u.UpdateID).Int64("user_id", userID).Msg("guardar sesión")
		return
	}
	p.logUpdate(p.log.Debug(), u.UpdateID, chatID, userID, s).Msg("after")
}

func (p *Poller) logUpdate(ev *zerolog.Event, updateID, chatID, userID int64, s *botflow.Session) *zerolog.Event {
	ev = ev.Int64("update_id", updateID).
		Int64("chat_id", chatID).
		Int64("user_id", userID).
		Str("role", string(s.Role)).
		Str("step", s.Step.String())
	if s.LastUpdateID != nil {
		ev = ev.Int64("last_update_id", *s.LastUpdateID)
	}
	return ev
}

// origin chat y usuario del update; false si no es un mensaje de texto ni un callback.
func origin(u telegram.Update) (chatID, userID int64, ok bool) {
	switch {
	case u.CallbackQuery != nil:
		userID = u.CallbackQuery.From.ID
		chatID = userID
		if u.CallbackQuery.Message != nil {
			chatID = u.CallbackQuery.Message.Chat.ID
		}
		return chatID, userID, true
	case u.Message != nil && u.Message.From != nil && u.Message.Text != "":
		return u.Message.Chat.ID, u.Message.From.ID, true
	}
	return 0, 0, false
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
