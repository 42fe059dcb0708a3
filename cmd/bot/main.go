package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
	"github.com/jhoicas/staffops-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/staffops-api/internal/infrastructure/telegram"
	"github.com/jhoicas/staffops-api/internal/interfaces/bot"
	"github.com/jhoicas/staffops-api/pkg/config"
	"github.com/jhoicas/staffops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "bot",
	})
	if !cfg.Telegram.Enabled() {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN no configurado")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Telegram.BackendBaseURL).
		Str("sessions", cfg.Telegram.SessionDBPath).
		Msg("iniciando bot")

	store, err := sqlite.NewSessionStore(cfg.Telegram.SessionDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("base de sesiones")
	}
	defer store.Close()

	client := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.APIBaseURL)
	flow := botflow.NewFlow(
		bot.NewMessenger(client),
		bot.NewBackendClient(cfg.Telegram.BackendBaseURL),
		log.Component("botflow"),
	)
	poller := bot.NewPoller(client, store, flow, cfg.Telegram.PollTimeout, log.Component("poller"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := poller.Prepare(ctx); err != nil {
		log.Fatal().Err(err).Msg("preparar bot")
	}
	if err := poller.Run(ctx); err != nil {
		log.Error().Err(err).Msg("polling detenido")
		return
	}
	log.Info().Msg("bot detenido")
}
