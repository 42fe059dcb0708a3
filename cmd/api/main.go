package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/staffops-api/internal/application/auth"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/bootstrap"
	"github.com/jhoicas/staffops-api/internal/infrastructure/memory"
	"github.com/jhoicas/staffops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/staffops-api/internal/infrastructure/telegram"
	httpRouter "github.com/jhoicas/staffops-api/internal/interfaces/http"
	"github.com/jhoicas/staffops-api/pkg/config"
	"github.com/jhoicas/staffops-api/pkg/logger"
	"github.com/jhoicas/staffops-api/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	shutdownTracing := telemetry.Setup(ctx, cfg.App.Name, cfg.Telemetry, log.Component("telemetry"))

	var repos bootstrap.Repos
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		repos = bootstrap.MemoryRepos(memory.New())
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		repos = bootstrap.PostgresRepos(pool)
	}

	// Notificaciones por Telegram solo con token configurado.
	tg := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.APIBaseURL)
	var notifier ports.Notifier = ports.NopNotifier{}
	if cfg.Telegram.Enabled() {
		notifier = telegram.NewNotifier(tg)
	} else {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN vacío: notificaciones deshabilitadas")
	}

	svc := bootstrap.Build(repos, bootstrap.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		Notifier: notifier,
		Logger:   log.Zerolog(),
	})

	if cfg.Reminders.Enabled {
		if err := svc.Reminders.Start(cfg.Reminders.Spec); err != nil {
			log.Fatal().Err(err).Str("spec", cfg.Reminders.Spec).Msg("job de recordatorios")
		}
		defer svc.Reminders.Stop()
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		Logger:       log.Component("http"),
		JWTSecret:    cfg.JWT.Secret,
		SwaggerPath:  cfg.HTTP.SwaggerPath,
		AuthUC:       svc.Auth,
		CompanyUC:    svc.Companies,
		UserUC:       svc.Users,
		Policies:     svc.Policies,
		Shifts:       svc.Shifts,
		ShiftPDF:     svc.ShiftPDF,
		IncidentUC:   svc.Incidents,
		TrainingUC:   svc.Training,
		QuizUC:       svc.Quizzes,
		Compliance:   svc.Compliance,
		ScheduleUC:   svc.Schedule,
		TokenChecker: tg,
		BotToken:     cfg.Telegram.BotToken,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de telemetría")
	}

	log.Info().Msg("aplicación detenida")
}
