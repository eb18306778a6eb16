package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		// The configured logger depends on cfg, so the logrus standard logger reports this one.
		logrus.WithError(err).Fatal("Could not load application configuration") // exits with status 1
	}

	baseLogger := logger.New(cfg)
	mainLogger := logger.Component(baseLogger, "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":      cfg.LogLevel,
		"environment":    cfg.Environment,
		"retry_interval": cfg.RetryInterval.String(),
		"notify_errors":  cfg.NotifyErrors,
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := telegram.NewBot(cfg.TelegramToken, "", nil)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	telegramClient := telegram.NewTelebotAdapter(bot, logger.Component(baseLogger, "telegram"))

	practicumClient := practicum.NewClient(
		cfg.PracticumEndpoint,
		cfg.PracticumToken,
		cfg.HTTPTimeout,
		logger.Component(baseLogger, "practicum"),
	)

	watcher := app.NewStatusWatcher(
		practicumClient,
		telegramClient,
		cfg.TelegramChatID,
		cfg.NotifyErrors,
		logger.Component(baseLogger, "watcher"),
	)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, logger.Component(baseLogger, "metrics")); err != nil {
				mainLogger.WithError(err).Error("Metrics endpoint failed")
			}
		}()
	}

	poller := scheduler.NewPoller(watcher, cfg.RetryInterval, logger.Component(baseLogger, "poller"))
	mainLogger.Info("Application setup complete. Poller is starting...")
	_ = poller.Run(ctx) // returns once a shutdown signal arrives

	mainLogger.Info("Application shut down gracefully.")
}
