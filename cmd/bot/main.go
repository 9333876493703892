package main

import (
	"os"
	"os/signal"
	"syscall"
	"team-tracker/internal/app"
	"team-tracker/internal/config"
	"team-tracker/internal/handler"
	"team-tracker/pkg/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	logrus.SetLevel(cfg.LogLevel)
	logrus.Info("Config initialized...")

	if cfg.TelegramToken == "" {
		logrus.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	application, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open storage")
	}

	// Load and sweep before the first update is handled.
	if err := application.Start(); err != nil {
		logrus.WithError(err).Fatal("Failed to load data")
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.BotDebug)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Telegram client")
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)
	if cfg.OwnerChatID != 0 {
		logrus.Infof("Restricted to chat ID: %d", cfg.OwnerChatID)
	}

	botHandler := handler.NewHandler(client, application, cfg)

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Bot.StopReceivingUpdates()

	if err := application.Close(); err != nil {
		logrus.WithError(err).Error("Error closing storage")
	}

	logrus.Info("Bot stopped gracefully")
}
