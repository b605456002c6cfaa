package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/trackers/internal/config"
	"github.com/chucky-1/trackers/internal/consumer"
	"github.com/chucky-1/trackers/internal/repository"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)

	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
	storage, closeStorage, err := repository.Open(connectCtx, cfg.Storage)
	connectCancel()
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeStorage()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logrus.Fatal(err)
	}
	bot.Debug = cfg.Telegram.Debug
	logrus.Infof("authorized on telegram as %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.Timeout
	updates := bot.GetUpdatesChan(u)

	hub := consumer.NewHub(bot, updates, storage, validator.New(), consumer.Settings{
		StorageTimeout: cfg.Storage.Timeout,
		ConfirmTimeout: cfg.Telegram.ConfirmTimeout,
	})
	go hub.Consume(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit
	bot.StopReceivingUpdates()
	cancel()
	<-time.After(2 * time.Second)
}
