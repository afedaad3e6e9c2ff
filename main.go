package main

import (
	"context"
	"database/sql"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	picsDir = cfg.PicsDir

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	repo := NewSQLiteRepository(db)
	if err := repo.CreateTables(); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("connect to telegram", zap.Error(err))
	}
	bot.Debug = cfg.Debug
	logger.Info("authorized",
		zap.String("account", bot.Self.UserName),
		zap.Int("admins", len(cfg.AdminIDs)))

	sessions := NewSessionStore()

	reminder := NewReminder(bot, repo, logger, cfg.ReminderTime)
	go reminder.Run(context.Background())

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		logger.Fatal("get updates channel", zap.Error(err))
	}

	for update := range updates {
		if update.CallbackQuery != nil {
			handleCallbackQuery(bot, repo, cfg, sessions, update.CallbackQuery, bot.Self.UserName)
			continue
		}
		if update.Message != nil {
			handleMessage(bot, repo, cfg, sessions, update.Message)
		}
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
