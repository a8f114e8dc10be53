package main

import (
	"os"
	"time"

	_ "github.com/lib/pq"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/config"
	"github.com/Alias1177/Screener/internal/database"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.LogLevel)

	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN is required")
	}

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}
	log.Info().Str("username", bot.Self.UserName).Msg("Subscription bot started")

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	for update := range bot.GetUpdatesChan(updateConfig) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		handleCommand(bot, db, update.Message)
	}
}

func handleCommand(bot *tgbotapi.BotAPI, db *database.DB, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	var reply string
	switch message.Command() {
	case "start":
		if err := db.Subscribe(chatID, message.From.UserName); err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("Subscribe failed")
			reply = "Something went wrong, please try again later."
			break
		}
		reply = "Subscribed. You will receive scan reports here. Send /stop to unsubscribe."
	case "stop":
		if err := db.Unsubscribe(chatID); err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("Unsubscribe failed")
			reply = "Something went wrong, please try again later."
			break
		}
		reply = "Unsubscribed. Send /start to subscribe again."
	case "status":
		subscribed, err := db.IsSubscribed(chatID)
		if err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("Status check failed")
			reply = "Something went wrong, please try again later."
			break
		}
		if subscribed {
			reply = "You are subscribed to scan reports."
		} else {
			reply = "You are not subscribed. Send /start to subscribe."
		}
	default:
		reply = "Commands: /start, /stop, /status"
	}

	msg := tgbotapi.NewMessage(chatID, reply)
	if _, err := bot.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
	}
}

func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}
