package report

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/database"
	"github.com/Alias1177/Screener/internal/fetch"
	"github.com/Alias1177/Screener/internal/model"
)

// TelegramReporter broadcasts the run summary to every subscribed chat.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	db     *database.DB
	logger zerolog.Logger
}

// NewTelegramReporter creates a reporter for the given bot token and
// subscription store.
func NewTelegramReporter(botToken string, db *database.DB) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("creating Telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		db:     db,
		logger: log.With().Str("component", "telegram_reporter").Logger(),
	}, nil
}

// Report renders the run summary once and sends it to every active chat. A
// single chat's delivery failure is logged and does not fail the report.
func (r *TelegramReporter) Report(_ context.Context, window model.AnalysisWindow, winners, nearMisses []model.SymbolEvaluation, metrics fetch.MetricsSnapshot) error {
	chatIDs, err := r.db.ActiveChatIDs()
	if err != nil {
		return fmt.Errorf("loading subscribers: %w", err)
	}
	if len(chatIDs) == 0 {
		r.logger.Info().Msg("No subscribed chats, skipping Telegram report")
		return nil
	}

	text := BuildMessage(window, winners, nearMisses, metrics)

	for _, chatID := range chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := r.bot.Send(msg); err != nil {
			r.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver report")
		}
	}

	r.logger.Info().Int("chats", len(chatIDs)).Msg("Report delivered")
	return nil
}
