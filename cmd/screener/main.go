package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/api/bybit"
	"github.com/Alias1177/Screener/internal/config"
	"github.com/Alias1177/Screener/internal/database"
	"github.com/Alias1177/Screener/internal/report"
	"github.com/Alias1177/Screener/internal/scan"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
}

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting market screener")

	client := bybit.NewClient(bybit.ClientOptions{
		BaseURL:         cfg.BybitBaseURL,
		RequestTimeout:  cfg.RequestTimeout,
		RequestsPerSec:  cfg.RequestsPerSec,
		MaxRetryTimeout: cfg.MaxRetryTimeout,
	})

	reporter := buildReporter(cfg)

	scanner, err := scan.New(cfg, client, reporter)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scanner")
	}

	if err := scanner.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Scan failed")
	}

	if cfg.ScanInterval <= 0 {
		return
	}

	ticker := time.NewTicker(cfg.ScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := scanner.Run(ctx); err != nil {
				log.Error().Err(err).Msg("Scan failed")
			}
		case <-ctx.Done():
			log.Info().Msg("Shutting down")
			return
		}
	}
}

// buildReporter wires the Telegram reporter when a bot token is configured,
// otherwise falls back to logging results.
func buildReporter(cfg *config.Config) scan.Reporter {
	if cfg.TelegramBotToken == "" {
		log.Info().Msg("No TELEGRAM_BOT_TOKEN, reporting to log only")
		return report.NewLogReporter()
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

	reporter, err := report.NewTelegramReporter(cfg.TelegramBotToken, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram reporter")
	}
	return reporter
}

func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func setupSignalHandling(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Received shutdown signal")
		cancel()
	}()
}
