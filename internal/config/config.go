package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/screen"
	"github.com/Alias1177/Screener/internal/signals"
)

// Config holds all application configuration
type Config struct {
	// Upstream API
	BybitBaseURL    string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration

	// Analysis window
	AnchorHour int
	Timezone   string

	// Orchestration
	BatchSize     int
	Workers       int
	BatchPause    time.Duration
	ThrottlePause time.Duration

	// Per-symbol series
	KlineInterval string
	WhaleMinutes  int

	// Scheduling (0 = single shot)
	ScanInterval time.Duration

	// Logging
	LogLevel string

	// Detectors
	VolumeSpike   signals.VolumeSpikeConfig
	IntrabarJump  signals.IntrabarJumpConfig
	Compression   signals.CompressionConfig
	VWAPDrift     signals.VWAPDriftConfig
	TurnoverSpike signals.TurnoverSpikeConfig
	OBVImpulse    signals.OBVImpulseConfig
	Squeeze       signals.SqueezeBreakoutConfig
	WhaleSweep    signals.WhaleSweepConfig
	FundingBias   signals.FundingBiasConfig

	// Gating and scoring
	Screen screen.Config

	// Telegram / database
	TelegramBotToken string
	Database         DatabaseConfig
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		BybitBaseURL:    getEnvWithDefault("BYBIT_BASE_URL", "https://api.bybit.com"),
		RequestTimeout:  time.Duration(getEnvIntWithDefault("REQUEST_TIMEOUT", 30)) * time.Second,
		RequestsPerSec:  getEnvIntWithDefault("REQUESTS_PER_SEC", 5),
		MaxRetryTimeout: time.Duration(getEnvIntWithDefault("MAX_RETRY_TIMEOUT", 30)) * time.Second,

		AnchorHour: getEnvIntWithDefault("ANCHOR_HOUR", 17),
		Timezone:   getEnvWithDefault("TIMEZONE", "Local"),

		BatchSize:     getEnvIntWithDefault("BATCH_SIZE", 10),
		Workers:       getEnvIntWithDefault("WORKERS", 4),
		BatchPause:    time.Duration(getEnvIntWithDefault("BATCH_PAUSE_SEC", 5)) * time.Second,
		ThrottlePause: time.Duration(getEnvIntWithDefault("THROTTLE_PAUSE_SEC", 31)) * time.Second,

		KlineInterval: getEnvWithDefault("KLINE_INTERVAL", "15"),
		WhaleMinutes:  getEnvIntWithDefault("WHALE_MINUTES", 240),

		ScanInterval: time.Duration(getEnvIntWithDefault("SCAN_INTERVAL_MIN", 0)) * time.Minute,

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		VolumeSpike: signals.VolumeSpikeConfig{
			Enabled:        getEnvBoolWithDefault("VOLUME_SPIKE_ENABLED", true),
			RatioThreshold: getEnvFloatWithDefault("VOLUME_SPIKE_RATIO", 1.1),
			MinHistoryDays: getEnvIntWithDefault("VOLUME_SPIKE_MIN_HISTORY", 50),
		},
		IntrabarJump: signals.IntrabarJumpConfig{
			Enabled:       getEnvBoolWithDefault("INTRABAR_JUMP_ENABLED", true),
			JumpThreshold: getEnvFloatWithDefault("INTRABAR_JUMP_THRESHOLD", 0.1),
		},
		Compression: signals.CompressionConfig{
			Enabled:        getEnvBoolWithDefault("COMPRESSION_ENABLED", true),
			Lookback:       getEnvIntWithDefault("COMPRESSION_LOOKBACK", 64),
			Window:         getEnvIntWithDefault("COMPRESSION_WINDOW", 16),
			RatioMax:       getEnvFloatWithDefault("COMPRESSION_RATIO_MAX", 0.75),
			VolumeZMin:     getEnvFloatWithDefault("COMPRESSION_VOLUME_Z_MIN", 1.5),
			VolumeLookback: getEnvIntWithDefault("COMPRESSION_VOLUME_LOOKBACK", 96),
			NearHighPct:    getEnvFloatWithDefault("COMPRESSION_NEAR_HIGH_PCT", 0.015),
			HighWindow:     getEnvIntWithDefault("COMPRESSION_HIGH_WINDOW", 96),
		},
		VWAPDrift: signals.VWAPDriftConfig{
			Enabled:        getEnvBoolWithDefault("VWAP_DRIFT_ENABLED", true),
			DevMin:         getEnvFloatWithDefault("VWAP_DRIFT_DEV_MIN", 0.02),
			VolumeZMin:     getEnvFloatWithDefault("VWAP_DRIFT_VOLUME_Z_MIN", 1.0),
			VolumeLookback: getEnvIntWithDefault("VWAP_DRIFT_VOLUME_LOOKBACK", 96),
			Window:         getEnvIntWithDefault("VWAP_DRIFT_WINDOW", 20),
			Streak:         getEnvIntWithDefault("VWAP_DRIFT_STREAK", 3),
		},
		TurnoverSpike: signals.TurnoverSpikeConfig{
			Enabled:           getEnvBoolWithDefault("TURNOVER_SPIKE_ENABLED", true),
			ZMin:              getEnvFloatWithDefault("TURNOVER_SPIKE_Z_MIN", 2.0),
			Lookback:          getEnvIntWithDefault("TURNOVER_SPIKE_LOOKBACK", 96),
			PerVolumeRatioMin: getEnvFloatWithDefault("TURNOVER_SPIKE_PER_VOLUME_RATIO_MIN", 1.2),
			PerVolumeWindow:   getEnvIntWithDefault("TURNOVER_SPIKE_PER_VOLUME_WINDOW", 64),
		},
		OBVImpulse: signals.OBVImpulseConfig{
			Enabled:  getEnvBoolWithDefault("OBV_IMPULSE_ENABLED", true),
			ZMin:     getEnvFloatWithDefault("OBV_IMPULSE_Z_MIN", 2.0),
			Lookback: getEnvIntWithDefault("OBV_IMPULSE_LOOKBACK", 96),
		},
		Squeeze: signals.SqueezeBreakoutConfig{
			Enabled:        getEnvBoolWithDefault("SQUEEZE_ENABLED", true),
			BBPeriod:       getEnvIntWithDefault("SQUEEZE_BB_PERIOD", 20),
			BBStdDev:       getEnvFloatWithDefault("SQUEEZE_BB_STD_DEV", 2.0),
			KCPeriod:       getEnvIntWithDefault("SQUEEZE_KC_PERIOD", 20),
			KCMultiplier:   getEnvFloatWithDefault("SQUEEZE_KC_MULTIPLIER", 1.5),
			VolumeZMin:     getEnvFloatWithDefault("SQUEEZE_VOLUME_Z_MIN", 1.0),
			VolumeLookback: getEnvIntWithDefault("SQUEEZE_VOLUME_LOOKBACK", 96),
			NearHighPct:    getEnvFloatWithDefault("SQUEEZE_NEAR_HIGH_PCT", 0.05),
		},
		WhaleSweep: signals.WhaleSweepConfig{
			Enabled:     getEnvBoolWithDefault("WHALE_SWEEP_ENABLED", true),
			ZMin:        getEnvFloatWithDefault("WHALE_SWEEP_Z_MIN", 3.0),
			Lookback:    getEnvIntWithDefault("WHALE_SWEEP_LOOKBACK", 120),
			NearHighPct: getEnvFloatWithDefault("WHALE_SWEEP_NEAR_HIGH_PCT", 0.1),
			MinSweeps:   getEnvIntWithDefault("WHALE_SWEEP_MIN_SWEEPS", 3),
		},
		FundingBias: signals.FundingBiasConfig{
			Enabled:   getEnvBoolWithDefault("FUNDING_BIAS_ENABLED", true),
			Threshold: getEnvFloatWithDefault("FUNDING_BIAS_THRESHOLD", 0.0005),
		},

		Screen: screen.Config{
			Policy: screen.GatePolicy(getEnvWithDefault("GATE_POLICY", string(screen.PolicyAny))),
			Weights: screen.Weights{
				VolumeSpike:   getEnvFloatWithDefault("WEIGHT_VOLUME_SPIKE", 2.0),
				IntrabarJump:  getEnvFloatWithDefault("WEIGHT_INTRABAR_JUMP", 2.0),
				Compression:   getEnvFloatWithDefault("WEIGHT_COMPRESSION", 1.5),
				VWAPDrift:     getEnvFloatWithDefault("WEIGHT_VWAP_DRIFT", 1.0),
				TurnoverSpike: getEnvFloatWithDefault("WEIGHT_TURNOVER_SPIKE", 1.0),
				OBVImpulse:    getEnvFloatWithDefault("WEIGHT_OBV_IMPULSE", 1.0),
				Squeeze:       getEnvFloatWithDefault("WEIGHT_SQUEEZE", 1.5),
				WhaleSweep:    getEnvFloatWithDefault("WEIGHT_WHALE_SWEEP", 1.0),
				FundingBias:   getEnvFloatWithDefault("WEIGHT_FUNDING_BIAS", 0.5),
			},
			AltScoreThreshold:   getEnvFloatWithDefault("ALT_SCORE_THRESHOLD", 4.0),
			AlertScoreThreshold: getEnvFloatWithDefault("ALERT_SCORE_THRESHOLD", 2.5),
			DailyPumpMaxGain:    getEnvFloatWithDefault("DAILY_PUMP_MAX_GAIN", 0.25),
		},

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnvWithDefault("DB_HOST", "localhost"),
			Port:     getEnvWithDefault("DB_PORT", "5432"),
			User:     getEnvWithDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnvWithDefault("DB_NAME", "screener"),
			SSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
		},
	}

	if cfg.Screen.Policy != screen.PolicyAny && cfg.Screen.Policy != screen.PolicyBoth {
		return nil, fmt.Errorf("invalid GATE_POLICY %q, want %q or %q", cfg.Screen.Policy, screen.PolicyAny, screen.PolicyBoth)
	}

	return cfg, nil
}

// Location resolves the configured timezone for window alignment.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
