package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Roster source and KV backend selectors.
const (
	RosterSourceSQLite = "sqlite"
	RosterSourceVCard  = "vcard"
	KVBackendSQLite    = "sqlite"
	KVBackendRedis     = "redis"
)

// Config holds every setting read from the environment.
type Config struct {
	Port     int
	Env      string
	LogLevel string
	Location *time.Location

	DatabasePath string
	KVBackend    string
	RedisAddr    string
	RedisPass    string
	RedisDB      int

	RosterSource string
	VCardPath    string
	SeedRoster   bool

	LineChannelSecret string
	LineChannelToken  string

	TelegramToken  string
	TelegramChatID int64

	SMSEnabled bool
	AWSRegion  string

	DailyRefreshSpec string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             8080,
		Env:              "development",
		LogLevel:         "info",
		Location:         time.Local,
		DatabasePath:     "bdaywisher.db",
		KVBackend:        KVBackendSQLite,
		RedisAddr:        "localhost:6379",
		RosterSource:     RosterSourceSQLite,
		VCardPath:        "roster.vcf",
		SeedRoster:       true,
		AWSRegion:        "ap-south-1",
		DailyRefreshSpec: "5 0 0 * * *",
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
		}
		cfg.Location = loc
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("KV_BACKEND"); v != "" {
		if v != KVBackendSQLite && v != KVBackendRedis {
			return nil, fmt.Errorf("invalid KV_BACKEND %q: want %q or %q", v, KVBackendSQLite, KVBackendRedis)
		}
		cfg.KVBackend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	cfg.RedisPass = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if v := os.Getenv("ROSTER_SOURCE"); v != "" {
		if v != RosterSourceSQLite && v != RosterSourceVCard {
			return nil, fmt.Errorf("invalid ROSTER_SOURCE %q: want %q or %q", v, RosterSourceSQLite, RosterSourceVCard)
		}
		cfg.RosterSource = v
	}
	if v := os.Getenv("VCARD_PATH"); v != "" {
		cfg.VCardPath = v
	}
	if v := os.Getenv("SEED_ROSTER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_ROSTER: %w", err)
		}
		cfg.SeedRoster = b
	}

	cfg.LineChannelSecret = os.Getenv("CHANNEL_SECRET")
	cfg.LineChannelToken = os.Getenv("CHANNEL_ACCESS_TOKEN")

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if v := os.Getenv("SMS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMS_ENABLED: %w", err)
		}
		cfg.SMSEnabled = b
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWSRegion = v
	}

	if v := os.Getenv("DAILY_REFRESH_SPEC"); v != "" {
		cfg.DailyRefreshSpec = v
	}

	return cfg, nil
}

// LineEnabled reports whether both LINE credentials are present.
func (c *Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != ""
}

// TelegramEnabled reports whether a bot token and target chat are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
