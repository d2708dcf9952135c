package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/crystaldolphin/chanrelay/internal/shared/stringutils"
)

// DotEnvFile is loaded from the working directory before the environment is parsed.
const DotEnvFile = ".env"

// Settings is the process configuration taken from the environment.
type Settings struct {
	Token        string `env:"TELEGRAM_BOT_TOKEN"`
	APIEndpoint  string `env:"TELEGRAM_API_ENDPOINT"`
	ConfigPath   string `env:"CONFIG_FILE_PATH"`
	MessagesPath string `env:"MESSAGES_FILE_PATH"`

	AnnounceTemplate string `env:"ANNOUNCE_TEMPLATE" envDefault:"Initial message for {name}"`
	ReplyText        string `env:"REPLY_TEXT" envDefault:"Reply message."`
	AnnounceSchedule string `env:"ANNOUNCE_SCHEDULE"`

	LedgerPath        string        `env:"LEDGER_PATH"`
	MetricsAddr       string        `env:"METRICS_ADDR"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"30m"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadSettings loads dotenvPath (if it exists) into the process environment
// without overriding variables already set, then parses Settings.
func LoadSettings(dotenvPath string) (Settings, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	return ParseSettings(nil)
}

// ParseSettings parses Settings from environ, or from the process
// environment when environ is nil.
func ParseSettings(environ map[string]string) (Settings, error) {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}
	return s, nil
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (s Settings) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ValidateToken reports a missing bot token.
func (s Settings) ValidateToken() error {
	if strings.TrimSpace(s.Token) == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	return nil
}

// TokenHint returns a redacted token suitable for display.
func (s Settings) TokenHint() string {
	if s.Token == "" {
		return "(not configured)"
	}
	return stringutils.Truncate(s.Token, 10)
}
