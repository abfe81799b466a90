package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the order board needs from the environment.
type Config struct {
	// Google Sheets backing store
	SheetID             string
	ServiceAccountEmail string
	ServiceAccountKey   string

	// Optional Postgres audit trail; disabled when empty.
	PostgresDSN string

	// Optional Telegram group notification; disabled when the token is empty.
	TelegramToken  string
	NotifyChatID   int64
	NotifyThreadID int

	LogMode string
}

// Load reads the .env file (when present) and the environment, failing
// fast on missing spreadsheet credentials so no network call is attempted
// with a broken service account.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SheetID:             strings.TrimSpace(os.Getenv("GOOGLE_SHEET_ID")),
		ServiceAccountEmail: strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL")),
		ServiceAccountKey:   unescapeKey(os.Getenv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY")),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TelegramToken:       strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		LogMode:             strings.TrimSpace(os.Getenv("LOG_MODE")),
	}

	if raw := os.Getenv("NOTIFY_CHAT_ID"); strings.TrimSpace(raw) != "" {
		chatID, threadID, err := parseChatTarget(raw)
		if err != nil {
			return nil, fmt.Errorf("NOTIFY_CHAT_ID invalid: %w", err)
		}
		cfg.NotifyChatID = chatID
		cfg.NotifyThreadID = threadID
	}

	if cfg.SheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SHEET_ID not set")
	}
	if cfg.ServiceAccountEmail == "" || cfg.ServiceAccountKey == "" {
		return nil, fmt.Errorf("google service account env not set")
	}

	return cfg, nil
}

// unescapeKey restores real newlines in a PEM key stored as a single-line
// env value ("\n" escaped), the way deploy dashboards hand it over.
func unescapeKey(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, `\n`, "\n"))
}

// parseChatTarget accepts "chatID" or "chatID/threadID", with an optional
// trailing "# comment".
func parseChatTarget(raw string) (int64, int, error) {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "#"); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	parts := strings.Split(raw, "/")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("want chatID or chatID/threadID, got %q", raw)
	}

	chatID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, err
	}

	threadID := 0
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		tid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("thread id invalid: %w", err)
		}
		if tid < 0 {
			tid = -tid
		}
		threadID = tid
	}

	return chatID, threadID, nil
}
