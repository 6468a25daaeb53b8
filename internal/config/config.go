package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the web server.
type Config struct {
	DatabaseURL string
	ListenAddr  string
	BaseURL     string
	SessionTTL  time.Duration
	DigestTime  string // HH:MM local time; empty disables the daily mail digest
	SMTPAddr    string // host:port of the outbound relay; empty logs mail instead
	SMTPFrom    string
	CORSOrigins []string
}

// Load reads configuration from environment variables with sane defaults.
// A .env file next to the binary is picked up when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:  strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		BaseURL:     strings.TrimSpace(os.Getenv("BASE_URL")),
		SessionTTL:  parseHours(strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))),
		DigestTime:  strings.TrimSpace(os.Getenv("DIGEST_TIME")),
		SMTPAddr:    strings.TrimSpace(os.Getenv("SMTP_ADDR")),
		SMTPFrom:    strings.TrimSpace(os.Getenv("SMTP_FROM")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskboard.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:3000"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 7 * 24 * time.Hour
	}
	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if cfg.SMTPAddr != "" && cfg.SMTPFrom == "" {
		return cfg, fmt.Errorf("SMTP_FROM is required when SMTP_ADDR is set")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
