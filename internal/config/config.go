package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	// QRCodeDir is where product QR images are written at creation time.
	QRCodeDir string

	// ScanSchedule is a cron spec for the warranty alert scanner.
	ScanSchedule string
	// AlertThresholds are the days-remaining values that trigger an alert.
	AlertThresholds []int
	// NotifyWebhookURL, when set, sends alerts to a webhook in addition to the log.
	NotifyWebhookURL string

	// UniqueEmail rejects registration with an already-registered email.
	UniqueEmail bool
	// RequireToken protects product routes with JWT bearer auth. When false
	// the caller is trusted to identify itself via the X-User-ID header.
	RequireToken bool
	// EnforceOwnership restricts product reads and writes to the owning user.
	EnforceOwnership bool
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/warranty?parseTime=true"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:        getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		QRCodeDir:        getEnv("QRCODE_DIR", "qrcodes"),
		ScanSchedule:     getEnv("SCAN_SCHEDULE", "@every 24h"),
		AlertThresholds:  getEnvInts("ALERT_THRESHOLDS", []int{5, 3, 1}),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		UniqueEmail:      getEnvBool("UNIQUE_EMAIL", true),
		RequireToken:     getEnvBool("REQUIRE_TOKEN", true),
		EnforceOwnership: getEnvBool("ENFORCE_OWNERSHIP", true),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

// getEnvInts parses a comma-separated list of non-negative integers.
func getEnvInts(key string, fallback []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	var out []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			slog.Warn("invalid threshold list in environment, using default", "key", key, "value", v)
			return fallback
		}
		out = append(out, n)
	}
	return out
}
