// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultModel = "gemini-2.0-flash"

// Config holds all application configuration.
type Config struct {
	Port           string
	GoogleAPIKey   string
	ChatModel      string
	VisionModel    string
	FlashcardModel string
	TitleModel     string
	HistoryWindow  int
	MaxBodyBytes   int64
	ActionTimeout  time.Duration
	RateLimit      RateLimitConfig
	Transcript     TranscriptConfig
}

// RateLimitConfig controls per-client request throttling.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerWindow int
	Window            time.Duration
}

// TranscriptConfig controls NDJSON transcript logging of tutor exchanges.
type TranscriptConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	queueSize := getEnvInt("TRANSCRIPT_QUEUE_SIZE", 1000)
	if queueSize <= 0 {
		queueSize = 1000
	}

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
		ChatModel:      getEnv("CHAT_MODEL", defaultModel),
		VisionModel:    getEnv("VISION_MODEL", defaultModel),
		FlashcardModel: getEnv("FLASHCARD_MODEL", defaultModel),
		TitleModel:     getEnv("TITLE_MODEL", defaultModel),
		HistoryWindow:  getEnvInt("HISTORY_WINDOW", 15),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_MB", 50)) << 20,
		ActionTimeout:  time.Duration(getEnvInt("ACTION_TIMEOUT_SECONDS", 300)) * time.Second,
		RateLimit: RateLimitConfig{
			Enabled:           getEnvBool("RATE_LIMIT_ENABLED", true),
			RequestsPerWindow: getEnvInt("RATE_LIMIT_REQUESTS", 30),
			Window:            time.Minute,
		},
		Transcript: TranscriptConfig{
			Enabled:   getEnvBool("TRANSCRIPT_ENABLED", false),
			Dir:       getEnv("TRANSCRIPT_DIR", "./data/transcripts"),
			QueueSize: queueSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set. A
// missing API key is fatal: the server must not accept traffic without
// a way to reach the model provider.
func (c *Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("HISTORY_WINDOW must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_MB must be > 0")
	}
	if c.ActionTimeout <= 0 {
		return fmt.Errorf("ACTION_TIMEOUT_SECONDS must be > 0")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be > 0")
	}
	if c.Transcript.Enabled && c.Transcript.Dir == "" {
		return fmt.Errorf("TRANSCRIPT_DIR cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
