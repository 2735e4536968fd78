package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	Port string `envconfig:"PORT" default:"3001"`

	Gemini GeminiConfig `envconfig:"GEMINI"`
	Log    LogConfig    `envconfig:"LOG"`

	GenerationTimeout  time.Duration `envconfig:"GENERATION_TIMEOUT" default:"20s"`
	MaxTranscriptTurns int           `envconfig:"MAX_TRANSCRIPT_TURNS" default:"40"`

	// SessionDBPath bo'sh bo'lsa sessiyalar xotirada saqlanadi
	SessionDBPath   string `envconfig:"SESSION_DB_PATH"`
	CatalogXLSXPath string `envconfig:"CATALOG_XLSX_PATH"`
	TelegramToken   string `envconfig:"TELEGRAM_BOT_TOKEN"`

	// TelegramAdminIDs katalogni Excel orqali yangilashi mumkin bo'lgan userlar
	TelegramAdminIDs []int64 `envconfig:"TELEGRAM_ADMIN_IDS"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// GeminiConfig generation servisi sozlamalari (GEMINI_ prefiksi bilan)
type GeminiConfig struct {
	APIKey          string  `envconfig:"API_KEY" required:"true"`
	Model           string  `envconfig:"MODEL" default:"gemini-1.5-flash"`
	Temperature     float32 `envconfig:"TEMPERATURE" default:"0.7"`
	TopP            float32 `envconfig:"TOP_P" default:"0.9"`
	MaxOutputTokens int32   `envconfig:"MAX_OUTPUT_TOKENS" default:"1024"`
	MaxRetries      int     `envconfig:"MAX_RETRIES" default:"0"`
}

// LogConfig logger sozlamalari
type LogConfig struct {
	Debug  bool `envconfig:"DEBUG" default:"false"`
	Pretty bool `envconfig:"PRETTY" default:"false"`
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Validatsiya
	cfg.Gemini.APIKey = strings.TrimSpace(cfg.Gemini.APIKey)
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable bo'sh")
	}
	if cfg.GenerationTimeout <= 0 {
		return nil, fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", cfg.GenerationTimeout)
	}
	if cfg.MaxTranscriptTurns < 0 {
		return nil, fmt.Errorf("MAX_TRANSCRIPT_TURNS must not be negative")
	}
	if cfg.Gemini.MaxRetries < 0 {
		return nil, fmt.Errorf("GEMINI_MAX_RETRIES must not be negative")
	}

	return &cfg, nil
}

// Addr HTTP server manzili
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
