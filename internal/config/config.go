// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Model providers.
const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
)

// Config holds everything the server and CLI need.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	Provider        string
	GoogleAPIKey    string
	GeminiModel     string
	GeminiTransport string
	DeepSeekAPIKey  string

	ModelTimeout     time.Duration
	TranslateTimeout time.Duration
	HistoryLimit     int

	MatchStrategy       string
	SimilarityThreshold float64

	BreakerMaxFailures int
	BreakerReset       time.Duration

	RateLimitPerMin  int
	WSMessagesPerMin int
	AllowedOrigins   []string

	LexiconFile   string
	KnowledgeFile string
}

// Load reads an optional .env file and then the environment. A missing
// .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Provider:        strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTransport: strings.ToLower(getEnv("GEMINI_TRANSPORT", "sdk")),
		DeepSeekAPIKey:  getEnv("DEEPSEEK_API_KEY", ""),
		MatchStrategy:   strings.ToLower(getEnv("MATCH_STRATEGY", "substring")),
		LexiconFile:     getEnv("LEXICON_FILE", ""),
		KnowledgeFile:   getEnv("KNOWLEDGE_FILE", ""),
	}

	var errs []error
	cfg.ModelTimeout = getDuration("MODEL_TIMEOUT", 30*time.Second, &errs)
	cfg.TranslateTimeout = getDuration("TRANSLATE_TIMEOUT", 10*time.Second, &errs)
	cfg.BreakerReset = getDuration("BREAKER_RESET", 5*time.Minute, &errs)
	cfg.HistoryLimit = getInt("HISTORY_LIMIT", 10, &errs)
	cfg.BreakerMaxFailures = getInt("BREAKER_MAX_FAILURES", 5, &errs)
	cfg.RateLimitPerMin = getInt("RATE_LIMIT_PER_MIN", 100, &errs)
	cfg.WSMessagesPerMin = getInt("WS_MESSAGES_PER_MIN", 30, &errs)
	cfg.AllowedOrigins = getList("ALLOWED_ORIGINS")
	cfg.SimilarityThreshold = getFloat("SIMILARITY_THRESHOLD", 0.8, &errs)

	switch cfg.Provider {
	case ProviderGemini, ProviderDeepSeek:
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER: unknown provider %q", cfg.Provider))
	}
	switch cfg.GeminiTransport {
	case "sdk", "rest":
	default:
		errs = append(errs, fmt.Errorf("GEMINI_TRANSPORT: unknown transport %q", cfg.GeminiTransport))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ModelAPIKey returns the key for the selected provider; empty means
// no model is configured.
func (c Config) ModelAPIKey() string {
	if c.Provider == ProviderDeepSeek {
		return c.DeepSeekAPIKey
	}
	return c.GoogleAPIKey
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func getInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getFloat(key string, def float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

// getList splits a comma-separated variable, dropping blank items.
func getList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
