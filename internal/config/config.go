// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Scorer modes.
const (
	ScorerHeuristic = "heuristic"
	ScorerGemini    = "gemini"
)

// Config holds all runtime configuration for the monitor service.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	ScorerMode   string
	GeminiAPIKey string
	GeminiModel  string

	ResendAPIKey string
	EmailFrom    string

	MonitorIntervalHours  int
	MaxCompaniesPerRun    int // rotation window size per user per run
	MaxPostingsPerCompany int
	GeminiCallsPerCompany int // budget = this * selected companies

	SeenTTL  time.Duration
	CacheTTL time.Duration

	MatchThreshold float64

	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string // "console" or "json"
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	resendKey := os.Getenv("RESEND_API_KEY")
	if resendKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required")
	}

	mode := os.Getenv("SCORER_MODE")
	if mode == "" {
		mode = ScorerHeuristic
	}
	if mode != ScorerHeuristic && mode != ScorerGemini {
		return nil, fmt.Errorf("SCORER_MODE must be %q or %q, got %q", ScorerHeuristic, ScorerGemini, mode)
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if mode == ScorerGemini && geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required when SCORER_MODE is %q", ScorerGemini)
	}

	interval, err := intEnv("MONITOR_INTERVAL_HOURS", 1)
	if err != nil {
		return nil, err
	}
	maxCompanies, err := intEnv("MAX_COMPANIES_PER_RUN", 3)
	if err != nil {
		return nil, err
	}
	maxPostings, err := intEnv("MAX_POSTINGS_PER_COMPANY", 5)
	if err != nil {
		return nil, err
	}
	geminiCalls, err := intEnv("GEMINI_CALLS_PER_COMPANY", 2)
	if err != nil {
		return nil, err
	}
	seenDays, err := intEnv("SEEN_TTL_DAYS", 7)
	if err != nil {
		return nil, err
	}
	cacheDays, err := intEnv("CACHE_TTL_DAYS", 7)
	if err != nil {
		return nil, err
	}

	// Gemini scoring is stricter than the heuristic, so its bar sits higher.
	threshold := 0.5
	if mode == ScorerGemini {
		threshold = 0.6
	}
	if s := os.Getenv("MATCH_THRESHOLD"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("MATCH_THRESHOLD must be a number in [0,1], got %q", s)
		}
		threshold = v
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash-exp"
	}

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "AI Job Match <onboarding@resend.dev>"
	}

	port := os.Getenv("MONITOR_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		Port:                  port,
		DatabaseURL:           dbURL,
		RedisURL:              redisURL,
		ScorerMode:            mode,
		GeminiAPIKey:          geminiKey,
		GeminiModel:           geminiModel,
		ResendAPIKey:          resendKey,
		EmailFrom:             from,
		MonitorIntervalHours:  interval,
		MaxCompaniesPerRun:    maxCompanies,
		MaxPostingsPerCompany: maxPostings,
		GeminiCallsPerCompany: geminiCalls,
		SeenTTL:               time.Duration(seenDays) * 24 * time.Hour,
		CacheTTL:              time.Duration(cacheDays) * 24 * time.Hour,
		MatchThreshold:        threshold,
		HTTPTimeout:           15 * time.Second,
		LogLevel:              logLevel,
		LogFormat:             logFormat,
	}, nil
}

func intEnv(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}
