package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	SheetsSpreadsheetID string
	SheetsCredentials   string

	SchedulingURL string

	PromptLogCapacity int

	RateLimitPerSecond float64
	RateLimitBurst     int

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool
}

// Load reads configuration from the environment. Missing Gemini or Sheets
// credentials are not startup errors; the affected features degrade at
// runtime (deterministic fallbacks for the AI stages, a configuration
// error for export).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}
	corsAllowCreds := strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true")
	if corsAllowAll {
		corsAllowCreds = false
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMTimeout:          mustDuration(getEnv("LLM_TIMEOUT", "30s")),
		SheetsSpreadsheetID: getEnv("GOOGLE_SHEETS_ID", ""),
		SheetsCredentials:   getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		SchedulingURL:       getEnv("SCHEDULING_URL", "https://calendly.com/leadflow/demo"),
		PromptLogCapacity:   mustInt(getEnv("PROMPT_LOG_CAPACITY", "1000")),
		RateLimitPerSecond:  mustFloat(getEnv("RATE_LIMIT_PER_SECOND", "10")),
		RateLimitBurst:      mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      corsAllowCreds,
	}

	return cfg, nil
}

// AIEnabled reports whether language-model calls can be attempted.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// SheetsEnabled reports whether the spreadsheet export is configured.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsSpreadsheetID != "" && c.SheetsCredentials != ""
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func mustFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
