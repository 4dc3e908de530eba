package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPledgesURL  = "https://storage.googleapis.com/plotly-app-challenge/one-for-the-world-pledges.json"
	defaultPaymentsURL = "https://storage.googleapis.com/plotly-app-challenge/one-for-the-world-payments.json"
)

// Config represents application configuration loaded from environment
// variables.
type Config struct {
	AppEnv string
	Port   string

	PledgesURL  string
	PaymentsURL string
	// FetchTimeout bounds the two dataset downloads. Not load-bearing for
	// correctness, just keeps a dead endpoint from hanging a reload.
	FetchTimeout time.Duration

	ExcludedPortfolios    []string
	CounterfactualDefault float64
	FiscalYTDStart        time.Time
	FiscalYTDEnd          time.Time

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	CORSOrigins      []string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The dataset URLs and the fiscal window default to
// the One for the World published values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8080"),
		PledgesURL:            getEnv("PLEDGES_URL", defaultPledgesURL),
		PaymentsURL:           getEnv("PAYMENTS_URL", defaultPaymentsURL),
		FetchTimeout:          time.Second * time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 60)),
		CounterfactualDefault: getEnvFloat("COUNTERFACTUAL_DEFAULT", 0),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		HTTPReadTimeout:       time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:      time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:       time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:       getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		CORSOrigins:           getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}

	cfg.ExcludedPortfolios = getEnvList("EXCLUDED_PORTFOLIOS", []string{
		"One for the World Discretionary Fund",
		"One for the World Operating Costs",
	})

	var err error
	if cfg.FiscalYTDStart, err = getEnvDate("FISCAL_YTD_START", "2024-07-01"); err != nil {
		return nil, err
	}
	if cfg.FiscalYTDEnd, err = getEnvDate("FISCAL_YTD_END", "2025-03-09"); err != nil {
		return nil, err
	}
	if cfg.FiscalYTDEnd.Before(cfg.FiscalYTDStart) {
		return nil, fmt.Errorf("FISCAL_YTD_END precedes FISCAL_YTD_START")
	}

	if cfg.CounterfactualDefault < 0 || cfg.CounterfactualDefault > 1 {
		return nil, fmt.Errorf("COUNTERFACTUAL_DEFAULT must be in [0,1], got %v", cfg.CounterfactualDefault)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvDate(key, fallback string) (time.Time, error) {
	v := getEnv(key, fallback)
	ts, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return ts, nil
}
