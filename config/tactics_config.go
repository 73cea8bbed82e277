package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// Scoring
	RandomSeed     *int64 // nil draws a fresh seed per process
	AnalyzeWorkers int

	// Remote provider: none, openai or dify
	Provider           string
	ProviderTimeoutSec int

	// OpenAI
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64

	// Dify
	DifyAPIURL string
	DifyAPIKey string

	// Circuit breaker
	BreakerEnabled             bool
	BreakerMaxRequests         int
	BreakerIntervalSec         int
	BreakerTimeoutSec          int
	BreakerConsecutiveFailures int

	// CORS
	AllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("ANALYZE_WORKERS", 4)

	v.SetDefault("PROVIDER", "none")
	v.SetDefault("PROVIDER_TIMEOUT_SEC", 30)

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_MAX_TOKENS", 1500)
	v.SetDefault("LLM_TEMPERATURE", 0.4)

	v.SetDefault("DIFY_API_URL", "")
	v.SetDefault("DIFY_API_KEY", "")

	v.SetDefault("BREAKER_ENABLED", true)
	v.SetDefault("BREAKER_MAX_REQUESTS", 3)
	v.SetDefault("BREAKER_INTERVAL_SEC", 60)
	v.SetDefault("BREAKER_TIMEOUT_SEC", 30)
	v.SetDefault("BREAKER_CONSECUTIVE_FAILURES", 5)

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

// Load reads configuration from the environment and, when path is not
// empty, from a config file. Environment variables win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		AnalyzeWorkers: v.GetInt("ANALYZE_WORKERS"),

		Provider:           strings.ToLower(strings.TrimSpace(v.GetString("PROVIDER"))),
		ProviderTimeoutSec: v.GetInt("PROVIDER_TIMEOUT_SEC"),

		OpenAIAPIKey:   v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:  v.GetString("OPENAI_BASE_URL"),
		LLMModel:       v.GetString("LLM_MODEL"),
		LLMMaxTokens:   v.GetInt("LLM_MAX_TOKENS"),
		LLMTemperature: v.GetFloat64("LLM_TEMPERATURE"),

		DifyAPIURL: v.GetString("DIFY_API_URL"),
		DifyAPIKey: v.GetString("DIFY_API_KEY"),

		BreakerEnabled:             v.GetBool("BREAKER_ENABLED"),
		BreakerMaxRequests:         v.GetInt("BREAKER_MAX_REQUESTS"),
		BreakerIntervalSec:         v.GetInt("BREAKER_INTERVAL_SEC"),
		BreakerTimeoutSec:          v.GetInt("BREAKER_TIMEOUT_SEC"),
		BreakerConsecutiveFailures: v.GetInt("BREAKER_CONSECUTIVE_FAILURES"),

		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
	}

	if v.IsSet("RANDOM_SEED") && v.GetString("RANDOM_SEED") != "" {
		seed := v.GetInt64("RANDOM_SEED")
		cfg.RandomSeed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case "", "none", "local":
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("PROVIDER=openai requires OPENAI_API_KEY"))
		}
	case "dify":
		if c.DifyAPIURL == "" || c.DifyAPIKey == "" {
			errs = append(errs, errors.New("PROVIDER=dify requires DIFY_API_URL and DIFY_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PROVIDER %q", c.Provider))
	}
	if c.AnalyzeWorkers < 1 {
		errs = append(errs, errors.New("ANALYZE_WORKERS must be at least 1"))
	}
	if c.ProviderTimeoutSec < 1 {
		errs = append(errs, errors.New("PROVIDER_TIMEOUT_SEC must be at least 1"))
	}
	return errors.Join(errs...)
}

// ProviderTimeout returns the remote call budget.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSec) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
