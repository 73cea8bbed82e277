// Package bootstrap wires configuration into the running components.
package bootstrap

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"tactics_server/adapter/out/provider"
	"tactics_server/config"
	"tactics_server/core/port/out"
	"tactics_server/core/service/analysis"
	"tactics_server/core/service/recommend"
	"tactics_server/core/service/scoring"
	"tactics_server/pkg/apperr"
	"tactics_server/pkg/metrics"
)

type Dependencies struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Random    *scoring.Random
	Seed      int64
	Provider  out.ScoringProvider // nil when scoring is local only
	Validator *analysis.Validator
	Service   *analysis.Service
}

// NewDependencies builds every component from cfg. Nothing here opens a
// connection; remote providers are contacted lazily per request.
func NewDependencies(cfg *config.Config, log zerolog.Logger) (*Dependencies, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.MustNewMetrics(reg)

	seed := time.Now().UnixNano()
	if cfg.RandomSeed != nil {
		seed = *cfg.RandomSeed
	}
	rnd := scoring.NewRandom(seed)

	validator := analysis.NewValidator()
	p, err := provider.New(providerConfig(cfg, validator.Accept), log)
	if err != nil {
		return nil, apperr.ConfigError(err.Error())
	}

	catalog, err := recommend.DefaultCatalog()
	if err != nil {
		return nil, apperr.ConfigError(err.Error())
	}

	svc := analysis.NewService(&analysis.ServiceDeps{
		Random:      rnd,
		Provider:    p,
		Synthesizer: recommend.NewSynthesizer(catalog),
		Validator:   validator,
		Metrics:     m,
		Logger:      log.With().Str("component", "analysis").Logger(),
	}, &analysis.ServiceConfig{
		ProviderTimeout: cfg.ProviderTimeout(),
		Workers:         cfg.AnalyzeWorkers,
	})

	providerName := "none"
	if p != nil {
		providerName = p.Name()
	}
	log.Info().
		Str("provider", providerName).
		Int64("seed", seed).
		Bool("fixed_seed", cfg.RandomSeed != nil).
		Int("workers", cfg.AnalyzeWorkers).
		Msg("dependencies ready")

	return &Dependencies{
		Config:    cfg,
		Logger:    log,
		Registry:  reg,
		Metrics:   m,
		Random:    rnd,
		Seed:      seed,
		Provider:  p,
		Validator: validator,
		Service:   svc,
	}, nil
}

// providerConfig maps cfg onto the provider factory. check runs inside the
// breaker so rejected results trip it like transport failures.
func providerConfig(cfg *config.Config, check out.ResultCheck) *provider.FactoryConfig {
	timeout := cfg.ProviderTimeout()
	fc := &provider.FactoryConfig{
		Kind: cfg.Provider,
		OpenAI: &provider.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.LLMModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Timeout:     timeout,
		},
		Dify: &provider.DifyConfig{
			BaseURL: cfg.DifyAPIURL,
			APIKey:  cfg.DifyAPIKey,
			Timeout: timeout,
		},
	}
	if cfg.BreakerEnabled {
		b := provider.DefaultBreakerConfig()
		b.MaxRequests = uint32(cfg.BreakerMaxRequests)
		b.Interval = time.Duration(cfg.BreakerIntervalSec) * time.Second
		b.Timeout = time.Duration(cfg.BreakerTimeoutSec) * time.Second
		b.ConsecutiveFailures = uint32(cfg.BreakerConsecutiveFailures)
		b.Check = check
		fc.Breaker = b
	}
	return fc
}
