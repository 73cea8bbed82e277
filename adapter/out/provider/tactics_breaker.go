package provider

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"tactics_server/core/domain"
	"tactics_server/core/port/out"
	"tactics_server/pkg/apperr"
)

// =============================================================================
// Circuit Breaker
// =============================================================================

// BreakerConfig configures the breaker around a provider.
type BreakerConfig struct {
	MaxRequests         uint32        // requests allowed while half-open
	Interval            time.Duration // closed-state counter reset
	Timeout             time.Duration // open-state duration before half-open
	ConsecutiveFailures uint32        // trips when exceeded
	MinRequests         uint32        // ratio rule needs at least this many requests
	FailureRatio        float64

	// Check runs inside the breaker; a rejected result counts as a failure.
	Check out.ResultCheck
}

// DefaultBreakerConfig trips after more than 5 consecutive failures, or a
// 60% failure rate over at least 10 requests.
func DefaultBreakerConfig() *BreakerConfig {
	return &BreakerConfig{
		MaxRequests:         3,
		Interval:            60 * time.Second,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
		MinRequests:         10,
		FailureRatio:        0.6,
	}
}

// BreakerProvider fails fast while the wrapped provider is unhealthy, so
// callers go straight to local scoring.
type BreakerProvider struct {
	inner out.ScoringProvider
	check out.ResultCheck
	cb    *gobreaker.CircuitBreaker
}

var _ out.ScoringProvider = (*BreakerProvider)(nil)

// NewBreakerProvider wraps inner with a circuit breaker.
func NewBreakerProvider(inner out.ScoringProvider, cfg *BreakerConfig, log zerolog.Logger) *BreakerProvider {
	if cfg == nil {
		cfg = DefaultBreakerConfig()
	}

	settings := gobreaker.Settings{
		Name:        inner.Name() + "-scoring",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > cfg.ConsecutiveFailures ||
				(counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &BreakerProvider{
		inner: inner,
		check: cfg.Check,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider's name.
func (p *BreakerProvider) Name() string { return p.inner.Name() }

// Analyze calls the wrapped provider unless the circuit is open. Results
// rejected by the configured check are returned as INVALID_OUTPUT.
func (p *BreakerProvider) Analyze(ctx context.Context, t *domain.TargetProfile) (*domain.TargetAnalysis, error) {
	res, err := p.cb.Execute(func() (interface{}, error) {
		res, err := p.inner.Analyze(ctx, t)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, errors.New("empty result")
		}
		if p.check != nil {
			if err := p.check(res, t); err != nil {
				return nil, apperr.InvalidOutput(p.inner.Name(), err)
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.TargetAnalysis), nil
}

// IsOpen reports whether calls are currently short-circuited.
func (p *BreakerProvider) IsOpen() bool {
	return p.cb.State() == gobreaker.StateOpen
}
