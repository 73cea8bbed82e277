package provider

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tactics_server/core/port/out"
)

// =============================================================================
// Provider Factory
// =============================================================================

// Provider kinds.
const (
	KindNone   = "none"
	KindOpenAI = "openai"
	KindDify   = "dify"
)

// FactoryConfig holds every provider configuration; Kind picks one.
type FactoryConfig struct {
	Kind    string
	OpenAI  *OpenAIConfig
	Dify    *DifyConfig
	Breaker *BreakerConfig // nil disables the breaker
}

// New builds the configured provider wrapped in a breaker. It returns a nil
// provider for kind "none" or "", meaning local scoring only.
func New(cfg *FactoryConfig, log zerolog.Logger) (out.ScoringProvider, error) {
	if cfg == nil {
		return nil, nil
	}

	var (
		p   out.ScoringProvider
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindNone, "local":
		return nil, nil
	case KindOpenAI:
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case KindDify:
		p, err = NewDifyProvider(cfg.Dify)
	default:
		return nil, fmt.Errorf("unsupported scoring provider: %s", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Breaker != nil {
		p = NewBreakerProvider(p, cfg.Breaker, log)
	}
	return p, nil
}
