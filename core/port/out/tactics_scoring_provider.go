package out

import (
	"context"

	"tactics_server/core/domain"
)

// ScoringProvider is an alternate, usually remote, analyzer for a single target.
// Its output is untrusted: callers validate it and fall back to local scoring on any failure.
type ScoringProvider interface {
	Name() string
	Analyze(ctx context.Context, target *domain.TargetProfile) (*domain.TargetAnalysis, error)
}

// ResultCheck accepts or rejects a provider result for target. It may fill
// fields the provider is allowed to omit.
type ResultCheck func(res *domain.TargetAnalysis, target *domain.TargetProfile) error
