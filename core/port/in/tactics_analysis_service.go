package in

import (
	"context"

	"tactics_server/core/domain"
)

// AnalysisService is the entry point used by the HTTP and CLI callers.
type AnalysisService interface {
	// Analyze scores one target with the action-weighted scheme.
	Analyze(ctx context.Context, target *domain.TargetProfile) (*domain.TargetAnalysis, error)

	// AnalyzeAll analyzes targets independently and keeps input order.
	AnalyzeAll(ctx context.Context, targets []*domain.TargetProfile) ([]*domain.TargetAnalysis, error)

	// Plan scores a batch with the relationship-prior scheme and splits totalBudget across it.
	Plan(ctx context.Context, targets []*domain.TargetProfile, totalBudget int) (*domain.Plan, error)
}
