// Package analysis composes scoring, ranking, allocation and recommendation
// into single-target analyses and batch plans.
package analysis

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"tactics_server/core/domain"
	"tactics_server/core/port/in"
	"tactics_server/core/port/out"
	"tactics_server/core/service/allocation"
	"tactics_server/core/service/ranking"
	"tactics_server/core/service/recommend"
	"tactics_server/core/service/scoring"
	"tactics_server/pkg/apperr"
	"tactics_server/pkg/logger"
	"tactics_server/pkg/metrics"
)

// =============================================================================
// Analysis Service
// =============================================================================

// Operation labels used in logs and metrics.
const (
	OpAnalyze = "analyze"
	OpPlan    = "plan"
)

// ServiceConfig tunes the orchestrator.
type ServiceConfig struct {
	ProviderTimeout time.Duration // budget for one remote provider call
	Workers         int           // AnalyzeAll parallelism
}

// DefaultServiceConfig returns the defaults used when no config is given.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		ProviderTimeout: 30 * time.Second,
		Workers:         4,
	}
}

// ServiceDeps holds dependencies for creating a Service.
type ServiceDeps struct {
	Random      out.RandomSource
	Provider    out.ScoringProvider // optional
	Synthesizer *recommend.Synthesizer
	Validator   *Validator
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// Service is the analysis orchestrator. The local computation is always
// available; the remote provider is a best-effort enhancement whose
// failures are logged, counted and never returned.
type Service struct {
	config    *ServiceConfig
	single    scoring.Strategy
	batch     scoring.Strategy
	provider  out.ScoringProvider
	synth     *recommend.Synthesizer
	validator *Validator
	metrics   *metrics.Metrics
	log       zerolog.Logger
	tracer    trace.Tracer
}

var _ in.AnalysisService = (*Service)(nil)

// NewService creates the orchestrator.
func NewService(deps *ServiceDeps, config *ServiceConfig) *Service {
	if config == nil {
		config = DefaultServiceConfig()
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	synth := deps.Synthesizer
	if synth == nil {
		synth = recommend.NewSynthesizer(recommend.MustDefaultCatalog())
	}
	v := deps.Validator
	if v == nil {
		v = NewValidator()
	}

	return &Service{
		config:    config,
		single:    scoring.NewActionWeighted(deps.Random),
		batch:     scoring.NewBatchPrior(deps.Random),
		provider:  deps.Provider,
		synth:     synth,
		validator: v,
		metrics:   deps.Metrics,
		log:       deps.Logger,
		tracer:    otel.Tracer("tactics_server/analysis"),
	}
}

// Analyze returns the provider's analysis when it succeeds and passes
// output-shape validation, and the local action-weighted analysis otherwise.
func (s *Service) Analyze(ctx context.Context, t *domain.TargetProfile) (*domain.TargetAnalysis, error) {
	if t == nil {
		return nil, apperr.InvalidInput("target", "missing")
	}

	ctx, span := s.tracer.Start(ctx, "analysis.Analyze",
		trace.WithAttributes(attribute.String("target.relationship", string(t.Relationship))))
	defer span.End()
	start := time.Now()

	if s.provider != nil {
		res, err := s.remote(ctx, t)
		if err == nil {
			s.metrics.ObserveAnalysis(OpAnalyze, res.Source, time.Since(start))
			span.SetAttributes(attribute.String("analysis.source", res.Source))
			return res, nil
		}
		reason := fallbackReason(err)
		s.metrics.ObserveFallback(s.provider.Name(), reason)
		span.AddEvent("provider fallback", trace.WithAttributes(attribute.String("reason", reason)))
		log := logger.FromContext(ctx, s.log)
		log.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Str("reason", reason).
			Str("target", t.Name).
			Msg("scoring provider failed, using local analysis")
	}

	res := s.Local(t)
	if err := s.validator.Analysis(res, t); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "local analysis invalid")
		s.log.Error().Err(err).Str("target", t.Name).Msg("local analysis broke an output invariant")
		return nil, apperr.Internal("local analysis broke an output invariant", err)
	}

	s.metrics.ObserveAnalysis(OpAnalyze, res.Source, time.Since(start))
	span.SetAttributes(attribute.String("analysis.source", res.Source), attribute.String("analysis.rank", string(res.Rank)))
	return res, nil
}

// Local runs the deterministic action-weighted analysis. Only the ROI axis
// depends on the random source.
func (s *Service) Local(t *domain.TargetProfile) *domain.TargetAnalysis {
	scores := s.single.Score(t)
	base, rank := ranking.Classify(scores, t)
	rec := s.synth.Single(t, scores)

	return &domain.TargetAnalysis{
		Scores:          scores,
		BaseRank:        base,
		Rank:            rank,
		RankReason:      ranking.Reason(rank, scores, t),
		Outcome:         ranking.Outcome(t, scores),
		Gift:            rec.Gift,
		Message:         rec.Message,
		RoiPrediction:   rec.RoiPrediction,
		Questions:       rec.Questions,
		RiskWarnings:    rec.RiskWarnings,
		RiskWarning:     recommend.JoinWarnings(rec.RiskWarnings),
		AllocatedBudget: t.Budget,
		Source:          domain.SourceLocal,
	}
}

func (s *Service) remote(ctx context.Context, t *domain.TargetProfile) (*domain.TargetAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.ProviderTimeout)
	defer cancel()

	name := s.provider.Name()
	res, err := s.provider.Analyze(ctx, t)
	if err != nil {
		switch {
		case apperr.HasCode(err, apperr.CodeInvalidOutput):
			return nil, err
		case errors.Is(err, context.DeadlineExceeded):
			return nil, apperr.Timeout(name + " analyze")
		}
		return nil, apperr.ExternalError(name, err)
	}
	if res == nil {
		return nil, apperr.ExternalError(name, errors.New("empty result"))
	}
	if res.Source == "" {
		res.Source = name
	}

	if err := s.validator.Accept(res, t); err != nil {
		return nil, apperr.InvalidOutput(name, err)
	}
	return res, nil
}

func fallbackReason(err error) string {
	switch {
	case apperr.HasCode(err, apperr.CodeInvalidOutput):
		return "invalid_output"
	case apperr.HasCode(err, apperr.CodeTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// AnalyzeAll analyzes targets in parallel, bounded by the worker setting,
// and returns results in input order.
func (s *Service) AnalyzeAll(ctx context.Context, targets []*domain.TargetProfile) ([]*domain.TargetAnalysis, error) {
	results := make([]*domain.TargetAnalysis, len(targets))
	if len(targets) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			res, err := s.Analyze(gctx, t)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Plan scores the batch with the relationship-prior scheme, waits for every
// rank, splits totalBudget, then builds each entry at its allocated budget.
// Targets are scored in input order so seeded runs are reproducible.
func (s *Service) Plan(ctx context.Context, targets []*domain.TargetProfile, totalBudget int) (*domain.Plan, error) {
	_, span := s.tracer.Start(ctx, "analysis.Plan",
		trace.WithAttributes(attribute.Int("plan.targets", len(targets)), attribute.Int("plan.total_budget", totalBudget)))
	defer span.End()
	start := time.Now()

	plan := &domain.Plan{
		ID:          uuid.NewString(),
		TotalBudget: totalBudget,
		Targets:     []domain.PlannedTarget{},
		Allocations: map[string]int{},
		Timeline:    []domain.TimelineItem{},
		Warnings:    []string{},
	}
	if len(targets) == 0 || totalBudget <= 0 {
		return plan, nil
	}

	type scored struct {
		id     string
		target *domain.TargetProfile
		scores domain.ScoreBreakdown
		rank   domain.Rank
	}

	seen := make(map[string]bool, len(targets))
	entries := make([]scored, 0, len(targets))
	for i, t := range targets {
		if t == nil {
			return nil, apperr.InvalidInput("targets", "missing target")
		}
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, apperr.InvalidInput("targets", "duplicate id "+id).WithDetail("index", i)
		}
		seen[id] = true

		scores := s.batch.Score(t)
		if err := scoring.CheckBreakdown(scores); err != nil {
			span.RecordError(err)
			return nil, apperr.Internal("batch score out of range", err)
		}
		_, rank := ranking.Classify(scores, t)
		entries = append(entries, scored{id: id, target: t, scores: scores, rank: rank})
	}

	alloc := make([]allocation.Allocatable, len(entries))
	for i, e := range entries {
		alloc[i] = allocation.Allocatable{ID: e.id, Rank: e.rank, EmotionalPriority: e.target.EmotionalPriority}
	}
	plan.Allocations = allocation.Allocate(alloc, totalBudget)

	for _, e := range entries {
		budget := plan.Allocations[e.id]
		rec := s.synth.Batch(e.target, e.scores, budget)
		plan.Targets = append(plan.Targets, domain.PlannedTarget{
			ID:                e.id,
			Name:              e.target.Name,
			Relationship:      e.target.Relationship,
			EmotionalPriority: e.target.EmotionalPriority,
			Scores:            e.scores,
			Rank:              e.rank,
			RankReason:        ranking.BatchReason(e.rank, e.scores, e.target),
			Outcome:           ranking.BatchOutcome(e.target, e.scores),
			AllocatedBudget:   budget,
			Gift:              rec.Gift,
			Message:           rec.Message,
			RoiPrediction:     rec.RoiPrediction,
		})
	}

	sort.SliceStable(plan.Targets, func(i, j int) bool {
		return plan.Targets[i].Rank.Value() > plan.Targets[j].Rank.Value()
	})

	plan.Timeline = Timeline(plan.Targets)
	plan.Warnings = append(plan.Warnings, recommend.BatchWarnings(targets, plan.Targets)...)

	s.metrics.ObserveAnalysis(OpPlan, domain.SourceLocal, time.Since(start))
	s.log.Info().
		Str("plan_id", plan.ID).
		Int("targets", len(plan.Targets)).
		Int("total_budget", totalBudget).
		Int("warnings", len(plan.Warnings)).
		Msg("plan built")
	return plan, nil
}
