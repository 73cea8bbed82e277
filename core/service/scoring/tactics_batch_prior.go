package scoring

import (
	"tactics_server/core/domain"
	"tactics_server/core/port/out"
)

// =============================================================================
// Batch-Prior Scheme (batch planning)
// =============================================================================

// batchInvestment is the fixed notional spend that return values are compared against.
const batchInvestment = 1000

var emotionByPriority = map[int]int{1: 20, 2: 40, 3: 60, 4: 80, 5: 100}

// BatchPrior scores ROI from past exchanges, relationship from goal and type
// priors, and emotion straight from emotional priority.
type BatchPrior struct {
	rnd out.RandomSource
}

// NewBatchPrior creates the batch scheme.
func NewBatchPrior(rnd out.RandomSource) *BatchPrior {
	return &BatchPrior{rnd: rnd}
}

// Scheme returns domain.SchemeBatchPrior.
func (s *BatchPrior) Scheme() domain.Scheme {
	return domain.SchemeBatchPrior
}

// Score computes ROI, relationship, emotion and the priority-weighted total.
func (s *BatchPrior) Score(t *domain.TargetProfile) domain.ScoreBreakdown {
	roi := s.ROI(t)
	rel := s.Relationship(t)
	emo := Emotion(t.EmotionalPriority)
	return domain.ScoreBreakdown{
		Scheme:       domain.SchemeBatchPrior,
		ROI:          roi,
		Relationship: rel,
		Emotion:      emo,
		Total:        BatchPriorTotal(roi, rel, emo, t.EmotionalPriority),
	}
}

// ReturnMultiplier compares the last return against the notional spend; 0 when absent.
func ReturnMultiplier(t *domain.TargetProfile) float64 {
	rv := t.ReturnValueOrZero()
	if rv <= 0 {
		return 0
	}
	return float64(rv) / batchInvestment
}

// ROI draws from a bucket chosen by past exchanges. Never having given scores a flat 50.
func (s *BatchPrior) ROI(t *domain.TargetProfile) int {
	if t.GaveLastYear && t.ReceivedReturn {
		mult := ReturnMultiplier(t)
		switch {
		case mult >= 2:
			return s.rnd.UniformInt(90, 100)
		case mult >= 1:
			return s.rnd.UniformInt(70, 89)
		default:
			return s.rnd.UniformInt(50, 69)
		}
	}
	if !t.GaveLastYear {
		return 50
	}
	if t.GaveYearBefore && !t.ReceivedReturnYearBefore {
		return s.rnd.UniformInt(0, 29)
	}
	return s.rnd.UniformInt(30, 49)
}

// Relationship draws from a prior keyed by goal, then relationship type.
func (s *BatchPrior) Relationship(t *domain.TargetProfile) int {
	rel := t.Relationship
	switch t.RelationshipGoal {
	case domain.GoalDistance:
		return s.rnd.UniformInt(0, 29)
	case domain.GoalDeepen:
		switch {
		case rel.IsRomantic():
			return s.rnd.UniformInt(90, 100)
		case rel == domain.RelationshipBoss:
			return s.rnd.UniformInt(80, 95)
		default:
			return s.rnd.UniformInt(70, 89)
		}
	case domain.GoalMaintain:
		if rel == domain.RelationshipBoss || rel == domain.RelationshipColleague {
			return s.rnd.UniformInt(60, 79)
		}
		return s.rnd.UniformInt(50, 69)
	default:
		return s.rnd.UniformInt(30, 59)
	}
}

// Emotion maps emotional priority 1..5 to 20..100.
func Emotion(priority int) int {
	return emotionByPriority[clamp(priority, 1, 5)]
}

// BatchPriorTotal weights (roi, relationship, emotion) by emotional-priority tier.
func BatchPriorTotal(roi, rel, emo, priority int) int {
	var total float64
	switch {
	case priority <= 2:
		total = float64(roi)*0.5 + float64(rel)*0.3 + float64(emo)*0.2
	case priority == 3:
		total = float64(roi)*0.3 + float64(rel)*0.4 + float64(emo)*0.3
	default:
		total = float64(roi)*0.1 + float64(rel)*0.3 + float64(emo)*0.6
	}
	return clamp(round(total), 0, 100)
}
