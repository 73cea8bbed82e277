// Package ranking turns scores into a priority rank, an outcome label and a
// human-readable rank reason.
package ranking

import "tactics_server/core/domain"

// Rank thresholds on the total score, shared by both schemes.
const (
	ThresholdS = 80
	ThresholdA = 60
	ThresholdB = 40
)

// Threshold maps a total score to a rank. It is monotonic: a higher total
// never yields a lower rank.
func Threshold(total int) domain.Rank {
	switch {
	case total >= ThresholdS:
		return domain.RankS
	case total >= ThresholdA:
		return domain.RankA
	case total >= ThresholdB:
		return domain.RankB
	default:
		return domain.RankC
	}
}

// OverrideInput carries the profile fields the single-target overrides read.
type OverrideInput struct {
	EmotionalPriority int
	Goal              domain.RelationshipGoal
	Giri              domain.GiriAwareness
	Relationship      domain.Relationship
}

// OverrideInputFrom extracts the override fields from a profile.
func OverrideInputFrom(t *domain.TargetProfile) OverrideInput {
	return OverrideInput{
		EmotionalPriority: t.EmotionalPriority,
		Goal:              t.RelationshipGoal,
		Giri:              t.GiriAwareness,
		Relationship:      t.Relationship,
	}
}

// ApplyOverrides adjusts a threshold rank for the action-weighted scheme.
// Rules run in order on the same value; each sees the previous rule's result:
//
//  1. priority floor: ep>=5 lifts B/C to A, else ep>=4 lifts C to B
//  2. distance cap: goal=distance with ep<=2 caps S/A at B
//  3. romance misread: may_seem_romantic toward a non-romantic relationship drops one tier
func ApplyOverrides(rank domain.Rank, in OverrideInput) domain.Rank {
	adjusted := rank

	if in.EmotionalPriority >= 5 && (adjusted == domain.RankB || adjusted == domain.RankC) {
		adjusted = domain.RankA
	} else if in.EmotionalPriority >= 4 && adjusted == domain.RankC {
		adjusted = domain.RankB
	}

	if in.Goal == domain.GoalDistance && in.EmotionalPriority <= 2 {
		if adjusted == domain.RankS || adjusted == domain.RankA {
			adjusted = domain.RankB
		}
	}

	if in.Giri == domain.GiriMaySeemRomantic && !in.Relationship.IsRomantic() {
		adjusted = adjusted.Lower()
	}

	return adjusted
}

// Classify returns the threshold rank and, for the action-weighted scheme,
// the rank after overrides. Batch ranks are pure threshold lookups.
func Classify(scores domain.ScoreBreakdown, t *domain.TargetProfile) (base, final domain.Rank) {
	base = Threshold(scores.Total)
	if scores.Scheme != domain.SchemeActionWeighted {
		return base, base
	}
	return base, ApplyOverrides(base, OverrideInputFrom(t))
}
