package ranking

import (
	"tactics_server/core/domain"
	"tactics_server/core/service/scoring"
)

// Outcome classifies a single-target analysis. First match wins.
func Outcome(t *domain.TargetProfile, s domain.ScoreBreakdown) domain.OutcomeType {
	ep := t.EmotionalPriority
	tangible := t.BenefitType == domain.BenefitTangible

	switch {
	case t.RelationshipGoal == domain.GoalDistance && ep <= 2:
		return domain.OutcomeCutLoss
	case tangible && s.ROI >= 60 && ep >= 4:
		return domain.OutcomeFullSuccess
	case tangible && s.ROI >= 50:
		return domain.OutcomeInvestment
	case !tangible && ep >= 4:
		return domain.OutcomeEmotional
	case !tangible && s.Intimacy >= 50:
		return domain.OutcomeRelationshipBuilding
	case ep >= 4:
		return domain.OutcomeEmotional
	default:
		return domain.OutcomeNeedsReview
	}
}

// BatchOutcome classifies a target inside a batch plan. It reads the
// relationship score and the return multiplier instead of intimacy and raw ROI.
func BatchOutcome(t *domain.TargetProfile, s domain.ScoreBreakdown) domain.OutcomeType {
	ep := t.EmotionalPriority
	received := t.ReceivedReturn

	switch {
	case ep >= 4 && received:
		return domain.OutcomeFullSuccess
	case ep >= 4:
		return domain.OutcomeEmotional
	case received && scoring.ReturnMultiplier(t) >= 1:
		return domain.OutcomeInvestment
	case t.RelationshipGoal == domain.GoalDeepen && s.Relationship >= 70:
		return domain.OutcomeRelationshipBuilding
	case ep == 3 && !received:
		return domain.OutcomeNeedsRethink
	case ep <= 2 && !received:
		return domain.OutcomeCutLoss
	default:
		return domain.OutcomeNeedsRethink
	}
}

// SingleOutcomes lists the labels the single-target table can produce.
var SingleOutcomes = []domain.OutcomeType{
	domain.OutcomeFullSuccess,
	domain.OutcomeInvestment,
	domain.OutcomeEmotional,
	domain.OutcomeRelationshipBuilding,
	domain.OutcomeCutLoss,
	domain.OutcomeNeedsReview,
}
