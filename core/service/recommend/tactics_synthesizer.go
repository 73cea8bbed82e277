package recommend

import "tactics_server/core/domain"

// Recommendation is everything the synthesizer adds on top of scores and rank.
type Recommendation struct {
	Gift          domain.GiftSuggestion
	Message       string
	Questions     []string
	RiskWarnings  []string
	RoiPrediction domain.RoiPrediction
}

// Synthesizer assembles recommendations from a gift catalog.
type Synthesizer struct {
	catalog *Catalog
}

// NewSynthesizer creates a synthesizer over catalog.
func NewSynthesizer(catalog *Catalog) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// Gift picks the item for budget and attaches the story.
func (s *Synthesizer) Gift(t *domain.TargetProfile, budget int) domain.GiftSuggestion {
	gift := s.catalog.Pick(budget, t)
	gift.Story = Story(t, gift.Item)
	return gift
}

// Single builds the full single-target recommendation at the target's own budget.
func (s *Synthesizer) Single(t *domain.TargetProfile, scores domain.ScoreBreakdown) Recommendation {
	return Recommendation{
		Gift:          s.Gift(t, t.Budget),
		Message:       Message(t.Relationship),
		Questions:     Questions(t),
		RiskWarnings:  RiskWarnings(t, scores),
		RoiPrediction: PredictROI(t, scores),
	}
}

// Batch builds a plan entry's recommendation at the allocated budget.
// Questions and per-target warnings are not part of a plan.
func (s *Synthesizer) Batch(t *domain.TargetProfile, scores domain.ScoreBreakdown, allocated int) Recommendation {
	return Recommendation{
		Gift:          s.Gift(t, allocated),
		Message:       Message(t.Relationship),
		RoiPrediction: PredictBatchROI(t, scores),
	}
}
