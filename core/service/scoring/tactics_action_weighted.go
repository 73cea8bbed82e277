package scoring

import (
	"unicode/utf8"

	"tactics_server/core/domain"
	"tactics_server/core/port/out"
)

// =============================================================================
// Action-Weighted Scheme (single-target)
// =============================================================================

// ActionWeights is the intimacy weight of each observed recipient action.
var ActionWeights = map[domain.RecipientAction]int{
	domain.ActionContactsMe:             7,
	domain.ActionSharesPrivateTopics:    8,
	domain.ActionInvitesToMeals:         10,
	domain.ActionAsksForAdvice:          10,
	domain.ActionRemembersEvents:        9,
	domain.ActionMakesOneOnOneTime:      12,
	domain.ActionNoticesChanges:         8,
	domain.ActionRemembersConversations: 7,
	domain.ActionShowsVulnerability:     10,
}

const (
	intimacyBase       = 5
	actionDampening    = 0.7 // all nine actions sum to 81, dampened to ~57
	giftFitBase        = 15
	episodeBonusMinLen = 10
	episodeRichMinLen  = 30
)

var tendencyModifier = map[domain.ReturnTendency]int{
	domain.ReturnReliable:     18,
	domain.ReturnMoody:        0,
	domain.ReturnNeverReturns: -20,
	domain.ReturnUnknown:      0,
}

// ActionWeighted scores intimacy from the target's observed actions, a noisy ROI
// from past exchanges, and gift fit from the amount of signal available.
type ActionWeighted struct {
	rnd out.RandomSource
}

// NewActionWeighted creates the single-target scheme.
func NewActionWeighted(rnd out.RandomSource) *ActionWeighted {
	return &ActionWeighted{rnd: rnd}
}

// Scheme returns domain.SchemeActionWeighted.
func (s *ActionWeighted) Scheme() domain.Scheme {
	return domain.SchemeActionWeighted
}

// Score computes intimacy, ROI, gift fit and the benefit-weighted total.
func (s *ActionWeighted) Score(t *domain.TargetProfile) domain.ScoreBreakdown {
	intimacy := Intimacy(t)
	roi := s.ROI(t)
	giftFit := GiftFit(t)
	return domain.ScoreBreakdown{
		Scheme:   domain.SchemeActionWeighted,
		Intimacy: intimacy,
		ROI:      roi,
		GiftFit:  giftFit,
		Total:    ActionWeightedTotal(intimacy, roi, giftFit, t.BenefitType),
	}
}

// Intimacy measures only what the target does toward the giver. Relationship
// labels, goals, priority and tastes have no effect.
func Intimacy(t *domain.TargetProfile) int {
	score := intimacyBase

	actionSum := 0
	for _, a := range t.RecipientActions {
		actionSum += ActionWeights[a]
	}
	score += round(float64(actionSum) * actionDampening)

	// Content is not evaluated locally; presence of an episode earns a small bonus.
	if TextLength(t.RecentEpisodes) > episodeBonusMinLen {
		score += 5
	}

	if t.ReciprocatedLastYear() {
		score += 3
	}
	if t.ReciprocatedYearBefore() {
		score += 2
	}

	return clamp(score, 0, 100)
}

// ROI samples a bucket chosen by past exchanges, then shifts it by return tendency.
// The draw is deliberate noise standing in for real-world unpredictability.
func (s *ActionWeighted) ROI(t *domain.TargetProfile) int {
	var base int
	returnVal := t.ReturnValueOrZero()

	switch {
	case t.GaveLastYear && t.ReceivedReturn:
		if returnVal <= 0 {
			base = s.rnd.UniformInt(50, 60)
			break
		}
		mult := float64(returnVal) / float64(max(t.Budget, 500))
		switch {
		case mult >= 3:
			base = s.rnd.UniformInt(90, 100)
		case mult >= 2:
			base = s.rnd.UniformInt(80, 90)
		case mult >= 1:
			base = s.rnd.UniformInt(65, 80)
		default:
			base = s.rnd.UniformInt(50, 65)
		}
	case t.GaveLastYear:
		if t.GaveYearBefore && !t.ReceivedReturnYearBefore {
			base = s.rnd.UniformInt(0, 15)
		} else {
			base = s.rnd.UniformInt(15, 30)
		}
	case t.ReciprocatedYearBefore():
		base = s.rnd.UniformInt(40, 55)
	default:
		base = s.rnd.UniformInt(25, 45)
	}

	base += tendencyModifier[t.ReturnTendency]
	return clamp(base, 0, 100)
}

// GiftFit is a local estimate from objective signals only. Personality,
// preferences, interests and gift reaction feed the recommendation, not this score.
func GiftFit(t *domain.TargetProfile) int {
	score := giftFitBase

	switch n := len(t.RecipientActions); {
	case n >= 6:
		score += 35
	case n >= 4:
		score += 25
	case n >= 2:
		score += 15
	case n >= 1:
		score += 8
	}

	switch l := TextLength(t.RecentEpisodes); {
	case l > episodeRichMinLen:
		score += 20
	case l > episodeBonusMinLen:
		score += 12
	}

	if t.ReciprocatedLastYear() {
		score += 15
	} else if t.GaveLastYear {
		score += 5
	}
	if t.ReciprocatedYearBefore() {
		score += 8
	}

	return clamp(score, 0, 100)
}

// ActionWeightedTotal weights the three axes by benefit type.
func ActionWeightedTotal(intimacy, roi, giftFit int, bt domain.BenefitType) int {
	if bt == domain.BenefitTangible {
		return clamp(round(float64(intimacy)*0.25+float64(roi)*0.55+float64(giftFit)*0.20), 0, 100)
	}
	return clamp(round(float64(intimacy)*0.30+float64(roi)*0.15+float64(giftFit)*0.55), 0, 100)
}

// TextLength counts characters, not bytes, for the free-text length gates.
func TextLength(s string) int {
	return utf8.RuneCountInString(s)
}
