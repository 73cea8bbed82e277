package recommend

import "tactics_server/core/domain"

// MaxQuestions caps the follow-up checklist.
const MaxQuestions = 5

// Questions lists what the giver could find out to sharpen the analysis.
// Rules are evaluated in order and earlier ones win when more than
// MaxQuestions fire.
func Questions(t *domain.TargetProfile) []string {
	qs := make([]string, 0, MaxQuestions)

	switch n := len(t.RecipientActions); {
	case n == 0:
		qs = append(qs, "Think about what this person actually does toward you. Do they reach out, ask for advice or invite you places? Concrete actions make the intimacy score much more accurate.")
	case n <= 2:
		qs = append(qs, "Only a few actions are recorded. Check the trust, priority and interest categories for anything else that applies.")
	}

	if runeLen(t.RecentEpisodes) <= episodeHookMinLen {
		qs = append(qs, "Write down a recent moment with this person, even a small one like having lunch together or being asked for help.")
	}

	if len(t.Personality) == 0 {
		qs = append(qs, "What is this person like? Meticulous, easygoing, particular, sociable? Personality changes the gift strategy a lot.")
	}

	switch n := len(t.Preferences); {
	case n == 0:
		qs = append(qs, "Find out their favorite food, drinks and hobbies. More preference tags make the gift suggestion far more precise.")
	case n <= 3:
		qs = append(qs, "Preferences are still sparse. Digging into taste, lifestyle and values will sharpen the analysis.")
	}

	if t.RecentInterests == "" {
		qs = append(qs, "What have they been into lately, or mentioned wanting? That goes straight into a personal gift.")
	}

	if t.GiftReaction == domain.ReactionUnknown || t.GiftReaction == "" {
		qs = append(qs, "How do they react to gifts: openly delighted, modest or embarrassed? It shapes how to hand it over.")
	}

	if t.BenefitType == domain.BenefitTangible {
		if t.ReturnTendency == domain.ReturnUnknown {
			qs = append(qs, "Do they usually return courtesy gifts? Ask around discreetly. It greatly improves the return forecast.")
		}
		if t.GaveLastYear && t.ReceivedReturn && t.ReturnValueOrZero() == 0 {
			qs = append(qs, "Can you recall what last year's return was worth? A concrete amount makes the forecast accurate.")
		}
		if t.GaveLastYear && !t.ReceivedReturn {
			qs = append(qs, "Try to learn why there was no return last year. Forgetfulness means there is still a chance; indifference is a reason to stop.")
		}
	} else {
		if t.RelationshipGoal == domain.GoalDeepen && t.RecentInterests == "" {
			qs = append(qs, "If you want to get closer, find out what recently delighted or moved them so the story can use it.")
		}
		if t.Relationship == domain.RelationshipRomanticInterest && len(t.Preferences) < 5 {
			qs = append(qs, "Notice what they wear and use day to day. Knowing their brands and quirks makes the gift land.")
		}
	}

	if len(qs) > MaxQuestions {
		qs = qs[:MaxQuestions]
	}
	return qs
}
