package ranking

import (
	"fmt"
	"strings"

	"tactics_server/core/domain"
)

const maxSingleReasons = 3

var rankPrefix = map[domain.Rank]string{
	domain.RankS: "Top priority",
	domain.RankA: "Important",
	domain.RankB: "Standard",
	domain.RankC: "Minimal / consider skipping",
}

// Reason explains a single-target rank with up to three fragments.
func Reason(rank domain.Rank, s domain.ScoreBreakdown, t *domain.TargetProfile) string {
	var parts []string

	if t.BenefitType == domain.BenefitTangible {
		if s.ROI >= 70 {
			parts = append(parts, "strong return history")
		} else if s.ROI <= 30 {
			parts = append(parts, "weak return history")
		}
		if s.Intimacy >= 70 {
			parts = append(parts, "many warm gestures toward you")
		}
	} else {
		if s.GiftFit >= 70 {
			parts = append(parts, "a tailored gift is likely to land")
		} else if s.GiftFit <= 30 {
			parts = append(parts, "too few clues to tailor the gift")
		}
		if s.Intimacy >= 70 {
			parts = append(parts, "a close bond to build on")
		}
	}

	switch n := len(t.RecipientActions); {
	case n >= 4:
		parts = append(parts, "frequent friendly actions")
	case n == 0:
		parts = append(parts, "no observed actions yet")
	}
	if t.ReturnTendency == domain.ReturnReliable {
		parts = append(parts, "reliably returns gifts")
	}
	if t.EmotionalPriority >= 4 {
		parts = append(parts, "emotionally important")
	}
	if t.RelationshipGoal == domain.GoalDistance {
		parts = append(parts, "you want more distance")
	}

	if len(parts) > maxSingleReasons {
		parts = parts[:maxSingleReasons]
	}
	return formatReason(rank, parts)
}

// BatchReason explains a batch rank from the relationship-prior scores.
func BatchReason(rank domain.Rank, s domain.ScoreBreakdown, t *domain.TargetProfile) string {
	var parts []string

	if s.ROI >= 80 {
		parts = append(parts, "high return track record")
	} else if s.ROI <= 30 {
		parts = append(parts, "weak return history")
	}

	if s.Relationship >= 80 {
		parts = append(parts, fmt.Sprintf("you want to grow the %s relationship", strings.ReplaceAll(string(t.Relationship), "_", " ")))
	} else if s.Relationship <= 30 {
		parts = append(parts, "low strategic weight")
	}

	if t.EmotionalPriority >= 4 {
		parts = append(parts, "emotionally important")
	} else if t.EmotionalPriority <= 2 {
		parts = append(parts, "mostly a courtesy gift")
	}

	return formatReason(rank, parts)
}

func formatReason(rank domain.Rank, parts []string) string {
	if len(parts) == 0 {
		parts = []string{"balanced profile"}
	}
	return rankPrefix[rank] + ": " + strings.Join(parts, ", ")
}
