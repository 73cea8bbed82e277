package recommend

import (
	"fmt"
	"strings"

	"tactics_server/core/domain"
)

const (
	lowROIThreshold      = 30
	overspendBudget      = 3000
	lowPriorityThreshold = 2
)

// RomanceMisreadRisk is the single-target check: any may_seem_romantic
// target gets the warning, whatever the relationship or priority.
func RomanceMisreadRisk(t *domain.TargetProfile) bool {
	return t.GiriAwareness == domain.GiriMaySeemRomantic
}

// DetailRomanceMisreadRisk is the stricter list-view check. It only warns
// for low-priority targets (ep<=2).
func DetailRomanceMisreadRisk(t *domain.TargetProfile) bool {
	return RomanceMisreadRisk(t) && t.EmotionalPriority <= lowPriorityThreshold
}

// TwoYearNoReturnRisk flags gifts given two years running with no return.
func TwoYearNoReturnRisk(t *domain.TargetProfile) bool {
	return t.TwoYearsUnreciprocated()
}

// LowROIRisk flags a tangible goal whose ROI score is below 30.
func LowROIRisk(t *domain.TargetProfile, s domain.ScoreBreakdown) bool {
	return t.BenefitType == domain.BenefitTangible && s.ROI < lowROIThreshold
}

// DistanceGoalRisk flags a target the giver wants distance from.
func DistanceGoalRisk(t *domain.TargetProfile) bool {
	return t.RelationshipGoal == domain.GoalDistance
}

// OverspendRisk flags a large budget on a low-priority target.
func OverspendRisk(t *domain.TargetProfile) bool {
	return t.EmotionalPriority <= lowPriorityThreshold && t.Budget >= overspendBudget
}

// Warning texts.
const (
	WarnRomanceMisread  = "Even as a courtesy gift, this may be read as romantic interest. Be careful how you hand it over and what you write."
	WarnTwoYearNoReturn = "Two years in a row without a return. Consider stepping back."
	WarnLowROI          = "Low expected return for a tangible goal. Keep the spend modest."
	WarnDistanceGoal    = "You want distance from this person. Reconsider whether a gift is needed at all."
	WarnOverspend       = "High spend on a low-priority relationship. Weigh the cost against what you expect back."
)

// RiskWarnings runs every single-target check independently and returns the
// warnings that fired, in a fixed order.
func RiskWarnings(t *domain.TargetProfile, s domain.ScoreBreakdown) []string {
	warnings := make([]string, 0, 5)
	if RomanceMisreadRisk(t) {
		warnings = append(warnings, WarnRomanceMisread)
	}
	if TwoYearNoReturnRisk(t) {
		warnings = append(warnings, WarnTwoYearNoReturn)
	}
	if LowROIRisk(t, s) {
		warnings = append(warnings, WarnLowROI)
	}
	if DistanceGoalRisk(t) {
		warnings = append(warnings, WarnDistanceGoal)
	}
	if OverspendRisk(t) {
		warnings = append(warnings, WarnOverspend)
	}
	return warnings
}

// JoinWarnings flattens warnings into the single riskWarning field.
func JoinWarnings(warnings []string) string {
	return strings.Join(warnings, " ")
}

// BatchWarnings builds plan-level warnings. Each check names every target
// it applies to. profiles and planned need not share an order.
func BatchWarnings(profiles []*domain.TargetProfile, planned []domain.PlannedTarget) []string {
	var warnings []string

	var cutLoss, lowRanked []string
	for _, p := range planned {
		if p.Outcome == domain.OutcomeCutLoss {
			cutLoss = append(cutLoss, p.Name)
		}
		if p.EmotionalPriority >= 4 && (p.Rank == domain.RankB || p.Rank == domain.RankC) {
			lowRanked = append(lowRanked, p.Name)
		}
	}

	var twoYear, misread, distanceButGave []string
	for _, t := range profiles {
		if TwoYearNoReturnRisk(t) {
			twoYear = append(twoYear, t.Name)
		}
		if DetailRomanceMisreadRisk(t) {
			misread = append(misread, t.Name)
		}
		if DistanceGoalRisk(t) && t.GaveLastYear {
			distanceButGave = append(distanceButGave, t.Name)
		}
	}

	if len(cutLoss) > 0 {
		warnings = append(warnings, fmt.Sprintf("Cutting losses is recommended for %s. Reconsider the spend.", names(cutLoss)))
	}
	if len(twoYear) > 0 {
		warnings = append(warnings, fmt.Sprintf("%s gave nothing back two years running. Stepping back is strongly recommended.", names(twoYear)))
	}
	if len(misread) > 0 {
		warnings = append(warnings, fmt.Sprintf("A courtesy gift to %s may be read as romantic interest. Be careful how you hand it over.", names(misread)))
	}
	if len(lowRanked) > 0 {
		warnings = append(warnings, fmt.Sprintf("%s matter emotionally but ranked low. A budget floor has been applied.", names(lowRanked)))
	}
	if len(distanceButGave) > 0 {
		warnings = append(warnings, fmt.Sprintf("You want distance from %s but gave last year. Stopping abruptly may cause friction.", names(distanceButGave)))
	}
	return warnings
}

func names(list []string) string {
	return strings.Join(list, ", ")
}
