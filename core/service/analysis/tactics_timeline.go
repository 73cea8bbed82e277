package analysis

import (
	"fmt"
	"strings"

	"tactics_server/core/domain"
)

// Timeline lays out the plan from purchase to the return date. The S and A
// steps appear only when the plan has targets of that rank.
func Timeline(planned []domain.PlannedTarget) []domain.TimelineItem {
	var topNames []string
	hasA := false
	for _, p := range planned {
		switch p.Rank {
		case domain.RankS:
			topNames = append(topNames, p.Name)
		case domain.RankA:
			hasA = true
		}
	}

	items := []domain.TimelineItem{
		{Date: "02/01-02/07", Action: "Buy or order the gifts (watch the last online order date)"},
		{Date: "02/08-02/10", Action: "Prepare message cards and write them by hand"},
	}
	if len(topNames) > 0 {
		items = append(items, domain.TimelineItem{
			Date:   "02/12",
			Action: fmt.Sprintf("Rehearse the hand-over for rank S targets (%s)", strings.Join(topNames, ", ")),
		})
	}
	if hasA {
		items = append(items, domain.TimelineItem{Date: "02/13", Action: "Final preparation for rank A and B targets"})
	}
	return append(items,
		domain.TimelineItem{Date: "02/14", Action: "Valentine's Day: hand the gifts to every target"},
		domain.TimelineItem{Date: "02/15-02/28", Action: "Note reactions and any change in each relationship"},
		domain.TimelineItem{Date: "03/14", Action: "White Day: record whether and what each target returned, and settle the ROI"},
		domain.TimelineItem{Date: "03/15-03/31", Action: "Settle the final outcome per target and review for next year"},
	)
}
