// Package allocation splits a shared budget across ranked batch targets.
package allocation

import (
	"math"

	"tactics_server/core/domain"
)

// Allocatable is the slice of a planned target the allocator needs.
type Allocatable struct {
	ID                string
	Rank              domain.Rank
	EmotionalPriority int
}

// RankRatio is each tier's share before renormalization over active tiers.
var RankRatio = map[domain.Rank]float64{
	domain.RankS: 0.40,
	domain.RankA: 0.30,
	domain.RankB: 0.20,
	domain.RankC: 0.10,
}

// FloorShare is the minimum share for an important target ranked C.
const FloorShare = 0.05

// EffectiveRank promotes a priority-5 target one tier for budget grouping only.
func EffectiveRank(rank domain.Rank, emotionalPriority int) domain.Rank {
	if emotionalPriority == 5 {
		return rank.Higher()
	}
	return rank
}

// FloorAmount is the guaranteed minimum for a floor-protected target.
func FloorAmount(totalBudget int) int {
	return int(math.Round(float64(totalBudget) * FloorShare))
}

// Allocate maps target IDs to budgets. Every member of a tier gets the same
// amount. Because group and member amounts are rounded independently, the sum
// may drift from totalBudget by a few units; the floor correction may add more.
// An empty list or a non-positive budget yields an empty map.
func Allocate(targets []Allocatable, totalBudget int) map[string]int {
	allocations := make(map[string]int, len(targets))
	if len(targets) == 0 || totalBudget <= 0 {
		return allocations
	}

	groups := make(map[domain.Rank][]string, len(domain.AllRanks))
	for _, t := range targets {
		eff := EffectiveRank(t.Rank, t.EmotionalPriority)
		groups[eff] = append(groups[eff], t.ID)
	}

	totalRatio := 0.0
	for _, r := range domain.AllRanks {
		if len(groups[r]) > 0 {
			totalRatio += RankRatio[r]
		}
	}
	if totalRatio == 0 {
		totalRatio = 1
	}

	for _, r := range domain.AllRanks {
		members := groups[r]
		if len(members) == 0 {
			continue
		}
		groupBudget := math.Round(RankRatio[r] / totalRatio * float64(totalBudget))
		perMember := int(math.Round(groupBudget / float64(len(members))))
		for _, id := range members {
			allocations[id] = perMember
		}
	}

	floor := FloorAmount(totalBudget)
	for _, t := range targets {
		if t.EmotionalPriority >= 4 && t.Rank == domain.RankC && allocations[t.ID] < floor {
			allocations[t.ID] = floor
		}
	}

	return allocations
}
