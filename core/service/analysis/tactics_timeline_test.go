package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tactics_server/core/domain"
)

func TestTimeline(t *testing.T) {
	onlyLow := Timeline([]domain.PlannedTarget{{Name: "x", Rank: domain.RankC}})
	assert.Len(t, onlyLow, 6)
	assert.Equal(t, "02/14", onlyLow[2].Date)

	withTop := Timeline([]domain.PlannedTarget{
		{Name: "Aoki", Rank: domain.RankS},
		{Name: "Baba", Rank: domain.RankS},
		{Name: "Chiba", Rank: domain.RankA},
	})
	assert.Len(t, withTop, 8)
	assert.Equal(t, "02/12", withTop[2].Date)
	assert.Contains(t, withTop[2].Action, "Aoki, Baba")
	assert.Equal(t, "02/13", withTop[3].Date)
	assert.Equal(t, "03/15-03/31", withTop[len(withTop)-1].Date)
}
