// Package scoring computes per-target sub-scores for the two scoring schemes.
package scoring

import (
	"fmt"
	"math"

	"tactics_server/core/domain"
)

// Strategy scores a single target. Implementations are stateless apart from
// the injected random source.
type Strategy interface {
	Scheme() domain.Scheme
	Score(t *domain.TargetProfile) domain.ScoreBreakdown
}

// CheckBreakdown returns an error if any sub-score or the total leaves [0,100].
func CheckBreakdown(s domain.ScoreBreakdown) error {
	for name, v := range s.SubScores() {
		if v < 0 || v > 100 {
			return fmt.Errorf("sub-score %s=%d out of range", name, v)
		}
	}
	if s.Total < 0 || s.Total > 100 {
		return fmt.Errorf("total=%d out of range", s.Total)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round rounds half away from zero; all inputs here are non-negative.
func round(v float64) int {
	return int(math.Round(v))
}
