package recommend

import (
	"math"

	"tactics_server/core/domain"
)

// MaxExpectedMultiplier bounds the forecast so large past returns stay within
// the accepted output range.
const MaxExpectedMultiplier = 10.0

// PredictROI forecasts reciprocation for a single-target analysis.
// Without a past return the multiplier grows with intimacy.
func PredictROI(t *domain.TargetProfile, s domain.ScoreBreakdown) domain.RoiPrediction {
	return predict(t, s.ROI, 0.3+float64(s.Intimacy)*0.008)
}

// PredictBatchROI forecasts reciprocation inside a batch plan.
// Without a past return the multiplier grows with the relationship score.
func PredictBatchROI(t *domain.TargetProfile, s domain.ScoreBreakdown) domain.RoiPrediction {
	return predict(t, s.ROI, 0.3+float64(s.Relationship)*0.01)
}

func predict(t *domain.TargetProfile, roi int, noReturnMultiplier float64) domain.RoiPrediction {
	var prob, mult float64
	if t.ReceivedReturn {
		prob = math.Min(0.95, 0.5+float64(roi)*0.004)
		mult = 1 + float64(t.ReturnValueOrZero())/2000
	} else {
		prob = math.Max(0.05, float64(roi)*0.005)
		mult = noReturnMultiplier
	}
	return domain.RoiPrediction{
		ReturnProbability:  roundTo(prob, 2),
		ExpectedMultiplier: roundTo(math.Min(mult, MaxExpectedMultiplier), 1),
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
