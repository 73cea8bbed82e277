package out

// RandomSource draws bounded integers for the noisy ROI axes.
type RandomSource interface {
	// UniformInt returns an integer in [lo, hi], both inclusive.
	UniformInt(lo, hi int) int
}
