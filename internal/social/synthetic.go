package social

import (
	"math"
	"math/rand/v2"
)

// SyntheticScores generates n scores approximating a bell curve with the
// given mean and spread, clamped to [0,100]. It backs the cold-start path:
// early adopters get a plausible, non-degenerate percentile instead of an
// error, and callers always see the result flagged as cold start so the
// synthetic population is never mistaken for a real peer comparison.
func SyntheticScores(n int, mean, stddev float64) []int {
	out := make([]int, n)
	for i := range out {
		x := math.Round(rand.NormFloat64()*stddev + mean)
		out[i] = int(math.Min(100, math.Max(0, x)))
	}
	return out
}
