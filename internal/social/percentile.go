// Package social computes population-relative vibe rankings: percentile
// against opted-in peers (or a synthetic cold-start population) and
// similar/complementary peer matching.
package social

import "math"

// PercentileOf returns the rank of value within population, expressed 1-99:
// the percentage of members with score <= value, rounded and clamped so a
// finite sample never claims "worst ever" or "best ever". An empty population
// yields the neutral prior 50.
func PercentileOf(value int, population []int) int {
	if len(population) == 0 {
		return 50
	}
	below := 0
	for _, s := range population {
		if s <= value {
			below++
		}
	}
	pct := int(math.Round(100 * float64(below) / float64(len(population))))
	if pct < 1 {
		pct = 1
	}
	if pct > 99 {
		pct = 99
	}
	return pct
}
