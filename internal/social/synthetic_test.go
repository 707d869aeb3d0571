package social

import "testing"

func TestSyntheticScores_SizeAndBounds(t *testing.T) {
	scores := SyntheticScores(1000, 60, 15)
	if len(scores) != 1000 {
		t.Fatalf("got %d scores, want 1000", len(scores))
	}
	for i, s := range scores {
		if s < 0 || s > 100 {
			t.Fatalf("score[%d] = %d, outside [0,100]", i, s)
		}
	}
}

func TestSyntheticScores_BellShape(t *testing.T) {
	scores := SyntheticScores(5000, 60, 15)

	sum := 0
	within1Sigma := 0
	for _, s := range scores {
		sum += s
		if s >= 45 && s <= 75 {
			within1Sigma++
		}
	}

	mean := float64(sum) / float64(len(scores))
	if mean < 55 || mean > 65 {
		t.Fatalf("sample mean %.1f too far from 60", mean)
	}

	// ~68% of a gaussian lies within one stddev; allow a generous margin.
	frac := float64(within1Sigma) / float64(len(scores))
	if frac < 0.55 || frac > 0.85 {
		t.Fatalf("fraction within one stddev = %.2f, not bell-shaped", frac)
	}
}

func TestSyntheticScores_Empty(t *testing.T) {
	if got := SyntheticScores(0, 60, 15); len(got) != 0 {
		t.Fatalf("SyntheticScores(0) returned %d scores", len(got))
	}
}
