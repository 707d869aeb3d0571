package social

import "testing"

func TestPercentileOf_EmptyPopulationIsNeutral(t *testing.T) {
	for _, v := range []int{0, 50, 78, 100} {
		if got := PercentileOf(v, nil); got != 50 {
			t.Fatalf("PercentileOf(%d, empty) = %d, want 50", v, got)
		}
	}
}

func TestPercentileOf_Bounds(t *testing.T) {
	pop := []int{10, 20, 30, 40, 50, 60, 70, 80, 90}
	for v := 0; v <= 100; v++ {
		got := PercentileOf(v, pop)
		if got < 1 || got > 99 {
			t.Fatalf("PercentileOf(%d) = %d, outside [1,99]", v, got)
		}
	}
}

func TestPercentileOf_NeverExactExtremes(t *testing.T) {
	pop := []int{50, 50, 50}
	if got := PercentileOf(0, pop); got != 1 {
		t.Fatalf("value below everyone: got %d, want clamp to 1", got)
	}
	if got := PercentileOf(100, pop); got != 99 {
		t.Fatalf("value above everyone: got %d, want clamp to 99", got)
	}
}

func TestPercentileOf_Monotonic(t *testing.T) {
	pop := []int{5, 12, 33, 33, 47, 61, 75, 88, 92, 99}
	prev := 0
	for v := 0; v <= 100; v++ {
		got := PercentileOf(v, pop)
		if got < prev {
			t.Fatalf("PercentileOf not monotonic at v=%d: %d < %d", v, got, prev)
		}
		prev = got
	}
}

func TestPercentileOf_CountsLessOrEqual(t *testing.T) {
	pop := []int{10, 20, 30, 40}
	// 3 of 4 scores are <= 30 -> 75.
	if got := PercentileOf(30, pop); got != 75 {
		t.Fatalf("PercentileOf(30) = %d, want 75", got)
	}
	if got := PercentileOf(25, pop); got != 50 {
		t.Fatalf("PercentileOf(25) = %d, want 50", got)
	}
}
