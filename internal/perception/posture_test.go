package perception

import "testing"

func TestGradeAlignment(t *testing.T) {
	// Level eyes, nose centered: a frontal, upright head.
	frontal := [5][2]float32{{100, 100}, {160, 100}, {130, 130}, {110, 160}, {150, 160}}
	entry := gradeAlignment(frontal)
	if entry.Posture != "upright" {
		t.Fatalf("frontal face graded %q (score %v), want upright", entry.Posture, entry.AlignmentScore)
	}
	if entry.AlignmentScore < 8 || entry.AlignmentScore > 10 {
		t.Fatalf("frontal alignment = %v, want >= 8", entry.AlignmentScore)
	}
	if len(entry.Tips) != 0 {
		t.Fatalf("frontal face should need no tips, got %v", entry.Tips)
	}

	// Strong roll: right eye far below the left.
	rolled := [5][2]float32{{100, 100}, {160, 140}, {130, 150}, {110, 190}, {150, 200}}
	entry = gradeAlignment(rolled)
	if entry.AlignmentScore >= 8 {
		t.Fatalf("rolled head scored %v, want below upright band", entry.AlignmentScore)
	}
	if len(entry.Tips) == 0 {
		t.Fatal("rolled head should produce a leveling tip")
	}

	// Strong yaw: nose well off the eye midline.
	turned := [5][2]float32{{100, 100}, {160, 100}, {155, 130}, {110, 160}, {150, 160}}
	entry = gradeAlignment(turned)
	if entry.AlignmentScore >= gradeAlignment(frontal).AlignmentScore {
		t.Fatalf("turned head (%v) should score below frontal", entry.AlignmentScore)
	}

	// Degenerate landmarks fall back to an indeterminate midpoint grade.
	entry = gradeAlignment([5][2]float32{})
	if entry.Posture != "indeterminate" || entry.AlignmentScore != 5 {
		t.Fatalf("degenerate landmarks graded %+v", entry)
	}
}
