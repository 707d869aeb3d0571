package perception

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/models"
)

type fakeMediaStore struct {
	media map[uuid.UUID]*models.Media
}

func (f *fakeMediaStore) GetMedia(_ context.Context, id uuid.UUID) (*models.Media, error) {
	return f.media[id], nil
}

func storeWith(md models.MediaMetadata) (*fakeMediaStore, uuid.UUID) {
	id := uuid.New()
	return &fakeMediaStore{media: map[uuid.UUID]*models.Media{
		id: {ID: id, Metadata: md},
	}}, id
}

func TestBuildProfile_UnknownMedia(t *testing.T) {
	agg := NewAggregator(&fakeMediaStore{media: map[uuid.UUID]*models.Media{}})

	_, err := agg.BuildProfile(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildProfile_EmptyMetadata(t *testing.T) {
	store, id := storeWith(models.MediaMetadata{})
	agg := NewAggregator(store)

	_, err := agg.BuildProfile(context.Background(), id)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unanalyzed media, got %v", err)
	}
}

func TestBuildProfile_PostureOnly(t *testing.T) {
	store, id := storeWith(models.MediaMetadata{
		PostureCrops: []models.PostureEntry{
			{Posture: "slightly tilted", AlignmentScore: 6.5},
			{Posture: "upright", AlignmentScore: 9.0}, // only the first entry grades
		},
	})
	agg := NewAggregator(store)

	p, err := agg.BuildProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}

	if p.Summaries.PostureGrade != "Good" {
		t.Fatalf("PostureGrade = %q, want Good for 6.5", p.Summaries.PostureGrade)
	}
	if p.Summaries.Style != nil {
		t.Fatalf("no fashion items must mean no style summary, got %+v", p.Summaries.Style)
	}
	if p.Summaries.OverallScore != 3 {
		t.Fatalf("OverallScore = %d, want 3 (good posture only)", p.Summaries.OverallScore)
	}
}

func TestBuildProfile_FullMetadata(t *testing.T) {
	store, id := storeWith(models.MediaMetadata{
		Faces:        []models.Face{{Confidence: 0.95}},
		PostureCrops: []models.PostureEntry{{Posture: "upright", AlignmentScore: 8.2}},
		FashionCrops: []models.FashionItem{
			{Type: "tie", DominantColor: "blue"},
			{Type: "handbag", DominantColor: "black"},
			{Type: "backpack", DominantColor: "blue"},
		},
		Objects: []models.ObjectDetection{{Label: "laptop", Score: 0.7}},
	})
	agg := NewAggregator(store)

	p, err := agg.BuildProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}

	if p.Summaries.PostureGrade != "Excellent" {
		t.Fatalf("PostureGrade = %q, want Excellent", p.Summaries.PostureGrade)
	}
	if p.Summaries.OverallScore != 9 {
		t.Fatalf("OverallScore = %d, want the 9 maximum", p.Summaries.OverallScore)
	}
	wantColors := []string{"blue", "black"}
	if !reflect.DeepEqual(p.Summaries.Style.MainColors, wantColors) {
		t.Fatalf("MainColors = %v, want %v (distinct, detection order)", p.Summaries.Style.MainColors, wantColors)
	}
	if p.Summaries.Style.ItemsDetected != 3 {
		t.Fatalf("ItemsDetected = %d, want 3", p.Summaries.Style.ItemsDetected)
	}
}

func TestBuildProfile_Idempotent(t *testing.T) {
	store, id := storeWith(models.MediaMetadata{
		Faces:        []models.Face{{Confidence: 0.9}},
		PostureCrops: []models.PostureEntry{{AlignmentScore: 5.0}},
	})
	agg := NewAggregator(store)

	first, err := agg.BuildProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}
	second, err := agg.BuildProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("profiles differ across identical reads:\n%+v\n%+v", first, second)
	}
}

func TestPostureGradeBoundaries(t *testing.T) {
	for _, tc := range []struct {
		score float64
		want  string
	}{
		{10, "Excellent"}, {8, "Excellent"}, {7.9, "Good"}, {6, "Good"},
		{5.9, "Average"}, {4, "Average"}, {3.9, "Poor"}, {0, "Poor"},
	} {
		if got := postureGrade(tc.score); got != tc.want {
			t.Errorf("postureGrade(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
