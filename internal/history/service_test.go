package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/insight"
	"github.com/your-org/vibecheck/internal/models"
)

type fakeStore struct {
	media   []models.Media
	patches map[uuid.UUID][]models.MediaMetadata
}

func (f *fakeStore) ListScoredMedia(_ context.Context, _ uuid.UUID) ([]models.Media, error) {
	return f.media, nil
}

func (f *fakeStore) MergePatchMetadata(_ context.Context, mediaID uuid.UUID, patch models.MediaMetadata) error {
	if f.patches == nil {
		f.patches = make(map[uuid.UUID][]models.MediaMetadata)
	}
	f.patches[mediaID] = append(f.patches[mediaID], patch)
	return nil
}

type fakeAnalyzer struct {
	gotPoints []insight.TrendPoint
	summary   *models.HistorySummary
	err       error
}

func (f *fakeAnalyzer) AnalyzeTrend(_ context.Context, points []insight.TrendPoint) (*models.HistorySummary, error) {
	f.gotPoints = points
	return f.summary, f.err
}

func scoredMedia(day int, score int, tags ...string) models.Media {
	return models.Media{
		ID:        uuid.New(),
		CreatedAt: time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		Metadata: models.MediaMetadata{
			VibeAnalysis: &models.VibeAnalysis{VibeScore: score, VibeTags: tags},
		},
	}
}

func TestHistory_NoScoredMedia(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeAnalyzer{}, config.HistoryConfig{})

	_, err := svc.History(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistory_AssemblesChronologicalPoints(t *testing.T) {
	store := &fakeStore{media: []models.Media{
		scoredMedia(1, 50, "quiet"),
		scoredMedia(10, 65, "confident"),
		scoredMedia(20, 72, "confident", "stylish"),
	}}
	analyzer := &fakeAnalyzer{summary: &models.HistorySummary{TrendSummary: "up and to the right"}}
	svc := NewService(store, analyzer, config.HistoryConfig{RecentLimit: 5})

	summary, err := svc.History(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if summary.TrendSummary != "up and to the right" {
		t.Fatalf("unexpected summary %q", summary.TrendSummary)
	}

	if len(analyzer.gotPoints) != 3 {
		t.Fatalf("analyzer saw %d points, want 3", len(analyzer.gotPoints))
	}
	for i := 1; i < len(analyzer.gotPoints); i++ {
		if analyzer.gotPoints[i].Timestamp.Before(analyzer.gotPoints[i-1].Timestamp) {
			t.Fatalf("points out of chronological order: %+v", analyzer.gotPoints)
		}
	}
	if analyzer.gotPoints[0].Score != 50 || analyzer.gotPoints[2].Score != 72 {
		t.Fatalf("unexpected point scores: %+v", analyzer.gotPoints)
	}

	// Summary cached on the newest scored media.
	latest := store.media[2].ID
	if len(store.patches[latest]) != 1 || store.patches[latest][0].HistorySummary == nil {
		t.Fatalf("summary not cached on latest media: %+v", store.patches)
	}
}

func TestHistory_RecentLimitKeepsNewest(t *testing.T) {
	store := &fakeStore{media: []models.Media{
		scoredMedia(1, 10),
		scoredMedia(2, 20),
		scoredMedia(3, 30),
		scoredMedia(4, 40),
	}}
	analyzer := &fakeAnalyzer{summary: &models.HistorySummary{TrendSummary: "ok"}}
	svc := NewService(store, analyzer, config.HistoryConfig{RecentLimit: 2})

	if _, err := svc.History(context.Background(), uuid.New()); err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(analyzer.gotPoints) != 2 {
		t.Fatalf("analyzer saw %d points, want 2 newest", len(analyzer.gotPoints))
	}
	if analyzer.gotPoints[0].Score != 30 || analyzer.gotPoints[1].Score != 40 {
		t.Fatalf("wrong window kept: %+v", analyzer.gotPoints)
	}
}

func TestHistory_InvalidSummaryNotCached(t *testing.T) {
	store := &fakeStore{media: []models.Media{scoredMedia(1, 50)}}

	for name, analyzer := range map[string]*fakeAnalyzer{
		"empty summary":      {summary: &models.HistorySummary{}},
		"score out of range": {summary: &models.HistorySummary{TrendSummary: "x", ScoreTrend: []models.ScorePoint{{Score: 120}}}},
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewService(store, analyzer, config.HistoryConfig{})

			_, err := svc.History(context.Background(), uuid.New())
			if !errors.Is(err, models.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
			if len(store.patches) != 0 {
				t.Fatalf("invalid summary must not be cached, got %+v", store.patches)
			}
		})
	}
}

func TestHistory_AnalyzerErrorPropagates(t *testing.T) {
	store := &fakeStore{media: []models.Media{scoredMedia(1, 50)}}
	analyzer := &fakeAnalyzer{err: errors.New("model unreachable")}
	svc := NewService(store, analyzer, config.HistoryConfig{})

	_, err := svc.History(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.patches) != 0 {
		t.Fatal("failed analysis must not write metadata")
	}
}
