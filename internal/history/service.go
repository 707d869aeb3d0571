// Package history assembles a user's chronological vibe trajectory and asks
// the trend analyzer to narrate it.
package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/insight"
	"github.com/your-org/vibecheck/internal/models"
)

// Analyzer narrates a chronological score series.
type Analyzer interface {
	AnalyzeTrend(ctx context.Context, points []insight.TrendPoint) (*models.HistorySummary, error)
}

// Store is the storage surface the service needs.
type Store interface {
	ListScoredMedia(ctx context.Context, userID uuid.UUID) ([]models.Media, error)
	MergePatchMetadata(ctx context.Context, mediaID uuid.UUID, patch models.MediaMetadata) error
}

type Service struct {
	store    Store
	analyzer Analyzer
	cfg      config.HistoryConfig
}

func NewService(store Store, analyzer Analyzer, cfg config.HistoryConfig) *Service {
	return &Service{store: store, analyzer: analyzer, cfg: cfg}
}

// History summarizes the user's score trajectory. Media without a score never
// contributes a point. The summary is cached on the newest scored media, and
// only after it passes validation; a bad analyzer response leaves stored
// metadata untouched.
func (s *Service) History(ctx context.Context, userID uuid.UUID) (*models.HistorySummary, error) {
	media, err := s.store.ListScoredMedia(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list scored media: %w", err)
	}

	var points []insight.TrendPoint
	var latest *models.Media
	for i := range media {
		snap := models.VibeSnapshotOf(&media[i])
		if snap == nil {
			continue
		}
		points = append(points, insight.TrendPoint{
			Timestamp: media[i].CreatedAt,
			Score:     float64(snap.Score),
			Tags:      snap.Tags,
		})
		latest = &media[i]
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no scored media for user %s: %w", userID, models.ErrNotFound)
	}

	if limit := s.cfg.RecentLimit; limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}

	summary, err := s.analyzer.AnalyzeTrend(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("analyze trend: %w", err)
	}
	if err := validateSummary(summary); err != nil {
		return nil, err
	}

	if err := s.store.MergePatchMetadata(ctx, latest.ID, models.MediaMetadata{HistorySummary: summary}); err != nil {
		return nil, fmt.Errorf("cache history summary: %w", err)
	}

	return summary, nil
}

func validateSummary(summary *models.HistorySummary) error {
	if summary == nil || summary.TrendSummary == "" {
		return fmt.Errorf("empty trend summary: %w", models.ErrValidationFailed)
	}
	for _, p := range summary.ScoreTrend {
		if p.Score < 0 || p.Score > 100 {
			return fmt.Errorf("trend score %v outside [0,100]: %w", p.Score, models.ErrValidationFailed)
		}
	}
	return nil
}
