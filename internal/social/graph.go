package social

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/observability"
)

// Graph runs one social ranking computation per request. The whole run is
// synchronous and re-derivable; the result written back under social_graph is
// a cache, not canonical state.
type Graph struct {
	dir     Directory
	snaps   SnapshotSource
	patcher MetadataPatcher
	cfg     config.SocialGraphConfig
}

func NewGraph(dir Directory, snaps SnapshotSource, patcher MetadataPatcher, cfg config.SocialGraphConfig) *Graph {
	return &Graph{dir: dir, snaps: snaps, patcher: patcher, cfg: cfg}
}

// Analyze ranks one user against the opted-in population.
//
// Outcomes: models.ErrNotFound when the user is unknown or has no scored
// media; models.ErrForbidden when the user has not opted into public
// analysis; otherwise a cold-start or ranked result depending on whether the
// real baseline reaches the configured minimum.
func (g *Graph) Analyze(ctx context.Context, userID uuid.UUID) (*models.SocialGraphResult, error) {
	user, err := g.dir.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		observability.SocialGraphRuns.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}
	if !user.OptInPublicAnalysis {
		observability.SocialGraphRuns.WithLabelValues("forbidden").Inc()
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrForbidden)
	}

	mine, err := g.snaps.LatestVibeSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	if mine == nil {
		observability.SocialGraphRuns.WithLabelValues("no_snapshot").Inc()
		return nil, fmt.Errorf("no scored media for user %s: %w", userID, models.ErrNotFound)
	}

	baseline, err := CollectBaseline(ctx, g.dir, g.snaps, userID)
	if err != nil {
		return nil, fmt.Errorf("collect baseline: %w", err)
	}

	myScore := mine.Score

	var result *models.SocialGraphResult
	if len(baseline) < g.cfg.MinPublicUsers {
		// Cold start: percentile against the synthetic population, no peer
		// lists. SampleSize still reports the real baseline size.
		synth := SyntheticScores(g.cfg.SyntheticSize, g.cfg.SyntheticMean, g.cfg.SyntheticStddev)
		result = &models.SocialGraphResult{
			ColdStart:          true,
			SampleSize:         len(baseline),
			UserVibeScore:      &myScore,
			Percentile:         models.Percentile{Overall: PercentileOf(myScore, synth)},
			SimilarUsers:       []models.PeerMatch{},
			ComplementaryUsers: []models.PeerMatch{},
		}
		observability.SocialGraphRuns.WithLabelValues("cold_start").Inc()
	} else {
		scores := make([]int, len(baseline))
		peers := make([]models.PeerMatch, len(baseline))
		for i, c := range baseline {
			scores[i] = c.Score
			peers[i] = c.PeerMatch()
		}
		similar, complementary := RankPeers(myScore, mine.Tags, peers)
		result = &models.SocialGraphResult{
			ColdStart:          false,
			SampleSize:         len(baseline),
			UserVibeScore:      &myScore,
			Percentile:         models.Percentile{Overall: PercentileOf(myScore, scores)},
			SimilarUsers:       similar,
			ComplementaryUsers: complementary,
		}
		observability.SocialGraphRuns.WithLabelValues("ranked").Inc()
	}

	// Cache back onto the snapshot media. The result stays valid even when the
	// write-back fails.
	if g.patcher != nil {
		patch := models.MediaMetadata{SocialGraph: result}
		if err := g.patcher.MergePatchMetadata(ctx, mine.MediaID, patch); err != nil {
			slog.Warn("cache social graph result", "media_id", mine.MediaID, "error", err)
		}
	}

	return result, nil
}
