package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/your-org/vibecheck/internal/models"
)

// TrendPoint is one chronological observation fed to the trend analyzer.
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Tags      []string  `json:"tags,omitempty"`
}

const trendSystemPrompt = `You are an encouraging personal analytics coach.
Given a chronological series of vibe observations (timestamp, score 0-100,
tags), respond with a single JSON object with exactly these keys:
"trend_summary" (2-3 sentences describing the trajectory),
"improvement_tags" (tags that grew more frequent or positive),
"decline_tags" (tags that faded or turned negative). Both tag lists may be
empty but must be present.`

// AnalyzeTrend summarizes a chronological score series. The score trend in the
// returned summary is assembled from the input points, not from the model, so
// it is always accurate even when the narrative is fuzzy.
func (c *Client) AnalyzeTrend(ctx context.Context, points []TrendPoint) (*models.HistorySummary, error) {
	series, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("marshal trend points: %w", err)
	}

	raw, err := c.generateJSON(ctx, "trend", trendSystemPrompt, string(series))
	if err != nil {
		return nil, fmt.Errorf("trend analysis: %w", err)
	}

	return parseHistorySummary(raw, points)
}

func parseHistorySummary(raw json.RawMessage, points []TrendPoint) (*models.HistorySummary, error) {
	var parsed struct {
		TrendSummary    string   `json:"trend_summary"`
		ImprovementTags []string `json:"improvement_tags"`
		DeclineTags     []string `json:"decline_tags"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("trend analysis is not valid JSON: %w: %w", err, models.ErrValidationFailed)
	}
	if parsed.TrendSummary == "" {
		return nil, fmt.Errorf("empty trend_summary: %w", models.ErrValidationFailed)
	}

	summary := &models.HistorySummary{
		TrendSummary:    parsed.TrendSummary,
		ImprovementTags: parsed.ImprovementTags,
		DeclineTags:     parsed.DeclineTags,
	}
	for _, p := range points {
		summary.ScoreTrend = append(summary.ScoreTrend, models.ScorePoint{
			Timestamp: p.Timestamp,
			Score:     p.Score,
		})
	}
	return summary, nil
}
