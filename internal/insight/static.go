package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/perception"
)

// Static is a deterministic in-process implementation of both capabilities.
// It serves tests and local development where no model endpoint exists.
type Static struct{}

func (Static) SummarizeVibe(_ context.Context, profile *perception.Profile) (*models.VibeAnalysis, error) {
	score := 40 + profile.Summaries.OverallScore*6 // 40..94

	tags := []string{"present", "genuine", "curious"}
	var strengths []string
	if len(profile.Faces) > 0 {
		strengths = append(strengths, "Your expression reads clearly in this shot")
	}
	if profile.Summaries.PostureGrade == "Good" || profile.Summaries.PostureGrade == "Excellent" {
		tags = append(tags, "composed")
		strengths = append(strengths, "Strong, settled posture")
	}
	if style := profile.Summaries.Style; style != nil && style.ItemsDetected > 0 {
		tags = append(tags, "styled")
		strengths = append(strengths, fmt.Sprintf("Deliberate styling with %s accents", strings.Join(style.MainColors, " and ")))
	}

	return &models.VibeAnalysis{
		VibeScore:          score,
		VibeTags:           tags,
		PersonalitySummary: "You come across as approachable and self-aware. The photo suggests someone comfortable being seen.",
		Strengths:          strengths,
		ImprovementAreas:   []string{"Try a frame with more of your surroundings in it"},
	}, nil
}

func (Static) AnalyzeTrend(_ context.Context, points []TrendPoint) (*models.HistorySummary, error) {
	summary := &models.HistorySummary{
		TrendSummary: "Not enough history for a trajectory yet. Keep posting to build one.",
	}
	for _, p := range points {
		summary.ScoreTrend = append(summary.ScoreTrend, models.ScorePoint{Timestamp: p.Timestamp, Score: p.Score})
	}

	if len(points) >= 2 {
		first, last := points[0].Score, points[len(points)-1].Score
		switch {
		case last > first:
			summary.TrendSummary = "Your vibe scores are climbing. Recent posts land noticeably better than your earliest ones."
			summary.ImprovementTags = lastTags(points)
		case last < first:
			summary.TrendSummary = "Your vibe scores have dipped lately. Compare your recent posts against the earlier ones that scored well."
			summary.DeclineTags = lastTags(points)
		default:
			summary.TrendSummary = "Your vibe scores are holding steady."
		}
	}
	return summary, nil
}

func lastTags(points []TrendPoint) []string {
	for i := len(points) - 1; i >= 0; i-- {
		if len(points[i].Tags) > 0 {
			return points[i].Tags
		}
	}
	return nil
}
