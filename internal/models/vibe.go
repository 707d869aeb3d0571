package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// VibeSnapshot is the minimal tuple the ranking pipeline consumes: one user's
// latest scored media reduced to a 0-100 score plus descriptive tags.
type VibeSnapshot struct {
	MediaID   uuid.UUID `json:"media_id"`
	Score     int       `json:"score"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// VibeAnalysis is the validated output of the vibe summarizer, stored under
// the vibe_analysis metadata key. VibeScore is on a 0-100 scale.
type VibeAnalysis struct {
	VibeScore          int      `json:"vibe_score"`
	VibeTags           []string `json:"vibe_tags"`
	PersonalitySummary string   `json:"personality_summary"`
	Strengths          []string `json:"strengths"`
	ImprovementAreas   []string `json:"improvement_areas"`
}

// SocialSummary is the older social perception summary, stored under the
// social metadata key. SocialScore is on a 0-10 scale.
type SocialSummary struct {
	SummaryText string      `json:"summary_text"`
	Tags        []string    `json:"tags"`
	SocialScore float64     `json:"social_score"`
	Percentile  *Percentile `json:"percentile,omitempty"`
}

type Percentile struct {
	Overall int `json:"overall"`
}

// PeerMatch is one candidate user surfaced as similar or complementary to the
// requester.
type PeerMatch struct {
	UserID string   `json:"user_id"`
	Alias  string   `json:"alias"`
	Score  int      `json:"score"`
	Tags   []string `json:"tags"`
}

// SocialGraphResult is the output of one ranking run. It is cached under the
// social_graph metadata key of the triggering user's latest media but is
// always reproducible by rerunning the computation.
type SocialGraphResult struct {
	ColdStart          bool        `json:"cold_start"`
	SampleSize         int         `json:"sample_size"`
	UserVibeScore      *int        `json:"user_vibe_score"`
	Percentile         Percentile  `json:"percentile"`
	SimilarUsers       []PeerMatch `json:"similar_users"`
	ComplementaryUsers []PeerMatch `json:"complementary_users"`
}

// ScorePoint is one entry of a user's chronological score trend.
type ScorePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
}

// HistorySummary is the validated output of the trend analyzer, stored under
// the history_summary metadata key.
type HistorySummary struct {
	TrendSummary    string       `json:"trend_summary"`
	ScoreTrend      []ScorePoint `json:"score_trend"`
	ImprovementTags []string     `json:"improvement_tags"`
	DeclineTags     []string     `json:"decline_tags"`
}

// VibeSnapshotOf derives a snapshot from media metadata, preferring the
// vibe_analysis section and falling back to social (whose 0-10 score is scaled
// to 0-100). Returns nil when the media carries neither.
func VibeSnapshotOf(m *Media) *VibeSnapshot {
	if m == nil {
		return nil
	}
	if va := m.Metadata.VibeAnalysis; va != nil {
		return &VibeSnapshot{
			MediaID:   m.ID,
			Score:     va.VibeScore,
			Tags:      va.VibeTags,
			CreatedAt: m.CreatedAt,
		}
	}
	if s := m.Metadata.Social; s != nil {
		return &VibeSnapshot{
			MediaID:   m.ID,
			Score:     int(math.Round(s.SocialScore * 10)),
			Tags:      s.Tags,
			CreatedAt: m.CreatedAt,
		}
	}
	return nil
}
