package perception

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/models"
)

// Profile is the assembled perception view of one media item. It is derived
// from stored metadata on demand and never persisted itself.
type Profile struct {
	MediaID     uuid.UUID                `json:"media_id"`
	Faces       []models.Face            `json:"faces"`
	Posture     []models.PostureEntry    `json:"posture"`
	Fashion     []models.FashionItem     `json:"fashion"`
	Environment Environment              `json:"environment"`
	Summaries   Summaries                `json:"summaries"`
}

type Environment struct {
	Objects   []models.ObjectDetection `json:"objects"`
	Embedding []float32                `json:"embedding,omitempty"`
}

type Summaries struct {
	Style        *StyleSummary `json:"style,omitempty"`
	PostureGrade string        `json:"posture_grade,omitempty"`
	OverallScore int           `json:"overall_score"`
}

// StyleSummary condenses the fashion section: distinct dominant colors in
// detection order plus the item count.
type StyleSummary struct {
	MainColors    []string `json:"main_colors"`
	ItemsDetected int      `json:"items_detected"`
}

// MediaGetter is the storage dependency of the aggregator.
type MediaGetter interface {
	GetMedia(ctx context.Context, id uuid.UUID) (*models.Media, error)
}

// Aggregator assembles profiles from stored metadata.
type Aggregator struct {
	media MediaGetter
}

func NewAggregator(media MediaGetter) *Aggregator {
	return &Aggregator{media: media}
}

// BuildProfile returns the profile for one media item, or ErrNotFound when the
// media does not exist or carries no metadata yet. The derivation is pure: the
// same stored metadata always yields the same profile.
func (a *Aggregator) BuildProfile(ctx context.Context, mediaID uuid.UUID) (*Profile, error) {
	media, err := a.media.GetMedia(ctx, mediaID)
	if err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}
	if media == nil {
		return nil, fmt.Errorf("media %s: %w", mediaID, models.ErrNotFound)
	}
	md := media.Metadata
	if md.IsEmpty() {
		return nil, fmt.Errorf("media %s has no analysis yet: %w", mediaID, models.ErrNotFound)
	}

	p := &Profile{
		MediaID: media.ID,
		Faces:   md.Faces,
		Posture: md.PostureCrops,
		Fashion: md.FashionCrops,
		Environment: Environment{
			Objects:   md.Objects,
			Embedding: md.Embedding,
		},
	}

	if len(md.PostureCrops) > 0 {
		p.Summaries.PostureGrade = postureGrade(md.PostureCrops[0].AlignmentScore)
	}
	if len(md.FashionCrops) > 0 {
		p.Summaries.Style = styleSummary(md.FashionCrops)
	}
	p.Summaries.OverallScore = overallScore(md, p.Summaries.PostureGrade)

	return p, nil
}

func postureGrade(alignment float64) string {
	switch {
	case alignment >= 8:
		return "Excellent"
	case alignment >= 6:
		return "Good"
	case alignment >= 4:
		return "Average"
	default:
		return "Poor"
	}
}

func styleSummary(items []models.FashionItem) *StyleSummary {
	var colors []string
	seen := make(map[string]bool)
	for _, item := range items {
		if item.DominantColor == "" || seen[item.DominantColor] {
			continue
		}
		seen[item.DominantColor] = true
		colors = append(colors, item.DominantColor)
	}
	return &StyleSummary{MainColors: colors, ItemsDetected: len(items)}
}

// overallScore is a coarse completeness score on a 0-9 scale: faces count 3,
// good posture 3, fashion 2, scene objects 1.
func overallScore(md models.MediaMetadata, grade string) int {
	score := 0
	if len(md.Faces) > 0 {
		score += 3
	}
	if grade == "Good" || grade == "Excellent" {
		score += 3
	}
	if len(md.FashionCrops) > 0 {
		score += 2
	}
	if len(md.Objects) > 0 {
		score++
	}
	return score
}
