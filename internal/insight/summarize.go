package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/perception"
)

const vibeSystemPrompt = `You are a perceptive but kind social image analyst.
Given structured observations about one photo (faces, posture, fashion, scene),
respond with a single JSON object with exactly these keys:
"vibe_score" (integer 0-100), "vibe_tags" (3 to 6 short lowercase adjectives),
"personality_summary" (2-3 sentences, second person), "strengths" (list of
strings), "improvement_areas" (list of constructive strings).`

// SummarizeVibe asks the model for a scored vibe analysis of one profile.
// The response must satisfy the schema exactly; violations surface as
// ErrValidationFailed so callers never store a half-formed analysis.
func (c *Client) SummarizeVibe(ctx context.Context, profile *perception.Profile) (*models.VibeAnalysis, error) {
	observations, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	raw, err := c.generateJSON(ctx, "vibe", vibeSystemPrompt, string(observations))
	if err != nil {
		return nil, fmt.Errorf("vibe summary: %w", err)
	}

	return parseVibeAnalysis(raw)
}

func parseVibeAnalysis(raw json.RawMessage) (*models.VibeAnalysis, error) {
	var analysis models.VibeAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("vibe analysis is not valid JSON: %w: %w", err, models.ErrValidationFailed)
	}

	if analysis.VibeScore < 0 || analysis.VibeScore > 100 {
		return nil, fmt.Errorf("vibe_score %d outside [0,100]: %w", analysis.VibeScore, models.ErrValidationFailed)
	}
	if len(analysis.VibeTags) < 3 || len(analysis.VibeTags) > 6 {
		return nil, fmt.Errorf("vibe_tags count %d outside [3,6]: %w", len(analysis.VibeTags), models.ErrValidationFailed)
	}
	for _, tag := range analysis.VibeTags {
		if tag == "" {
			return nil, fmt.Errorf("empty vibe tag: %w", models.ErrValidationFailed)
		}
	}
	if analysis.PersonalitySummary == "" {
		return nil, fmt.Errorf("empty personality_summary: %w", models.ErrValidationFailed)
	}

	return &analysis, nil
}
