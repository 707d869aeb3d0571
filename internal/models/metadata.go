package models

import "encoding/json"

// Face is one detected face with its predicted attributes.
type Face struct {
	BBox             [4]float32    `json:"bbox"`
	Landmarks        [5][2]float32 `json:"landmarks"`
	Confidence       float32       `json:"confidence"`
	CropKey          string        `json:"crop_key,omitempty"`
	Gender           string        `json:"gender,omitempty"`
	GenderConfidence float32       `json:"gender_confidence,omitempty"`
	Age              int           `json:"age,omitempty"`
	AgeRange         string        `json:"age_range,omitempty"`
}

// PostureEntry grades body/head alignment for one detected subject.
// AlignmentScore is on a 0-10 scale.
type PostureEntry struct {
	Posture        string   `json:"posture"`
	AlignmentScore float64  `json:"alignment_score"`
	Tips           []string `json:"improvement_tips,omitempty"`
}

// FashionItem is one detected clothing/accessory item.
type FashionItem struct {
	Type          string     `json:"type"`
	Score         float32    `json:"score"`
	BBox          [4]float32 `json:"bbox"`
	DominantColor string     `json:"dominant_color,omitempty"`
	CropKey       string     `json:"crop_key,omitempty"`
}

// ObjectDetection is one detected non-fashion object in the scene.
type ObjectDetection struct {
	Label string     `json:"label"`
	Score float32    `json:"score"`
	BBox  [4]float32 `json:"bbox"`
}

// MediaMetadata is the per-media document every pipeline stage writes into.
// Keys are namespaced by producer. The merge rule is fixed per section:
// list sections append, everything else replaces at the key level when the
// incoming patch carries a value. Concurrent stage completions therefore never
// destroy each other's output, and a stale writer can at worst replace its own
// key, never the whole document.
type MediaMetadata struct {
	// Append sections.
	Faces        []Face            `json:"faces,omitempty"`
	PostureCrops []PostureEntry    `json:"posture_crops,omitempty"`
	FashionCrops []FashionItem     `json:"fashion_crops,omitempty"`
	Objects      []ObjectDetection `json:"objects,omitempty"`

	// Replace sections.
	Embedding        []float32          `json:"embedding,omitempty"`
	Social           *SocialSummary     `json:"social,omitempty"`
	VibeAnalysis     *VibeAnalysis      `json:"vibe_analysis,omitempty"`
	SocialGraph      *SocialGraphResult `json:"social_graph,omitempty"`
	HistorySummary   *HistorySummary    `json:"history_summary,omitempty"`
	FixitSuggestions json.RawMessage    `json:"fixit_suggestions,omitempty"`
	ReverseAnalysis  json.RawMessage    `json:"reverse_analysis,omitempty"`
}

// Merge applies patch onto m in place. List keys append, scalar/object keys
// replace only when set in the patch. Embedding is treated as a scalar: a
// non-nil patch embedding replaces the stored one wholesale.
func (m *MediaMetadata) Merge(patch MediaMetadata) {
	m.Faces = append(m.Faces, patch.Faces...)
	m.PostureCrops = append(m.PostureCrops, patch.PostureCrops...)
	m.FashionCrops = append(m.FashionCrops, patch.FashionCrops...)
	m.Objects = append(m.Objects, patch.Objects...)

	if patch.Embedding != nil {
		m.Embedding = patch.Embedding
	}
	if patch.Social != nil {
		m.Social = patch.Social
	}
	if patch.VibeAnalysis != nil {
		m.VibeAnalysis = patch.VibeAnalysis
	}
	if patch.SocialGraph != nil {
		m.SocialGraph = patch.SocialGraph
	}
	if patch.HistorySummary != nil {
		m.HistorySummary = patch.HistorySummary
	}
	if patch.FixitSuggestions != nil {
		m.FixitSuggestions = patch.FixitSuggestions
	}
	if patch.ReverseAnalysis != nil {
		m.ReverseAnalysis = patch.ReverseAnalysis
	}
}

// IsEmpty reports whether no pipeline stage has written anything yet.
func (m MediaMetadata) IsEmpty() bool {
	return len(m.Faces) == 0 &&
		len(m.PostureCrops) == 0 &&
		len(m.FashionCrops) == 0 &&
		len(m.Objects) == 0 &&
		m.Embedding == nil &&
		m.Social == nil &&
		m.VibeAnalysis == nil &&
		m.SocialGraph == nil &&
		m.HistorySummary == nil &&
		m.FixitSuggestions == nil &&
		m.ReverseAnalysis == nil
}

// Scored reports whether the media carries a vibe score usable for ranking.
func (m MediaMetadata) Scored() bool {
	return m.VibeAnalysis != nil || m.Social != nil
}
