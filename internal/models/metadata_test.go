package models

import (
	"encoding/json"
	"testing"
)

func TestMetadataMerge_ListsAppend(t *testing.T) {
	var m MediaMetadata
	m.Merge(MediaMetadata{Faces: []Face{{Confidence: 0.9}}})
	m.Merge(MediaMetadata{Faces: []Face{{Confidence: 0.8}}, Objects: []ObjectDetection{{Label: "dog"}}})

	if len(m.Faces) != 2 {
		t.Fatalf("faces = %d, want 2 after two appends", len(m.Faces))
	}
	if m.Faces[0].Confidence != 0.9 || m.Faces[1].Confidence != 0.8 {
		t.Fatalf("append must preserve arrival order, got %+v", m.Faces)
	}
	if len(m.Objects) != 1 || m.Objects[0].Label != "dog" {
		t.Fatalf("objects = %+v, want single dog entry", m.Objects)
	}
}

func TestMetadataMerge_ScalarsReplaceWhenSet(t *testing.T) {
	m := MediaMetadata{
		Embedding: []float32{1, 2},
		Social:    &SocialSummary{SummaryText: "first", SocialScore: 6.0},
	}

	// A patch without those keys leaves them alone.
	m.Merge(MediaMetadata{PostureCrops: []PostureEntry{{Posture: "upright", AlignmentScore: 8}}})
	if m.Social == nil || m.Social.SummaryText != "first" {
		t.Fatalf("unrelated patch clobbered social section: %+v", m.Social)
	}
	if len(m.Embedding) != 2 {
		t.Fatalf("unrelated patch clobbered embedding: %v", m.Embedding)
	}

	// A patch that carries the key replaces it wholesale, last writer wins.
	m.Merge(MediaMetadata{
		Embedding: []float32{3, 4, 5},
		Social:    &SocialSummary{SummaryText: "second", SocialScore: 7.5},
	})
	if m.Social.SummaryText != "second" || m.Social.SocialScore != 7.5 {
		t.Fatalf("social not replaced: %+v", m.Social)
	}
	if len(m.Embedding) != 3 {
		t.Fatalf("embedding not replaced wholesale: %v", m.Embedding)
	}
	if len(m.PostureCrops) != 1 {
		t.Fatalf("earlier posture append lost: %+v", m.PostureCrops)
	}
}

func TestMetadataMerge_RawSections(t *testing.T) {
	var m MediaMetadata
	m.Merge(MediaMetadata{FixitSuggestions: json.RawMessage(`{"n":1}`)})
	m.Merge(MediaMetadata{FixitSuggestions: json.RawMessage(`{"n":2}`)})

	if string(m.FixitSuggestions) != `{"n":2}` {
		t.Fatalf("raw section = %s, want last write", m.FixitSuggestions)
	}
}

func TestMetadataIsEmpty(t *testing.T) {
	var m MediaMetadata
	if !m.IsEmpty() {
		t.Fatalf("zero value should be empty")
	}

	m.Merge(MediaMetadata{})
	if !m.IsEmpty() {
		t.Fatalf("empty patch should leave document empty")
	}

	m.Merge(MediaMetadata{Objects: []ObjectDetection{{Label: "cup"}}})
	if m.IsEmpty() {
		t.Fatalf("document with objects must not be empty")
	}
}

func TestMetadataScored(t *testing.T) {
	var m MediaMetadata
	if m.Scored() {
		t.Fatalf("fresh metadata must not be scored")
	}
	m.Social = &SocialSummary{SocialScore: 7}
	if !m.Scored() {
		t.Fatalf("social summary alone should count as scored")
	}

	m = MediaMetadata{VibeAnalysis: &VibeAnalysis{VibeScore: 80}}
	if !m.Scored() {
		t.Fatalf("vibe analysis alone should count as scored")
	}
}

func TestVibeSnapshotOf(t *testing.T) {
	media := &Media{Metadata: MediaMetadata{
		VibeAnalysis: &VibeAnalysis{VibeScore: 82, VibeTags: []string{"confident"}},
		Social:       &SocialSummary{SocialScore: 4.0, Tags: []string{"quiet"}},
	}}
	snap := VibeSnapshotOf(media)
	if snap == nil || snap.Score != 82 {
		t.Fatalf("vibe analysis should win over social fallback, got %+v", snap)
	}

	media = &Media{Metadata: MediaMetadata{
		Social: &SocialSummary{SocialScore: 7.26, Tags: []string{"quiet"}},
	}}
	snap = VibeSnapshotOf(media)
	if snap == nil || snap.Score != 73 {
		t.Fatalf("social fallback should scale 7.26 to 73, got %+v", snap)
	}

	if snap := VibeSnapshotOf(&Media{}); snap != nil {
		t.Fatalf("unscored media should yield no snapshot, got %+v", snap)
	}
}
