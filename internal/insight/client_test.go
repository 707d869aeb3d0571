package insight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/perception"
)

// chatServer returns a test server whose model always answers with content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(config.InsightConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	})
}

func TestSummarizeVibe(t *testing.T) {
	srv := chatServer(t, `{
		"vibe_score": 82,
		"vibe_tags": ["confident", "warm", "stylish"],
		"personality_summary": "You read as confident and warm.",
		"strengths": ["clear expression"],
		"improvement_areas": ["wider framing"]
	}`)
	defer srv.Close()

	analysis, err := testClient(srv.URL).SummarizeVibe(context.Background(), &perception.Profile{})
	if err != nil {
		t.Fatalf("SummarizeVibe: %v", err)
	}
	if analysis.VibeScore != 82 {
		t.Fatalf("VibeScore = %d, want 82", analysis.VibeScore)
	}
	if len(analysis.VibeTags) != 3 {
		t.Fatalf("VibeTags = %v, want 3 tags", analysis.VibeTags)
	}
}

func TestSummarizeVibe_RejectsBadPayloads(t *testing.T) {
	for name, content := range map[string]string{
		"score out of range": `{"vibe_score": 140, "vibe_tags": ["a","b","c"], "personality_summary": "x"}`,
		"too few tags":       `{"vibe_score": 50, "vibe_tags": ["a"], "personality_summary": "x"}`,
		"empty summary":      `{"vibe_score": 50, "vibe_tags": ["a","b","c"], "personality_summary": ""}`,
		"not json":           `the vibe is good, score 80 maybe`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := chatServer(t, content)
			defer srv.Close()

			_, err := testClient(srv.URL).SummarizeVibe(context.Background(), &perception.Profile{})
			if !errors.Is(err, models.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestAnalyzeTrend(t *testing.T) {
	srv := chatServer(t, `{
		"trend_summary": "Scores climbed steadily over the month.",
		"improvement_tags": ["confident"],
		"decline_tags": []
	}`)
	defer srv.Close()

	points := []TrendPoint{
		{Timestamp: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Score: 55},
		{Timestamp: time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC), Score: 71, Tags: []string{"confident"}},
	}

	summary, err := testClient(srv.URL).AnalyzeTrend(context.Background(), points)
	if err != nil {
		t.Fatalf("AnalyzeTrend: %v", err)
	}
	if summary.TrendSummary == "" {
		t.Fatal("empty trend summary")
	}
	// The score trend must come from the input series, not the model.
	if len(summary.ScoreTrend) != 2 || summary.ScoreTrend[0].Score != 55 || summary.ScoreTrend[1].Score != 71 {
		t.Fatalf("ScoreTrend = %+v, want the input series", summary.ScoreTrend)
	}
}

func TestAnalyzeTrend_EmptySummaryRejected(t *testing.T) {
	srv := chatServer(t, `{"trend_summary": "", "improvement_tags": [], "decline_tags": []}`)
	defer srv.Close()

	_, err := testClient(srv.URL).AnalyzeTrend(context.Background(), []TrendPoint{{Score: 50}})
	if !errors.Is(err, models.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestChatErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SummarizeVibe(context.Background(), &perception.Profile{})
	if err == nil {
		t.Fatal("expected an error from http 503")
	}
	if errors.Is(err, models.ErrValidationFailed) {
		t.Fatal("transport failure must not be a validation error")
	}
}
