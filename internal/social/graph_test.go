package social

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/config"
	"github.com/your-org/vibecheck/internal/models"
)

type fakeStore struct {
	users     []models.User
	snapshots map[uuid.UUID]*models.VibeSnapshot
	patches   map[uuid.UUID][]models.MediaMetadata
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		snapshots: make(map[uuid.UUID]*models.VibeSnapshot),
		patches:   make(map[uuid.UUID][]models.MediaMetadata),
	}
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListOptedInUsers(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.OptInPublicAnalysis {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) LatestVibeSnapshot(_ context.Context, userID uuid.UUID) (*models.VibeSnapshot, error) {
	return f.snapshots[userID], nil
}

func (f *fakeStore) MergePatchMetadata(_ context.Context, mediaID uuid.UUID, patch models.MediaMetadata) error {
	f.patches[mediaID] = append(f.patches[mediaID], patch)
	return nil
}

func (f *fakeStore) addUser(alias string, optIn bool, score int, tags []string) uuid.UUID {
	id := uuid.New()
	f.users = append(f.users, models.User{ID: id, PublicAlias: alias, OptInPublicAnalysis: optIn})
	if score >= 0 {
		f.snapshots[id] = &models.VibeSnapshot{MediaID: uuid.New(), Score: score, Tags: tags}
	}
	return id
}

func testGraphConfig() config.SocialGraphConfig {
	return config.SocialGraphConfig{
		MinPublicUsers:  25,
		SyntheticSize:   1000,
		SyntheticMean:   60,
		SyntheticStddev: 15,
	}
}

func TestGraph_UnknownUser(t *testing.T) {
	store := newFakeStore()
	g := NewGraph(store, store, store, testGraphConfig())

	_, err := g.Analyze(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGraph_NotOptedIn(t *testing.T) {
	store := newFakeStore()
	id := store.addUser("Quinn", false, 70, []string{"calm"})
	g := NewGraph(store, store, store, testGraphConfig())

	_, err := g.Analyze(context.Background(), id)
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGraph_NoSnapshot(t *testing.T) {
	store := newFakeStore()
	id := store.addUser("Quinn", true, -1, nil)
	g := NewGraph(store, store, store, testGraphConfig())

	_, err := g.Analyze(context.Background(), id)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGraph_ColdStart(t *testing.T) {
	store := newFakeStore()
	me := store.addUser("Me", true, 78, []string{"confident", "stylish"})
	for i := 0; i < 10; i++ {
		store.addUser(fmt.Sprintf("Peer%d", i), true, 50+i, []string{"calm"})
	}
	g := NewGraph(store, store, store, testGraphConfig())

	res, err := g.Analyze(context.Background(), me)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !res.ColdStart {
		t.Fatalf("expected cold start with baseline 10 < threshold 25")
	}
	if res.SampleSize != 10 {
		t.Fatalf("SampleSize = %d, want the real baseline size 10", res.SampleSize)
	}
	if len(res.SimilarUsers) != 0 || len(res.ComplementaryUsers) != 0 {
		t.Fatalf("cold start must not disclose peers")
	}
	if res.Percentile.Overall < 1 || res.Percentile.Overall > 99 {
		t.Fatalf("percentile %d outside [1,99]", res.Percentile.Overall)
	}
	// 78 sits above the synthetic mean of 60; with stddev 15 the percentile
	// should land comfortably in the upper half.
	if res.Percentile.Overall < 70 {
		t.Fatalf("percentile %d implausibly low for score 78 against N(60,15)", res.Percentile.Overall)
	}
}

func TestGraph_ColdStartGating(t *testing.T) {
	for _, tc := range []struct {
		baseline int
		want     bool
	}{
		{0, true}, {24, true}, {25, false}, {40, false},
	} {
		t.Run(fmt.Sprintf("baseline_%d", tc.baseline), func(t *testing.T) {
			store := newFakeStore()
			me := store.addUser("Me", true, 60, []string{"calm"})
			for i := 0; i < tc.baseline; i++ {
				store.addUser(fmt.Sprintf("Peer%d", i), true, 40+i, []string{"calm"})
			}
			g := NewGraph(store, store, store, testGraphConfig())

			res, err := g.Analyze(context.Background(), me)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if res.ColdStart != tc.want {
				t.Fatalf("baseline %d: ColdStart = %v, want %v", tc.baseline, res.ColdStart, tc.want)
			}
			if res.SampleSize != tc.baseline {
				t.Fatalf("SampleSize = %d, want %d", res.SampleSize, tc.baseline)
			}
		})
	}
}

func TestGraph_Ranked(t *testing.T) {
	store := newFakeStore()
	me := store.addUser("Me", true, 78, []string{"confident", "stylish"})

	// 24 assorted peers plus one identical twin = exactly the 25 threshold.
	var below int
	for i := 0; i < 24; i++ {
		score := 40 + 2*i // 40..86
		if score <= 78 {
			below++
		}
		store.addUser(fmt.Sprintf("Peer%d", i), true, score, []string{"calm", fmt.Sprintf("tag%d", i)})
	}
	store.addUser("Twin", true, 78, []string{"confident", "stylish"})
	below++ // twin's 78 <= 78

	g := NewGraph(store, store, store, testGraphConfig())
	res, err := g.Analyze(context.Background(), me)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.ColdStart {
		t.Fatalf("expected ranked result at threshold")
	}
	if res.SampleSize != 25 {
		t.Fatalf("SampleSize = %d, want 25", res.SampleSize)
	}
	if res.UserVibeScore == nil || *res.UserVibeScore != 78 {
		t.Fatalf("UserVibeScore = %v, want 78", res.UserVibeScore)
	}

	wantPct := int(math.Round(100 * float64(below) / 25))
	if wantPct > 99 {
		wantPct = 99
	}
	if res.Percentile.Overall != wantPct {
		t.Fatalf("percentile = %d, want %d", res.Percentile.Overall, wantPct)
	}

	if len(res.SimilarUsers) != 5 {
		t.Fatalf("similar list has %d entries, want 5", len(res.SimilarUsers))
	}
	if res.SimilarUsers[0].Alias != "Twin" {
		t.Fatalf("identical peer should rank first in similar, got %q", res.SimilarUsers[0].Alias)
	}
}

func TestGraph_ExcludesRequesterAndNonOptIn(t *testing.T) {
	store := newFakeStore()
	me := store.addUser("Me", true, 60, []string{"calm"})
	store.addUser("Private", false, 95, []string{"hidden"})
	for i := 0; i < 25; i++ {
		store.addUser(fmt.Sprintf("Peer%d", i), true, 50, []string{"calm"})
	}

	g := NewGraph(store, store, store, testGraphConfig())
	res, err := g.Analyze(context.Background(), me)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.SampleSize != 25 {
		t.Fatalf("SampleSize = %d: requester or non-opted-in user leaked into baseline", res.SampleSize)
	}
	for _, p := range append(res.SimilarUsers, res.ComplementaryUsers...) {
		if p.Alias == "Private" {
			t.Fatalf("non-opted-in user disclosed as peer")
		}
		if p.UserID == me.String() {
			t.Fatalf("requester listed as their own peer")
		}
	}
}

func TestGraph_CachesResultOnSnapshotMedia(t *testing.T) {
	store := newFakeStore()
	me := store.addUser("Me", true, 70, []string{"calm"})
	mediaID := store.snapshots[me].MediaID

	g := NewGraph(store, store, store, testGraphConfig())
	if _, err := g.Analyze(context.Background(), me); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	patches := store.patches[mediaID]
	if len(patches) != 1 {
		t.Fatalf("expected one cache patch on media %s, got %d", mediaID, len(patches))
	}
	if patches[0].SocialGraph == nil {
		t.Fatalf("cache patch missing social_graph section")
	}
}
