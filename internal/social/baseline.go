package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/models"
)

// Directory lists the users eligible for public comparison. Users who have
// not opted in never enter a baseline.
type Directory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListOptedInUsers(ctx context.Context) ([]models.User, error)
}

// SnapshotSource resolves a user's current vibe snapshot: the newest media
// carrying a score. Returns (nil, nil) when the user has none.
type SnapshotSource interface {
	LatestVibeSnapshot(ctx context.Context, userID uuid.UUID) (*models.VibeSnapshot, error)
}

// MetadataPatcher writes a computed result back into a media record.
type MetadataPatcher interface {
	MergePatchMetadata(ctx context.Context, mediaID uuid.UUID, patch models.MediaMetadata) error
}

// Candidate is one opted-in peer with a usable score.
type Candidate struct {
	UserID  uuid.UUID
	Alias   string
	Score   int
	Tags    []string
	MediaID uuid.UUID
}

func (c Candidate) PeerMatch() models.PeerMatch {
	return models.PeerMatch{
		UserID: c.UserID.String(),
		Alias:  c.Alias,
		Score:  c.Score,
		Tags:   c.Tags,
	}
}

// CollectBaseline builds the comparison population: every opted-in user
// except the requester, reduced to their current snapshot. Users without a
// scored media are skipped. Order follows the directory listing so repeated
// runs over the same data rank identically.
func CollectBaseline(ctx context.Context, dir Directory, snaps SnapshotSource, exclude uuid.UUID) ([]Candidate, error) {
	users, err := dir.ListOptedInUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list opted-in users: %w", err)
	}

	var out []Candidate
	for _, u := range users {
		if u.ID == exclude {
			continue
		}
		snap, err := snaps.LatestVibeSnapshot(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("snapshot for %s: %w", u.ID, err)
		}
		if snap == nil {
			continue
		}
		out = append(out, Candidate{
			UserID:  u.ID,
			Alias:   u.DisplayAlias(),
			Score:   snap.Score,
			Tags:    snap.Tags,
			MediaID: snap.MediaID,
		})
	}
	return out, nil
}
