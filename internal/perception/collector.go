// Package perception turns uploaded media into structured signals: faces,
// posture, fashion, scene objects and an embedding. Each signal is produced by
// an independent collector; a failing collector costs only its own section.
package perception

import (
	"context"
	"image"

	"github.com/your-org/vibecheck/internal/models"
)

// Collector produces one metadata section from a decoded image. Implementations
// must treat the image as read-only and return an empty document when the
// signal simply is not present (no faces, no objects).
type Collector interface {
	Name() string
	Collect(ctx context.Context, img image.Image, media *models.Media) (models.MediaMetadata, error)
}

// BlobStore is the subset of the object store collectors use to persist crops.
type BlobStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}
