package perception

import (
	"context"
	"fmt"
	"image"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/vision"
)

// ObjectCollector records the non-fashion, non-person objects in the scene.
// "person" is excluded because faces already cover the subject.
type ObjectCollector struct {
	detector *vision.ObjectDetector
}

func NewObjectCollector(det *vision.ObjectDetector) *ObjectCollector {
	return &ObjectCollector{detector: det}
}

func (c *ObjectCollector) Name() string { return "objects" }

func (c *ObjectCollector) Collect(ctx context.Context, img image.Image, media *models.Media) (models.MediaMetadata, error) {
	hits, err := detectObjects(c.detector, img)
	if err != nil {
		return models.MediaMetadata{}, fmt.Errorf("detect objects: %w", err)
	}

	var out models.MediaMetadata
	for _, hit := range hits {
		if hit.Label == "person" || fashionClasses[hit.Label] {
			continue
		}
		out.Objects = append(out.Objects, models.ObjectDetection{
			Label: hit.Label,
			Score: hit.Score,
			BBox:  hit.BBox,
		})
	}

	return out, nil
}
