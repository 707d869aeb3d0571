package perception

import (
	"context"
	"fmt"
	"image"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/vision"
)

// EmbeddingCollector embeds the highest-confidence face. Media without a face
// yields an empty document; the similarity search simply never sees it.
type EmbeddingCollector struct {
	detector *vision.Detector
	embedder *vision.Embedder
}

func NewEmbeddingCollector(det *vision.Detector, emb *vision.Embedder) *EmbeddingCollector {
	return &EmbeddingCollector{detector: det, embedder: emb}
}

func (c *EmbeddingCollector) Name() string { return "embedding" }

func (c *EmbeddingCollector) Collect(ctx context.Context, img image.Image, media *models.Media) (models.MediaMetadata, error) {
	bounds := img.Bounds()
	inputW, inputH := c.detector.InputSize()

	input := vision.PreprocessForDetection(img, inputW, inputH)
	detections, err := c.detector.Detect(input, bounds.Dx(), bounds.Dy())
	if err != nil {
		return models.MediaMetadata{}, fmt.Errorf("detect for embedding: %w", err)
	}
	if len(detections) == 0 {
		return models.MediaMetadata{}, nil
	}

	best := detections[0]
	for _, d := range detections[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}

	crop := vision.Crop(img, best.BBox, 0.1)
	if crop == nil {
		return models.MediaMetadata{}, nil
	}

	embW, embH := c.embedder.InputSize()
	embedding, err := c.embedder.Extract(vision.PreprocessForEmbedding(crop, embW, embH))
	if err != nil {
		return models.MediaMetadata{}, fmt.Errorf("extract embedding: %w", err)
	}

	return models.MediaMetadata{Embedding: embedding}, nil
}
