package perception

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/vision"
)

// fashionClasses are the detector labels treated as clothing/accessories.
var fashionClasses = map[string]bool{
	"backpack": true,
	"umbrella": true,
	"handbag":  true,
	"tie":      true,
	"suitcase": true,
}

// FashionCollector filters object detections down to wearable items, names each
// item's dominant color and stores a crop.
type FashionCollector struct {
	detector *vision.ObjectDetector
	blobs    BlobStore
}

func NewFashionCollector(det *vision.ObjectDetector, blobs BlobStore) *FashionCollector {
	return &FashionCollector{detector: det, blobs: blobs}
}

func (c *FashionCollector) Name() string { return "fashion" }

func (c *FashionCollector) Collect(ctx context.Context, img image.Image, media *models.Media) (models.MediaMetadata, error) {
	hits, err := detectObjects(c.detector, img)
	if err != nil {
		return models.MediaMetadata{}, fmt.Errorf("detect fashion items: %w", err)
	}

	var out models.MediaMetadata
	for i, hit := range hits {
		if !fashionClasses[hit.Label] {
			continue
		}

		item := models.FashionItem{
			Type:  hit.Label,
			Score: hit.Score,
			BBox:  hit.BBox,
		}

		crop := vision.Crop(img, hit.BBox, 0)
		if crop != nil {
			item.DominantColor = vision.DominantColor(crop)

			key := fmt.Sprintf("crops/fashion/%s/%d.jpg", media.ID, i)
			if err := c.blobs.PutObject(ctx, key, vision.EncodeJPEG(crop, cropJPEGQuality), "image/jpeg"); err != nil {
				slog.Warn("store fashion crop", "media_id", media.ID, "item", i, "error", err)
			} else {
				item.CropKey = key
			}
		}

		out.FashionCrops = append(out.FashionCrops, item)
	}

	return out, nil
}

func detectObjects(det *vision.ObjectDetector, img image.Image) ([]vision.ObjectHit, error) {
	bounds := img.Bounds()
	inputW, inputH := det.InputSize()
	input := vision.PreprocessForObjects(img, inputW, inputH)
	return det.Detect(input, bounds.Dx(), bounds.Dy())
}
