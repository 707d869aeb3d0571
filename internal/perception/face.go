package perception

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/vision"
)

const cropJPEGQuality = 85

// FaceCollector detects faces, predicts gender/age per face and stores a
// padded crop of each face in the object store.
type FaceCollector struct {
	detector   *vision.Detector
	attributes *vision.AttributePredictor
	blobs      BlobStore
}

func NewFaceCollector(det *vision.Detector, attrs *vision.AttributePredictor, blobs BlobStore) *FaceCollector {
	return &FaceCollector{detector: det, attributes: attrs, blobs: blobs}
}

func (c *FaceCollector) Name() string { return "face" }

func (c *FaceCollector) Collect(ctx context.Context, img image.Image, media *models.Media) (models.MediaMetadata, error) {
	bounds := img.Bounds()
	inputW, inputH := c.detector.InputSize()

	input := vision.PreprocessForDetection(img, inputW, inputH)
	detections, err := c.detector.Detect(input, bounds.Dx(), bounds.Dy())
	if err != nil {
		return models.MediaMetadata{}, fmt.Errorf("detect faces: %w", err)
	}

	var out models.MediaMetadata
	for i, det := range detections {
		face := models.Face{
			BBox:       det.BBox,
			Landmarks:  det.Landmarks,
			Confidence: det.Confidence,
		}

		crop := vision.Crop(img, det.BBox, 0.1)
		if crop != nil {
			attrW, attrH := c.attributes.InputSize()
			ga, err := c.attributes.Predict(vision.PreprocessForAttributes(crop, attrW, attrH))
			if err != nil {
				slog.Warn("face attributes failed", "media_id", media.ID, "face", i, "error", err)
			} else {
				face.Gender = ga.Gender
				face.GenderConfidence = ga.GenderConfidence
				face.Age = ga.Age
				face.AgeRange = ga.AgeRange
			}

			key := fmt.Sprintf("crops/faces/%s/%d.jpg", media.ID, i)
			if err := c.blobs.PutObject(ctx, key, vision.EncodeJPEG(crop, cropJPEGQuality), "image/jpeg"); err != nil {
				slog.Warn("store face crop", "media_id", media.ID, "face", i, "error", err)
			} else {
				face.CropKey = key
			}
		}

		out.Faces = append(out.Faces, face)
	}

	return out, nil
}
