package perception

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/vision"
)

// PostureCollector grades head alignment from face landmark geometry. It is a
// coarse proxy for posture: head roll (eye line tilt) and yaw (nose offset from
// the eye midline) pull the score down from 10.
type PostureCollector struct {
	detector *vision.Detector
}

func NewPostureCollector(det *vision.Detector) *PostureCollector {
	return &PostureCollector{detector: det}
}

func (c *PostureCollector) Name() string { return "posture" }

func (c *PostureCollector) Collect(ctx context.Context, img image.Image, media *models.Media) (models.MediaMetadata, error) {
	bounds := img.Bounds()
	inputW, inputH := c.detector.InputSize()

	input := vision.PreprocessForDetection(img, inputW, inputH)
	detections, err := c.detector.Detect(input, bounds.Dx(), bounds.Dy())
	if err != nil {
		return models.MediaMetadata{}, fmt.Errorf("detect for posture: %w", err)
	}

	var out models.MediaMetadata
	for _, det := range detections {
		out.PostureCrops = append(out.PostureCrops, gradeAlignment(det.Landmarks))
	}
	return out, nil
}

// gradeAlignment scores head alignment on a 0-10 scale from the five RetinaFace
// landmarks (left eye, right eye, nose, mouth corners).
func gradeAlignment(lm [5][2]float32) models.PostureEntry {
	leftEye, rightEye, nose := lm[0], lm[1], lm[2]

	eyeDx := float64(rightEye[0] - leftEye[0])
	eyeDy := float64(rightEye[1] - leftEye[1])
	eyeDist := math.Hypot(eyeDx, eyeDy)
	if eyeDist < 1 {
		return models.PostureEntry{
			Posture:        "indeterminate",
			AlignmentScore: 5,
		}
	}

	// Roll: vertical eye offset relative to eye distance. 0 = level.
	roll := math.Abs(eyeDy) / eyeDist

	// Yaw: nose offset from the eye midline relative to eye distance. 0 = frontal.
	midX := (float64(leftEye[0]) + float64(rightEye[0])) / 2
	yaw := math.Abs(float64(nose[0])-midX) / eyeDist

	score := 10 - 12*roll - 8*yaw
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	score = math.Round(score*10) / 10

	entry := models.PostureEntry{AlignmentScore: score}
	switch {
	case score >= 8:
		entry.Posture = "upright"
	case score >= 6:
		entry.Posture = "slightly tilted"
	case score >= 4:
		entry.Posture = "tilted"
	default:
		entry.Posture = "misaligned"
	}

	if roll > 0.08 {
		entry.Tips = append(entry.Tips, "Level your head so both eyes sit on the same line")
	}
	if yaw > 0.15 {
		entry.Tips = append(entry.Tips, "Face the camera directly instead of turning to the side")
	}
	return entry
}
