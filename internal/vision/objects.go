package vision

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// ObjectHit is one detected object with its COCO class label.
type ObjectHit struct {
	Label string
	Score float32
	BBox  [4]float32 // x1, y1, x2, y2 (pixel coordinates)
}

// cocoClasses are the 80 COCO class names in YOLOv8 output order.
var cocoClasses = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train",
	"truck", "boat", "traffic light", "fire hydrant", "stop sign",
	"parking meter", "bench", "bird", "cat", "dog", "horse", "sheep", "cow",
	"elephant", "bear", "zebra", "giraffe", "backpack", "umbrella", "handbag",
	"tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball", "kite",
	"baseball bat", "baseball glove", "skateboard", "surfboard",
	"tennis racket", "bottle", "wine glass", "cup", "fork", "knife", "spoon",
	"bowl", "banana", "apple", "sandwich", "orange", "broccoli", "carrot",
	"hot dog", "pizza", "donut", "cake", "chair", "couch", "potted plant",
	"bed", "dining table", "toilet", "tv", "laptop", "mouse", "remote",
	"keyboard", "cell phone", "microwave", "oven", "toaster", "sink",
	"refrigerator", "book", "clock", "vase", "scissors", "teddy bear",
	"hair drier", "toothbrush",
}

// ObjectDetector runs a YOLOv8-style general object detector using ONNX Runtime.
type ObjectDetector struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	threshold    float32
	inputW       int
	inputH       int
	anchors      int
}

// NewObjectDetector loads a YOLOv8 COCO ONNX model.
// opts may be nil (ORT defaults) or a pre-configured *ort.SessionOptions.
func NewObjectDetector(modelPath string, threshold float32, opts *ort.SessionOptions) (*ObjectDetector, error) {
	inputW, inputH := 640, 640
	anchors := 8400 // 80*80 + 40*40 + 20*20 grid cells

	inputShape := ort.NewShape(1, 3, int64(inputH), int64(inputW))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}

	// YOLOv8 output: [1, 4+80, 8400] with cx,cy,w,h followed by class scores.
	outputShape := ort.NewShape(1, int64(4+len(cocoClasses)), int64(anchors))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"images"},
		[]string{"output0"},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		opts,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create object detector session: %w", err)
	}

	return &ObjectDetector{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		threshold:    threshold,
		inputW:       inputW,
		inputH:       inputH,
		anchors:      anchors,
	}, nil
}

// Detect runs object detection on a preprocessed image.
// imgData should be CHW format [3, inputH, inputW], pixels scaled to [0,1].
// origW/origH are the original image dimensions for coordinate scaling.
func (d *ObjectDetector) Detect(imgData []float32, origW, origH int) ([]ObjectHit, error) {
	inputSlice := d.inputTensor.GetData()
	copy(inputSlice, imgData)

	if err := d.session.Run(); err != nil {
		return nil, fmt.Errorf("run object detection: %w", err)
	}

	hits := d.parseHits(origW, origH)
	return nmsObjects(hits, 0.45), nil
}

// parseHits decodes the [4+C, anchors] output. Values for one anchor are
// strided across the anchor dimension, not contiguous.
func (d *ObjectDetector) parseHits(origW, origH int) []ObjectHit {
	data := d.outputTensor.GetData()
	n := d.anchors

	scaleW := float32(origW) / float32(d.inputW)
	scaleH := float32(origH) / float32(d.inputH)

	var hits []ObjectHit
	for i := 0; i < n; i++ {
		bestClass := -1
		var bestScore float32
		for c := 0; c < len(cocoClasses); c++ {
			score := data[(4+c)*n+i]
			if score > bestScore {
				bestScore = score
				bestClass = c
			}
		}
		if bestClass < 0 || bestScore < d.threshold {
			continue
		}

		cx := data[0*n+i]
		cy := data[1*n+i]
		w := data[2*n+i]
		h := data[3*n+i]

		x1 := clampF((cx-w/2)*scaleW, 0, float32(origW))
		y1 := clampF((cy-h/2)*scaleH, 0, float32(origH))
		x2 := clampF((cx+w/2)*scaleW, 0, float32(origW))
		y2 := clampF((cy+h/2)*scaleH, 0, float32(origH))

		hits = append(hits, ObjectHit{
			Label: cocoClasses[bestClass],
			Score: bestScore,
			BBox:  [4]float32{x1, y1, x2, y2},
		})
	}

	return hits
}

// InputSize returns the model's expected input dimensions.
func (d *ObjectDetector) InputSize() (int, int) {
	return d.inputW, d.inputH
}

func (d *ObjectDetector) Close() {
	if d.session != nil {
		d.session.Destroy()
	}
	if d.inputTensor != nil {
		d.inputTensor.Destroy()
	}
	if d.outputTensor != nil {
		d.outputTensor.Destroy()
	}
}

// nmsObjects suppresses overlapping hits per class.
func nmsObjects(hits []ObjectHit, iouThreshold float32) []ObjectHit {
	if len(hits) == 0 {
		return hits
	}

	byClass := make(map[string][]Detection)
	for _, h := range hits {
		byClass[h.Label] = append(byClass[h.Label], Detection{BBox: h.BBox, Confidence: h.Score})
	}

	var result []ObjectHit
	for label, dets := range byClass {
		for _, d := range nms(dets, iouThreshold) {
			result = append(result, ObjectHit{Label: label, Score: d.Confidence, BBox: d.BBox})
		}
	}
	return result
}
