package vision

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDominantColor(t *testing.T) {
	for _, tc := range []struct {
		c    color.RGBA
		want string
	}{
		{color.RGBA{250, 250, 250, 255}, "white"},
		{color.RGBA{10, 10, 10, 255}, "black"},
		{color.RGBA{230, 30, 30, 255}, "red"},
		{color.RGBA{30, 200, 30, 255}, "green"},
		{color.RGBA{30, 30, 220, 255}, "blue"},
	} {
		got := DominantColor(solidImage(64, 64, tc.c))
		if got != tc.want {
			t.Errorf("DominantColor(%v) = %q, want %q", tc.c, got, tc.want)
		}
	}
}

func TestCrop(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	crop := Crop(img, [4]float32{10, 10, 50, 50}, 0)
	if crop == nil {
		t.Fatal("expected a crop")
	}
	if b := crop.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("crop size = %dx%d, want 40x40", b.Dx(), b.Dy())
	}

	// Padding expands the region but stays inside the image.
	crop = Crop(img, [4]float32{0, 0, 100, 100}, 0.2)
	if b := crop.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("padded crop escaped image bounds: %dx%d", b.Dx(), b.Dy())
	}

	if got := Crop(img, [4]float32{50, 50, 50, 50}, 0); got != nil {
		t.Fatal("degenerate box should yield nil")
	}
}

func TestIOU(t *testing.T) {
	a := [4]float32{0, 0, 10, 10}
	if got := iou(a, a); got < 0.999 {
		t.Fatalf("iou(a,a) = %f, want 1", got)
	}
	if got := iou(a, [4]float32{20, 20, 30, 30}); got != 0 {
		t.Fatalf("disjoint boxes iou = %f, want 0", got)
	}
	// Half overlap: intersection 50, union 150.
	got := iou(a, [4]float32{5, 0, 15, 10})
	if got < 0.33 || got > 0.34 {
		t.Fatalf("iou = %f, want ~1/3", got)
	}
}

func TestNMS(t *testing.T) {
	dets := []Detection{
		{BBox: [4]float32{0, 0, 10, 10}, Confidence: 0.8},
		{BBox: [4]float32{1, 1, 11, 11}, Confidence: 0.9},
		{BBox: [4]float32{50, 50, 60, 60}, Confidence: 0.5},
	}

	kept := nms(dets, 0.4)
	if len(kept) != 2 {
		t.Fatalf("kept %d detections, want 2", len(kept))
	}
	if kept[0].Confidence != 0.9 {
		t.Fatalf("highest-confidence box must survive, got %f", kept[0].Confidence)
	}
}

func TestImageToCHW(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{255, 0, 0, 255})

	data := PreprocessForObjects(img, 2, 2)
	if len(data) != 3*2*2 {
		t.Fatalf("data length = %d, want 12", len(data))
	}
	// Red channel scaled to 1, green/blue to 0.
	if data[0] != 1 || data[4] != 0 || data[8] != 0 {
		t.Fatalf("unexpected CHW values: R=%f G=%f B=%f", data[0], data[4], data[8])
	}
}
