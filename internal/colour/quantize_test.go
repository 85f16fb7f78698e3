package colour

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

// blockImage builds a width x height image whose left portion is filled
// with one colour and the remainder with another.
func blockImage(width, height, split int, left, right color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < split {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestQuantizeValidation(t *testing.T) {
	q := NewKMeansQuantizer()

	if _, err := q.Quantize(nil, 16); err == nil {
		t.Error("expected error for nil image")
	}
	img := blockImage(4, 4, 2, color.Black, color.White)
	if _, err := q.Quantize(img, 0); err == nil {
		t.Error("expected error for zero count")
	}
	if _, err := q.Quantize(img, 300); err == nil {
		t.Error("expected error for oversized count")
	}
}

func TestQuantizeFewUniqueColours(t *testing.T) {
	// Two-colour image, dominant colour covering three quarters of it:
	// asking for more colours than exist returns both, dominant first.
	img := blockImage(16, 16, 12, color.RGBA{R: 30, G: 60, B: 90, A: 255}, color.RGBA{R: 200, G: 210, B: 220, A: 255})

	q := NewKMeansQuantizer()
	colours, err := q.Quantize(img, 16)
	if err != nil {
		t.Fatalf("Quantize() error: %v", err)
	}

	if len(colours) != 2 {
		t.Fatalf("got %d colours, want 2", len(colours))
	}
	if colours[0] != (RGB{R: 30, G: 60, B: 90}) {
		t.Errorf("dominant colour = %v, want the majority colour", colours[0])
	}
}

// noisyImage builds an image with a dark region covering threeQuarters of
// the width and a light region for the rest, with slight per-pixel
// variation so clustering has real work to do.
func noisyImage(width, height, split int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			jitter := uint8((x + y) % 8)
			if x < split {
				img.Set(x, y, color.RGBA{R: 20 + jitter, G: 20 + jitter, B: 20 + jitter, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 225 + jitter, G: 225 + jitter, B: 225 + jitter, A: 255})
			}
		}
	}
	return img
}

func TestQuantizeClustersTowardsDominant(t *testing.T) {
	// Clustering the noisy two-region image down to two colours: the
	// first centroid must sit nearer the dominant region's colour.
	img := noisyImage(32, 32, 24)
	dominant := RGB{R: 23, G: 23, B: 23}
	minority := RGB{R: 228, G: 228, B: 228}

	q := NewKMeansQuantizer()
	colours, err := q.Quantize(img, 2)
	if err != nil {
		t.Fatalf("Quantize() error: %v", err)
	}
	if len(colours) != 2 {
		t.Fatalf("got %d colours, want 2", len(colours))
	}

	if Similarity(colours[0], dominant) < Similarity(colours[0], minority) {
		t.Errorf("first colour %v is closer to the minority colour", colours[0])
	}
}

func TestQuantizeDeterminism(t *testing.T) {
	img := noisyImage(32, 32, 20)

	q := NewKMeansQuantizer()
	first, err := q.Quantize(img, 2)
	if err != nil {
		t.Fatalf("Quantize() error: %v", err)
	}
	second, err := q.Quantize(img, 2)
	if err != nil {
		t.Fatalf("Quantize() error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs disagree on size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSwatchContainsEscapes(t *testing.T) {
	s := Swatch(RGB{R: 200, G: 30, B: 30}, 4)
	want := "\033[48;2;200;30;30m    \033[0m"
	if s != want {
		t.Errorf("Swatch() = %q, want %q", s, want)
	}
}

func TestFormatSlotSwatch(t *testing.T) {
	line := FormatSlotSwatch("color00", RGB{R: 10, G: 10, B: 10}, 4)
	for _, fragment := range []string{"color00", "#0a0a0a", "\033[48;2;10;10;10m"} {
		if !strings.Contains(line, fragment) {
			t.Errorf("FormatSlotSwatch() = %q, missing %q", line, fragment)
		}
	}
}
