package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		linear   core.Vec3
		expected Pixel
	}{
		{"black", core.NewVec3(0, 0, 0), Pixel{0, 0, 0}},
		{"white clamps below 256", core.NewVec3(1, 1, 1), Pixel{255, 255, 255}},
		{"overexposed", core.NewVec3(16, 4, 2), Pixel{255, 255, 255}},
		{"negative maps to zero", core.NewVec3(-1, -0.5, 0), Pixel{0, 0, 0}},
		// sqrt(0.25) = 0.5 -> 128, sqrt(0.0625) = 0.25 -> 64
		{"gamma 2", core.NewVec3(0.25, 0.0625, 0.25), Pixel{128, 64, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.linear); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImage_SetAndToRGBA(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, core.NewVec3(1, 0, 0.25))

	if got := img.At(2, 1); got != (Pixel{255, 0, 128}) {
		t.Errorf("Expected (255,0,128), got %v", got)
	}
	if img.Pixels[5] != img.At(2, 1) {
		t.Error("Expected row-major storage")
	}
	if !img.Linear[5].Equals(core.NewVec3(1, 0, 0.25)) {
		t.Errorf("Expected linear color to be kept, got %v", img.Linear[5])
	}

	rgba := img.ToRGBA()
	if rgba.Bounds().Dx() != 3 || rgba.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", rgba.Bounds())
	}
	if got := rgba.RGBAAt(2, 1); got != (color.RGBA{R: 255, G: 0, B: 128, A: 255}) {
		t.Errorf("Expected opaque (255,0,128), got %v", got)
	}
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("Expected opaque black, got %v", got)
	}
}

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green, blue and black: (0.2126 + 0.7152 + 0.0722 + 0) / 4 = 0.25
	img := NewImage(2, 2)
	img.Pixels[0] = Pixel{255, 0, 0}
	img.Pixels[1] = Pixel{0, 255, 0}
	img.Pixels[2] = Pixel{0, 0, 255}
	img.Pixels[3] = Pixel{0, 0, 0}

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := NewImage(1, 1)
	img.Pixels[0] = Pixel{255, 255, 255}

	avgLum := CalculateAverageLuminance(img)
	if avgLum < 1-0.0001 || avgLum > 1+0.0001 {
		t.Errorf("Expected average luminosity 1, got %f", avgLum)
	}

	if got := CalculateAverageLuminance(NewImage(0, 0)); got != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", got)
	}
}
