package output

import (
	"fmt"
	"image/png"
	"io"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// WritePNG encodes the image as an opaque 8-bit PNG
func WritePNG(w io.Writer, img *renderer.Image) error {
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
