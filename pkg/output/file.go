package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output files that are neither .ppm nor .png
var ErrUnsupportedFormat = errors.New("unsupported output format")

// WriteFile writes the image to path, choosing the format from the extension.
// Parent directories are created as needed.
func WriteFile(path string, img *renderer.Image) error {
	encode := encoderFor(path)
	if encode == nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Supported reports whether WriteFile can encode to path
func Supported(path string) bool {
	return encoderFor(path) != nil
}

func encoderFor(path string) func(io.Writer, *renderer.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return WritePPM
	case ".png":
		return WritePNG
	default:
		return nil
	}
}
