package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Missing is returned wherever image data cannot be sampled, so a broken
// texture shows up in the render instead of aborting it
var Missing = core.NewVec3(1, 0, 1)

// ImageData is a decoded raster in linear [0,1] RGB
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], y=0 is the top row
}

// At returns the pixel at (x, y) and whether it exists
func (d *ImageData) At(x, y int) (core.Vec3, bool) {
	if d == nil || x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return core.Vec3{}, false
	}
	i := y*d.Width + x
	if i >= len(d.Pixels) {
		return core.Vec3{}, false
	}
	return d.Pixels[i], true
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Data *ImageData
}

// NewImageTexture creates a new image texture; nil data renders as Missing
func NewImageTexture(data *ImageData) *ImageTexture {
	return &ImageTexture{Data: data}
}

// Value samples the texture at the given UV with bilinear filtering.
// UV is clamped to [0,1]; V=0 is the bottom of the image.
func (t *ImageTexture) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Data == nil || t.Data.Width <= 0 || t.Data.Height <= 0 {
		return Missing
	}

	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	v := 1.0 - unit.Clamp(uv.Y)

	// Continuous pixel coordinates with texel centres at integer + 0.5
	fx := u*float64(t.Data.Width) - 0.5
	fy := v*float64(t.Data.Height) - 0.5
	fx = math.Max(0, math.Min(fx, float64(t.Data.Width-1)))
	fy = math.Max(0, math.Min(fy, float64(t.Data.Height-1)))

	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, t.Data.Width-1), min(y0+1, t.Data.Height-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	c00, ok00 := t.Data.At(x0, y0)
	c10, ok10 := t.Data.At(x1, y0)
	c01, ok01 := t.Data.At(x0, y1)
	c11, ok11 := t.Data.At(x1, y1)
	if !ok00 || !ok10 || !ok01 || !ok11 {
		return Missing
	}

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}
