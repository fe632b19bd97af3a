package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// colorRange is the displayable range before scaling to 8 bits
var colorRange = core.NewInterval(0.000, 0.999)

// Pixel is a quantized 8-bit RGB color
type Pixel struct {
	R, G, B uint8
}

// Quantize converts a linear color to 8 bits: gamma 2, clamp to [0, 0.999], scale by 256
func Quantize(linear core.Vec3) Pixel {
	gamma := linear.GammaCorrect()
	return Pixel{
		R: uint8(256 * colorRange.Clamp(gamma.X)),
		G: uint8(256 * colorRange.Clamp(gamma.Y)),
		B: uint8(256 * colorRange.Clamp(gamma.Z)),
	}
}

// Image is a row-major pixel buffer. Rows may be written concurrently as long
// as no two writers share a row.
type Image struct {
	Width  int
	Height int
	Pixels []Pixel    // Pixels[y*Width + x], y=0 is the top row
	Linear []core.Vec3 // Averaged linear color before quantization
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
		Linear: make([]core.Vec3, width*height),
	}
}

// Set stores the averaged linear color for pixel (x, y) and its quantized value
func (img *Image) Set(x, y int, linear core.Vec3) {
	i := y*img.Width + x
	img.Linear[i] = linear
	img.Pixels[i] = Quantize(linear)
}

// At returns the quantized pixel at (x, y)
func (img *Image) At(x, y int) Pixel {
	return img.Pixels[y*img.Width+x]
}

// ToRGBA converts the buffer to a standard library image for encoding
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return rgba
}

// CalculateAverageLuminance returns the mean luminance of the quantized pixels in [0, 1]
func CalculateAverageLuminance(img *Image) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}

	total := 0.0
	for _, p := range img.Pixels {
		c := core.NewVec3(float64(p.R), float64(p.G), float64(p.B)).Multiply(1.0 / 255.0)
		total += c.Luminance()
	}
	return total / float64(len(img.Pixels))
}
