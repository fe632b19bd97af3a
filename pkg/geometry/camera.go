package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Cone angle in degrees of rays through each pixel (0 = pinhole)
	FocusDistance float64   // Distance to the plane of perfect focus (0 = auto-calculate)
}

// Camera generates primary rays with depth of field and motion blur time
type Camera struct {
	config      CameraConfig
	imageHeight int
	center      core.Vec3
	pixel00     core.Vec3 // Centre of pixel (0, 0), top left
	pixelDeltaU core.Vec3 // Offset to the pixel to the right
	pixelDeltaV core.Vec3 // Offset to the pixel below
	u, v, w     core.Vec3 // Camera frame basis vectors
	defocusU    core.Vec3 // Defocus disk horizontal radius
	defocusV    core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera from the config, filling in defaults for unset fields
func NewCamera(config CameraConfig) *Camera {
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1.0
	}
	if config.Width <= 0 {
		config.Width = 400
	}
	if config.VFov <= 0 {
		config.VFov = 90
	}
	if config.FocusDistance <= 0 {
		config.FocusDistance = config.Center.Subtract(config.LookAt).Length()
	}
	// LookAt on top of Center gives no view direction
	if config.FocusDistance <= 0 {
		config.FocusDistance = 1
	}

	imageHeight := int(float64(config.Width) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	// Viewport dimensions on the focus plane
	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(imageHeight)

	w := config.Center.Subtract(config.LookAt)
	if w.NearZero() {
		w = core.NewVec3(0, 0, 1) // look down -Z
	}
	w = w.Normalize()
	u := config.Up.Cross(w)
	if u.NearZero() {
		u = leastAlignedAxis(w).Cross(w)
	}
	u = u.Normalize()
	v := w.Cross(u)

	// Viewport edges: U across, V down
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Multiply(1.0 / float64(config.Width))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(imageHeight))

	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(config.DefocusAngle/2*math.Pi/180)

	return &Camera{
		config:      config,
		imageHeight: imageHeight,
		center:      config.Center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		u:           u,
		v:           v,
		w:           w,
		defocusU:    u.Multiply(defocusRadius),
		defocusV:    v.Multiply(defocusRadius),
	}
}

// leastAlignedAxis returns the unit axis most nearly perpendicular to w,
// used as the up vector when the configured one is parallel to w
func leastAlignedAxis(w core.Vec3) core.Vec3 {
	x, y, z := math.Abs(w.X), math.Abs(w.Y), math.Abs(w.Z)
	switch {
	case x <= y && x <= z:
		return core.NewVec3(1, 0, 0)
	case y <= z:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// GetRay returns a ray through a random point of pixel (i, j), where j counts
// rows from the top. The origin is on the defocus disk and the time is random in [0, 1).
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = c.center.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels, derived from width and aspect ratio
func (c *Camera) Height() int {
	return c.imageHeight
}

// Config returns the effective configuration after defaults
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetCameraForward returns the viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}
