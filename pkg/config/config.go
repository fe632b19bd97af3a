package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config is the render configuration. Fields read from the `toml` keys;
// zero sampling, image and camera values keep the scene's own defaults.
type Config struct {
	Scene      string `toml:"scene"`
	Output     string `toml:"output"`
	Workers    int    `toml:"workers"`
	Seed       uint64 `toml:"seed"`
	UseBVH     bool   `toml:"use-bvh"`
	TextureDir string `toml:"texture-dir"`
	Model      string `toml:"model"` // PLY file for the ply-model scene

	// Overrides the scene background when set
	Background *Vec3 `toml:"background"`

	Sampling Sampling `toml:"sampling"`
	Image    Image    `toml:"image"`
	Camera   Camera   `toml:"camera"`

	// Throttles progress logging: up to N reports, then one per Every
	Progress Limiter `toml:"progress"`
}

// Sampling overrides the scene's sampling settings
type Sampling struct {
	SamplesPerPixel int `toml:"samples-per-pixel"`
	MaxDepth        int `toml:"max-depth"`
}

// Image overrides the output resolution
type Image struct {
	Width       int     `toml:"width"`
	AspectRatio float64 `toml:"aspect-ratio"`
}

// Camera overrides the scene's camera
type Camera struct {
	VFov          float64 `toml:"vfov"`
	DefocusAngle  float64 `toml:"defocus-angle"`
	FocusDistance float64 `toml:"focus-distance"`
	Center        *Vec3   `toml:"center"`
	LookAt        *Vec3   `toml:"look-at"`
}

// Vec3 is a three element TOML array, e.g. [0.7, 0.8, 1.0]
type Vec3 [3]float64

// Vec converts to a core vector
func (v Vec3) Vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Limiter describes a token bucket: N events at once, refilled one per Every
type Limiter struct {
	Every duration `toml:"every"`
	N     int      `toml:"n"`
}

// Limiter converts the settings to a rate.Limiter
func (l *Limiter) Limiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

// duration reads a time.Duration from text such as "2s"
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

// MarshalText writes the duration back in time.ParseDuration form
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Scene:      "default",
		Output:     "image.ppm",
		Seed:       42,
		UseBVH:     true,
		TextureDir: "textures",
		Progress: Limiter{
			Every: duration{2 * time.Second},
			N:     1,
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults. Keys that match no field are rejected.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err ErrUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return Config{}, err
	}

	return c, nil
}

// ErrUnknownConfig lists config keys that match no field
type ErrUnknownConfig []string

func (e ErrUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	check(c.Scene != "", "scene must be set")
	check(c.Output != "", "output must be set")
	check(c.Output == "" || output.Supported(c.Output), "output %q must end in .ppm or .png", c.Output)
	check(c.Workers >= 0, "workers must not be negative, got %d", c.Workers)
	check(c.Sampling.SamplesPerPixel >= 0, "samples-per-pixel must not be negative, got %d", c.Sampling.SamplesPerPixel)
	check(c.Sampling.MaxDepth >= 0, "max-depth must not be negative, got %d", c.Sampling.MaxDepth)
	check(c.Image.Width >= 0, "width must not be negative, got %d", c.Image.Width)
	check(c.Image.AspectRatio >= 0, "aspect-ratio must not be negative, got %g", c.Image.AspectRatio)
	check(c.Camera.VFov >= 0 && c.Camera.VFov < 180, "vfov must be in [0, 180), got %g", c.Camera.VFov)
	check(c.Camera.DefocusAngle >= 0, "defocus-angle must not be negative, got %g", c.Camera.DefocusAngle)
	check(c.Camera.FocusDistance >= 0, "focus-distance must not be negative, got %g", c.Camera.FocusDistance)
	check(c.Progress.Every.Duration >= 0, "progress interval must not be negative, got %s", c.Progress.Every.Duration)
	check(c.Progress.N >= 0, "progress burst must not be negative, got %d", c.Progress.N)

	return err
}

// CameraOverride returns the camera fields set in the config
func (c Config) CameraOverride() geometry.CameraConfig {
	override := geometry.CameraConfig{
		Width:         c.Image.Width,
		AspectRatio:   c.Image.AspectRatio,
		VFov:          c.Camera.VFov,
		DefocusAngle:  c.Camera.DefocusAngle,
		FocusDistance: c.Camera.FocusDistance,
	}
	if c.Camera.Center != nil {
		override.Center = c.Camera.Center.Vec()
	}
	if c.Camera.LookAt != nil {
		override.LookAt = c.Camera.LookAt.Vec()
	}
	return override
}

// SceneOptions returns the options for scene.Create
func (c Config) SceneOptions(logger *zap.Logger) scene.Options {
	return scene.Options{
		Seed:       c.Seed,
		TextureDir: c.TextureDir,
		ModelPath:  c.Model,
		Logger:     logger,
		Camera:     c.CameraOverride(),
		Sampling: scene.SamplingConfig{
			SamplesPerPixel: c.Sampling.SamplesPerPixel,
			MaxDepth:        c.Sampling.MaxDepth,
		},
	}
}

// Apply sets the scene-level switches that scene constructors do not take
func (c Config) Apply(s *scene.Scene) {
	s.UseBVH = c.UseBVH
	if c.Background != nil {
		s.Background = c.Background.Vec()
	}
}

// RenderConfig returns the scheduling settings for the renderer
func (c Config) RenderConfig() renderer.Config {
	return renderer.Config{
		Workers:  c.Workers,
		Seed:     c.Seed,
		Progress: c.Progress.Limiter(),
	}
}
