package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config controls how a render is scheduled
type Config struct {
	Workers  int           // Render goroutines (0 = runtime.NumCPU())
	Seed     uint64        // Base seed for the per-pixel samplers
	Progress *rate.Limiter // Throttles progress logs (nil = only the last row)
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     *zap.Logger
}

// NewRaytracer creates a raytracer for the scene using a path tracing integrator
func NewRaytracer(sc *scene.Scene, config Config, logger *zap.Logger) *Raytracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Raytracer{
		scene:      sc,
		integrator: integrator.NewPathTracingIntegrator(sc.SamplingConfig),
		config:     config,
		logger:     logger,
	}
}

// Render samples every pixel of the camera image in parallel. Each pixel draws
// from its own sampler seeded by (seed, pixel index), so the output depends
// only on the seed and not on how rows are scheduled.
func (rt *Raytracer) Render() (*Image, RenderStats) {
	if rt.scene.World == nil {
		rt.scene.Build(rt.logger)
	}

	camera := rt.scene.Camera
	width, height := camera.Width(), camera.Height()
	samplesPerPixel := max(1, rt.scene.SamplingConfig.SamplesPerPixel)

	stats := RenderStats{
		ID:              uuid.New(),
		TotalPixels:     width * height,
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        rt.scene.SamplingConfig.MaxDepth,
	}
	logger := rt.logger.With(zap.String("render_id", stats.ID.String()))

	img := NewImage(width, height)
	progress := NewProgress(height, rt.config.Progress, logger)

	renderRow := func(j int) int {
		for i := 0; i < width; i++ {
			img.Set(i, j, rt.samplePixel(i, j, width, samplesPerPixel))
		}
		progress.Increment()
		return width * samplesPerPixel
	}

	pool := NewWorkerPool(rt.config.Workers, height, renderRow)
	stats.Workers = pool.GetNumWorkers()

	logger.Info("starting render",
		zap.String("scene", rt.scene.Name),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("samples", samplesPerPixel),
		zap.Int("max_depth", stats.MaxDepth),
		zap.Int("workers", stats.Workers))

	start := time.Now()
	pool.Start()
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}
	pool.Stop()

	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.TotalSamples += result.Samples
	}

	stats.Elapsed = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(img)

	logger.Info("render complete",
		zap.String("scene", rt.scene.Name),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Int("total_samples", stats.TotalSamples),
		zap.Float64("samples_per_second", stats.SamplesPerSecond()),
		zap.Float64("average_luminance", stats.AverageLuminance))

	return img, stats
}

// samplePixel averages samplesPerPixel path samples for pixel (i, j)
func (rt *Raytracer) samplePixel(i, j, width, samplesPerPixel int) core.Vec3 {
	pixelIndex := uint64(j*width + i)
	sampler := core.NewSeededSampler(rt.config.Seed, pixelIndex)

	var colorAccum core.Vec3
	for s := 0; s < samplesPerPixel; s++ {
		ray := rt.scene.Camera.GetRay(i, j, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.scene, sampler))
	}

	return colorAccum.Multiply(1.0 / float64(samplesPerPixel))
}
