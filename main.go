package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

// flags holds the command line values; only flags that were set override the config file
type flags struct {
	configPath string
	debug      bool
	list       bool

	scene      string
	output     string
	width      int
	samples    int
	depth      int
	workers    int
	seed       uint64
	textureDir string
	model      string
	noBVH      bool
}

func parseFlags(args []string, stderr io.Writer) (*flag.FlagSet, *flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "TOML render configuration file")
	fs.BoolVar(&f.debug, "debug", false, "Enable development logging")
	fs.BoolVar(&f.list, "list", false, "List available scenes and exit")

	fs.StringVar(&f.scene, "scene", "", "Scene to render (see -list)")
	fs.StringVar(&f.output, "output", "", "Output file, .ppm or .png")
	fs.IntVar(&f.width, "width", 0, "Image width in pixels")
	fs.IntVar(&f.samples, "spp", 0, "Samples per pixel")
	fs.IntVar(&f.depth, "depth", 0, "Maximum ray bounce depth")
	fs.IntVar(&f.workers, "workers", 0, "Render goroutines (0 = one per CPU)")
	fs.Uint64Var(&f.seed, "seed", 0, "Random seed")
	fs.StringVar(&f.textureDir, "textures", "", "Directory containing image textures")
	fs.StringVar(&f.model, "model", "", "PLY file for the ply-model scene")
	fs.BoolVar(&f.noBVH, "no-bvh", false, "Intersect against a flat object list")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return fs, f, nil
}

// applyFlags copies explicitly set flags over the config
func applyFlags(fs *flag.FlagSet, f *flags, c *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "scene":
			c.Scene = f.scene
		case "output":
			c.Output = f.output
		case "width":
			c.Image.Width = f.width
		case "spp":
			c.Sampling.SamplesPerPixel = f.samples
		case "depth":
			c.Sampling.MaxDepth = f.depth
		case "workers":
			c.Workers = f.workers
		case "seed":
			c.Seed = f.seed
		case "textures":
			c.TextureDir = f.textureDir
		case "model":
			c.Model = f.model
		case "no-bvh":
			c.UseBVH = !f.noBVH
		}
	})
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(args []string, stdout io.Writer) error {
	fs, f, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	if f.list {
		for _, info := range scene.List() {
			fmt.Fprintf(stdout, "%-18s %-10s %s\n", info.ID, info.Group, info.Description)
		}
		return nil
	}

	logger, err := newLogger(f.debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := render(fs, f, logger); err != nil {
		logger.Error("render failed", zap.Error(err))
		return err
	}
	return nil
}

func render(fs *flag.FlagSet, f *flags, logger *zap.Logger) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(fs, f, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sc, err := scene.Create(cfg.Scene, cfg.SceneOptions(logger))
	if err != nil {
		return err
	}
	cfg.Apply(sc)
	sc.Build(logger)

	logger.Info("scene ready",
		zap.String("scene", sc.Name),
		zap.Int("objects", len(sc.Objects)),
		zap.Int("primitives", sc.GetPrimitiveCount()),
		zap.Bool("bvh", sc.UseBVH))

	img, stats := renderer.NewRaytracer(sc, cfg.RenderConfig(), logger).Render()

	if err := output.WriteFile(cfg.Output, img); err != nil {
		return err
	}

	logger.Info("image written",
		zap.String("render_id", stats.ID.String()),
		zap.String("output", cfg.Output),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))
	return nil
}
