package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"go.uber.org/zap"
)

// ErrUnknownScene is returned by Create for names missing from the registry
var ErrUnknownScene = errors.New("unknown scene")

// Options carries the inputs shared by every scene constructor
type Options struct {
	Seed       uint64                // Seed for randomly generated scene content
	TextureDir string                // Directory searched for image textures
	ModelPath  string                // PLY file for the ply-model scene
	Logger     *zap.Logger           // Receives asset load warnings
	Camera     geometry.CameraConfig // Non-zero fields override the scene's camera
	Sampling   SamplingConfig        // Non-zero fields override the scene's sampling
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used with Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

type sceneEntry struct {
	info   SceneInfo
	create func(Options) *Scene
}

var registry = map[string]sceneEntry{}

func register(id, group, description string, create func(Options) *Scene) {
	registry[id] = sceneEntry{
		info: SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: description,
			Group:       group,
		},
		create: create,
	}
}

func init() {
	register("default", "Showcase", "Spheres with layered, metal and hollow glass materials", NewDefaultScene)
	register("sphere-grid", "Showcase", "Grid of metal spheres colored across OKLCH hue and chroma", NewSphereGridScene)
	register("bouncing-spheres", "Spheres", "Random field of motion-blurred, metal and glass spheres", NewBouncingSpheresScene)
	register("checkered-spheres", "Spheres", "Two large spheres with a checker texture", NewCheckeredSpheresScene)
	register("earth", "Spheres", "Globe with an image texture", NewEarthScene)
	register("perlin-spheres", "Spheres", "Marble spheres from Perlin turbulence", NewPerlinSpheresScene)
	register("quads", "Quads", "Five colored quads", NewQuadsScene)
	register("simple-light", "Lights", "Perlin spheres lit by a sphere and a quad emitter", NewSimpleLightScene)
	register("cornell-box", "Cornell", "Cornell box with two rotated boxes", NewCornellScene)
	register("cornell-smoke", "Cornell", "Cornell box with boxes of smoke and fog", NewCornellSmokeScene)
	register("triangle-mesh", "Meshes", "Box, pyramid and icosahedron triangle meshes", NewTriangleMeshScene)
	register("cylinders", "Shapes", "Capped and open cylinders on disc pedestals under a disc light", NewCylindersScene)
	register("ply-model", "Meshes", "PLY model loaded from the configured path", NewPLYModelScene)
	register("final", "Showcase", "Every primitive, material and texture in one scene", NewFinalScene)
}

// Create builds the named scene
func Create(name string, opts Options) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return entry.create(opts), nil
}

// Names returns the registered scene IDs in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns scene metadata sorted by group, then display name
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, entry := range registry {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		if scenes[i].Group != scenes[j].Group {
			return scenes[i].Group < scenes[j].Group
		}
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
