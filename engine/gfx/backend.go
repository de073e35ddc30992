package gfx

import (
	"image"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// backend is the capability set every backend variant implements. Adding
// an operation here fails the build until every variant below has it;
// adding a variant means adding it to the assertions and to Kinds.
type backend interface {
	kind() Kind
	setPipeline(layers []renderer.Layer) error
	addTarget(target renderer.Target, name string) error
	deleteTarget(name string) error
	dimensions() (width, height uint32, ok bool)
	pollEvents() ([]core.EngineEvent, error)
	renderWorld(world *ecs.World) (FrameStats, error)
	pipeline() *renderer.Pipeline
	loadMesh(name string, vertices []renderer.VertexPosNormal, slice renderer.Slice) (Mesh, error)
	loadTexture(name string, img image.Image) (Texture, error)
	close() error
}

var (
	_ backend = (*hardwareBackend)(nil)
	_ backend = (*nativeBackend)(nil)
	_ backend = (*nullBackend)(nil)
)

// FrameStats describes one assembled frame.
type FrameStats struct {
	// Fragments submitted to the renderer.
	Fragments int
	// Lights submitted to the renderer.
	Lights int
	// Entities with a renderable and a transform whose mesh or textures
	// belong to another backend, in join order.
	Skipped []ecs.Entity
}
