package gfx

import (
	"image"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// nullBackend renders nothing and owns no state. Used headless and in
// tests.
type nullBackend struct{}

func (*nullBackend) kind() Kind { return KindNull }

func (*nullBackend) setPipeline([]renderer.Layer) error { return nil }

func (*nullBackend) addTarget(renderer.Target, string) error { return nil }

func (*nullBackend) deleteTarget(string) error { return nil }

func (*nullBackend) dimensions() (uint32, uint32, bool) { return 0, 0, false }

func (*nullBackend) pollEvents() ([]core.EngineEvent, error) { return []core.EngineEvent{}, nil }

func (*nullBackend) renderWorld(*ecs.World) (FrameStats, error) { return FrameStats{}, nil }

func (*nullBackend) pipeline() *renderer.Pipeline { return nil }

func (*nullBackend) loadMesh(name string, _ []renderer.VertexPosNormal, _ renderer.Slice) (Mesh, error) {
	return NewNullMesh(name), nil
}

func (*nullBackend) loadTexture(name string, _ image.Image) (Texture, error) {
	return NewNullTexture(name), nil
}

func (*nullBackend) close() error { return nil }
