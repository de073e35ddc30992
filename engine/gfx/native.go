package gfx

import (
	"errors"
	"image"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/renderer"
)

var errNativeMissing = errors.New("the Direct3D backend has no implementation yet")

// nativeBackend is the platform native backend. It is declared so that
// configuration and handles can name it, but every operation fails fast.
type nativeBackend struct{}

func (*nativeBackend) kind() Kind { return KindNative }

func (b *nativeBackend) unimplemented(op string) *Error {
	return newError(ErrUnimplementedBackend, KindNative, op, errNativeMissing)
}

func (b *nativeBackend) setPipeline([]renderer.Layer) error {
	return b.unimplemented("set_pipeline")
}

func (b *nativeBackend) addTarget(renderer.Target, string) error {
	return b.unimplemented("add_target")
}

func (b *nativeBackend) deleteTarget(string) error {
	return b.unimplemented("delete_target")
}

// No window exists, so there is nothing to measure.
func (*nativeBackend) dimensions() (uint32, uint32, bool) { return 0, 0, false }

func (b *nativeBackend) pollEvents() ([]core.EngineEvent, error) {
	return nil, b.unimplemented("poll_events")
}

func (b *nativeBackend) renderWorld(*ecs.World) (FrameStats, error) {
	return FrameStats{}, b.unimplemented("render_world")
}

func (*nativeBackend) pipeline() *renderer.Pipeline { return nil }

func (b *nativeBackend) loadMesh(string, []renderer.VertexPosNormal, renderer.Slice) (Mesh, error) {
	return Mesh{}, b.unimplemented("load_mesh")
}

func (b *nativeBackend) loadTexture(string, image.Image) (Texture, error) {
	return Texture{}, b.unimplemented("load_texture")
}

func (*nativeBackend) close() error { return nil }
