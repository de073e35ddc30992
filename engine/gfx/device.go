package gfx

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// Clear color of the default forward pipeline.
var defaultClearColor = mgl32.Vec4{0.1, 0.2, 0.3, 1.0}

// GraphicsDevice is the engine facing handle to exactly one backend. Its
// operations are not safe for concurrent use; the frame loop owns it.
type GraphicsDevice struct {
	inner backend
}

// NewHardware builds a hardware backed device over an already open window
// and device context. The pipeline starts with the default forward layer.
func NewHardware(window Window, context Context, factory Factory, r HardwareRenderer) *GraphicsDevice {
	core.LogInfo("graphics device created on the %s backend (%s)", KindHardware, context.Describe())
	return newDevice(&hardwareBackend{
		window:   window,
		context:  context,
		active:   renderer.NewPipeline(renderer.Forward(defaultClearColor)...),
		factory:  factory,
		renderer: r,
	})
}

// NewNull builds a device that does nothing.
func NewNull() *GraphicsDevice {
	core.LogInfo("graphics device created on the %s backend", KindNull)
	return newDevice(&nullBackend{})
}

// NewNative always fails: the native backend has no implementation.
func NewNative() (*GraphicsDevice, error) {
	return nil, newError(ErrUnimplementedBackend, KindNative, "create", errNativeMissing)
}

func newDevice(b backend) *GraphicsDevice {
	return &GraphicsDevice{inner: b}
}

// Kind reports which backend this device wraps.
func (d *GraphicsDevice) Kind() Kind {
	return d.inner.kind()
}

// SetPipeline replaces the active layer sequence.
func (d *GraphicsDevice) SetPipeline(layers []renderer.Layer) error {
	return d.inner.setPipeline(layers)
}

// AddTarget registers target under name. An existing target with the same
// name is replaced.
func (d *GraphicsDevice) AddTarget(target renderer.Target, name string) error {
	return d.inner.addTarget(target, name)
}

// DeleteTarget removes the named target. Absent names are ignored.
func (d *GraphicsDevice) DeleteTarget(name string) error {
	return d.inner.deleteTarget(name)
}

// Dimensions returns the live drawable size, or ok=false when the backend
// has no window.
func (d *GraphicsDevice) Dimensions() (width, height uint32, ok bool) {
	return d.inner.dimensions()
}

// PollEvents drains the window events gathered since the previous call.
func (d *GraphicsDevice) PollEvents() ([]core.EngineEvent, error) {
	return d.inner.pollEvents()
}

// RenderWorld assembles the frame from world and presents it. Stats are
// returned even when presentation fails.
func (d *GraphicsDevice) RenderWorld(world *ecs.World) (FrameStats, error) {
	return d.inner.renderWorld(world)
}

// Pipeline returns a copy of the active pipeline, nil for backends
// without one. Changes go through SetPipeline, AddTarget and DeleteTarget.
func (d *GraphicsDevice) Pipeline() *renderer.Pipeline {
	return d.inner.pipeline().Clone()
}

// LoadMesh uploads vertices and returns a mesh tagged with this device's
// backend. A zero slice End draws every vertex.
func (d *GraphicsDevice) LoadMesh(name string, vertices []renderer.VertexPosNormal, slice renderer.Slice) (Mesh, error) {
	return d.inner.loadMesh(name, vertices, slice)
}

// LoadTexture uploads img and returns a texture tagged with this device's
// backend.
func (d *GraphicsDevice) LoadTexture(name string, img image.Image) (Texture, error) {
	return d.inner.loadTexture(name, img)
}

func (d *GraphicsDevice) Close() error {
	core.LogDebug("closing %s graphics device", d.inner.kind())
	return d.inner.close()
}
