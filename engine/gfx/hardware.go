package gfx

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/prism/engine/components"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// MaxTextureSize bounds the larger side of uploaded textures. Bigger
// images are downscaled before upload.
const MaxTextureSize = 4096

// Window is the window and swap chain the hardware backend presents to.
type Window interface {
	// Size returns the current drawable size, queried live.
	Size() (width, height uint32, ok bool)
	// PollEvents drains pending window and input events in arrival order.
	PollEvents() []core.EngineEvent
	// Present swaps the back buffer to the screen.
	Present() error
	ShouldClose() bool
	Close() error
}

// Context is the low-level device handle of the hardware backend.
type Context interface {
	MakeCurrent()
	Describe() string
}

// Factory creates GPU resources for the hardware backend.
type Factory interface {
	CreateBuffer(vertices []renderer.VertexPosNormal) (HardwareBuffer, error)
	CreateTexture(img *image.RGBA) (HardwareTexture, error)
	// Close releases every resource the factory created.
	Close() error
}

type (
	HardwareScene    = renderer.Scene[HardwareBuffer, HardwareTexture]
	HardwareFragment = renderer.Fragment[HardwareBuffer, HardwareTexture]
	HardwareRenderer = renderer.Renderer[HardwareBuffer, HardwareTexture, Context]
)

// hardwareBackend is the hardware accelerated backend: window, device
// context, active pipeline and resource factory.
type hardwareBackend struct {
	window   Window
	context  Context
	active   *renderer.Pipeline
	factory  Factory
	renderer HardwareRenderer
}

func (*hardwareBackend) kind() Kind { return KindHardware }

func (b *hardwareBackend) setPipeline(layers []renderer.Layer) error {
	b.active.SetLayers(layers)
	core.LogDebug("pipeline set with %d layers", len(layers))
	return nil
}

func (b *hardwareBackend) addTarget(target renderer.Target, name string) error {
	if b.active.AddTarget(name, target) {
		core.LogDebug("render target '%s' replaced", name)
	}
	return nil
}

func (b *hardwareBackend) deleteTarget(name string) error {
	b.active.DeleteTarget(name)
	return nil
}

func (b *hardwareBackend) dimensions() (uint32, uint32, bool) {
	return b.window.Size()
}

func (b *hardwareBackend) pollEvents() ([]core.EngineEvent, error) {
	events := b.window.PollEvents()
	if events == nil {
		events = []core.EngineEvent{}
	}
	return events, nil
}

func (b *hardwareBackend) renderWorld(world *ecs.World) (FrameStats, error) {
	scene, stats := assembleScene(world)
	b.renderer.Submit(b.active, scene, b.context)
	if err := b.window.Present(); err != nil {
		return stats, newError(ErrPresentationFailure, KindHardware, "render_world", err)
	}
	return stats, nil
}

// assembleScene joins renderables with transforms into a hardware scene.
// Entities whose mesh or textures are not hardware handles are skipped
// whole, never partially emitted.
func assembleScene(world *ecs.World) (*HardwareScene, FrameStats) {
	camera, ok := ecs.Resource[renderer.Camera](world)
	if !ok {
		core.LogDebug("no camera resource in the world, using the default camera")
		camera = renderer.NewCamera()
	}
	scene := renderer.NewScene[HardwareBuffer, HardwareTexture](camera)
	stats := FrameStats{}

	renderables := ecs.Read[Renderable](world)
	transforms := ecs.Read[components.Transform](world)
	ecs.Join(renderables, transforms, func(e ecs.Entity, r *Renderable, _ *components.Transform) {
		buffer, slice, ok := r.Mesh.Hardware()
		if !ok {
			skip(&stats, e, "mesh", r.Mesh.Name, r.Mesh.Kind())
			return
		}
		ka, ok := r.Ka.Hardware()
		if !ok {
			skip(&stats, e, "ka texture", r.Ka.Name, r.Ka.Kind())
			return
		}
		kd, ok := r.Kd.Hardware()
		if !ok {
			skip(&stats, e, "kd texture", r.Kd.Name, r.Kd.Kind())
			return
		}
		scene.Fragments = append(scene.Fragments, HardwareFragment{
			Transform: components.WorldMatrix(transforms, e),
			Buffer:    buffer,
			Slice:     slice,
			Ka:        ka,
			Kd:        kd,
		})
	})

	if lights := ecs.Read[renderer.Light](world); lights != nil {
		lights.Each(func(_ ecs.Entity, l *renderer.Light) bool {
			scene.Lights = append(scene.Lights, *l)
			return true
		})
	}

	stats.Fragments = len(scene.Fragments)
	stats.Lights = len(scene.Lights)
	return scene, stats
}

func skip(stats *FrameStats, e ecs.Entity, what, name string, got Kind) {
	stats.Skipped = append(stats.Skipped, e)
	core.LogDebug("skipping entity %d: %s '%s' belongs to the %s backend, not %s", e, what, name, got, KindHardware)
}

func (b *hardwareBackend) pipeline() *renderer.Pipeline {
	return b.active
}

func (b *hardwareBackend) loadMesh(name string, vertices []renderer.VertexPosNormal, slice renderer.Slice) (Mesh, error) {
	if len(vertices) == 0 {
		return Mesh{}, fmt.Errorf("mesh '%s' has no vertices", name)
	}
	buffer, err := b.factory.CreateBuffer(vertices)
	if err != nil {
		return Mesh{}, fmt.Errorf("failed to create buffer for mesh '%s': %w", name, err)
	}
	if slice.End == 0 {
		slice.End = uint32(len(vertices))
	}
	return NewHardwareMesh(name, buffer, slice), nil
}

func (b *hardwareBackend) loadTexture(name string, img image.Image) (Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return Texture{}, fmt.Errorf("texture '%s' has no pixels", name)
	}
	texture, err := b.factory.CreateTexture(toRGBA(img, MaxTextureSize))
	if err != nil {
		return Texture{}, fmt.Errorf("failed to create texture '%s': %w", name, err)
	}
	return NewHardwareTexture(name, texture), nil
}

func (b *hardwareBackend) close() error {
	if c, ok := b.renderer.(interface{ Close() }); ok {
		c.Close()
	}
	return errors.Join(b.factory.Close(), b.window.Close())
}

// toRGBA converts img to RGBA, downscaling it so neither side exceeds
// maxSize.
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxSize || h > maxSize {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
