package gfx

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// HardwareBuffer is a vertex buffer owned by the hardware backend.
type HardwareBuffer struct {
	VAO         uint32
	VBO         uint32
	VertexCount int32
}

// HardwareTexture is a texture owned by the hardware backend.
type HardwareTexture struct {
	Name   uint32
	Width  int32
	Height int32
}

type meshInner interface {
	kind() Kind
}

type hardwareMesh struct {
	buffer HardwareBuffer
	slice  renderer.Slice
}

// nativeMesh has no payload until the native backend exists.
type nativeMesh struct{}

type nullMesh struct{}

func (hardwareMesh) kind() Kind { return KindHardware }
func (nativeMesh) kind() Kind   { return KindNative }
func (nullMesh) kind() Kind     { return KindNull }

// Mesh is a backend tagged handle to GPU geometry. Handles are created by
// a device loader and are only usable on a device of the same kind.
type Mesh struct {
	ID    uuid.UUID
	Name  string
	inner meshInner
}

func NewHardwareMesh(name string, buffer HardwareBuffer, slice renderer.Slice) Mesh {
	return Mesh{ID: uuid.New(), Name: name, inner: hardwareMesh{buffer: buffer, slice: slice}}
}

func NewNativeMesh(name string) Mesh {
	return Mesh{ID: uuid.New(), Name: name, inner: nativeMesh{}}
}

func NewNullMesh(name string) Mesh {
	return Mesh{ID: uuid.New(), Name: name, inner: nullMesh{}}
}

func (m Mesh) Kind() Kind {
	if m.inner == nil {
		return kindUnset
	}
	return m.inner.kind()
}

// Hardware returns the hardware buffer and slice of m, if m is tagged
// for the hardware backend.
func (m Mesh) Hardware() (HardwareBuffer, renderer.Slice, bool) {
	hm, ok := m.inner.(hardwareMesh)
	return hm.buffer, hm.slice, ok
}

type textureInner interface {
	kind() Kind
}

type hardwareTexture struct {
	texture HardwareTexture
}

type nativeTexture struct{}

type nullTexture struct{}

func (hardwareTexture) kind() Kind { return KindHardware }
func (nativeTexture) kind() Kind   { return KindNative }
func (nullTexture) kind() Kind     { return KindNull }

// Texture is a backend tagged handle to a GPU texture.
type Texture struct {
	ID    uuid.UUID
	Name  string
	inner textureInner
}

func NewHardwareTexture(name string, texture HardwareTexture) Texture {
	return Texture{ID: uuid.New(), Name: name, inner: hardwareTexture{texture: texture}}
}

func NewNativeTexture(name string) Texture {
	return Texture{ID: uuid.New(), Name: name, inner: nativeTexture{}}
}

func NewNullTexture(name string) Texture {
	return Texture{ID: uuid.New(), Name: name, inner: nullTexture{}}
}

func (t Texture) Kind() Kind {
	if t.inner == nil {
		return kindUnset
	}
	return t.inner.kind()
}

// Hardware returns the hardware texture of t, if t is tagged for the
// hardware backend.
func (t Texture) Hardware() (HardwareTexture, bool) {
	ht, ok := t.inner.(hardwareTexture)
	return ht.texture, ok
}

// Renderable binds the mesh and the ambient (ka) and diffuse (kd)
// textures an entity is drawn with.
type Renderable struct {
	Mesh Mesh
	Ka   Texture
	Kd   Texture
}
