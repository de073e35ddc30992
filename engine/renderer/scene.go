package renderer

import "github.com/go-gl/mathgl/mgl32"

type Primitive uint8

const (
	PrimitiveTriangleList Primitive = iota
	PrimitiveLineList
	PrimitivePointList
)

/** @brief The range of a vertex buffer a fragment draws. */
type Slice struct {
	Start      uint32
	End        uint32
	BaseVertex uint32
	Primitive  Primitive
}

func (s Slice) Count() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Fragment is one drawable unit. B and T are the backend's buffer and
// texture handle types.
type Fragment[B, T any] struct {
	Transform mgl32.Mat4
	Buffer    B
	Slice     Slice
	Ka        T
	Kd        T
}

// Scene is the per-frame aggregate handed to a Renderer. It is rebuilt
// every frame and must not be retained after submission.
type Scene[B, T any] struct {
	Camera    Camera
	Fragments []Fragment[B, T]
	Lights    []Light
}

func NewScene[B, T any](camera Camera) *Scene[B, T] {
	return &Scene[B, T]{Camera: camera}
}

// Light is a point light.
type Light struct {
	Center              mgl32.Vec3
	Color               mgl32.Vec4
	Radius              float32
	PropagationConstant float32
	PropagationLinear   float32
	PropagationRSquare  float32
}

func NewPointLight(center mgl32.Vec3, color mgl32.Vec4, radius float32) Light {
	return Light{
		Center:              center,
		Color:               color,
		Radius:              radius,
		PropagationConstant: 0.2,
		PropagationLinear:   0.2,
		PropagationRSquare:  0.6,
	}
}
