package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// 89 degrees, keeps the pitch away from gimbal lock.
const pitchLimit float32 = 1.55334306

/**
 * @brief Represents a camera used for rendering. The world holds it as a
 * shared resource; the device copies it at the start of every frame.
 */
type Camera struct {
	/** @brief The position of this camera. */
	Position mgl32.Vec3
	/** @brief The rotation of this camera using Euler angles (pitch, yaw, roll). */
	EulerRotation mgl32.Vec3
	/** @brief Vertical field of view in radians. */
	FOV float32
	/** @brief Width over height of the drawable. */
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera() Camera {
	c := Camera{}
	c.Reset()
	return c
}

func (c *Camera) Reset() {
	c.Position = mgl32.Vec3{}
	c.EulerRotation = mgl32.Vec3{}
	c.FOV = mgl32.DegToRad(45)
	c.Aspect = 16.0 / 9.0
	c.Near = 0.1
	c.Far = 1000
}

// View returns the inverse of the camera's world matrix.
func (c Camera) View() mgl32.Mat4 {
	rotation := mgl32.AnglesToQuat(c.EulerRotation.X(), c.EulerRotation.Y(), c.EulerRotation.Z(), mgl32.XYZ).Mat4()
	translation := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())
	return translation.Mul4(rotation).Inv()
}

func (c Camera) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio from drawable dimensions.
func (c *Camera) SetAspect(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c Camera) Forward() mgl32.Vec3 {
	v := c.View()
	return mgl32.Vec3{-v.At(2, 0), -v.At(2, 1), -v.At(2, 2)}.Normalize()
}

func (c Camera) Right() mgl32.Vec3 {
	v := c.View()
	return mgl32.Vec3{v.At(0, 0), v.At(0, 1), v.At(0, 2)}.Normalize()
}

func (c *Camera) MoveForward(amount float32) {
	c.Position = c.Position.Add(c.Forward().Mul(amount))
}

func (c *Camera) MoveBackward(amount float32) {
	c.Position = c.Position.Sub(c.Forward().Mul(amount))
}

func (c *Camera) MoveLeft(amount float32) {
	c.Position = c.Position.Sub(c.Right().Mul(amount))
}

func (c *Camera) MoveRight(amount float32) {
	c.Position = c.Position.Add(c.Right().Mul(amount))
}

func (c *Camera) MoveUp(amount float32) {
	c.Position = c.Position.Add(mgl32.Vec3{0, amount, 0})
}

func (c *Camera) MoveDown(amount float32) {
	c.Position = c.Position.Sub(mgl32.Vec3{0, amount, 0})
}

func (c *Camera) Yaw(amount float32) {
	c.EulerRotation[1] += amount
}

func (c *Camera) Pitch(amount float32) {
	c.EulerRotation[0] = clamp(c.EulerRotation[0]+amount, -pitchLimit, pitchLimit)
}

func clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
