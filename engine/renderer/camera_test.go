package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraMovement(t *testing.T) {
	c := NewCamera()
	if !c.Forward().ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Forward() = %v", c.Forward())
	}
	if !c.Right().ApproxEqual(mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Right() = %v", c.Right())
	}

	c.MoveForward(2)
	c.MoveRight(1)
	c.MoveUp(3)
	if !c.Position.ApproxEqual(mgl32.Vec3{1, 3, -2}) {
		t.Errorf("Position = %v", c.Position)
	}

	c.Reset()
	if c != NewCamera() {
		t.Errorf("Reset() = %+v", c)
	}
}

func TestCameraPitchIsClamped(t *testing.T) {
	c := NewCamera()
	c.Pitch(10)
	if c.EulerRotation.X() != pitchLimit {
		t.Errorf("pitch = %f, want %f", c.EulerRotation.X(), pitchLimit)
	}
	c.Pitch(-20)
	if c.EulerRotation.X() != -pitchLimit {
		t.Errorf("pitch = %f, want %f", c.EulerRotation.X(), -pitchLimit)
	}
}

func TestCameraSetAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspect(800, 400)
	if c.Aspect != 2 {
		t.Errorf("Aspect = %f", c.Aspect)
	}
	c.SetAspect(0, 400)
	if c.Aspect != 2 {
		t.Errorf("zero width changed Aspect to %f", c.Aspect)
	}
}
