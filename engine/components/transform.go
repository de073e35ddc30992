package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/ecs"
)

// Deeper parent chains are treated as cycles and cut.
const maxParentDepth = 64

/**
 * @brief Represents the transform of an entity in the world.
 * Transforms can have a parent entity whose own transform is then
 * taken into account.
 */
type Transform struct {
	/** @brief The position relative to the parent. */
	Position mgl32.Vec3
	/** @brief The rotation relative to the parent. */
	Rotation mgl32.Quat
	/** @brief The scale relative to the parent. */
	Scale mgl32.Vec3
	/** @brief The parent entity, valid when HasParent is set. */
	Parent    ecs.Entity
	HasParent bool
}

func TransformCreate() Transform {
	return TransformFromPositionRotationScale(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func TransformFromPosition(position mgl32.Vec3) Transform {
	return TransformFromPositionRotationScale(position, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func TransformFromPositionRotation(position mgl32.Vec3, rotation mgl32.Quat) Transform {
	return TransformFromPositionRotationScale(position, rotation, mgl32.Vec3{1, 1, 1})
}

func TransformFromPositionRotationScale(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
	}
}

func (t *Transform) SetParent(parent ecs.Entity) {
	t.Parent = parent
	t.HasParent = true
}

func (t *Transform) ClearParent() {
	t.HasParent = false
}

func (t *Transform) Translate(translation mgl32.Vec3) {
	t.Position = t.Position.Add(translation)
}

func (t *Transform) Rotate(rotation mgl32.Quat) {
	t.Rotation = t.Rotation.Mul(rotation).Normalize()
}

func (t *Transform) ScaleBy(scale mgl32.Vec3) {
	t.Scale = mgl32.Vec3{t.Scale.X() * scale.X(), t.Scale.Y() * scale.Y(), t.Scale.Z() * scale.Z()}
}

// Local returns translation * rotation * scale.
func (t Transform) Local() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	s := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(t.Rotation.Mat4()).Mul4(s)
}

// WorldMatrix returns the world matrix of e by walking its parent chain
// in transforms. Parents without a transform end the chain, and so do
// deleted parents: the storage rejects their stale generation.
func WorldMatrix(transforms ecs.Storage[Transform], e ecs.Entity) mgl32.Mat4 {
	t, ok := transforms.Get(e)
	if !ok {
		return mgl32.Ident4()
	}
	world := t.Local()
	for depth := 0; t.HasParent; depth++ {
		if depth == maxParentDepth {
			core.LogWarn("transform parent chain of entity %d is deeper than %d, cutting it", e, maxParentDepth)
			break
		}
		parent, ok := transforms.Get(t.Parent)
		if !ok {
			break
		}
		world = parent.Local().Mul4(world)
		t = parent
	}
	return world
}
