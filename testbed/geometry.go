package testbed

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/renderer"
)

// GenerateCube returns the 36 vertices of an axis aligned box centered on
// the origin, with per-face normals and texture coordinates tiled tileX
// by tileY times.
func GenerateCube(width, height, depth, tileX, tileY float32) []renderer.VertexPosNormal {
	hw, hh, hd := width/2, height/2, depth/2

	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
	}
	uvs := [4][2]float32{{0, 0}, {tileX, 0}, {tileX, tileY}, {0, tileY}}

	vertices := make([]renderer.VertexPosNormal, 0, len(faces)*6)
	for _, f := range faces {
		// Two counter-clockwise triangles per face.
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			vertices = append(vertices, renderer.VertexPosNormal{
				Position: f.corners[i],
				Normal:   f.normal,
				TexCoord: uvs[i],
			})
		}
	}
	return vertices
}
