package resource

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cory-johannsen/portalmap/internal/scene"
)

// boxFace describes one side of a unit box: its outward normal and the two
// axes spanning it, used to pick which scale components stretch the UVs.
// Triangles are wound counter-clockwise seen from outside the box.
type boxFace struct {
	normal scene.Vec3
	u, v   int
}

var boxFaces = [6]boxFace{
	{normal: scene.Vec3{1, 0, 0}, u: 2, v: 1},
	{normal: scene.Vec3{-1, 0, 0}, u: 2, v: 1},
	{normal: scene.Vec3{0, 1, 0}, u: 0, v: 2},
	{normal: scene.Vec3{0, -1, 0}, u: 0, v: 2},
	{normal: scene.Vec3{0, 0, 1}, u: 0, v: 1},
	{normal: scene.Vec3{0, 0, -1}, u: 0, v: 1},
}

// BoxMesh builds a unit box centred on the origin whose texture coordinates
// repeat once per world unit along each face, so a texture keeps its texel
// density whatever the scale the renderer applies.
//
// Postcondition: Returns 24 vertices and 12 triangles; Generated is true.
func BoxMesh(scale scene.Vec3) scene.Mesh {
	m := scene.Mesh{
		Name:      fmt.Sprintf("box(%gx%gx%g)", scale.X(), scale.Y(), scale.Z()),
		Generated: true,
		Positions: make([]scene.Vec3, 0, 24),
		Normals:   make([]scene.Vec3, 0, 24),
		TexCoords: make([]mgl32.Vec2, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	for _, f := range boxFaces {
		base := uint32(len(m.Positions))
		su, sv := scale[f.u], scale[f.v]
		for _, c := range corners {
			p := f.normal.Mul(0.5)
			p[f.u] = c[0]
			p[f.v] = c[1]
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, f.normal)
			m.TexCoords = append(m.TexCoords, mgl32.Vec2{(c[0] + 0.5) * su, (c[1] + 0.5) * sv})
		}
		if f.mirrored() {
			m.Indices = append(m.Indices, base, base+3, base+2, base+2, base+1, base)
		} else {
			m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
		}
	}
	return m
}

// mirrored reports whether the u and v axes span the face clockwise when seen
// along its normal, so the corner order must be reversed to face outward.
func (f boxFace) mirrored() bool {
	var u, v scene.Vec3
	u[f.u], v[f.v] = 1, 1
	return u.Cross(v).Dot(f.normal) < 0
}
