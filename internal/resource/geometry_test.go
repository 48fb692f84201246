package resource

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/portalmap/internal/scene"
)

func TestNamed(t *testing.T) {
	assert.True(t, Named("").IsAbsent())
	assert.True(t, Named("none").IsAbsent())
	assert.True(t, Named("  ").IsAbsent())

	r := Named("wall.png")
	name, ok := r.Name()
	assert.True(t, ok)
	assert.Equal(t, "wall.png", name)
	assert.Equal(t, "wall.png", r.String())
	assert.Equal(t, "<absent>", Ref{}.String())
}

func TestRefFromAttr(t *testing.T) {
	assert.True(t, RefFromAttr("crate.png", false).IsAbsent())
	assert.False(t, RefFromAttr("crate.png", true).IsAbsent())
}

func TestParseAbsentPolicy(t *testing.T) {
	p, err := ParseAbsentPolicy("error")
	require.NoError(t, err)
	assert.Equal(t, AbsentError, p)
	_, err = ParseAbsentPolicy("skip")
	assert.Error(t, err)
}

func TestDecodeOBJ_QuadIsFanTriangulated(t *testing.T) {
	m, err := DecodeOBJ("quad.obj", strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	assert.Equal(t, "quad.obj", m.Name)
	assert.Len(t, m.Positions, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, mgl32.Vec2{1, 1}, m.TexCoords[2])
	assert.Equal(t, scene.Vec3{0, 0, 1}, m.Normals[0])
}

func TestDecodeOBJ_NegativeIndicesAndNoTexcoords(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	m, err := DecodeOBJ("tri.obj", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, scene.Vec3{1, 0, 0}, m.Positions[1])
	assert.Equal(t, mgl32.Vec2{}, m.TexCoords[1])
	assert.Equal(t, scene.Vec3{}, m.Normals[1])
}

func TestDecodeOBJ_ObjectsAreMerged(t *testing.T) {
	src := `o frame
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o panel
v 0 0 1
v 1 0 1
v 0 1 1
f 4 5 6
`
	m, err := DecodeOBJ("door.obj", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())
	assert.Len(t, m.Positions, 6)
	assert.Equal(t, scene.Vec3{0, 0, 1}, m.Positions[m.Indices[3]])
}

func TestDecodeOBJ_SharedCornersAreReused(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3\nf 1 3 4\n"
	m, err := DecodeOBJ("quad.obj", strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, m.Positions, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
}

func TestDecodeOBJ_Errors(t *testing.T) {
	cases := map[string]string{
		"bad number":   "v 0 x 0\n",
		"out of range": "v 0 0 0\nf 1 2 3\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"no faces":     "v 0 0 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeOBJ("broken.obj", strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestBoxMesh_Shape(t *testing.T) {
	m := BoxMesh(scene.Vec3{1, 1, 1})
	assert.Len(t, m.Positions, 24)
	assert.Len(t, m.Normals, 24)
	assert.Len(t, m.TexCoords, 24)
	assert.Len(t, m.Indices, 36)
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 0.5, abs32(p[i]), 1e-6)
		}
	}
}

func TestPropertyBoxTexCoordsFollowScale(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sx := rapid.Float32Range(0.1, 50).Draw(t, "sx")
		sy := rapid.Float32Range(0.1, 50).Draw(t, "sy")
		sz := rapid.Float32Range(0.1, 50).Draw(t, "sz")
		m := BoxMesh(scene.Vec3{sx, sy, sz})
		maxU, maxV := float32(0), float32(0)
		for _, uv := range m.TexCoords {
			maxU = max(maxU, uv.X())
			maxV = max(maxV, uv.Y())
		}
		largest := max(sx, sy, sz)
		assert.LessOrEqual(t, maxU, largest)
		assert.LessOrEqual(t, maxV, largest)
		assert.Equal(t, 12, m.TriangleCount())
	})
}

func TestBoxMesh_TrianglesFaceOutward(t *testing.T) {
	m := BoxMesh(scene.Vec3{2, 3, 4})
	for tri := 0; tri < m.TriangleCount(); tri++ {
		i0, i1, i2 := m.Indices[3*tri], m.Indices[3*tri+1], m.Indices[3*tri+2]
		a, b, c := m.Positions[i0], m.Positions[i1], m.Positions[i2]
		winding := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, winding.Dot(m.Normals[i0]), float32(0),
			"triangle %d with normal %v winds inward", tri, m.Normals[i0])
	}
}

func TestPropertyBoxFacesPointAwayFromCentre(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scale := scene.Vec3{
			rapid.Float32Range(0.1, 50).Draw(t, "sx"),
			rapid.Float32Range(0.1, 50).Draw(t, "sy"),
			rapid.Float32Range(0.1, 50).Draw(t, "sz"),
		}
		m := BoxMesh(scale)
		for tri := 0; tri < m.TriangleCount(); tri++ {
			a := m.Positions[m.Indices[3*tri]]
			b := m.Positions[m.Indices[3*tri+1]]
			c := m.Positions[m.Indices[3*tri+2]]
			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Dot(centroid), float32(0))
		}
	})
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
