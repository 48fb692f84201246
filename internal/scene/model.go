// Package scene provides the runtime scene graph produced by a level load:
// the player spawn, the exit door, lights, walls, triggers, and models.
package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a three-component float vector used for positions, rotations,
// scales, and colors.
type Vec3 = mgl32.Vec3

// Transform places an object in the level.
type Transform struct {
	// Position is the world-space location.
	Position Vec3
	// Rotation holds Euler angles in degrees. Zero means unrotated.
	Rotation Vec3
	// Scale is the per-axis size multiplier. Unit scale by default.
	Scale Vec3
}

// NewTransform returns a Transform at the origin with unit scale.
//
// Postcondition: Scale is (1, 1, 1); Position and Rotation are zero.
func NewTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Texture is a renderer-ready image together with its UV tiling factors.
type Texture struct {
	// Name is the identifier the texture was resolved from.
	Name string
	// Image holds decoded pixel data. Shared between entities resolving the same name.
	Image image.Image
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int
	// XTiling and YTiling multiply UV coordinates horizontally and vertically.
	XTiling float32
	YTiling float32
}

// Mesh is renderer-ready geometry, either loaded from an asset or generated.
type Mesh struct {
	// Name is the asset identifier, or a generated description such as "box(2x1x4)".
	Name string
	// Generated reports whether the mesh was built procedurally.
	Generated bool
	Positions []Vec3
	Normals   []Vec3
	TexCoords []mgl32.Vec2
	// Indices lists triangle vertex indices, three per triangle.
	Indices []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Entity is a placed object with a transform, a texture, and a mesh.
type Entity struct {
	Transform
	Texture Texture
	Mesh    Mesh
}

// NewEntity returns an Entity with a unit-scale transform and no resources.
func NewEntity() Entity {
	return Entity{Transform: NewTransform()}
}

// Trigger is a typed volume used for gameplay event detection.
// Its rotation is never set by the loader.
type Trigger struct {
	Entity
	// Type is the semantic trigger kind, e.g. "win" or "death".
	Type string
}

// Light is a point light.
type Light struct {
	Position Vec3
	// Color holds r, g, b components in [0, 1].
	Color Vec3
}

// Scene is the complete runtime result of one level load.
// It exclusively owns every contained entity.
type Scene struct {
	// Player is the spawn transform.
	Player Transform
	// End is the exit door.
	End Entity
	// Lights are kept in document order.
	Lights   []Light
	Walls    []Entity
	Triggers []Trigger
	Models   []Entity
}

// New returns an empty Scene whose spawn and door carry unit scale.
func New() *Scene {
	return &Scene{
		Player: NewTransform(),
		End:    NewEntity(),
	}
}

// Stats summarizes how many objects of each kind a scene holds.
type Stats struct {
	Lights   int `yaml:"lights"`
	Walls    int `yaml:"walls"`
	Triggers int `yaml:"triggers"`
	Models   int `yaml:"models"`
}

// Stats returns the per-kind object counts of s.
func (s *Scene) Stats() Stats {
	return Stats{
		Lights:   len(s.Lights),
		Walls:    len(s.Walls),
		Triggers: len(s.Triggers),
		Models:   len(s.Models),
	}
}

// TriggersOfType returns all triggers whose Type equals kind, in document order.
//
// Postcondition: Returns a possibly empty slice; never mutates s.
func (s *Scene) TriggersOfType(kind string) []Trigger {
	var out []Trigger
	for _, t := range s.Triggers {
		if t.Type == kind {
			out = append(out, t)
		}
	}
	return out
}
