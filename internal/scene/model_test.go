package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNewTransform_UnitScale(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, Vec3{1, 1, 1}, tr.Scale)
	assert.Equal(t, Vec3{}, tr.Position)
	assert.Equal(t, Vec3{}, tr.Rotation)
}

func TestNew_SpawnAndDoorHaveUnitScale(t *testing.T) {
	s := New()
	assert.Equal(t, Vec3{1, 1, 1}, s.Player.Scale)
	assert.Equal(t, Vec3{1, 1, 1}, s.End.Scale)
	assert.Empty(t, s.Lights)
	assert.Empty(t, s.Walls)
}

func TestScene_Stats(t *testing.T) {
	s := New()
	s.Lights = make([]Light, 3)
	s.Walls = make([]Entity, 2)
	s.Triggers = make([]Trigger, 1)
	assert.Equal(t, Stats{Lights: 3, Walls: 2, Triggers: 1, Models: 0}, s.Stats())
}

func TestScene_TriggersOfType(t *testing.T) {
	s := New()
	s.Triggers = []Trigger{
		{Type: "death"},
		{Type: "win"},
		{Type: "death"},
	}
	assert.Len(t, s.TriggersOfType("death"), 2)
	assert.Len(t, s.TriggersOfType("win"), 1)
	assert.Empty(t, s.TriggersOfType("radiation"))
}

func TestMesh_TriangleCount(t *testing.T) {
	m := Mesh{Indices: []uint32{0, 1, 2, 2, 3, 0}}
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, 0, Mesh{}.TriangleCount())
}

func TestPropertyTriggersOfTypePartitions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kinds := rapid.SliceOf(rapid.SampledFrom([]string{"win", "death", "radiation"})).Draw(t, "kinds")
		s := New()
		for _, k := range kinds {
			s.Triggers = append(s.Triggers, Trigger{Type: k})
		}
		total := len(s.TriggersOfType("win")) + len(s.TriggersOfType("death")) + len(s.TriggersOfType("radiation"))
		assert.Equal(t, len(kinds), total)
	})
}
