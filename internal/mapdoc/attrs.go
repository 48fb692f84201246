package mapdoc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/cory-johannsen/portalmap/internal/scene"
)

var (
	// ErrMissingChild is returned when a required child element is absent.
	ErrMissingChild = errors.New("missing child element")
	// ErrBadAttribute is returned when an attribute value cannot be parsed.
	ErrBadAttribute = errors.New("bad attribute value")
)

// Attr returns the value of the attribute key on el.
//
// Postcondition: Returns ("", false) when el is nil or has no such attribute.
func Attr(el *etree.Element, key string) (string, bool) {
	if el == nil {
		return "", false
	}
	a := el.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// Float reads a float attribute into dst. An absent attribute leaves dst unchanged.
func Float(el *etree.Element, key string, dst *float32) error {
	raw, ok := Attr(el, key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return fmt.Errorf("%w: <%s %s=%q>", ErrBadAttribute, el.Tag, key, raw)
	}
	*dst = float32(f)
	return nil
}

// Vector reads the x, y, z attributes of el into dst. Absent components keep
// their previous value.
func Vector(el *etree.Element, dst *scene.Vec3) error {
	return triple(el, dst, "x", "y", "z")
}

// Color reads the r, g, b attributes of el into dst. Absent components keep
// their previous value.
func Color(el *etree.Element, dst *scene.Vec3) error {
	return triple(el, dst, "r", "g", "b")
}

func triple(el *etree.Element, dst *scene.Vec3, keys ...string) error {
	for i, key := range keys {
		if err := Float(el, key, &dst[i]); err != nil {
			return err
		}
	}
	return nil
}

// ChildVector reads the x, y, z attributes of the first child of el tagged tag.
//
// Postcondition: Returns an error wrapping ErrMissingChild if no such child exists.
func ChildVector(el *etree.Element, tag string, dst *scene.Vec3) error {
	child := First(el, tag)
	if child == nil {
		return fmt.Errorf("%w: <%s> has no <%s>", ErrMissingChild, el.Tag, tag)
	}
	return Vector(child, dst)
}

// PositionAndRotation fills t from the position and rotation children of el.
// The position child is required; a missing rotation child leaves the
// rotation untouched.
func PositionAndRotation(el *etree.Element, t *scene.Transform) error {
	if err := ChildVector(el, "position", &t.Position); err != nil {
		return err
	}
	if rot := First(el, "rotation"); rot != nil {
		if err := Vector(rot, &t.Rotation); err != nil {
			return err
		}
	}
	return nil
}

// PositionAndScale fills t from the position and scale children of el.
// Both children are required.
func PositionAndScale(el *etree.Element, t *scene.Transform) error {
	if err := ChildVector(el, "position", &t.Position); err != nil {
		return err
	}
	return ChildVector(el, "scale", &t.Scale)
}
