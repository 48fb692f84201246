package maploader

import (
	"fmt"
	"iter"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/cory-johannsen/portalmap/internal/mapdoc"
	"github.com/cory-johannsen/portalmap/internal/resource"
	"github.com/cory-johannsen/portalmap/internal/scene"
)

// Fixed assets for entities whose look is not document-driven.
const (
	DoorTexture    = "Door.png"
	DoorMesh       = "Door.obj"
	TriggerTexture = "redBox.png"
)

// WallTiling is the UV repeat applied to every wall texture.
const WallTiling float32 = 0.5

// legacyTriggerType is what older level tools wrote for an untyped trigger.
const legacyTriggerType = "none"

func malformed(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedElement, what, err)
}

func (l *Loader) texture(ref resource.Ref) (scene.Texture, error) {
	tex, err := l.resolver.Texture(ref)
	if err != nil {
		return scene.Texture{}, fmt.Errorf("%w: texture %s: %w", ErrResource, ref, err)
	}
	return tex, nil
}

func (l *Loader) mesh(ref resource.Ref) (scene.Mesh, error) {
	m, err := l.resolver.Mesh(ref)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("%w: mesh %s: %w", ErrResource, ref, err)
	}
	return m, nil
}

func (l *Loader) box(t scene.Transform) (scene.Mesh, error) {
	m, err := l.resolver.Box(t)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("%w: box mesh: %w", ErrResource, err)
	}
	return m, nil
}

// warnDuplicates logs when a level declares a single-valued element more than
// once. Only the first one is used.
func warnDuplicates(st *loadState, tag string) {
	if n := mapdoc.Count(mapdoc.Children(st.root, tag)); n > 1 {
		st.log.Warn("duplicate level element ignored",
			zap.String("element", tag),
			zap.Int("count", n),
		)
	}
}

func (l *Loader) extractSpawn(st *loadState) error {
	el := mapdoc.First(st.root, "spawn")
	if el == nil {
		return fmt.Errorf("%w: no spawn position defined", ErrMissingElement)
	}
	warnDuplicates(st, "spawn")
	if err := mapdoc.PositionAndRotation(el, &st.scene.Player); err != nil {
		return malformed("<spawn>", err)
	}
	return nil
}

func (l *Loader) extractDoor(st *loadState) error {
	el := mapdoc.First(st.root, "end")
	if el == nil {
		return fmt.Errorf("%w: no end position defined", ErrMissingElement)
	}
	warnDuplicates(st, "end")
	door := scene.NewEntity()
	if err := mapdoc.PositionAndRotation(el, &door.Transform); err != nil {
		return malformed("<end>", err)
	}
	var err error
	if door.Texture, err = l.texture(resource.Named(DoorTexture)); err != nil {
		return err
	}
	if door.Mesh, err = l.mesh(resource.Named(DoorMesh)); err != nil {
		return err
	}
	st.scene.End = door
	return nil
}

func (l *Loader) extractModels(st *loadState) error {
	var models []scene.Entity
	i := 0
	for el := range mapdoc.Children(st.root, "model") {
		model := scene.NewEntity()
		if err := mapdoc.PositionAndRotation(el, &model.Transform); err != nil {
			return malformed(fmt.Sprintf("model %d", i), err)
		}
		var err error
		if model.Texture, err = l.texture(resource.RefFromAttr(mapdoc.Attr(el, "texture"))); err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
		if model.Mesh, err = l.mesh(resource.RefFromAttr(mapdoc.Attr(el, "mesh"))); err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
		models = append(models, model)
		i++
	}
	st.scene.Models = append(st.scene.Models, models...)
	return nil
}

func (l *Loader) extractLights(st *loadState) error {
	if mapdoc.First(st.root, "light") == nil {
		if l.opts.RequireLights {
			return fmt.Errorf("%w: no light defined", ErrMissingElement)
		}
		st.log.Debug("level has no lights")
		return nil
	}

	var out []scene.Light
	i := 0
	for el := range mapdoc.Children(st.root, "light") {
		var light scene.Light
		if err := mapdoc.Vector(el, &light.Position); err != nil {
			return malformed(fmt.Sprintf("light %d", i), err)
		}
		if err := mapdoc.Color(el, &light.Color); err != nil {
			return malformed(fmt.Sprintf("light %d", i), err)
		}
		out = append(out, light)
		i++
	}
	st.scene.Lights = append(st.scene.Lights, out...)
	return nil
}

func (l *Loader) extractWalls(st *loadState) error {
	var walls []scene.Entity
	g := 0
	for group := range mapdoc.Children(st.root, "texture") {
		// Source and surface type are scoped to this group only.
		source := resource.RefFromAttr(mapdoc.Attr(group, "source"))
		surface, _ := mapdoc.Attr(group, "type")
		st.log.Debug("texture group",
			zap.Int("group", g),
			zap.Stringer("source", source),
			zap.String("surface", surface),
		)

		w := 0
		for el := range mapdoc.Children(group, "wall") {
			wall := scene.NewEntity()
			if err := mapdoc.PositionAndScale(el, &wall.Transform); err != nil {
				return malformed(fmt.Sprintf("wall %d in texture group %d", w, g), err)
			}
			tex, err := l.texture(source)
			if err != nil {
				return fmt.Errorf("texture group %d: %w", g, err)
			}
			tex.XTiling = WallTiling
			tex.YTiling = WallTiling
			wall.Texture = tex
			if wall.Mesh, err = l.box(wall.Transform); err != nil {
				return fmt.Errorf("wall %d in texture group %d: %w", w, g, err)
			}
			walls = append(walls, wall)
			w++
		}
		g++
	}
	st.scene.Walls = append(st.scene.Walls, walls...)
	return nil
}

func (l *Loader) triggerElements(root *etree.Element) iter.Seq[*etree.Element] {
	if l.opts.TriggerWalk == TriggerWalkSiblings {
		return mapdoc.Siblings(mapdoc.First(root, "trigger"))
	}
	return mapdoc.Children(root, "trigger")
}

func (l *Loader) extractTriggers(st *loadState) error {
	var triggers []scene.Trigger
	i := 0
	for el := range l.triggerElements(st.root) {
		kind, ok := mapdoc.Attr(el, "type")
		if !ok || kind == "" || kind == legacyTriggerType {
			return fmt.Errorf("%w: trigger %d (<%s>) must define a type attribute", ErrMissingElement, i, el.Tag)
		}
		trigger := scene.Trigger{Entity: scene.NewEntity(), Type: kind}
		if err := mapdoc.PositionAndScale(el, &trigger.Transform); err != nil {
			return malformed(fmt.Sprintf("trigger %d", i), err)
		}
		var err error
		if trigger.Texture, err = l.texture(resource.Named(TriggerTexture)); err != nil {
			return fmt.Errorf("trigger %d: %w", i, err)
		}
		if trigger.Mesh, err = l.box(trigger.Transform); err != nil {
			return fmt.Errorf("trigger %d: %w", i, err)
		}
		triggers = append(triggers, trigger)
		i++
	}
	st.scene.Triggers = append(st.scene.Triggers, triggers...)
	return nil
}
