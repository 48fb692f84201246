// Package maploader translates level documents into scenes.
//
// A load acquires the document, then runs the spawn, door, model, light,
// wall, and trigger extractors in that order against the document root.
// Any failure aborts the load; no partial scene is ever returned.
package maploader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/cory-johannsen/portalmap/internal/mapdoc"
	"github.com/cory-johannsen/portalmap/internal/observability"
	"github.com/cory-johannsen/portalmap/internal/resource"
	"github.com/cory-johannsen/portalmap/internal/scene"
)

// Environment supplies the data root level paths are relative to.
type Environment interface {
	DataDir() string
}

// Resolver turns asset identifiers into renderer-ready resources.
type Resolver interface {
	// Texture resolves a texture identifier. Equal refs yield equivalent textures.
	Texture(ref resource.Ref) (scene.Texture, error)
	// Mesh resolves a named mesh asset.
	Mesh(ref resource.Ref) (scene.Mesh, error)
	// Box generates a box mesh sized from t's scale.
	Box(t scene.Transform) (scene.Mesh, error)
}

// TriggerWalk selects how trigger elements are enumerated.
type TriggerWalk string

const (
	// TriggerWalkTagged visits only <trigger> children of the root.
	TriggerWalkTagged TriggerWalk = "tagged"
	// TriggerWalkSiblings visits the first <trigger> and every element after
	// it whatever its tag, reproducing the output of older level tools.
	TriggerWalkSiblings TriggerWalk = "siblings"
)

// ParseTriggerWalk converts a configuration value into a TriggerWalk.
func ParseTriggerWalk(s string) (TriggerWalk, error) {
	switch w := TriggerWalk(s); w {
	case TriggerWalkTagged, TriggerWalkSiblings:
		return w, nil
	default:
		return "", fmt.Errorf("unknown trigger walk %q", s)
	}
}

// Options tunes extraction.
type Options struct {
	TriggerWalk TriggerWalk
	// RequireLights fails a load whose root has no <light> child.
	RequireLights bool
}

// DefaultOptions returns the tagged trigger walk with lights required.
func DefaultOptions() Options {
	return Options{TriggerWalk: TriggerWalkTagged, RequireLights: true}
}

// Loader builds scenes from level files. A Loader holds no per-load state and
// may serve concurrent loads if its Resolver is safe for concurrent use.
type Loader struct {
	env      Environment
	resolver Resolver
	logger   *zap.Logger
	opts     Options
}

// New creates a Loader.
//
// Precondition: env, resolver, and logger must be non-nil.
// Postcondition: Returns a Loader, or an error if opts carries an unknown trigger walk.
func New(env Environment, resolver Resolver, logger *zap.Logger, opts Options) (*Loader, error) {
	if _, err := ParseTriggerWalk(string(opts.TriggerWalk)); err != nil {
		return nil, err
	}
	return &Loader{env: env, resolver: resolver, logger: logger, opts: opts}, nil
}

// loadState is everything one load call reads and writes.
type loadState struct {
	root  *etree.Element
	scene *scene.Scene
	log   *zap.Logger
}

// Load reads the level at levelPath, relative to the data root, and builds its scene.
//
// Postcondition: Returns a complete Scene, or nil and an error wrapping one of
// ErrDocument, ErrMissingElement, ErrMalformedElement, or ErrResource.
func (l *Loader) Load(levelPath string) (*scene.Scene, error) {
	log := observability.ForLoad(l.logger, levelPath)
	doc, err := mapdoc.Load(l.env.DataDir(), levelPath)
	if err != nil {
		log.Error("unable to load level document", zap.Error(err))
		return nil, fmt.Errorf("loading level %s: %w", levelPath, err)
	}
	return l.build(levelPath, doc, log)
}

// LoadBytes builds a scene from level content held in memory. name
// identifies the level in logs and errors.
//
// Postcondition: Same as Load.
func (l *Loader) LoadBytes(name string, data []byte) (*scene.Scene, error) {
	log := observability.ForLoad(l.logger, name)
	doc, err := mapdoc.Parse(name, data)
	if err != nil {
		log.Error("unable to parse level document", zap.Error(err))
		return nil, fmt.Errorf("loading level %s: %w", name, err)
	}
	return l.build(name, doc, log)
}

func (l *Loader) build(name string, doc *mapdoc.Document, log *zap.Logger) (*scene.Scene, error) {
	st := &loadState{root: doc.Root(), scene: scene.New(), log: log}

	steps := []struct {
		section string
		run     func(*loadState) error
	}{
		{"spawn", l.extractSpawn},
		{"door", l.extractDoor},
		{"models", l.extractModels},
		{"lights", l.extractLights},
		{"walls", l.extractWalls},
		{"triggers", l.extractTriggers},
	}
	for _, step := range steps {
		if err := step.run(st); err != nil {
			log.Error("level rejected", zap.String("section", step.section), zap.Error(err))
			return nil, fmt.Errorf("loading level %s: %s: %w", name, step.section, err)
		}
	}

	stats := st.scene.Stats()
	log.Info("level loaded",
		zap.Int("lights", stats.Lights),
		zap.Int("walls", stats.Walls),
		zap.Int("triggers", stats.Triggers),
		zap.Int("models", stats.Models),
	)
	return st.scene, nil
}

// LoadDir loads every .xml level in dir, relative to the data root.
//
// Postcondition: Returns scenes keyed by level path (dir joined with file
// name), or the first error encountered. An empty directory is an error.
func (l *Loader) LoadDir(dir string) (map[string]*scene.Scene, error) {
	full := filepath.Join(l.env.DataDir(), dir)
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("reading level directory %s: %w", full, err)
	}

	scenes := make(map[string]*scene.Scene)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		levelPath := filepath.Join(dir, entry.Name())
		sc, err := l.Load(levelPath)
		if err != nil {
			return nil, err
		}
		scenes[levelPath] = sc
	}

	if len(scenes) == 0 {
		return nil, fmt.Errorf("no level files found in %s", full)
	}
	return scenes, nil
}
