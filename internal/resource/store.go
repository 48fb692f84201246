package resource

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/maypok86/otter"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/cory-johannsen/portalmap/internal/scene"
)

// placeholderName is the Name carried by assets substituted for absent refs.
const placeholderName = "placeholder"

// Options configures a Store.
type Options struct {
	// DataDir is the data root all asset directories are relative to.
	DataDir string
	// TextureDir and MeshDir are subdirectories of DataDir.
	TextureDir string
	MeshDir    string
	// Absent selects how absent refs resolve.
	Absent AbsentPolicy
	// CacheCapacity bounds each of the texture, mesh, and box caches.
	CacheCapacity int
}

// Store resolves textures and meshes from files under a data directory and
// caches decoded results by identifier. It is safe for concurrent use.
type Store struct {
	opts     Options
	logger   *zap.Logger
	textures otter.Cache[string, scene.Texture]
	meshes   otter.Cache[string, scene.Mesh]
	boxes    otter.Cache[scene.Vec3, scene.Mesh]
}

// NewStore builds a Store.
//
// Precondition: opts.CacheCapacity > 0; opts.Absent is a known policy.
// Postcondition: Returns a Store ready for use, or a non-nil error.
func NewStore(opts Options, logger *zap.Logger) (*Store, error) {
	if _, err := ParseAbsentPolicy(string(opts.Absent)); err != nil {
		return nil, err
	}
	textures, err := newCache[string, scene.Texture](opts.CacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("building texture cache: %w", err)
	}
	meshes, err := newCache[string, scene.Mesh](opts.CacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("building mesh cache: %w", err)
	}
	boxes, err := newCache[scene.Vec3, scene.Mesh](opts.CacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("building box cache: %w", err)
	}
	return &Store{
		opts:     opts,
		logger:   logger,
		textures: textures,
		meshes:   meshes,
		boxes:    boxes,
	}, nil
}

func newCache[K comparable, V any](capacity int) (otter.Cache[K, V], error) {
	b, err := otter.NewBuilder[K, V](capacity)
	if err != nil {
		return otter.Cache[K, V]{}, err
	}
	return b.CollectStats().Build()
}

// Close releases the caches.
func (s *Store) Close() {
	s.textures.Close()
	s.meshes.Close()
	s.boxes.Close()
}

// Texture resolves ref to a texture with 1x1 tiling. The returned value is a
// copy; callers may change its tiling without affecting other entities.
//
// Postcondition: Returns a texture with a non-nil Image, or a non-nil error.
func (s *Store) Texture(ref Ref) (scene.Texture, error) {
	name, ok := ref.Name()
	if !ok {
		if err := s.absent("texture"); err != nil {
			return scene.Texture{}, err
		}
		return placeholderTexture(), nil
	}
	if tex, hit := s.textures.Get(name); hit {
		return tex, nil
	}
	tex, err := loadTexture(filepath.Join(s.opts.DataDir, s.opts.TextureDir, name), name)
	if err != nil {
		return scene.Texture{}, err
	}
	s.textures.Set(name, tex)
	s.logger.Debug("texture loaded",
		zap.String("texture", name),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return tex, nil
}

// Mesh resolves ref to mesh geometry loaded from an OBJ file.
//
// Postcondition: Returns a mesh with at least one triangle, or a non-nil error.
func (s *Store) Mesh(ref Ref) (scene.Mesh, error) {
	name, ok := ref.Name()
	if !ok {
		if err := s.absent("mesh"); err != nil {
			return scene.Mesh{}, err
		}
		m := BoxMesh(scene.Vec3{1, 1, 1})
		m.Name = placeholderName
		return m, nil
	}
	if m, hit := s.meshes.Get(name); hit {
		return m, nil
	}
	path := filepath.Join(s.opts.DataDir, s.opts.MeshDir, name)
	f, err := os.Open(path)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("opening mesh %s: %w", path, err)
	}
	defer f.Close()
	m, err := DecodeOBJ(name, f)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("loading mesh %s: %w", name, err)
	}
	s.meshes.Set(name, m)
	s.logger.Debug("mesh loaded", zap.String("mesh", name), zap.Int("triangles", m.TriangleCount()))
	return m, nil
}

// Box returns a procedural box mesh sized from t's scale.
func (s *Store) Box(t scene.Transform) (scene.Mesh, error) {
	if m, hit := s.boxes.Get(t.Scale); hit {
		return m, nil
	}
	m := BoxMesh(t.Scale)
	s.boxes.Set(t.Scale, m)
	return m, nil
}

// CacheStats reports combined hit and miss counts across all caches.
func (s *Store) CacheStats() (hits, misses int64) {
	for _, st := range []otter.Stats{s.textures.Stats(), s.meshes.Stats(), s.boxes.Stats()} {
		hits += st.Hits()
		misses += st.Misses()
	}
	return hits, misses
}

func (s *Store) absent(kind string) error {
	if s.opts.Absent == AbsentError {
		return fmt.Errorf("resolving %s: %w", kind, ErrAbsent)
	}
	s.logger.Warn("absent asset identifier, using placeholder", zap.String("kind", kind))
	return nil
}

func loadTexture(path, name string) (scene.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return scene.Texture{}, fmt.Errorf("opening texture %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return scene.Texture{}, fmt.Errorf("decoding texture %s: %w", path, err)
	}
	b := img.Bounds()
	return scene.Texture{
		Name:    name,
		Image:   img,
		Width:   b.Dx(),
		Height:  b.Dy(),
		XTiling: 1,
		YTiling: 1,
	}, nil
}

func placeholderTexture() scene.Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff})
	return scene.Texture{
		Name:    placeholderName,
		Image:   img,
		Width:   1,
		Height:  1,
		XTiling: 1,
		YTiling: 1,
	}
}
