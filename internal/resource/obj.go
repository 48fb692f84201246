package resource

import (
	"fmt"
	"io"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cory-johannsen/portalmap/internal/scene"
)

// objCorner identifies one face corner by its position, texcoord, and normal
// indices into the decoder's flat arrays. Absent components are -1.
type objCorner struct {
	v, vt, vn int
}

// DecodeOBJ reads Wavefront OBJ geometry. Every object in the file is merged
// into one mesh, polygons are fan-triangulated, and each distinct v/vt/vn
// combination becomes one output vertex. Materials are not read.
//
// Postcondition: Returns a mesh named name with at least one triangle, or an error.
func DecodeOBJ(name string, r io.Reader) (scene.Mesh, error) {
	dec, err := obj.DecodeReader(r, nil)
	if err != nil {
		return scene.Mesh{}, fmt.Errorf("%s: %w", name, err)
	}
	return meshFromDecoder(name, dec)
}

func meshFromDecoder(name string, dec *obj.Decoder) (scene.Mesh, error) {
	nv, nvt, nvn := len(dec.Vertices)/3, len(dec.Uvs)/2, len(dec.Normals)/3
	mesh := scene.Mesh{Name: name}
	seen := make(map[objCorner]uint32)

	for _, o := range dec.Objects {
		for fi, face := range o.Faces {
			if len(face.Vertices) < 3 {
				return scene.Mesh{}, fmt.Errorf("%s: object %q face %d has %d vertices", name, o.Name, fi, len(face.Vertices))
			}
			corners := make([]uint32, 0, len(face.Vertices))
			for i, v := range face.Vertices {
				if v < 0 || v >= nv {
					return scene.Mesh{}, fmt.Errorf("%s: object %q face %d: vertex index %d out of range", name, o.Name, fi, v)
				}
				c := objCorner{v: v, vt: optionalIndex(face.Uvs, i, nvt), vn: optionalIndex(face.Normals, i, nvn)}
				idx, ok := seen[c]
				if !ok {
					idx = uint32(len(mesh.Positions))
					seen[c] = idx
					mesh.Positions = append(mesh.Positions, scene.Vec3{
						dec.Vertices[3*c.v], dec.Vertices[3*c.v+1], dec.Vertices[3*c.v+2],
					})
					var uv mgl32.Vec2
					if c.vt >= 0 {
						uv = mgl32.Vec2{dec.Uvs[2*c.vt], dec.Uvs[2*c.vt+1]}
					}
					mesh.TexCoords = append(mesh.TexCoords, uv)
					var n scene.Vec3
					if c.vn >= 0 {
						n = scene.Vec3{dec.Normals[3*c.vn], dec.Normals[3*c.vn+1], dec.Normals[3*c.vn+2]}
					}
					mesh.Normals = append(mesh.Normals, n)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Indices = append(mesh.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if len(mesh.Indices) == 0 {
		return scene.Mesh{}, fmt.Errorf("%s: no faces", name)
	}
	return mesh, nil
}

// optionalIndex returns indices[i] when it addresses one of n elements, or -1.
// The decoder marks omitted texcoords and normals with an out-of-range sentinel.
func optionalIndex(indices []int, i, n int) int {
	if i >= len(indices) {
		return -1
	}
	if idx := indices[i]; idx >= 0 && idx < n {
		return idx
	}
	return -1
}
