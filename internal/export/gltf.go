// Package export writes a mesh and its cumulative transform as glTF 2.0.
package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/internal/mesh"
	"github.com/Faultbox/offview/internal/shading"
	"github.com/Faultbox/offview/pkg/math"
)

// Build errors.
var (
	ErrEmptyMesh    = errors.New("mesh has no faces")
	ErrUnknownModel = errors.New("unknown shading model")
)

// Options controls what goes into the document.
type Options struct {
	Name string
	// Bake stores per-vertex colors from Shading as COLOR_0.
	Bake    bool
	Shading shading.Model
	Light   mgl32.Vec4
}

// Build converts m into a single-node document. The node matrix is transform;
// vertex data stays in object space. Normals are written unit length.
//
// Baked colors are evaluated with the transformed mesh seen from the origin,
// the same frame the light position is given in.
func Build(m *mesh.Mesh, transform math.Mat4, opts Options) (*gltf.Document, error) {
	if len(m.Faces) == 0 {
		return nil, ErrEmptyMesh
	}
	if opts.Bake && !opts.Shading.Valid() {
		return nil, errors.Wrapf(ErrUnknownModel, "baking with %s", opts.Shading)
	}
	name := opts.Name
	if name == "" {
		name = "mesh"
	}

	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
		normals[i] = unitNormal(v.Normal)
	}

	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, positions),
		"NORMAL":   modeler.WriteNormal(doc, normals),
	}
	if opts.Bake {
		attributes["COLOR_0"] = modeler.WriteColor(doc, bakeColors(m, transform, opts.Shading, opts.Light))
	}
	indices := modeler.WriteIndices(doc, m.TriangleIndices())

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attributes,
		}},
	})
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        "default",
		DoubleSided: true,
	})
	doc.Meshes[0].Primitives[0].Material = gltf.Index(0)

	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:   name,
		Mesh:   gltf.Index(0),
		Matrix: [16]float32(transform),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	logger.Named("export").Debug("document built",
		zap.String("name", name),
		zap.Int("vertices", len(positions)),
		zap.Int("accessors", len(doc.Accessors)),
		zap.Bool("baked", opts.Bake),
	)
	return doc, nil
}

// Write saves doc to path: binary glTF for ".glb", JSON with an embedded
// buffer otherwise.
func Write(doc *gltf.Document, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		defer f.Close()

		enc := gltf.NewEncoder(f)
		enc.AsBinary = true
		if err := enc.Encode(doc); err != nil {
			return errors.Wrapf(err, "encoding %s", path)
		}
		return errors.Wrapf(f.Close(), "closing %s", path)
	}

	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	if err := gltf.Save(doc, path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

// unitNormal normalizes n. A zero normal, from an unreferenced vertex or
// degenerate faces, becomes +Y.
func unitNormal(n math.Vec3) [3]float32 {
	if n.IsZero() {
		return [3]float32{0, 1, 0}
	}
	u := n.Normalize()
	return [3]float32{u.X, u.Y, u.Z}
}

func bakeColors(m *mesh.Mesh, transform math.Mat4, model shading.Model, light mgl32.Vec4) [][4]uint8 {
	normalMatrix := transform.NormalMatrix()
	colors := make([][4]uint8, len(m.Vertices))
	for i, v := range m.Vertices {
		p := transform.TransformPoint(v.Position)
		n := normalMatrix.MulVec3(v.Normal)
		c := model.Shade(shading.Sample{
			Position: mgl32.Vec3{p.X, p.Y, p.Z},
			Normal:   mgl32.Vec3{n.X, n.Y, n.Z},
		}, light)
		colors[i] = [4]uint8{toByte(c[0]), toByte(c[1]), toByte(c[2]), 255}
	}
	return colors
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
