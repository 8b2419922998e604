// Package mesh holds a polygon mesh loaded from an OFF source and the
// per-vertex shading normals derived from its faces.
package mesh

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/pkg/formats"
	"github.com/Faultbox/offview/pkg/math"
)

// FloatsPerVertex is the stride of VertexData: position xyz then normal xyz.
const FloatsPerVertex = 6

// Vertex is an object-space position and its accumulated shading normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Face is a planar polygon given as vertex indices in winding order.
type Face []int

// Mesh owns the vertices and the faces defined over them.
// Topology is fixed after loading; only the normals change, once, in ComputeNormals.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// FromOFF builds a mesh from a parsed OFF description. Normals start at zero.
func FromOFF(off *formats.OFF) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, len(off.Vertices)),
		Faces:    make([]Face, len(off.Faces)),
	}
	for i, p := range off.Vertices {
		m.Vertices[i].Position = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	for i, f := range off.Faces {
		m.Faces[i] = Face(append([]int(nil), f...))
	}
	return m
}

// Load parses an OFF source into a mesh with zeroed normals.
// Any malformed input yields a *formats.FormatError and no mesh.
func Load(r io.Reader) (*Mesh, error) {
	off, err := formats.ParseOFF(r)
	if err != nil {
		return nil, err
	}
	m := FromOFF(off)
	logLoaded(m)
	return m, nil
}

// LoadFile loads an OFF file from disk.
func LoadFile(path string) (*Mesh, error) {
	off, err := formats.LoadOFF(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading mesh")
	}
	m := FromOFF(off)
	logLoaded(m)
	return m, nil
}

func logLoaded(m *Mesh) {
	logger.Named("mesh").Info("mesh loaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(m.Faces)),
	)
}

// Bounds returns the bounding box of all vertex positions.
// An empty mesh has a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		p := v.Position
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}
