package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/pkg/math"
)

// FaceNormal returns the unit geometric normal of face i, taken from its first
// three vertices as (v1-v0) x (v2-v0). ok is false when those vertices are
// collinear or coincident; the returned normal is then zero.
func (m *Mesh) FaceNormal(i int) (n math.Vec3, ok bool) {
	f := m.Faces[i]
	v0 := m.Vertices[f[0]].Position
	v1 := m.Vertices[f[1]].Position
	v2 := m.Vertices[f[2]].Position

	cross := v1.Sub(v0).Cross(v2.Sub(v0))
	if cross.Length() == 0 {
		return math.Vec3{}, false
	}
	return cross.Normalize(), true
}

// ComputeNormals adds every face normal into each vertex the face references.
// The per-vertex result is the raw sum and is not renormalized, so vertices with
// more incident faces get longer normals. Calling it twice accumulates twice.
// It returns the number of degenerate faces, which contribute nothing.
func (m *Mesh) ComputeNormals() int {
	log := logger.Named("mesh")
	degenerate := 0

	for i, f := range m.Faces {
		n, ok := m.FaceNormal(i)
		if !ok {
			degenerate++
			log.Warn("degenerate face normal", zap.Int("face", i), zap.Ints("vertices", f[:3]))
		}
		for _, idx := range f {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(n)
		}
	}

	log.Debug("normals accumulated",
		zap.Int("faces", len(m.Faces)),
		zap.Int("degenerate", degenerate),
	)
	return degenerate
}
