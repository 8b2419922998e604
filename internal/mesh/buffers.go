package mesh

// VertexData interleaves position and normal per vertex, FloatsPerVertex floats each,
// in vertex order. This is the layout the GL vertex buffer expects.
func (m *Mesh) VertexData() []float32 {
	data := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
		)
	}
	return data
}

// Indices flattens all face index lists in face order.
func (m *Mesh) Indices() []uint32 {
	n := 0
	for _, f := range m.Faces {
		n += len(f)
	}
	indices := make([]uint32, 0, n)
	for _, f := range m.Faces {
		for _, idx := range f {
			indices = append(indices, uint32(idx))
		}
	}
	return indices
}

// TriangleIndices fans each polygon around its first vertex, so a face with
// k vertices becomes k-2 triangles. Faces must be convex to render correctly.
func (m *Mesh) TriangleIndices() []uint32 {
	n := 0
	for _, f := range m.Faces {
		n += 3 * (len(f) - 2)
	}
	indices := make([]uint32, 0, n)
	for _, f := range m.Faces {
		for j := 1; j+1 < len(f); j++ {
			indices = append(indices, uint32(f[0]), uint32(f[j]), uint32(f[j+1]))
		}
	}
	return indices
}
