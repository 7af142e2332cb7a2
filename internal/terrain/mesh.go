package terrain

import "math"

// Mesh is an indexed triangle mesh with flat attribute buffers, laid out
// the way the rendering collaborator consumes them: 3 floats per position
// and normal, 2 per UV, CCW triangle winding.
type Mesh struct {
	Positions []float32
	Indices   []uint32
	UVs       []float32
	Normals   []float32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) position(i int) (x, y, z float64) {
	return float64(m.Positions[i*3]), float64(m.Positions[i*3+1]), float64(m.Positions[i*3+2])
}

func (m *Mesh) heightAt(i int) float64 {
	return float64(m.Positions[i*3+1])
}

func (m *Mesh) setHeight(i int, y float64) {
	m.Positions[i*3+1] = float32(y)
}

// bounds returns the x/z footprint of the mesh.
func (m *Mesh) bounds() (minX, minZ, maxX, maxZ float64) {
	if m.VertexCount() == 0 {
		return 0, 0, 0, 0
	}
	minX, minZ = math.Inf(1), math.Inf(1)
	maxX, maxZ = math.Inf(-1), math.Inf(-1)
	for i := 0; i < m.VertexCount(); i++ {
		x, _, z := m.position(i)
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minZ = math.Min(minZ, z)
		maxZ = math.Max(maxZ, z)
	}
	return minX, minZ, maxX, maxZ
}

// AssembleMesh converts a height field into a regular grid mesh centered
// on the origin and spanning worldWidth x worldDepth in the x/z plane.
// Raw field values are mapped to [MinHeight, MaxHeight]. Each quad emits
// two CCW triangles: (bottomLeft, bottomRight, topRight) and
// (bottomLeft, topRight, topLeft).
func AssembleMesh(field *HeightField, worldWidth, worldDepth float64) *Mesh {
	w, h := field.Width, field.Height
	cellW := worldWidth / float64(w-1)
	cellD := worldDepth / float64(h-1)
	heightRange := field.MaxHeight - field.MinHeight

	m := &Mesh{
		Positions: make([]float32, 0, w*h*3),
		Indices:   make([]uint32, 0, (w-1)*(h-1)*6),
		UVs:       make([]float32, 0, w*h*2),
		Normals:   make([]float32, w*h*3),
	}

	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			px := float64(x)*cellW - worldWidth/2
			py := field.At(x, z)*heightRange + field.MinHeight
			pz := float64(z)*cellD - worldDepth/2
			m.Positions = append(m.Positions, float32(px), float32(py), float32(pz))
			m.UVs = append(m.UVs, float32(x)/float32(w-1), float32(z)/float32(h-1))
		}
	}

	// Row z+1 is the bottom edge of the quad (larger z), so the CCW
	// windings below face +y.
	for z := 0; z < h-1; z++ {
		for x := 0; x < w-1; x++ {
			tl := uint32(z*w + x)
			tr := tl + 1
			bl := uint32((z+1)*w + x)
			br := bl + 1
			m.Indices = append(m.Indices, bl, br, tr)
			m.Indices = append(m.Indices, bl, tr, tl)
		}
	}

	m.RecomputeNormals()
	return m
}

// RecomputeNormals rebuilds smooth-shaded vertex normals by accumulating
// each triangle's area-weighted face normal into its three vertices and
// normalizing the result. Must be called after every in-place vertex
// mutation. Vertices touched only by degenerate triangles fall back to
// the up vector.
func (m *Mesh) RecomputeNormals() {
	if len(m.Normals) != len(m.Positions) {
		m.Normals = make([]float32, len(m.Positions))
	}
	nx := make([]float64, m.VertexCount())
	ny := make([]float64, m.VertexCount())
	nz := make([]float64, m.VertexCount())

	for t := 0; t < len(m.Indices); t += 3 {
		i0, i1, i2 := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		x0, y0, z0 := m.position(i0)
		x1, y1, z1 := m.position(i1)
		x2, y2, z2 := m.position(i2)

		// Cross product of the two edges; magnitude is twice the triangle
		// area, which weights the accumulation.
		ex1, ey1, ez1 := x1-x0, y1-y0, z1-z0
		ex2, ey2, ez2 := x2-x0, y2-y0, z2-z0
		cx := ey1*ez2 - ez1*ey2
		cy := ez1*ex2 - ex1*ez2
		cz := ex1*ey2 - ey1*ex2

		for _, i := range [3]int{i0, i1, i2} {
			nx[i] += cx
			ny[i] += cy
			nz[i] += cz
		}
	}

	for i := 0; i < m.VertexCount(); i++ {
		l := math.Sqrt(nx[i]*nx[i] + ny[i]*ny[i] + nz[i]*nz[i])
		if l < 1e-12 {
			m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2] = 0, 1, 0
			continue
		}
		m.Normals[i*3] = float32(nx[i] / l)
		m.Normals[i*3+1] = float32(ny[i] / l)
		m.Normals[i*3+2] = float32(nz[i] / l)
	}
}
