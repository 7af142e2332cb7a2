package terrain

// flatMesh assembles an n x n grid mesh spanning world x world, with every
// vertex at the given height.
func flatMesh(n int, world, height float64) *Mesh {
	field := &HeightField{
		Width:     n,
		Height:    n,
		Values:    make([]float64, n*n),
		MinHeight: height,
		MaxHeight: height,
	}
	return AssembleMesh(field, world, world)
}

func meshHeights(m *Mesh) []float64 {
	out := make([]float64, m.VertexCount())
	for i := range out {
		out[i] = m.heightAt(i)
	}
	return out
}

// vertexAt returns the index of the vertex closest to (x, z).
func vertexAt(m *Mesh, x, z float64) int {
	best := 0
	bestDist := -1.0
	for i := 0; i < m.VertexCount(); i++ {
		vx, _, vz := m.position(i)
		d := (vx-x)*(vx-x) + (vz-z)*(vz-z)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
