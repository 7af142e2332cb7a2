package terrain

import "math"

// ErodeThermal relaxes slopes steeper than the talus threshold by moving
// material from each triangle's highest vertex to its lowest. talusAngle
// in [0, 1] maps to a maximum stable height-per-horizontal-distance ratio
// via tan(talusAngle*pi/2). strength in [0, 1] is the fraction of the
// excess moved per triangle per iteration.
//
// All triangles in one iteration read from and write into a snapshot of
// the heights taken at the start of the iteration, so the result does not
// depend on triangle traversal order; the snapshot replaces the live
// heights at iteration end. Transfers are balanced per triangle but a
// vertex shared by several triangles accumulates each one's contribution
// independently, so the pass is only approximately mass-conserving.
// Normals are recomputed once at the end.
func ErodeThermal(m *Mesh, iterations int, strength, talusAngle float64) {
	if iterations <= 0 || m.TriangleCount() == 0 {
		return
	}
	strength = clampF(strength, 0, 1)
	maxRatio := math.Tan(clampF(talusAngle, 0, 0.999) * math.Pi / 2)

	snap := make([]float64, m.VertexCount())

	for range iterations {
		for i := range snap {
			snap[i] = m.heightAt(i)
		}

		for t := 0; t < len(m.Indices); t += 3 {
			i0, i1, i2 := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])

			hi, lo := i0, i0
			for _, i := range [2]int{i1, i2} {
				if snap[i] > snap[hi] {
					hi = i
				}
				if snap[i] < snap[lo] {
					lo = i
				}
			}
			if hi == lo {
				continue
			}

			hx, _, hz := m.position(hi)
			lx, _, lz := m.position(lo)
			horiz := math.Hypot(hx-lx, hz-lz)
			if horiz < 1e-9 {
				continue
			}

			diff := snap[hi] - snap[lo]
			limit := horiz * maxRatio
			if diff <= limit {
				continue
			}
			moved := strength * (diff - limit)
			snap[hi] -= moved
			snap[lo] += moved
		}

		for i := range snap {
			m.setHeight(i, snap[i])
		}
	}

	m.RecomputeNormals()
}
