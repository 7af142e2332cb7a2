package terrain

import (
	"math"
	"math/rand/v2"
)

// HydraulicOptions tunes the droplet simulation.
type HydraulicOptions struct {
	// DropletLifetime is the maximum number of steps a droplet takes.
	DropletLifetime int
	// Inertia in [0, 1] blends a droplet's previous direction with the
	// downhill gradient; higher values keep droplets on course.
	Inertia float64
	// Capacity scales how much sediment a droplet can carry.
	Capacity float64
}

// DefaultHydraulicOptions returns droplet parameters that carve visible
// gullies without flattening the terrain.
func DefaultHydraulicOptions() HydraulicOptions {
	return HydraulicOptions{
		DropletLifetime: 30,
		Inertia:         0.05,
		Capacity:        4,
	}
}

const (
	// evaporation is the per-step water decay factor.
	evaporation = 0.99
	// maxErodePerStep caps how much height one droplet step may remove.
	maxErodePerStep = 0.1
)

// droplet is the state of one simulated raindrop.
type droplet struct {
	x, z     float64
	dirX     float64
	dirZ     float64
	speed    float64
	water    float64
	sediment float64
}

// ErodeHydraulic simulates iterations discrete raindrops over the mesh.
// Each droplet spawns uniformly within the mesh footprint and walks
// downhill for up to DropletLifetime steps, eroding height into carried
// sediment while under capacity and depositing the excess when over it,
// both weighted by the barycentric coordinates of the containing
// triangle. A droplet that leaves the footprint terminates early.
// Normals are recomputed once, after all droplets.
//
// The rng drives droplet spawns; pass one derived from a fixed seed for
// reproducible erosion. A nil rng falls back to a zero-seeded one.
func ErodeHydraulic(m *Mesh, iterations int, strength float64, opts HydraulicOptions, rng *rand.Rand) {
	if iterations <= 0 || m.TriangleCount() == 0 {
		return
	}
	if rng == nil {
		rng = seededRNG(0, "hydraulic")
	}
	strength = clampF(strength, 0, 1)
	inertia := clampF(opts.Inertia, 0, 1)
	lifetime := opts.DropletLifetime
	if lifetime <= 0 {
		lifetime = DefaultHydraulicOptions().DropletLifetime
	}

	minX, minZ, maxX, maxZ := m.bounds()

	for range iterations {
		d := droplet{
			x:     minX + rng.Float64()*(maxX-minX),
			z:     minZ + rng.Float64()*(maxZ-minZ),
			speed: 1,
			water: 1,
		}

		for step := 0; step < lifetime; step++ {
			tri, w0, w1, w2 := m.locateTriangle(d.x, d.z)
			if tri < 0 {
				break
			}
			i0 := int(m.Indices[tri])
			i1 := int(m.Indices[tri+1])
			i2 := int(m.Indices[tri+2])

			gx, gz := m.triangleGradient(i0, i1, i2)
			slope := math.Hypot(gx, gz)

			// Blend previous direction with the downhill gradient.
			d.dirX = d.dirX*inertia - gx*(1-inertia)
			d.dirZ = d.dirZ*inertia - gz*(1-inertia)
			dirLen := math.Hypot(d.dirX, d.dirZ)
			if dirLen < 1e-9 {
				// Flat spot: wander in a random direction instead of stalling.
				angle := rng.Float64() * 2 * math.Pi
				d.dirX = math.Cos(angle)
				d.dirZ = math.Sin(angle)
			} else {
				d.dirX /= dirLen
				d.dirZ /= dirLen
			}

			capacity := d.speed * slope * d.water * opts.Capacity
			if d.sediment > capacity {
				deposit := (d.sediment - capacity) * strength
				d.sediment -= deposit
				m.adjustTriangleHeights(i0, i1, i2, w0, w1, w2, deposit)
			} else {
				erode := math.Min((capacity-d.sediment)*strength, maxErodePerStep)
				d.sediment += erode
				m.adjustTriangleHeights(i0, i1, i2, w0, w1, w2, -erode)
			}

			d.x += d.dirX
			d.z += d.dirZ
			d.water *= evaporation
			d.speed = clampF(d.speed*0.9+slope, 0, 10)
		}
	}

	m.RecomputeNormals()
}

// locateTriangle finds the triangle containing (x, z) and returns its
// first index offset plus the barycentric weights of the point. Triangles
// with near-zero area report zero weights and are skipped. Returns -1 if
// no triangle contains the point.
func (m *Mesh) locateTriangle(x, z float64) (tri int, w0, w1, w2 float64) {
	const eps = 1e-7
	for t := 0; t < len(m.Indices); t += 3 {
		i0, i1, i2 := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		x0, _, z0 := m.position(i0)
		x1, _, z1 := m.position(i1)
		x2, _, z2 := m.position(i2)

		denom := (z1-z2)*(x0-x2) + (x2-x1)*(z0-z2)
		if math.Abs(denom) < 1e-12 {
			continue
		}
		a := ((z1-z2)*(x-x2) + (x2-x1)*(z-z2)) / denom
		b := ((z2-z0)*(x-x2) + (x0-x2)*(z-z2)) / denom
		c := 1 - a - b
		if a >= -eps && b >= -eps && c >= -eps {
			return t, a, b, c
		}
	}
	return -1, 0, 0, 0
}

// triangleGradient estimates the height gradient (dh/dx, dh/dz) of the
// triangle's plane from its vertex height differences. A vertical or
// degenerate plane reports a zero gradient.
func (m *Mesh) triangleGradient(i0, i1, i2 int) (gx, gz float64) {
	x0, y0, z0 := m.position(i0)
	x1, y1, z1 := m.position(i1)
	x2, y2, z2 := m.position(i2)

	// Plane normal from the two edges; gradient follows from n.
	ex1, ey1, ez1 := x1-x0, y1-y0, z1-z0
	ex2, ey2, ez2 := x2-x0, y2-y0, z2-z0
	nx := ey1*ez2 - ez1*ey2
	ny := ez1*ex2 - ex1*ez2
	nz := ex1*ey2 - ey1*ex2
	if math.Abs(ny) < 1e-12 {
		return 0, 0
	}
	return -nx / ny, -nz / ny
}

func (m *Mesh) adjustTriangleHeights(i0, i1, i2 int, w0, w1, w2, delta float64) {
	m.setHeight(i0, m.heightAt(i0)+delta*w0)
	m.setHeight(i1, m.heightAt(i1)+delta*w1)
	m.setHeight(i2, m.heightAt(i2)+delta*w2)
}
