package terrain

import (
	"fmt"
	"math"
)

// PathPoint is a 2D control point in the x/z plane.
type PathPoint struct {
	X float64
	Z float64
}

// RiverOptions configures a carved river channel.
type RiverOptions struct {
	Start PathPoint
	End   PathPoint
	// HasEnd distinguishes a start->end channel from a single-point pool.
	HasEnd bool
	// ControlPoints, when two or more are given, override Start/End and
	// define the channel path directly.
	ControlPoints []PathPoint
	// Width is the half-profile of the channel: vertices farther than
	// Width from the centerline are untouched.
	Width float64
	// Depth is the carve depth at the centerline.
	Depth float64
	// Meandering in [0, 1] controls the sinusoidal lateral wander of a
	// start->end channel.
	Meandering float64
	// Tributaries is the number of shorter child channels branched off
	// the main path.
	Tributaries int
	// Seed drives tributary placement.
	Seed int64
}

// DefaultRiverOptions returns a moderately meandering channel profile.
func DefaultRiverOptions() RiverOptions {
	return RiverOptions{
		Width:      6,
		Depth:      3,
		Meandering: 0.3,
	}
}

func (o RiverOptions) Validate() error {
	if o.Width <= 0 {
		return fmt.Errorf("%w: river width %v must be positive", ErrInvalidParameters, o.Width)
	}
	if o.Depth < 0 {
		return fmt.Errorf("%w: river depth %v must not be negative", ErrInvalidParameters, o.Depth)
	}
	if o.Meandering < 0 || o.Meandering > 1 {
		return fmt.Errorf("%w: meandering %v must be in [0,1]", ErrInvalidParameters, o.Meandering)
	}
	if len(o.ControlPoints) == 1 {
		return fmt.Errorf("%w: a control-point path needs at least 2 points", ErrInvalidParameters)
	}
	if o.Tributaries < 0 {
		return fmt.Errorf("%w: tributary count %d must not be negative", ErrInvalidParameters, o.Tributaries)
	}
	return nil
}

// CarveRiver lowers mesh vertices near a river path. The path comes from
// explicit control points, a meandered start->end line, or a single point.
// A vertex within Width of the path is lowered by
// Depth*(1-dist/Width)^0.7, clamped so height never drops below zero.
// Normals are recomputed once at the end.
func CarveRiver(m *Mesh, opts RiverOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	path := buildRiverPath(opts)
	carveChannel(m, path, opts.Width, opts.Depth)

	if opts.Tributaries > 0 && len(path) >= 2 {
		carveTributaries(m, path, opts)
	}

	m.RecomputeNormals()
	return nil
}

func buildRiverPath(opts RiverOptions) []PathPoint {
	if len(opts.ControlPoints) >= 2 {
		return opts.ControlPoints
	}
	if !opts.HasEnd {
		return []PathPoint{opts.Start}
	}

	dx := opts.End.X - opts.Start.X
	dz := opts.End.Z - opts.Start.Z
	length := math.Sqrt(dx*dx + dz*dz)
	if length < 1e-9 {
		return []PathPoint{opts.Start}
	}

	// Perpendicular to the start->end direction, for lateral offsets.
	px := -dz / length
	pz := dx / length

	segments := clamp(int(math.Ceil(length/opts.Width)), 8, 128)
	path := make([]PathPoint, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		// Three half-waves over the channel; zero offset at both ends.
		offset := math.Sin(t*math.Pi*3) * opts.Meandering * opts.Width
		path = append(path, PathPoint{
			X: opts.Start.X + dx*t + px*offset,
			Z: opts.Start.Z + dz*t + pz*offset,
		})
	}
	return path
}

func carveChannel(m *Mesh, path []PathPoint, width, depth float64) {
	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.position(i)
		d := distanceToPath(x, z, path)
		if d >= width {
			continue
		}
		carve := depth * math.Pow(1-d/width, 0.7)
		m.setHeight(i, math.Max(y-carve, 0))
	}
}

// carveTributaries branches deterministic child channels off the main
// path, each shorter and narrower than its parent.
func carveTributaries(m *Mesh, path []PathPoint, opts RiverOptions) {
	r := seededRNG(opts.Seed, "tributaries")
	mainLength := pathLength(path)
	for i := 0; i < opts.Tributaries; i++ {
		t := float64(i+1) / float64(opts.Tributaries+1)
		branch := pointAlongPath(path, t)
		angle := r.Float64() * 2 * math.Pi
		length := mainLength * (0.2 + r.Float64()*0.2)
		end := PathPoint{
			X: branch.X + math.Cos(angle)*length,
			Z: branch.Z + math.Sin(angle)*length,
		}
		carveChannel(m, []PathPoint{branch, end}, opts.Width*0.5, opts.Depth*0.6)
	}
}

// distanceToPath returns the minimum distance from (x, z) to any segment
// of the path. A single-point path degenerates to point distance.
func distanceToPath(x, z float64, path []PathPoint) float64 {
	if len(path) == 1 {
		return math.Hypot(x-path[0].X, z-path[0].Z)
	}
	best := math.Inf(1)
	for i := 0; i < len(path)-1; i++ {
		d := pointSegmentDistance(x, z, path[i], path[i+1])
		if d < best {
			best = d
		}
	}
	return best
}

// pointSegmentDistance projects (x, z) onto segment a->b, clamping the
// projection parameter to [0, 1]. A zero-length segment is treated as a
// point so the division below never sees a zero denominator.
func pointSegmentDistance(x, z float64, a, b PathPoint) float64 {
	sx := b.X - a.X
	sz := b.Z - a.Z
	lenSq := sx*sx + sz*sz
	if lenSq < 1e-12 {
		return math.Hypot(x-a.X, z-a.Z)
	}
	t := clampF(((x-a.X)*sx+(z-a.Z)*sz)/lenSq, 0, 1)
	return math.Hypot(x-(a.X+sx*t), z-(a.Z+sz*t))
}

func pathLength(path []PathPoint) float64 {
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		total += math.Hypot(path[i+1].X-path[i].X, path[i+1].Z-path[i].Z)
	}
	return total
}

// pointAlongPath returns the point at normalized arc length t in [0, 1].
func pointAlongPath(path []PathPoint, t float64) PathPoint {
	total := pathLength(path)
	if total < 1e-12 {
		return path[0]
	}
	target := clampF(t, 0, 1) * total
	walked := 0.0
	for i := 0; i < len(path)-1; i++ {
		seg := math.Hypot(path[i+1].X-path[i].X, path[i+1].Z-path[i].Z)
		if walked+seg >= target && seg > 0 {
			f := (target - walked) / seg
			return PathPoint{
				X: lerp(path[i].X, path[i+1].X, f),
				Z: lerp(path[i].Z, path[i+1].Z, f),
			}
		}
		walked += seg
	}
	return path[len(path)-1]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
