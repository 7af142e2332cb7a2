package terrain

import (
	"fmt"
	"math"
)

// mountainSeedSalt decorrelates the roughness noise patch from the base
// height-field noise.
const mountainSeedSalt = "mountain"

// MountainOptions configures a single mountain stamp.
type MountainOptions struct {
	CenterX float64
	CenterZ float64
	Radius  float64
	// PeakHeight is the additional height applied at the center.
	PeakHeight float64
	// Roughness in [0, 1] scales noise-driven surface irregularity.
	Roughness float64
	// Steepness in [0, 1] sharpens the peak falloff.
	Steepness float64
	// PlateauHeight, when positive, flattens the top: vertices whose
	// distance factor exceeds this fraction get a near-flat cap instead
	// of the falloff curve.
	PlateauHeight float64
	// Seed drives the roughness noise patch.
	Seed int64
}

// DefaultMountainOptions returns a medium, moderately rough peak at the
// origin.
func DefaultMountainOptions() MountainOptions {
	return MountainOptions{
		Radius:     30,
		PeakHeight: 18,
		Roughness:  0.4,
		Steepness:  0.5,
	}
}

func (o MountainOptions) Validate() error {
	if o.Radius <= 0 {
		return fmt.Errorf("%w: mountain radius %v must be positive", ErrInvalidParameters, o.Radius)
	}
	if o.Roughness < 0 || o.Roughness > 1 {
		return fmt.Errorf("%w: roughness %v must be in [0,1]", ErrInvalidParameters, o.Roughness)
	}
	if o.Steepness < 0 || o.Steepness > 1 {
		return fmt.Errorf("%w: steepness %v must be in [0,1]", ErrInvalidParameters, o.Steepness)
	}
	if o.PlateauHeight < 0 || o.PlateauHeight > 1 {
		return fmt.Errorf("%w: plateau height %v must be in [0,1]", ErrInvalidParameters, o.PlateauHeight)
	}
	return nil
}

// StampMountain raises mesh vertices within Radius of the center (x/z
// distance) by a noise-roughened falloff of PeakHeight. The effect is
// strictly local and additive: vertices at or beyond Radius are left
// untouched. Normals are recomputed afterwards.
func StampMountain(m *Mesh, opts MountainOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	noise := NewNoiseField(offsetSeed(opts.Seed, mountainSeedSalt))
	noiseParams := NoiseParams{
		Scale:       math.Max(opts.Radius/4, 1),
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2,
	}

	// Steepness 1 would make the exponent blow up; 0.8 caps it at 5.
	exponent := 1 / (1 - opts.Steepness*0.8)

	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.position(i)
		dx := x - opts.CenterX
		dz := z - opts.CenterZ
		dist := math.Sqrt(dx*dx + dz*dz)
		if dist >= opts.Radius {
			continue
		}

		distFactor := 1 - dist/opts.Radius
		n := noise.SampleFractal(x, z, noiseParams)

		var raise float64
		if opts.PlateauHeight > 0 && distFactor > opts.PlateauHeight {
			raise = opts.PeakHeight * (0.9 + n*opts.Roughness*0.1)
		} else {
			falloff := math.Pow(distFactor, exponent)
			raise = opts.PeakHeight * falloff * (1 + n*opts.Roughness)
		}
		m.setHeight(i, y+raise)
	}

	m.RecomputeNormals()
	return nil
}
