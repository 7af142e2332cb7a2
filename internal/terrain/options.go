package terrain

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when a requested resolution is larger
	// than a builder's preallocated scratch buffers. The call fails outright
	// rather than silently truncating the grid.
	ErrCapacityExceeded = errors.New("terrain: grid capacity exceeded")

	// ErrInvalidParameters is returned for malformed option structs, before
	// any computation begins.
	ErrInvalidParameters = errors.New("terrain: invalid parameters")
)

// NoiseParams controls fractal noise sampling. Octave i is sampled at
// frequency Lacunarity^i with amplitude Persistence^i.
type NoiseParams struct {
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Seed        int64
}

// DefaultNoiseParams returns parameters producing gently rolling terrain.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Scale:       50,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

func (p NoiseParams) Validate() error {
	if p.Scale <= 0 {
		return fmt.Errorf("%w: noise scale %v must be positive", ErrInvalidParameters, p.Scale)
	}
	if p.Octaves < 1 {
		return fmt.Errorf("%w: octaves %d must be at least 1", ErrInvalidParameters, p.Octaves)
	}
	if p.Persistence <= 0 || p.Persistence > 1 {
		return fmt.Errorf("%w: persistence %v must be in (0,1]", ErrInvalidParameters, p.Persistence)
	}
	if p.Lacunarity <= 1 {
		return fmt.Errorf("%w: lacunarity %v must be greater than 1", ErrInvalidParameters, p.Lacunarity)
	}
	return nil
}

// Options configures one terrain generation call: a Resolution x Resolution
// height-field grid spanning WorldWidth x WorldDepth in the x/z plane, with
// raw noise values mapped to [MinHeight, MaxHeight] at mesh assembly.
type Options struct {
	Name             string
	WorldWidth       float64
	WorldDepth       float64
	Resolution       int
	MinHeight        float64
	MaxHeight        float64
	Noise            NoiseParams
	Smooth           bool
	SmoothIterations int
}

// DefaultOptions returns a medium-sized terrain configuration.
func DefaultOptions() Options {
	return Options{
		Name:             "terrain",
		WorldWidth:       200,
		WorldDepth:       200,
		Resolution:       128,
		MinHeight:        0,
		MaxHeight:        24,
		Noise:            DefaultNoiseParams(),
		Smooth:           true,
		SmoothIterations: 2,
	}
}

func (o Options) Validate() error {
	if o.WorldWidth <= 0 || o.WorldDepth <= 0 {
		return fmt.Errorf("%w: world size %vx%v must be positive", ErrInvalidParameters, o.WorldWidth, o.WorldDepth)
	}
	if o.Resolution < 2 {
		return fmt.Errorf("%w: resolution %d must be at least 2", ErrInvalidParameters, o.Resolution)
	}
	if o.MaxHeight < o.MinHeight {
		return fmt.Errorf("%w: max height %v below min height %v", ErrInvalidParameters, o.MaxHeight, o.MinHeight)
	}
	if o.SmoothIterations < 0 {
		return fmt.Errorf("%w: smooth iterations %d must not be negative", ErrInvalidParameters, o.SmoothIterations)
	}
	return o.Noise.Validate()
}
