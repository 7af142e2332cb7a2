package terrain

import "fmt"

// DefaultMaxGridCells bounds the scratch buffers of a default builder.
// 512x512 keeps a full generation call well under a second on modest
// hardware while staying far above typical play-size grids.
const DefaultMaxGridCells = 512 * 512

// HeightField is a 2D grid of scalar elevation samples. Values are raw
// noise in [0, 1]; they are mapped to [MinHeight, MaxHeight] world-space
// heights when the field is assembled into a mesh.
type HeightField struct {
	Width     int
	Height    int
	Values    []float64
	MinHeight float64
	MaxHeight float64
}

func (f *HeightField) index(x, y int) int {
	return y*f.Width + x
}

// At returns the raw value at grid cell (x, y).
func (f *HeightField) At(x, y int) float64 {
	return f.Values[f.index(x, y)]
}

// Set writes the raw value at grid cell (x, y).
func (f *HeightField) Set(x, y int, v float64) {
	f.Values[f.index(x, y)] = v
}

// WorldHeightAt returns the world-space height of cell (x, y) after the
// [MinHeight, MaxHeight] mapping applied at mesh assembly.
func (f *HeightField) WorldHeightAt(x, y int) float64 {
	return f.At(x, y)*(f.MaxHeight-f.MinHeight) + f.MinHeight
}

// Builder fills height fields from seeded fractal noise. Its scratch
// buffers are allocated once, sized to maxCells, and reused across calls;
// a builder therefore supports only one generation in flight at a time
// and must not be shared between goroutines without external ownership
// discipline.
type Builder struct {
	noise   *NoiseField
	scratch []float64
	tmp     []float64
}

// NewBuilder returns a builder whose scratch buffers hold up to maxCells
// grid cells. Requests beyond that capacity fail with ErrCapacityExceeded.
func NewBuilder(maxCells int) *Builder {
	if maxCells < 4 {
		maxCells = 4
	}
	return &Builder{
		noise:   NewNoiseField(0),
		scratch: make([]float64, maxCells),
		tmp:     make([]float64, maxCells),
	}
}

// NewDefaultBuilder returns a builder sized to DefaultMaxGridCells.
func NewDefaultBuilder() *Builder {
	return NewBuilder(DefaultMaxGridCells)
}

// Build fills a new height field by sampling fractal noise at every grid
// cell, then box-smooths it if requested. Given identical options
// (including seed) the returned buffer is bit-for-bit identical across
// calls.
func (b *Builder) Build(opts Options) (*HeightField, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	w, h := opts.Resolution, opts.Resolution
	cells := w * h
	if cells > len(b.scratch) {
		return nil, fmt.Errorf("%w: %d cells requested, builder holds %d", ErrCapacityExceeded, cells, len(b.scratch))
	}

	b.noise.Reseed(opts.Noise.Seed)

	buf := b.scratch[:cells]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = b.noise.SampleFractal(float64(x), float64(y), opts.Noise)
		}
	}

	field := &HeightField{
		Width:     w,
		Height:    h,
		Values:    make([]float64, cells),
		MinHeight: opts.MinHeight,
		MaxHeight: opts.MaxHeight,
	}
	copy(field.Values, buf)

	if opts.Smooth && opts.SmoothIterations > 0 {
		if err := b.Smooth(field, opts.SmoothIterations); err != nil {
			return nil, err
		}
	}
	return field, nil
}

// Smooth applies a 5-point box filter (center plus the 4 cardinal
// neighbors, divided by 5) to the interior cells of the field, iterated
// the given number of times. The border row/column is left untouched.
// Each pass reads from a snapshot copy so results do not depend on
// traversal order.
func (b *Builder) Smooth(field *HeightField, iterations int) error {
	w, h := field.Width, field.Height
	cells := w * h
	if cells > len(b.tmp) {
		return fmt.Errorf("%w: %d cells requested, builder holds %d", ErrCapacityExceeded, cells, len(b.tmp))
	}
	snap := b.tmp[:cells]
	for range iterations {
		copy(snap, field.Values)
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				i := y*w + x
				field.Values[i] = (snap[i] + snap[i-1] + snap[i+1] + snap[i-w] + snap[i+w]) / 5
			}
		}
	}
	return nil
}
