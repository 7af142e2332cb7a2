package terrain

import (
	"errors"
	"testing"
)

func buildOpts(resolution int, seed int64) Options {
	return Options{
		WorldWidth: 100,
		WorldDepth: 100,
		Resolution: resolution,
		MinHeight:  0,
		MaxHeight:  10,
		Noise: NoiseParams{
			Scale:       10,
			Octaves:     1,
			Persistence: 0.5,
			Lacunarity:  2,
			Seed:        seed,
		},
	}
}

func TestBuildDeterministic(t *testing.T) {
	// Same seed and options must yield bit-for-bit identical buffers,
	// including across builder instances.
	opts := buildOpts(5, 42)

	f1, err := NewDefaultBuilder().Build(opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f2, err := NewDefaultBuilder().Build(opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(f1.Values) != 25 || len(f2.Values) != 25 {
		t.Fatalf("expected 25-value buffers, got %d and %d", len(f1.Values), len(f2.Values))
	}
	for i := range f1.Values {
		if f1.Values[i] != f2.Values[i] {
			t.Fatalf("buffers differ at %d: %v vs %v", i, f1.Values[i], f2.Values[i])
		}
	}
}

func TestBuildReusesBuilderAcrossCalls(t *testing.T) {
	b := NewDefaultBuilder()
	opts := buildOpts(16, 7)

	f1, err := b.Build(opts)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	want := make([]float64, len(f1.Values))
	copy(want, f1.Values)

	// A second build with a different seed must not corrupt the first
	// field, and rebuilding with the original seed must match it.
	if _, err := b.Build(buildOpts(16, 8)); err != nil {
		t.Fatalf("second build: %v", err)
	}
	for i := range want {
		if f1.Values[i] != want[i] {
			t.Fatalf("earlier field mutated at %d", i)
		}
	}

	f3, err := b.Build(opts)
	if err != nil {
		t.Fatalf("third build: %v", err)
	}
	for i := range want {
		if f3.Values[i] != want[i] {
			t.Fatalf("rebuild with same seed differs at %d", i)
		}
	}
}

func TestBuildValuesInUnitRange(t *testing.T) {
	opts := buildOpts(64, 3)
	opts.Noise.Octaves = 5

	f, err := NewDefaultBuilder().Build(opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i, v := range f.Values {
		if v < 0 || v > 1 {
			t.Fatalf("value %d = %v, out of [0,1]", i, v)
		}
	}
}

func TestBuildCapacityExceeded(t *testing.T) {
	b := NewBuilder(16)

	_, err := b.Build(buildOpts(5, 0)) // 25 cells > 16
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestBuildInvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"resolution too small", func(o *Options) { o.Resolution = 1 }},
		{"zero scale", func(o *Options) { o.Noise.Scale = 0 }},
		{"zero octaves", func(o *Options) { o.Noise.Octaves = 0 }},
		{"lacunarity too small", func(o *Options) { o.Noise.Lacunarity = 1 }},
		{"negative world", func(o *Options) { o.WorldWidth = -1 }},
		{"inverted height range", func(o *Options) { o.MinHeight = 5; o.MaxHeight = 1 }},
	}
	b := NewDefaultBuilder()
	for _, tc := range cases {
		opts := buildOpts(8, 0)
		tc.mutate(&opts)
		if _, err := b.Build(opts); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%s: expected ErrInvalidParameters, got %v", tc.name, err)
		}
	}
}

func TestSmoothAveragesInterior(t *testing.T) {
	// A single interior spike averages down to 1/5 after one pass; border
	// cells are never touched.
	f := &HeightField{Width: 3, Height: 3, Values: make([]float64, 9)}
	f.Set(1, 1, 1)
	f.Set(0, 0, 0.4)

	if err := NewDefaultBuilder().Smooth(f, 1); err != nil {
		t.Fatalf("smooth: %v", err)
	}
	if got := f.At(1, 1); got != 0.2 {
		t.Fatalf("interior cell: got %v, want 0.2", got)
	}
	if got := f.At(0, 0); got != 0.4 {
		t.Fatalf("border cell changed: got %v, want 0.4", got)
	}
}

func TestSmoothReadsFromSnapshot(t *testing.T) {
	// With two adjacent interior spikes, each must be averaged from the
	// pre-pass values, not from a partially smoothed row.
	f := &HeightField{Width: 4, Height: 4, Values: make([]float64, 16)}
	f.Set(1, 1, 1)
	f.Set(2, 1, 1)

	if err := NewDefaultBuilder().Smooth(f, 1); err != nil {
		t.Fatalf("smooth: %v", err)
	}
	// Each spike sees: itself (1) + the other spike (1) + three zeros.
	if got := f.At(1, 1); got != 0.4 {
		t.Fatalf("cell (1,1): got %v, want 0.4", got)
	}
	if got := f.At(2, 1); got != 0.4 {
		t.Fatalf("cell (2,1): got %v, want 0.4", got)
	}
}

func TestWorldHeightAt(t *testing.T) {
	f := &HeightField{Width: 2, Height: 2, Values: []float64{0, 0.5, 1, 0.25}, MinHeight: 10, MaxHeight: 30}

	cases := []struct {
		x, y int
		want float64
	}{
		{0, 0, 10},
		{1, 0, 20},
		{0, 1, 30},
		{1, 1, 15},
	}
	for _, tc := range cases {
		if got := f.WorldHeightAt(tc.x, tc.y); got != tc.want {
			t.Errorf("WorldHeightAt(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
