package terrain

import "fmt"

// ErosionKind selects the erosion simulation applied to a mesh.
type ErosionKind int

const (
	ErosionThermal ErosionKind = iota
	ErosionHydraulic
	ErosionCombined
)

var erosionNames = map[int]string{
	int(ErosionThermal):   "thermal",
	int(ErosionHydraulic): "hydraulic",
	int(ErosionCombined):  "combined",
}

func (k ErosionKind) String() string {
	if name, ok := erosionNames[int(k)]; ok {
		return name
	}
	return fmt.Sprintf("erosion(%d)", int(k))
}

// ParseErosionKind resolves an erosion kind name with the same typo
// tolerance as ParseBiomeKind.
func ParseErosionKind(s string) (ErosionKind, error) {
	kind, err := fuzzyMatchKind(s, erosionNames)
	if err != nil {
		return 0, fmt.Errorf("%w: erosion %w", ErrInvalidParameters, err)
	}
	return ErosionKind(kind), nil
}

// ErosionOptions configures one erosion pass.
type ErosionOptions struct {
	Kind ErosionKind
	// Iterations counts thermal passes or hydraulic droplets.
	Iterations int
	// Strength in [0, 1] scales per-step material transfer.
	Strength float64
	// TalusAngle in [0, 1] is the normalized stable-slope threshold for
	// thermal erosion; tan(TalusAngle*pi/2) is the maximum stable
	// height-per-distance ratio.
	TalusAngle float64
	// Hydraulic tunes the droplet simulation.
	Hydraulic HydraulicOptions
	// Seed drives hydraulic droplet spawns.
	Seed int64
}

// DefaultErosionOptions returns a balanced combined pass.
func DefaultErosionOptions() ErosionOptions {
	return ErosionOptions{
		Kind:       ErosionCombined,
		Iterations: 50,
		Strength:   0.5,
		TalusAngle: 0.5,
		Hydraulic:  DefaultHydraulicOptions(),
	}
}

func (o ErosionOptions) Validate() error {
	if _, ok := erosionNames[int(o.Kind)]; !ok {
		return fmt.Errorf("%w: unknown erosion kind %d", ErrInvalidParameters, int(o.Kind))
	}
	if o.Iterations < 0 {
		return fmt.Errorf("%w: erosion iterations %d must not be negative", ErrInvalidParameters, o.Iterations)
	}
	if o.Strength < 0 || o.Strength > 1 {
		return fmt.Errorf("%w: erosion strength %v must be in [0,1]", ErrInvalidParameters, o.Strength)
	}
	if o.TalusAngle < 0 || o.TalusAngle > 1 {
		return fmt.Errorf("%w: talus angle %v must be in [0,1]", ErrInvalidParameters, o.TalusAngle)
	}
	return nil
}

// Generator runs the full pipeline: height field from seeded noise,
// optional feature carving, erosion and biome passes, and mesh assembly.
// It owns a Builder whose scratch buffers are reused across calls, so a
// Generator supports one generation in flight at a time; callers must not
// invoke it from two goroutines simultaneously. There is no internal
// locking.
type Generator struct {
	builder *Builder
}

// NewGenerator returns a generator with default scratch capacity.
func NewGenerator() *Generator {
	return &Generator{builder: NewDefaultBuilder()}
}

// NewGeneratorWithCapacity bounds the scratch buffers at maxCells grid
// cells.
func NewGeneratorWithCapacity(maxCells int) *Generator {
	return &Generator{builder: NewBuilder(maxCells)}
}

// Generate builds a height field from the options and assembles it into a
// mesh. Both are returned: the mesh goes to the rendering collaborator,
// the field to collision/physics. Identical options produce identical
// results.
func (g *Generator) Generate(opts Options) (*Mesh, *HeightField, error) {
	field, err := g.builder.Build(opts)
	if err != nil {
		return nil, nil, err
	}
	mesh := AssembleMesh(field, opts.WorldWidth, opts.WorldDepth)
	return mesh, field, nil
}

// Erode applies the configured erosion simulation to the mesh in place.
func (g *Generator) Erode(m *Mesh, opts ErosionOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	switch opts.Kind {
	case ErosionThermal:
		ErodeThermal(m, opts.Iterations, opts.Strength, opts.TalusAngle)
	case ErosionHydraulic:
		ErodeHydraulic(m, opts.Iterations, opts.Strength, opts.Hydraulic, seededRNG(opts.Seed, "hydraulic"))
	case ErosionCombined:
		ErodeThermal(m, opts.Iterations, opts.Strength, opts.TalusAngle)
		ErodeHydraulic(m, opts.Iterations, opts.Strength, opts.Hydraulic, seededRNG(opts.Seed, "hydraulic"))
	}
	return nil
}
