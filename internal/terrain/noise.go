package terrain

// Gradient noise in the style of Perlin's improved noise. Produces
// continuous values in roughly [-1, 1].

// gradients2 are the eight unit/diagonal gradient directions used for
// corner vectors. Diagonals are left unnormalized; the fractal remap
// clamps the final output range.
var gradients2 = [8][2]float64{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
	{1, 1},
	{-1, 1},
	{1, -1},
	{-1, -1},
}

// PermutationTable is a seeded 256-entry lookup table, duplicated to 512
// entries so corner lookups never need a wraparound branch.
type PermutationTable struct {
	perm [512]uint8
}

// Reseed deterministically rebuilds the table with a Fisher-Yates shuffle
// driven by a seed-derived PRNG. Identical seeds yield identical tables.
func (pt *PermutationTable) Reseed(seed int64) {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	r := seededRNG(seed, "perm")
	for i := 255; i > 0; i-- {
		j := r.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 512; i++ {
		pt.perm[i] = p[i&255]
	}
}

// NoiseField samples 2D gradient noise from a seeded permutation table.
// It is pure given a fixed table: identical inputs always yield identical
// outputs. Reseed replaces the table in place.
type NoiseField struct {
	table PermutationTable
}

// NewNoiseField returns a noise field seeded with the given seed.
func NewNoiseField(seed int64) *NoiseField {
	nf := &NoiseField{}
	nf.table.Reseed(seed)
	return nf
}

// Reseed rebuilds the permutation table in place.
func (nf *NoiseField) Reseed(seed int64) {
	nf.table.Reseed(seed)
}

// Sample returns continuous 2D gradient noise for (x, y) in roughly [-1, 1].
func (nf *NoiseField) Sample(x, y float64) float64 {
	x0 := fastFloor(x)
	y0 := fastFloor(y)
	xf := x - float64(x0)
	yf := y - float64(y0)

	ix := x0 & 255
	iy := y0 & 255

	g00 := nf.gradient(ix, iy)
	g10 := nf.gradient(ix+1, iy)
	g01 := nf.gradient(ix, iy+1)
	g11 := nf.gradient(ix+1, iy+1)

	d00 := g00[0]*xf + g00[1]*yf
	d10 := g10[0]*(xf-1) + g10[1]*yf
	d01 := g01[0]*xf + g01[1]*(yf-1)
	d11 := g11[0]*(xf-1) + g11[1]*(yf-1)

	u := fade(xf)
	v := fade(yf)

	nx0 := d00 + (d10-d00)*u
	nx1 := d01 + (d11-d01)*u
	return nx0 + (nx1-nx0)*v
}

func (nf *NoiseField) gradient(ix, iy int) [2]float64 {
	h := nf.table.perm[ix+int(nf.table.perm[iy&255])]
	return gradients2[h&7]
}

// SampleFractal sums Octaves calls to Sample at geometrically increasing
// frequency (Lacunarity^i) and decreasing amplitude (Persistence^i),
// scaled by 1/Scale, normalized by total amplitude, and remapped from
// [-1, 1] to [0, 1].
func (nf *NoiseField) SampleFractal(x, y float64, p NoiseParams) float64 {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	sx := x / scale
	sy := y / scale

	total := 0.0
	totalAmp := 0.0
	frequency := 1.0
	amplitude := 1.0
	for range max(p.Octaves, 1) {
		total += nf.Sample(sx*frequency, sy*frequency) * amplitude
		totalAmp += amplitude
		frequency *= p.Lacunarity
		amplitude *= p.Persistence
	}
	if totalAmp <= 0 {
		return 0.5
	}
	n := total / totalAmp
	return clampF((n+1)*0.5, 0, 1)
}

// fade is the quintic interpolation curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
