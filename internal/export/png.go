package export

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/landform/internal/terrain"
)

// hypsoStop is one control point of the elevation color ramp.
type hypsoStop struct {
	v       float64
	r, g, b float64
}

// Lowlands green through highland brown to snowcap white.
var hypsoRamp = []hypsoStop{
	{0.00, 0.16, 0.32, 0.20},
	{0.30, 0.30, 0.45, 0.22},
	{0.55, 0.52, 0.44, 0.26},
	{0.75, 0.48, 0.42, 0.38},
	{0.90, 0.70, 0.68, 0.66},
	{1.00, 0.96, 0.96, 0.97},
}

// RenderHeightField draws a hypsometric-tinted, hillshaded preview of the
// field at cellSize pixels per grid cell.
func RenderHeightField(f *terrain.HeightField, cellSize int) image.Image {
	if cellSize < 1 {
		cellSize = 1
	}
	dc := gg.NewContext(f.Width*cellSize, f.Height*cellSize)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			dc.SetColor(cellColor(f, x, y))
			dc.DrawRectangle(float64(x*cellSize), float64(y*cellSize), float64(cellSize), float64(cellSize))
			dc.Fill()
		}
	}
	return dc.Image()
}

// SaveHeightFieldPNG writes the rendered preview to path.
func SaveHeightFieldPNG(f *terrain.HeightField, path string, cellSize int) error {
	img := RenderHeightField(f, cellSize)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save height field png: %w", err)
	}
	return nil
}

func cellColor(f *terrain.HeightField, x, y int) color.Color {
	v := clampUnit(f.At(x, y))
	r, g, b := rampColor(v)
	shade := hillshade(f, x, y)
	return color.RGBA{
		R: uint8(clampUnit(r*shade) * 255),
		G: uint8(clampUnit(g*shade) * 255),
		B: uint8(clampUnit(b*shade) * 255),
		A: 255,
	}
}

func rampColor(v float64) (r, g, b float64) {
	for i := 1; i < len(hypsoRamp); i++ {
		if v <= hypsoRamp[i].v {
			lo, hi := hypsoRamp[i-1], hypsoRamp[i]
			t := 0.0
			if hi.v > lo.v {
				t = (v - lo.v) / (hi.v - lo.v)
			}
			return lo.r + (hi.r-lo.r)*t, lo.g + (hi.g-lo.g)*t, lo.b + (hi.b-lo.b)*t
		}
	}
	last := hypsoRamp[len(hypsoRamp)-1]
	return last.r, last.g, last.b
}

// hillshade approximates Lambert shading from the local height gradient,
// lit from the northwest. Returns a factor in [0.55, 1.15].
func hillshade(f *terrain.HeightField, x, y int) float64 {
	left := f.At(clampInt(x-1, 0, f.Width-1), y)
	right := f.At(clampInt(x+1, 0, f.Width-1), y)
	up := f.At(x, clampInt(y-1, 0, f.Height-1))
	down := f.At(x, clampInt(y+1, 0, f.Height-1))

	gx := (right - left) * float64(f.Width)
	gy := (down - up) * float64(f.Height)

	// Light direction (-1, -1) in grid space.
	lit := (-gx - gy) * 0.15
	return clampF(0.85+lit, 0.55, 1.15)
}

func clampUnit(v float64) float64 {
	return clampF(v, 0, 1)
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

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
