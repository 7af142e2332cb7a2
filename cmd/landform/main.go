package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/appengine-ltd/landform/internal/export"
	"github.com/appengine-ltd/landform/internal/terrain"
)

// version, commit, date are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		seed        int64
		resolution  int
		world       float64
		minHeight   float64
		maxHeight   float64
		noiseScale  float64
		octaves     int
		persistence float64
		lacunarity  float64
		smooth      int
		mountains   int
		river       bool
		erosion     string
		erosionIter int
		biome       string
		intensity   float64
		outPNG      string
		outOBJ      string
		pngCell     int
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Int64Var(&seed, "seed", 0, "generation seed")
	flag.IntVar(&resolution, "resolution", 128, "grid cells per side")
	flag.Float64Var(&world, "world", 200, "world width and depth")
	flag.Float64Var(&minHeight, "min-height", 0, "minimum terrain height")
	flag.Float64Var(&maxHeight, "max-height", 24, "maximum terrain height")
	flag.Float64Var(&noiseScale, "scale", 50, "noise scale")
	flag.IntVar(&octaves, "octaves", 4, "noise octaves")
	flag.Float64Var(&persistence, "persistence", 0.5, "noise persistence")
	flag.Float64Var(&lacunarity, "lacunarity", 2, "noise lacunarity")
	flag.IntVar(&smooth, "smooth", 2, "box-smoothing iterations (0 disables)")
	flag.IntVar(&mountains, "mountains", 0, "number of mountains to stamp")
	flag.BoolVar(&river, "river", false, "carve a river across the terrain")
	flag.StringVar(&erosion, "erosion", "", "erosion kind: thermal, hydraulic or combined")
	flag.IntVar(&erosionIter, "erosion-iterations", 200, "erosion iterations / droplets")
	flag.StringVar(&biome, "biome", "", "biome modulation: plains, mountains, desert, forest, tundra or swamp")
	flag.Float64Var(&intensity, "intensity", 1, "biome intensity in [0,1]")
	flag.StringVar(&outPNG, "png", "", "write a height-field preview PNG to this path")
	flag.StringVar(&outOBJ, "obj", "", "write the mesh as Wavefront OBJ to this path")
	flag.IntVar(&pngCell, "png-cell", 2, "preview pixels per grid cell")
	flag.Parse()

	if showVersion {
		fmt.Printf("landform %s (%s) %s\n", version, commit, date)
		return
	}

	opts := terrain.Options{
		Name:       "landform",
		WorldWidth: world,
		WorldDepth: world,
		Resolution: resolution,
		MinHeight:  minHeight,
		MaxHeight:  maxHeight,
		Noise: terrain.NoiseParams{
			Scale:       noiseScale,
			Octaves:     octaves,
			Persistence: persistence,
			Lacunarity:  lacunarity,
			Seed:        seed,
		},
		Smooth:           smooth > 0,
		SmoothIterations: smooth,
	}

	if err := run(opts, seed, mountains, river, erosion, erosionIter, biome, intensity, outPNG, outOBJ, pngCell); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts terrain.Options, seed int64, mountains int, river bool, erosion string, erosionIter int, biome string, intensity float64, outPNG, outOBJ string, pngCell int) error {
	gen := terrain.NewGenerator()

	mesh, field, err := gen.Generate(opts)
	if err != nil {
		return err
	}
	log.Printf("generated %dx%d height field, %d vertices, %d triangles",
		field.Width, field.Height, mesh.VertexCount(), mesh.TriangleCount())

	for i := 0; i < mountains; i++ {
		mopts := terrain.DefaultMountainOptions()
		mopts.Seed = seed + int64(i)
		mopts.CenterX = opts.WorldWidth * (float64(i+1)/float64(mountains+1) - 0.5)
		mopts.CenterZ = opts.WorldDepth * (float64(mountains-i)/float64(mountains+1) - 0.5)
		mopts.Radius = opts.WorldWidth / float64(mountains+2)
		mopts.PeakHeight = (opts.MaxHeight - opts.MinHeight) * 0.8
		if err := terrain.StampMountain(mesh, mopts); err != nil {
			return err
		}
		log.Printf("stamped mountain at (%.1f, %.1f) radius %.1f", mopts.CenterX, mopts.CenterZ, mopts.Radius)
	}

	if river {
		ropts := terrain.DefaultRiverOptions()
		ropts.Start = terrain.PathPoint{X: -opts.WorldWidth / 2, Z: -opts.WorldDepth / 4}
		ropts.End = terrain.PathPoint{X: opts.WorldWidth / 2, Z: opts.WorldDepth / 4}
		ropts.HasEnd = true
		ropts.Width = opts.WorldWidth / 30
		ropts.Depth = (opts.MaxHeight - opts.MinHeight) * 0.3
		ropts.Seed = seed
		if err := terrain.CarveRiver(mesh, ropts); err != nil {
			return err
		}
		log.Printf("carved river, width %.1f depth %.1f", ropts.Width, ropts.Depth)
	}

	if erosion != "" {
		kind, err := terrain.ParseErosionKind(erosion)
		if err != nil {
			return err
		}
		eopts := terrain.DefaultErosionOptions()
		eopts.Kind = kind
		eopts.Iterations = erosionIter
		eopts.Seed = seed
		if err := gen.Erode(mesh, eopts); err != nil {
			return err
		}
		log.Printf("applied %s erosion, %d iterations", kind, erosionIter)
	}

	if biome != "" {
		kind, err := terrain.ParseBiomeKind(biome)
		if err != nil {
			return err
		}
		bopts := terrain.DefaultBiomeOptions(kind)
		bopts.Intensity = intensity
		bopts.Seed = seed
		if err := terrain.ApplyBiome(mesh, bopts); err != nil {
			return err
		}
		log.Printf("applied %s biome modulation", kind)
	}

	if outPNG != "" {
		if err := export.SaveHeightFieldPNG(field, outPNG, pngCell); err != nil {
			return err
		}
		log.Printf("wrote %s", outPNG)
	}
	if outOBJ != "" {
		if err := export.SaveOBJ(mesh, outOBJ, opts.Name); err != nil {
			return err
		}
		log.Printf("wrote %s", outOBJ)
	}
	return nil
}
