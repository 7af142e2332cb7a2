package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/landform/internal/terrain"
)

const (
	windowWidth  = 1280
	windowHeight = 800
	// maxViewResolution keeps vertex indices within raylib's 16-bit mesh
	// index range (256*256 vertices, max index 65535).
	maxViewResolution = 256
)

func main() {
	var (
		seed       int64
		resolution int
		erosion    bool
		biomeName  string
	)
	flag.Int64Var(&seed, "seed", 0, "generation seed")
	flag.IntVar(&resolution, "resolution", 128, "grid cells per side (max 256)")
	flag.BoolVar(&erosion, "erosion", false, "apply combined erosion after generation")
	flag.StringVar(&biomeName, "biome", "", "biome modulation to apply")
	flag.Parse()

	if resolution > maxViewResolution {
		resolution = maxViewResolution
	}

	var biome terrain.BiomeKind
	haveBiome := false
	if biomeName != "" {
		kind, err := terrain.ParseBiomeKind(biomeName)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		biome = kind
		haveBiome = true
	}

	rl.InitWindow(windowWidth, windowHeight, "landform viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	gen := terrain.NewGenerator()
	model, err := buildModel(gen, seed, resolution, erosion, haveBiome, biome)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.UnloadModel(model)

	camera := rl.Camera3D{
		Position:   rl.NewVector3(140, 90, 140),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	wireframe := false
	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&camera, rl.CameraOrbital)

		if rl.IsKeyPressed(rl.KeyW) {
			wireframe = !wireframe
		}
		if rl.IsKeyPressed(rl.KeyR) {
			seed++
			rl.UnloadModel(model)
			model, err = buildModel(gen, seed, resolution, erosion, haveBiome, biome)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 24, 30, 255))

		rl.BeginMode3D(camera)
		if wireframe {
			rl.DrawModelWires(model, rl.NewVector3(0, 0, 0), 1, rl.NewColor(120, 200, 140, 255))
		} else {
			rl.DrawModel(model, rl.NewVector3(0, 0, 0), 1, rl.NewColor(110, 140, 96, 255))
		}
		rl.DrawGrid(20, 10)
		rl.EndMode3D()

		rl.DrawText(fmt.Sprintf("seed %d   [R] regenerate   [W] wireframe", seed), 16, 16, 20, rl.RayWhite)
		rl.EndDrawing()
	}
}

func buildModel(gen *terrain.Generator, seed int64, resolution int, erosion, haveBiome bool, biome terrain.BiomeKind) (rl.Model, error) {
	opts := terrain.DefaultOptions()
	opts.Resolution = resolution
	opts.Noise.Seed = seed

	mesh, _, err := gen.Generate(opts)
	if err != nil {
		return rl.Model{}, err
	}

	if erosion {
		eopts := terrain.DefaultErosionOptions()
		eopts.Iterations = 300
		eopts.Seed = seed
		if err := gen.Erode(mesh, eopts); err != nil {
			return rl.Model{}, err
		}
	}
	if haveBiome {
		bopts := terrain.DefaultBiomeOptions(biome)
		bopts.Seed = seed
		if err := terrain.ApplyBiome(mesh, bopts); err != nil {
			return rl.Model{}, err
		}
	}

	return rl.LoadModelFromMesh(uploadMesh(mesh)), nil
}

// uploadMesh hands the flat attribute buffers to raylib for GPU upload.
// The index buffer is narrowed to raylib's 16-bit indices; the resolution
// cap in main guarantees they fit.
func uploadMesh(m *terrain.Mesh) rl.Mesh {
	indices := make([]uint16, len(m.Indices))
	for i, idx := range m.Indices {
		indices[i] = uint16(idx)
	}

	mesh := rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
	}
	mesh.Vertices = (*float32)(unsafe.Pointer(&m.Positions[0]))
	mesh.Normals = (*float32)(unsafe.Pointer(&m.Normals[0]))
	mesh.Texcoords = (*float32)(unsafe.Pointer(&m.UVs[0]))
	mesh.Indices = (*uint16)(unsafe.Pointer(&indices[0]))

	rl.UploadMesh(&mesh, false)
	return mesh
}
