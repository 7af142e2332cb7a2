package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/appengine-ltd/landform/internal/terrain"
)

// WriteOBJ writes the mesh as Wavefront OBJ: one v/vt/vn statement per
// vertex and one f statement per triangle, 1-based indices.
func WriteOBJ(w io.Writer, m *terrain.Mesh, name string) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for i := 0; i < m.VertexCount(); i++ {
		fmt.Fprintf(bw, "v %g %g %g\n", m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2])
	}
	for i := 0; i < m.VertexCount(); i++ {
		fmt.Fprintf(bw, "vt %g %g\n", m.UVs[i*2], m.UVs[i*2+1])
	}
	for i := 0; i < m.VertexCount(); i++ {
		fmt.Fprintf(bw, "vn %g %g %g\n", m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2])
	}
	for t := 0; t < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t]+1, m.Indices[t+1]+1, m.Indices[t+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// SaveOBJ writes the mesh to an OBJ file at path.
func SaveOBJ(m *terrain.Mesh, path, name string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save obj: %w", err)
	}
	defer file.Close()
	if err := WriteOBJ(file, m, name); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("save obj: %w", err)
	}
	return nil
}
