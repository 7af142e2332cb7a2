package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/appengine-ltd/landform/internal/terrain"
)

func TestWriteOBJStatementCounts(t *testing.T) {
	mesh := terrain.AssembleMesh(gradientField(3), 10, 10)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh, "terrain"); err != nil {
		t.Fatalf("write: %v", err)
	}

	counts := map[string]int{}
	for _, line := range strings.Split(buf.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
	}

	if counts["o"] != 1 {
		t.Errorf("expected 1 object statement, got %d", counts["o"])
	}
	if counts["v"] != mesh.VertexCount() {
		t.Errorf("expected %d v statements, got %d", mesh.VertexCount(), counts["v"])
	}
	if counts["vt"] != mesh.VertexCount() {
		t.Errorf("expected %d vt statements, got %d", mesh.VertexCount(), counts["vt"])
	}
	if counts["vn"] != mesh.VertexCount() {
		t.Errorf("expected %d vn statements, got %d", mesh.VertexCount(), counts["vn"])
	}
	if counts["f"] != mesh.TriangleCount() {
		t.Errorf("expected %d f statements, got %d", mesh.TriangleCount(), counts["f"])
	}
}

func TestWriteOBJOmitsEmptyName(t *testing.T) {
	mesh := terrain.AssembleMesh(gradientField(3), 10, 10)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh, ""); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.HasPrefix(buf.String(), "o ") {
		t.Error("expected no object statement for empty name")
	}
}

func TestWriteOBJIndicesAreOneBased(t *testing.T) {
	mesh := terrain.AssembleMesh(gradientField(2), 10, 10)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh, "t"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), " 0/") {
		t.Error("found zero-based face index")
	}
}

func TestSaveOBJ(t *testing.T) {
	mesh := terrain.AssembleMesh(gradientField(3), 10, 10)
	path := t.TempDir() + "/mesh.obj"

	if err := SaveOBJ(mesh, path, "terrain"); err != nil {
		t.Fatalf("save: %v", err)
	}
}
