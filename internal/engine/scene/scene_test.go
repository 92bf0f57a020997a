package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/draycott/meshbatch/internal/config"
	"github.com/draycott/meshbatch/internal/engine/batch"
	"github.com/draycott/meshbatch/internal/engine/instance"
	"github.com/draycott/meshbatch/internal/engine/mesh"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`

func writeOBJ(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(triangleOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeOBJ(t, "tri.obj")
	cfg := config.SceneConfig{
		Models: []config.ModelConfig{
			{
				Name: "tri",
				Path: path,
				Instances: []config.Placement{
					{Position: [3]float32{1, 2, 3}},
					{Position: [3]float32{4, 5, 6}, Scale: 2},
				},
			},
		},
	}

	s, err := Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Meshes.Len() != 1 {
		t.Fatalf("mesh table has %d records, want 1", s.Meshes.Len())
	}
	rec, ok := s.Meshes.Lookup("tri")
	if !ok {
		t.Fatal("mesh \"tri\" not in table")
	}
	if rec.VertexCount != 3 {
		t.Errorf("vertex count = %d, want 3", rec.VertexCount)
	}
	if len(s.Refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(s.Refs))
	}
	if s.Refs[0].Entity == s.Refs[1].Entity {
		t.Error("entities are not unique")
	}
	if s.Refs[0].Material != "flat" {
		t.Errorf("default material = %q, want \"flat\"", s.Refs[0].Material)
	}
}

func TestLoadNameDefaultsToPath(t *testing.T) {
	path := writeOBJ(t, "unnamed.obj")
	cfg := config.SceneConfig{
		Models: []config.ModelConfig{{Path: path}},
	}
	s, err := Load(cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := s.Meshes.Lookup(mesh.ID(path)); !ok {
		t.Errorf("mesh not registered under its path %q", path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg := config.SceneConfig{
		Models: []config.ModelConfig{{Path: "does-not-exist.obj"}},
	}
	if _, err := Load(cfg); err == nil {
		t.Fatal("expected error for missing model file")
	}
}

func TestInstanceCounts(t *testing.T) {
	s := &Scene{}
	for i := 0; i < 3; i++ {
		s.Refs = append(s.Refs, ref("a"))
	}
	s.Refs = append(s.Refs, ref("b"))

	counts := s.InstanceCounts()
	if counts["a"] != 3 || counts["b"] != 1 {
		t.Errorf("counts = %v, want a:3 b:1", counts)
	}
}

func TestTransformsForMemberOrder(t *testing.T) {
	s := &Scene{}
	// Interleave placements so member grouping has to reorder them.
	s.Refs = append(s.Refs, refAt("a", 1), refAt("b", 10), refAt("a", 2))

	b := &batch.Batch{Meshes: []mesh.ID{"a", "b"}}
	got := s.TransformsFor(b)
	if len(got) != 48 {
		t.Fatalf("got %d floats, want 48", len(got))
	}
	// Translation X lives at column-major element 12 of each matrix.
	xs := []float32{got[12], got[16+12], got[32+12]}
	want := []float32{1, 2, 10}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("matrix %d translation x = %v, want %v", i, xs[i], want[i])
		}
	}
}

func TestPlacementMatrixDefaults(t *testing.T) {
	m := placementMatrix(config.Placement{Position: [3]float32{7, 8, 9}})
	if m[0] != 1 || m[5] != 1 || m[10] != 1 {
		t.Errorf("zero scale should default to 1, got diagonal %v %v %v", m[0], m[5], m[10])
	}
	if m[12] != 7 || m[13] != 8 || m[14] != 9 {
		t.Errorf("translation = %v %v %v, want 7 8 9", m[12], m[13], m[14])
	}
}

func ref(id mesh.ID) instance.Ref { return refAt(id, 0) }

func refAt(id mesh.ID, x float32) instance.Ref {
	return instance.Ref{
		Mesh:      id,
		Transform: placementMatrix(config.Placement{Position: [3]float32{x, 0, 0}}),
	}
}
