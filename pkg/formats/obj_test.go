package formats

import (
	"errors"
	"testing"
)

const quadOBJ = `# simple quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJ_Quad(t *testing.T) {
	obj, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(obj.Vertices))
	}
	// Quad fans into two triangles
	if len(obj.Indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(obj.Indices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, v := range want {
		if obj.Indices[i] != v {
			t.Errorf("index %d: expected %d, got %d", i, v, obj.Indices[i])
		}
	}

	v0 := obj.Vertices[0]
	if v0.Position != [3]float32{0, 0, 0} {
		t.Errorf("unexpected position for vertex 0: %v", v0.Position)
	}
	if v0.Normal != [3]float32{0, 0, 1} {
		t.Errorf("unexpected normal for vertex 0: %v", v0.Normal)
	}
	if v0.TexCoord != [2]float32{0, 0} {
		t.Errorf("unexpected texcoord for vertex 0: %v", v0.TexCoord)
	}
}

func TestParseOBJ_DeduplicatesCorners(t *testing.T) {
	// Two triangles sharing an edge, written with repeated references
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 2 4 3
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Vertices) != 4 {
		t.Errorf("expected shared corners to deduplicate to 4 vertices, got %d", len(obj.Vertices))
	}
	if len(obj.Indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(obj.Indices))
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	want := []uint32{0, 1, 2}
	for i, v := range want {
		if obj.Indices[i] != v {
			t.Errorf("index %d: expected %d, got %d", i, v, obj.Indices[i])
		}
	}
}

func TestParseOBJ_PositionOnlyAndNormalOnly(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.Vertices[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("expected normal (0,0,1), got %v", obj.Vertices[0].Normal)
	}
	if obj.Vertices[0].TexCoord != [2]float32{} {
		t.Errorf("expected zero texcoord, got %v", obj.Vertices[0].TexCoord)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "face index out of range",
			data: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
			want: ErrOBJIndexRange,
		},
		{
			name: "face with too few corners",
			data: "v 0 0 0\nv 1 0 0\nf 1 2\n",
			want: ErrOBJBadFace,
		},
		{
			name: "zero face index",
			data: "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
			want: ErrOBJBadFace,
		},
		{
			name: "malformed vertex",
			data: "v 0 zero 0\n",
			want: ErrOBJBadVertex,
		},
		{
			name: "no geometry",
			data: "v 0 0 0\nv 1 0 0\nv 0 1 0\n",
			want: ErrOBJNoGeometry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseOBJ_SkipsUnknownStatements(t *testing.T) {
	data := `
o cube
g side
usemtl wood
s off
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Indices) != 3 {
		t.Errorf("expected 3 indices, got %d", len(obj.Indices))
	}
}
