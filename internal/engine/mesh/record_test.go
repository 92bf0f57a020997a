package mesh

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestIndicesBytes(t *testing.T) {
	u16 := U16Indices{1, 2, 0xBEEF}
	buf := u16.Bytes()
	if len(buf) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(buf))
	}
	if got := binary.LittleEndian.Uint16(buf[4:]); got != 0xBEEF {
		t.Errorf("expected 0xBEEF at offset 4, got %#x", got)
	}

	u32 := U32Indices{7, 0xDEADBEEF}
	buf = u32.Bytes()
	if len(buf) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[4:]); got != 0xDEADBEEF {
		t.Errorf("expected 0xDEADBEEF at offset 4, got %#x", got)
	}
}

func TestNewIndexed(t *testing.T) {
	d := NewIndexed(U16Indices{0, 1, 2, 2, 3, 0})
	if d.Count != 6 {
		t.Errorf("expected count 6, got %d", d.Count)
	}
	if d.Format != IndexUint16 {
		t.Errorf("expected format uint16, got %s", d.Format)
	}

	w := NewIndexed(U32Indices{0, 1, 2})
	if w.Format != IndexUint32 {
		t.Errorf("expected format uint32, got %s", w.Format)
	}
}

func TestBuildRecordIndexed(t *testing.T) {
	verts := []StandardVertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{0, 1, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 1}},
	}
	rec := BuildRecord(verts, []uint32{0, 1, 2})

	if rec.VertexCount != 3 {
		t.Errorf("expected vertex count 3, got %d", rec.VertexCount)
	}
	if len(rec.VertexData) != 3*32 {
		t.Errorf("expected %d vertex bytes, got %d", 3*32, len(rec.VertexData))
	}

	// Second vertex starts at byte 32; its position.x is 1.0
	bits := binary.LittleEndian.Uint32(rec.VertexData[32:])
	if math.Float32frombits(bits) != 1.0 {
		t.Errorf("expected position.x 1.0 at vertex 1, got %f", math.Float32frombits(bits))
	}
	// Its texcoord.u sits at offset 32+24
	bits = binary.LittleEndian.Uint32(rec.VertexData[56:])
	if math.Float32frombits(bits) != 1.0 {
		t.Errorf("expected texcoord.u 1.0 at vertex 1, got %f", math.Float32frombits(bits))
	}

	// Small meshes store 16-bit indices
	d, ok := rec.IndexData.(Indexed)
	if !ok {
		t.Fatalf("expected Indexed data, got %T", rec.IndexData)
	}
	if d.Format != IndexUint16 {
		t.Errorf("expected uint16 indices, got %s", d.Format)
	}
	if rec.Key.Index != IndexUint16 {
		t.Errorf("key index format should be uint16, got %s", rec.Key.Index)
	}
	if rec.Key.Topology != TopologyTriangleList {
		t.Errorf("expected triangle-list topology, got %s", rec.Key.Topology)
	}
}

func TestBuildRecordNonIndexed(t *testing.T) {
	verts := make([]StandardVertex, 6)
	rec := BuildRecord(verts, nil)

	d, ok := rec.IndexData.(NonIndexed)
	if !ok {
		t.Fatalf("expected NonIndexed data, got %T", rec.IndexData)
	}
	if d.VertexCount != 6 {
		t.Errorf("expected vertex count 6, got %d", d.VertexCount)
	}
	if rec.Key.Index != IndexNone {
		t.Errorf("key index format should be none, got %s", rec.Key.Index)
	}
}

func TestTable(t *testing.T) {
	table := NewTable()
	if table.Len() != 0 {
		t.Errorf("new table should be empty")
	}

	rec := BuildRecord(make([]StandardVertex, 3), []uint32{0, 1, 2})
	table.Insert("tri", rec)

	got, ok := table.Lookup("tri")
	if !ok || got != rec {
		t.Error("Lookup should return the inserted record")
	}
	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup of missing id should report false")
	}
	if table.Len() != 1 {
		t.Errorf("expected len 1, got %d", table.Len())
	}
}
