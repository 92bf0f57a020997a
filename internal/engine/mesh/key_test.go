package mesh

import (
	"slices"
	"testing"
)

func TestKeyEquality(t *testing.T) {
	a := NewKey(StandardLayout(), TopologyTriangleList, IndexUint16)
	b := NewKey(StandardLayout(), TopologyTriangleList, IndexUint16)
	if a != b {
		t.Error("keys for identical structure should be equal")
	}

	c := NewKey(StandardLayout(), TopologyTriangleList, IndexUint32)
	if a == c {
		t.Error("keys with different index formats should differ")
	}

	d := NewKey(StandardLayout(), TopologyLineList, IndexUint16)
	if a == d {
		t.Error("keys with different topologies should differ")
	}
}

func TestKeyCompareTotalOrder(t *testing.T) {
	layout := StandardLayout()
	keys := []Key{
		NewKey(layout, TopologyTriangleList, IndexUint32),
		NewKey(layout, TopologyPointList, IndexNone),
		NewKey(layout, TopologyTriangleList, IndexUint16),
		NewKey(layout, TopologyLineStrip, IndexUint16),
	}

	slices.SortFunc(keys, Key.Compare)

	for i := 1; i < len(keys); i++ {
		if keys[i-1].Compare(keys[i]) >= 0 {
			t.Errorf("keys not strictly ascending at %d: %v >= %v", i, keys[i-1], keys[i])
		}
	}

	// Compare must be antisymmetric
	if keys[0].Compare(keys[1]) != -keys[1].Compare(keys[0]) {
		t.Error("Compare is not antisymmetric")
	}
	if keys[0].Compare(keys[0]) != 0 {
		t.Error("Compare of equal keys should be 0")
	}
}

func TestLayoutFingerprint(t *testing.T) {
	std := StandardLayout()
	if std.Fingerprint() != StandardLayout().Fingerprint() {
		t.Error("identical layouts must share a fingerprint")
	}

	positionOnly := Layout{
		Attributes: []VertexAttribute{
			{Name: "position", Format: VertexFloat32x3, Offset: 0, Location: 0},
		},
		Stride: 12,
	}
	if std.Fingerprint() == positionOnly.Fingerprint() {
		t.Error("different layouts must not collide")
	}

	// Attribute names are descriptive only; location/format/offset decide
	renamed := StandardLayout()
	renamed.Attributes[1].Name = "nrm"
	if std.Fingerprint() != renamed.Fingerprint() {
		t.Error("attribute names should not affect the fingerprint")
	}
}

func TestIndexFormatSize(t *testing.T) {
	tests := []struct {
		format IndexFormat
		size   int
	}{
		{IndexNone, 0},
		{IndexUint16, 2},
		{IndexUint32, 4},
	}
	for _, tt := range tests {
		if got := tt.format.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.format, got, tt.size)
		}
	}
}
