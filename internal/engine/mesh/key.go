// Package mesh defines the render-side mesh data model: raw vertex and
// index buffers plus the structural key that decides which meshes can be
// merged into one instanced batch.
package mesh

import (
	"fmt"
	"strings"
)

// IndexFormat is the width of a mesh's index buffer entries.
// The zero value means the mesh has no index buffer at all.
type IndexFormat uint8

// Index format constants.
const (
	IndexNone   IndexFormat = 0 // no index buffer
	IndexUint16 IndexFormat = 1
	IndexUint32 IndexFormat = 2
)

// Size returns the size of one index in bytes (0 for IndexNone).
func (f IndexFormat) Size() int {
	switch f {
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		return 0
	}
}

// String returns a human-readable format name.
func (f IndexFormat) String() string {
	switch f {
	case IndexNone:
		return "none"
	case IndexUint16:
		return "uint16"
	case IndexUint32:
		return "uint32"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// PrimitiveTopology is the primitive assembly mode of a mesh.
type PrimitiveTopology uint8

// Topology constants.
const (
	TopologyPointList PrimitiveTopology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
)

// String returns a human-readable topology name.
func (t PrimitiveTopology) String() string {
	switch t {
	case TopologyPointList:
		return "point-list"
	case TopologyLineList:
		return "line-list"
	case TopologyLineStrip:
		return "line-strip"
	case TopologyTriangleList:
		return "triangle-list"
	case TopologyTriangleStrip:
		return "triangle-strip"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// VertexFormat is the component type of a single vertex attribute.
type VertexFormat uint8

// Vertex format constants.
const (
	VertexFloat32x2 VertexFormat = iota
	VertexFloat32x3
	VertexFloat32x4
)

// Size returns the size of one attribute value in bytes.
func (f VertexFormat) Size() uint32 {
	switch f {
	case VertexFloat32x2:
		return 8
	case VertexFloat32x3:
		return 12
	case VertexFloat32x4:
		return 16
	default:
		return 0
	}
}

// Components returns the number of float32 components per attribute.
func (f VertexFormat) Components() int32 {
	switch f {
	case VertexFloat32x2:
		return 2
	case VertexFloat32x3:
		return 3
	case VertexFloat32x4:
		return 4
	default:
		return 0
	}
}

// String returns a human-readable format name.
func (f VertexFormat) String() string {
	switch f {
	case VertexFloat32x2:
		return "float32x2"
	case VertexFloat32x3:
		return "float32x3"
	case VertexFloat32x4:
		return "float32x4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// VertexAttribute describes one interleaved attribute within a vertex.
type VertexAttribute struct {
	Name     string
	Format   VertexFormat
	Offset   uint32
	Location uint32 // shader attribute location
}

// Layout describes the full interleaved vertex layout of a mesh.
// Meshes may only share a batch when their layouts are byte-identical.
type Layout struct {
	Attributes []VertexAttribute
	Stride     uint32
}

// Fingerprint returns a canonical encoding of the layout. Two layouts
// produce the same fingerprint iff they are interchangeable on the GPU,
// so the fingerprint can stand in for the layout inside a comparable Key.
func (l Layout) Fingerprint() string {
	var sb strings.Builder
	for i, a := range l.Attributes {
		if i > 0 {
			sb.WriteByte('|')
		}
		fmt.Fprintf(&sb, "%d:%s@%d", a.Location, a.Format, a.Offset)
	}
	fmt.Fprintf(&sb, "~%d", l.Stride)
	return sb.String()
}

// Key is the structural signature that decides batch membership: two
// meshes are merged into the same batch iff their keys are equal.
// It is a comparable value, usable directly as a map key, and carries a
// total order (Compare) so batch iteration stays deterministic.
type Key struct {
	Layout   string // Layout.Fingerprint()
	Topology PrimitiveTopology
	Index    IndexFormat
}

// NewKey builds the signature for a mesh with the given layout,
// topology, and index format (IndexNone for non-indexed meshes).
func NewKey(layout Layout, topology PrimitiveTopology, index IndexFormat) Key {
	return Key{
		Layout:   layout.Fingerprint(),
		Topology: topology,
		Index:    index,
	}
}

// Compare orders keys lexicographically by layout, topology, and index
// format. Returns -1, 0, or 1.
func (k Key) Compare(other Key) int {
	if c := strings.Compare(k.Layout, other.Layout); c != 0 {
		return c
	}
	if k.Topology != other.Topology {
		if k.Topology < other.Topology {
			return -1
		}
		return 1
	}
	if k.Index != other.Index {
		if k.Index < other.Index {
			return -1
		}
		return 1
	}
	return 0
}

// String returns a compact key description for logs and errors.
func (k Key) String() string {
	return fmt.Sprintf("{%s %s index=%s}", k.Layout, k.Topology, k.Index)
}
