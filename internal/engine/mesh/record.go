package mesh

import (
	"encoding/binary"
	"math"
)

// ID identifies a distinct mesh asset. IDs order lexicographically,
// which is the canonical member order inside a batch.
type ID string

// Record is one distinct mesh prepared for batching: its structural key
// plus the raw buffer data exactly as it will live on the GPU. Records
// are immutable while a batching pass runs.
type Record struct {
	Key         Key
	VertexData  []byte
	VertexCount uint32
	IndexData   IndexData
}

// StandardVertex is the interleaved vertex used by meshes built through
// BuildRecord: position, normal, and texture coordinate.
// Matches StandardLayout exactly (32 bytes, tightly packed).
type StandardVertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// StandardLayout returns the layout of StandardVertex.
func StandardLayout() Layout {
	return Layout{
		Attributes: []VertexAttribute{
			{Name: "position", Format: VertexFloat32x3, Offset: 0, Location: 0},
			{Name: "normal", Format: VertexFloat32x3, Offset: 12, Location: 1},
			{Name: "texcoord", Format: VertexFloat32x2, Offset: 24, Location: 2},
		},
		Stride: 32,
	}
}

// BuildRecord packs a triangle-list mesh with the standard layout into a
// Record ready for batching. Indices narrower than 17 bits are stored as
// uint16 to halve index-buffer size; nil indices produce a non-indexed
// record.
func BuildRecord(verts []StandardVertex, indices []uint32) *Record {
	data := make([]byte, 0, len(verts)*32)
	for _, v := range verts {
		data = appendFloats(data, v.Position[:])
		data = appendFloats(data, v.Normal[:])
		data = appendFloats(data, v.TexCoord[:])
	}

	var idx IndexData
	format := IndexNone
	if indices != nil {
		if len(verts) <= 1<<16 {
			u16 := make(U16Indices, len(indices))
			for i, v := range indices {
				u16[i] = uint16(v)
			}
			idx = NewIndexed(u16)
			format = IndexUint16
		} else {
			idx = NewIndexed(U32Indices(indices))
			format = IndexUint32
		}
	} else {
		idx = NonIndexed{VertexCount: uint32(len(verts))}
	}

	return &Record{
		Key:         NewKey(StandardLayout(), TopologyTriangleList, format),
		VertexData:  data,
		VertexCount: uint32(len(verts)),
		IndexData:   idx,
	}
}

func appendFloats(buf []byte, vals []float32) []byte {
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
