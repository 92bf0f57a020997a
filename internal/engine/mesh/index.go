package mesh

import "encoding/binary"

// Indices is raw index data in one fixed width. It is a closed variant
// set: the only implementations are U16Indices and U32Indices, and every
// consumer switches exhaustively over both.
type Indices interface {
	Format() IndexFormat
	Len() int
	// Bytes serializes the indices little-endian for GPU upload.
	Bytes() []byte

	isIndices()
}

// U16Indices is 16-bit index data.
type U16Indices []uint16

func (U16Indices) isIndices() {}

// Format returns IndexUint16.
func (U16Indices) Format() IndexFormat { return IndexUint16 }

// Len returns the number of indices.
func (ix U16Indices) Len() int { return len(ix) }

// Bytes serializes the indices little-endian for GPU upload.
func (ix U16Indices) Bytes() []byte {
	buf := make([]byte, 2*len(ix))
	for i, v := range ix {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	return buf
}

// U32Indices is 32-bit index data.
type U32Indices []uint32

func (U32Indices) isIndices() {}

// Format returns IndexUint32.
func (U32Indices) Format() IndexFormat { return IndexUint32 }

// Len returns the number of indices.
func (ix U32Indices) Len() int { return len(ix) }

// Bytes serializes the indices little-endian for GPU upload.
func (ix U32Indices) Bytes() []byte {
	buf := make([]byte, 4*len(ix))
	for i, v := range ix {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	return buf
}

// IndexData describes a mesh's index buffer, or its absence. Closed
// variant set: Indexed or NonIndexed, matched exhaustively wherever
// batches are merged or draw arguments synthesized.
type IndexData interface {
	isIndexData()
}

// Indexed is the index-buffer variant of IndexData.
type Indexed struct {
	Indices Indices
	Count   uint32
	Format  IndexFormat
}

func (Indexed) isIndexData() {}

// NonIndexed marks a mesh drawn directly from its vertex buffer.
type NonIndexed struct {
	VertexCount uint32
}

func (NonIndexed) isIndexData() {}

// NewIndexed wraps raw indices into an Indexed value with its count and
// format derived from the data.
func NewIndexed(ix Indices) Indexed {
	return Indexed{
		Indices: ix,
		Count:   uint32(ix.Len()),
		Format:  ix.Format(),
	}
}
