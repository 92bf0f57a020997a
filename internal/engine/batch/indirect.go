package batch

import "encoding/binary"

// DrawElementsIndirectArgs matches the command layout consumed by
// glMultiDrawElementsIndirect: five tightly packed uint32 fields.
// BaseVertex stays 0 for batched meshes because their indices are
// already re-based into the merged vertex buffer.
type DrawElementsIndirectArgs struct {
	Count         uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    uint32
	BaseInstance  uint32
}

// DrawArraysIndirectArgs matches the command layout consumed by
// glMultiDrawArraysIndirect: four tightly packed uint32 fields.
type DrawArraysIndirectArgs struct {
	Count         uint32
	InstanceCount uint32
	First         uint32
	BaseInstance  uint32
}

// IndirectData is the per-mesh draw-argument list of a batch, one entry
// per member in member order. Closed variant set: ElementsIndirect for
// indexed batches, ArraysIndirect for non-indexed ones.
type IndirectData interface {
	// Len returns the number of draw commands.
	Len() int
	// Bytes serializes the commands little-endian, ready for upload to
	// an indirect-draw buffer.
	Bytes() []byte

	isIndirectData()
}

// ElementsIndirect is the draw-argument list of an indexed batch.
type ElementsIndirect []DrawElementsIndirectArgs

func (ElementsIndirect) isIndirectData() {}

// Len returns the number of draw commands.
func (d ElementsIndirect) Len() int { return len(d) }

// Bytes serializes the commands little-endian (20 bytes each).
func (d ElementsIndirect) Bytes() []byte {
	buf := make([]byte, 0, 20*len(d))
	for _, c := range d {
		buf = binary.LittleEndian.AppendUint32(buf, c.Count)
		buf = binary.LittleEndian.AppendUint32(buf, c.InstanceCount)
		buf = binary.LittleEndian.AppendUint32(buf, c.FirstIndex)
		buf = binary.LittleEndian.AppendUint32(buf, c.BaseVertex)
		buf = binary.LittleEndian.AppendUint32(buf, c.BaseInstance)
	}
	return buf
}

// ArraysIndirect is the draw-argument list of a non-indexed batch.
type ArraysIndirect []DrawArraysIndirectArgs

func (ArraysIndirect) isIndirectData() {}

// Len returns the number of draw commands.
func (d ArraysIndirect) Len() int { return len(d) }

// Bytes serializes the commands little-endian (16 bytes each).
func (d ArraysIndirect) Bytes() []byte {
	buf := make([]byte, 0, 16*len(d))
	for _, c := range d {
		buf = binary.LittleEndian.AppendUint32(buf, c.Count)
		buf = binary.LittleEndian.AppendUint32(buf, c.InstanceCount)
		buf = binary.LittleEndian.AppendUint32(buf, c.First)
		buf = binary.LittleEndian.AppendUint32(buf, c.BaseInstance)
	}
	return buf
}
