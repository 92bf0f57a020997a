// Package upload turns assembled mesh batches into live OpenGL buffer
// sets and issues one indirect multi-draw per batch. It is the GL-side
// consumer of the batcher's output; everything GPU-independent stays in
// the batch package.
package upload

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"

	"github.com/draycott/meshbatch/internal/engine/batch"
	"github.com/draycott/meshbatch/internal/engine/mesh"
)

// Instance attributes (the per-instance model matrix) occupy four
// consecutive vec4 locations starting here.
const instanceMatrixLocation = 4

// BatchBuffers owns the GL objects for one uploaded batch.
type BatchBuffers struct {
	vao         uint32
	vbo         uint32
	ebo         uint32
	instanceVBO uint32
	indirectBuf uint32

	mode      uint32 // primitive mode (gl.TRIANGLES, ...)
	indexType uint32 // gl.UNSIGNED_SHORT or gl.UNSIGNED_INT
	indexed   bool
	drawCount int32
}

// Upload creates the GL buffer set for one batch: vertex buffer, index
// buffer (for indexed keys), per-instance transform buffer, and the
// indirect command buffer with instance counts and start offsets
// resolved. transforms holds one column-major mat4 per instance, in
// batch member order, matching the counts tally.
func Upload(layout mesh.Layout, key mesh.Key, b *batch.Batch, transforms []float32, counts map[mesh.ID]uint32) (*BatchBuffers, error) {
	mode, err := primitiveMode(key.Topology)
	if err != nil {
		return nil, err
	}

	resolved, err := batch.ResolveDraws(b, counts)
	if err != nil {
		return nil, err
	}

	bb := &BatchBuffers{
		mode:      mode,
		indexed:   key.Index != mesh.IndexNone,
		drawCount: int32(resolved.Len()),
	}

	gl.GenVertexArrays(1, &bb.vao)
	gl.BindVertexArray(bb.vao)

	gl.GenBuffers(1, &bb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, bb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.VertexData), gl.Ptr(b.VertexData), gl.STATIC_DRAW)
	for _, attr := range layout.Attributes {
		gl.EnableVertexAttribArray(attr.Location)
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Format.Components(),
			gl.FLOAT, false, int32(layout.Stride), uintptr(attr.Offset))
	}

	// Per-instance model matrix: four vec4 attributes with divisor 1
	gl.GenBuffers(1, &bb.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, bb.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(transforms), gl.Ptr(transforms), gl.STATIC_DRAW)
	for i := uint32(0); i < 4; i++ {
		loc := uint32(instanceMatrixLocation) + i
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, 64, uintptr(16*i))
		gl.VertexAttribDivisor(loc, 1)
	}

	if bb.indexed {
		idx, ok := b.IndexData.(mesh.Indexed)
		if !ok {
			return nil, fmt.Errorf("batch %s: key is indexed but data is %T", key, b.IndexData)
		}
		switch idx.Format {
		case mesh.IndexUint16:
			bb.indexType = gl.UNSIGNED_SHORT
		case mesh.IndexUint32:
			bb.indexType = gl.UNSIGNED_INT
		default:
			return nil, fmt.Errorf("batch %s: unsupported index format %s", key, idx.Format)
		}

		data := idx.Indices.Bytes()
		gl.GenBuffers(1, &bb.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, bb.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}

	cmds := resolved.Bytes()
	gl.GenBuffers(1, &bb.indirectBuf)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, bb.indirectBuf)
	gl.BufferData(gl.DRAW_INDIRECT_BUFFER, len(cmds), gl.Ptr(cmds), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	return bb, nil
}

// Draw issues the whole batch as one indirect multi-draw.
func (bb *BatchBuffers) Draw() {
	gl.BindVertexArray(bb.vao)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, bb.indirectBuf)

	if bb.indexed {
		gl.MultiDrawElementsIndirect(bb.mode, bb.indexType, nil, bb.drawCount, 0)
	} else {
		gl.MultiDrawArraysIndirect(bb.mode, nil, bb.drawCount, 0)
	}

	gl.BindVertexArray(0)
}

// Delete frees all GL objects owned by the batch.
func (bb *BatchBuffers) Delete() {
	gl.DeleteBuffers(1, &bb.vbo)
	gl.DeleteBuffers(1, &bb.instanceVBO)
	if bb.ebo != 0 {
		gl.DeleteBuffers(1, &bb.ebo)
	}
	gl.DeleteBuffers(1, &bb.indirectBuf)
	gl.DeleteVertexArrays(1, &bb.vao)
}

// primitiveMode maps a mesh topology to its GL primitive mode.
func primitiveMode(t mesh.PrimitiveTopology) (uint32, error) {
	switch t {
	case mesh.TopologyPointList:
		return gl.POINTS, nil
	case mesh.TopologyLineList:
		return gl.LINES, nil
	case mesh.TopologyLineStrip:
		return gl.LINE_STRIP, nil
	case mesh.TopologyTriangleList:
		return gl.TRIANGLES, nil
	case mesh.TopologyTriangleStrip:
		return gl.TRIANGLE_STRIP, nil
	}
	return 0, fmt.Errorf("unsupported topology %s", t)
}
