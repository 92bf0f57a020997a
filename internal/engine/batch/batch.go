// Package batch merges meshes that share a structural key into single
// draw-ready buffer batches: concatenated vertex data, re-based index
// data, and per-mesh indirect draw arguments for one multi-draw call.
package batch

import (
	"errors"

	"github.com/draycott/meshbatch/internal/engine/mesh"
)

// Batching errors. All of them abort the pass: a missing record means
// extraction ran out of order upstream, and a kind or width mismatch
// inside one key group breaks the guarantee the key exists to provide.
// Coercing either would corrupt rendered geometry silently.
var (
	ErrMeshNotFound        = errors.New("mesh record not found")
	ErrIndexFormatMismatch = errors.New("index width mismatch within batch")
	ErrBufferKindMismatch  = errors.New("index buffer kind mismatch within batch")
)

// Batch is the merged, draw-ready data for every mesh sharing one key.
// Meshes lists the members in canonical order; that order fixes both the
// index re-basing and the order of the indirect draw arguments.
type Batch struct {
	Meshes       []mesh.ID
	VertexData   []byte
	IndexData    mesh.IndexData
	IndirectData IndirectData
}
