package batch

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/draycott/meshbatch/internal/engine/instance"
	"github.com/draycott/meshbatch/internal/engine/mesh"
	"github.com/draycott/meshbatch/internal/logger"
)

// group is one key's worth of meshes, members in canonical ID order.
type group struct {
	key    mesh.Key
	meshes []mesh.ID
}

// Prepare rebuilds the batch table for material kind M from the current
// reference streams. Every mesh referenced by either stream must already
// have a record in the mesh table. On any error nothing is published and
// the previous table contents stay visible; on success the whole table
// is replaced in one swap.
func Prepare[M Material](table *mesh.Table, refs []instance.Ref, slcs []instance.Slice, out *Batches[M]) error {
	groups, err := keyMeshes(table, refs, slcs)
	if err != nil {
		return err
	}

	built := make(map[mesh.Key]*Batch, len(groups))
	for _, g := range groups {
		b, err := assemble(table, g)
		if err != nil {
			return err
		}
		built[g.key] = b
	}

	out.Replace(built)

	var meshCount, vertexBytes int
	for _, b := range built {
		meshCount += len(b.Meshes)
		vertexBytes += len(b.VertexData)
	}
	var m M
	logger.Debug("mesh batches rebuilt",
		zap.String("material", m.MaterialName()),
		zap.Int("batches", len(built)),
		zap.Int("meshes", meshCount),
		zap.Int("vertex_bytes", vertexBytes),
	)
	return nil
}

// keyMeshes deduplicates the mesh identities referenced by both streams
// and groups them under their records' structural keys. Groups come back
// in key order with members in ID order, so batch contents are stable
// across passes given the same reference set.
func keyMeshes(table *mesh.Table, refs []instance.Ref, slcs []instance.Slice) ([]group, error) {
	ids := make([]mesh.ID, 0, len(refs)+len(slcs))
	for _, r := range refs {
		ids = append(ids, r.Mesh)
	}
	for _, s := range slcs {
		ids = append(ids, s.Mesh)
	}

	seen := make(map[mesh.ID]struct{}, len(ids))
	byKey := make(map[mesh.Key][]mesh.ID)
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		rec, ok := table.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMeshNotFound, id)
		}
		byKey[rec.Key] = append(byKey[rec.Key], id)
	}

	groups := make([]group, 0, len(byKey))
	for key, members := range byKey {
		slices.Sort(members)
		groups = append(groups, group{key: key, meshes: members})
	}
	slices.SortFunc(groups, func(a, b group) int { return a.key.Compare(b.key) })
	return groups, nil
}

// assemble builds one batch: vertex bytes concatenated in member order,
// indices merged and re-based against the running vertex count, and one
// indirect draw command per member.
func assemble(table *mesh.Table, g group) (*Batch, error) {
	var vertexData []byte
	for _, id := range g.meshes {
		rec, _ := table.Lookup(id)
		vertexData = append(vertexData, rec.VertexData...)
	}

	indexData, err := mergeIndices(table, g)
	if err != nil {
		return nil, err
	}

	indirectData, err := synthesizeIndirect(table, g)
	if err != nil {
		return nil, err
	}

	return &Batch{
		Meshes:       g.meshes,
		VertexData:   vertexData,
		IndexData:    indexData,
		IndirectData: indirectData,
	}, nil
}

// mergeIndices folds the members' index data into a single buffer.
// Indexed members have each index shifted by the cumulative vertex count
// of the members before them, so the merged indices address the correct
// slice of the concatenated vertex buffer; non-indexed members just sum
// their vertex counts. Mixing kinds or widths inside one group means the
// key failed to separate them, which is a hard error.
func mergeIndices(table *mesh.Table, g group) (mesh.IndexData, error) {
	var merged mesh.IndexData
	baseIndex := uint32(0)

	for _, id := range g.meshes {
		rec, _ := table.Lookup(id)

		switch d := rec.IndexData.(type) {
		case mesh.Indexed:
			if merged == nil {
				merged = mesh.Indexed{
					Indices: cloneIndices(d.Indices),
					Count:   d.Count,
					Format:  d.Format,
				}
				break
			}
			acc, ok := merged.(mesh.Indexed)
			if !ok {
				return nil, fmt.Errorf("%w %s: mesh %q is indexed", ErrBufferKindMismatch, g.key, id)
			}
			joined, ok := appendShifted(acc.Indices, d.Indices, baseIndex)
			if !ok {
				return nil, fmt.Errorf("%w %s: mesh %q has %s indices, batch has %s",
					ErrIndexFormatMismatch, g.key, id, d.Format, acc.Format)
			}
			merged = mesh.Indexed{
				Indices: joined,
				Count:   acc.Count + d.Count,
				Format:  acc.Format,
			}

		case mesh.NonIndexed:
			if merged == nil {
				merged = mesh.NonIndexed{VertexCount: d.VertexCount}
				break
			}
			acc, ok := merged.(mesh.NonIndexed)
			if !ok {
				return nil, fmt.Errorf("%w %s: mesh %q is non-indexed", ErrBufferKindMismatch, g.key, id)
			}
			merged = mesh.NonIndexed{VertexCount: acc.VertexCount + d.VertexCount}
		}

		baseIndex += rec.VertexCount
	}

	return merged, nil
}

// synthesizeIndirect emits one draw command per member in member order.
// Only the count field is filled here; instance counts and start offsets
// belong to the draw-issuing side (see ResolveDraws).
func synthesizeIndirect(table *mesh.Table, g group) (IndirectData, error) {
	if g.key.Index != mesh.IndexNone {
		cmds := make(ElementsIndirect, 0, len(g.meshes))
		for _, id := range g.meshes {
			rec, _ := table.Lookup(id)
			d, ok := rec.IndexData.(mesh.Indexed)
			if !ok {
				return nil, fmt.Errorf("%w %s: mesh %q is non-indexed", ErrBufferKindMismatch, g.key, id)
			}
			cmds = append(cmds, DrawElementsIndirectArgs{Count: d.Count})
		}
		return cmds, nil
	}

	cmds := make(ArraysIndirect, 0, len(g.meshes))
	for _, id := range g.meshes {
		rec, _ := table.Lookup(id)
		d, ok := rec.IndexData.(mesh.NonIndexed)
		if !ok {
			return nil, fmt.Errorf("%w %s: mesh %q is indexed", ErrBufferKindMismatch, g.key, id)
		}
		cmds = append(cmds, DrawArraysIndirectArgs{Count: d.VertexCount})
	}
	return cmds, nil
}

// cloneIndices copies index data so the merge never aliases a record's
// buffer.
func cloneIndices(ix mesh.Indices) mesh.Indices {
	switch v := ix.(type) {
	case mesh.U16Indices:
		return slices.Clone(v)
	case mesh.U32Indices:
		return slices.Clone(v)
	}
	return ix
}

// appendShifted appends next to acc with every value offset by base.
// Reports false when the widths disagree.
func appendShifted(acc, next mesh.Indices, base uint32) (mesh.Indices, bool) {
	switch lhs := acc.(type) {
	case mesh.U16Indices:
		rhs, ok := next.(mesh.U16Indices)
		if !ok {
			return nil, false
		}
		out := make(mesh.U16Indices, 0, len(lhs)+len(rhs))
		out = append(out, lhs...)
		for _, ix := range rhs {
			out = append(out, uint16(base)+ix)
		}
		return out, true

	case mesh.U32Indices:
		rhs, ok := next.(mesh.U32Indices)
		if !ok {
			return nil, false
		}
		out := make(mesh.U32Indices, 0, len(lhs)+len(rhs))
		out = append(out, lhs...)
		for _, ix := range rhs {
			out = append(out, base+ix)
		}
		return out, true
	}
	return nil, false
}
