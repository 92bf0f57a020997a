package batch

import (
	"fmt"

	"github.com/draycott/meshbatch/internal/engine/mesh"
)

// ResolveDraws fills in the fields the assembly stage leaves neutral:
// start offsets from the running count of preceding members, instance
// counts and base instances from the caller's per-mesh instance tally.
// The returned list is a copy; the batch itself stays untouched.
func ResolveDraws(b *Batch, instances map[mesh.ID]uint32) (IndirectData, error) {
	switch cmds := b.IndirectData.(type) {
	case ElementsIndirect:
		out := make(ElementsIndirect, len(cmds))
		var firstIndex, baseInstance uint32
		for i, c := range cmds {
			n := instances[b.Meshes[i]]
			out[i] = DrawElementsIndirectArgs{
				Count:         c.Count,
				InstanceCount: n,
				FirstIndex:    firstIndex,
				BaseInstance:  baseInstance,
			}
			firstIndex += c.Count
			baseInstance += n
		}
		return out, nil

	case ArraysIndirect:
		out := make(ArraysIndirect, len(cmds))
		var first, baseInstance uint32
		for i, c := range cmds {
			n := instances[b.Meshes[i]]
			out[i] = DrawArraysIndirectArgs{
				Count:         c.Count,
				InstanceCount: n,
				First:         first,
				BaseInstance:  baseInstance,
			}
			first += c.Count
			baseInstance += n
		}
		return out, nil
	}
	return nil, fmt.Errorf("unresolved indirect data: %T", b.IndirectData)
}
