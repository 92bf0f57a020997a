// Package instance defines the reference streams that tell the batcher
// which meshes are currently in use and by whom. The batcher itself only
// consumes the mesh identity; the remaining fields travel through to the
// draw-issuing side.
package instance

import "github.com/draycott/meshbatch/internal/engine/mesh"

// Entity identifies one renderable object in the scene.
type Entity uint32

// Ref ties a single renderable entity to its material and mesh, with the
// per-instance model transform in GPU column-major order.
type Ref struct {
	Entity    Entity
	Material  string
	Mesh      mesh.ID
	Transform [16]float32
}

// Slice reserves a contiguous run of instance-buffer slots for one mesh,
// used when a collaborator writes instance data for many objects at once.
type Slice struct {
	Entity   Entity
	Material string
	Mesh     mesh.ID
	Offset   uint32
	Count    uint32
}
