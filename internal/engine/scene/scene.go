// Package scene builds the batcher's inputs from a scene description:
// the mesh table from model assets and the instance reference stream
// from their placements.
package scene

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/draycott/meshbatch/internal/config"
	"github.com/draycott/meshbatch/internal/engine/batch"
	"github.com/draycott/meshbatch/internal/engine/instance"
	"github.com/draycott/meshbatch/internal/engine/mesh"
	"github.com/draycott/meshbatch/internal/logger"
	"github.com/draycott/meshbatch/pkg/formats"
	"github.com/draycott/meshbatch/pkg/math"
)

// Scene is the loaded form of a scene config: every model parsed into a
// mesh record plus one instance reference per placement.
type Scene struct {
	Meshes *mesh.Table
	Refs   []instance.Ref
}

// Load parses every model in the config and registers its placements.
func Load(cfg config.SceneConfig) (*Scene, error) {
	s := &Scene{Meshes: mesh.NewTable()}

	var entity instance.Entity
	for _, model := range cfg.Models {
		obj, err := formats.LoadOBJ(model.Path)
		if err != nil {
			return nil, err
		}

		id := mesh.ID(model.Name)
		if id == "" {
			id = mesh.ID(model.Path)
		}
		mat := model.Material
		if mat == "" {
			mat = "flat"
		}

		rec := mesh.BuildRecord(toStandardVertices(obj), obj.Indices)
		s.Meshes.Insert(id, rec)

		logger.Debug("model loaded",
			zap.String("mesh", string(id)),
			zap.Uint32("vertices", rec.VertexCount),
			zap.Int("instances", len(model.Instances)),
		)

		for _, p := range model.Instances {
			s.Refs = append(s.Refs, instance.Ref{
				Entity:    entity,
				Material:  mat,
				Mesh:      id,
				Transform: placementMatrix(p),
			})
			entity++
		}
	}

	return s, nil
}

// InstanceCounts tallies how many placements reference each mesh.
func (s *Scene) InstanceCounts() map[mesh.ID]uint32 {
	counts := make(map[mesh.ID]uint32)
	for _, r := range s.Refs {
		counts[r.Mesh]++
	}
	return counts
}

// TransformsFor flattens the per-instance matrices for a batch, grouped
// by member in member order. That grouping is what makes the indirect
// commands' base-instance offsets line up with the instance buffer.
func (s *Scene) TransformsFor(b *batch.Batch) []float32 {
	out := make([]float32, 0, 16*len(s.Refs))
	for _, id := range b.Meshes {
		for _, r := range s.Refs {
			if r.Mesh == id {
				out = append(out, r.Transform[:]...)
			}
		}
	}
	return out
}

func toStandardVertices(obj *formats.OBJ) []mesh.StandardVertex {
	verts := make([]mesh.StandardVertex, len(obj.Vertices))
	for i, v := range obj.Vertices {
		verts[i] = mesh.StandardVertex{
			Position: v.Position,
			Normal:   v.Normal,
			TexCoord: v.TexCoord,
		}
	}
	return verts
}

// placementMatrix builds the model matrix T * R * S for one placement.
func placementMatrix(p config.Placement) [16]float32 {
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	rot := p.RotationY * gomath.Pi / 180

	m := math.Translate(p.Position[0], p.Position[1], p.Position[2]).
		Mul(math.RotateY(rot)).
		Mul(math.Scale(scale))
	return [16]float32(m)
}
