package batch

import (
	"slices"
	"sync"

	"github.com/draycott/meshbatch/internal/engine/mesh"
)

// Material tags a batch table with the material kind it serves. One
// Batches table exists per material type, so the type parameter keeps
// the tables apart without any dynamic dispatch.
type Material interface {
	MaterialName() string
}

// Batches is the per-material table of assembled mesh batches. A pass
// replaces its whole contents in one write-locked swap; readers never
// observe a partially built table.
type Batches[M Material] struct {
	mu      sync.RWMutex
	batches map[mesh.Key]*Batch
}

// NewBatches returns an empty batch table for material kind M.
func NewBatches[M Material]() *Batches[M] {
	return &Batches[M]{batches: make(map[mesh.Key]*Batch)}
}

// Replace swaps in a fully built table, discarding all prior contents.
func (b *Batches[M]) Replace(next map[mesh.Key]*Batch) {
	b.mu.Lock()
	b.batches = next
	b.mu.Unlock()
}

// Get returns the batch for the given key, if present.
func (b *Batches[M]) Get(key mesh.Key) (*Batch, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	batch, ok := b.batches[key]
	return batch, ok
}

// Len returns the number of batches in the table.
func (b *Batches[M]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.batches)
}

// ForEach calls fn for every batch in key order. Returning false from fn
// stops the iteration.
func (b *Batches[M]) ForEach(fn func(mesh.Key, *Batch) bool) {
	b.mu.RLock()
	keys := make([]mesh.Key, 0, len(b.batches))
	for k := range b.batches {
		keys = append(keys, k)
	}
	snapshot := b.batches
	b.mu.RUnlock()

	slices.SortFunc(keys, mesh.Key.Compare)
	for _, k := range keys {
		if !fn(k, snapshot[k]) {
			return
		}
	}
}
