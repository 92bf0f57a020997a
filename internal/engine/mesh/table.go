package mesh

// Table maps mesh identity to its extracted Record. It is the read-only
// input of a batching pass; the owner must finish inserting every mesh
// referenced by live instances before the pass runs.
type Table struct {
	records map[ID]*Record
}

// NewTable returns an empty mesh table.
func NewTable() *Table {
	return &Table{records: make(map[ID]*Record)}
}

// Insert registers a record under the given identity, replacing any
// previous record for the same identity.
func (t *Table) Insert(id ID, r *Record) {
	t.records[id] = r
}

// Lookup returns the record for the given identity.
func (t *Table) Lookup(id ID) (*Record, bool) {
	r, ok := t.records[id]
	return r, ok
}

// Len returns the number of registered meshes.
func (t *Table) Len() int {
	return len(t.records)
}
