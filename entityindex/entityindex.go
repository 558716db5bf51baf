// Package entityindex provides the concrete entity id -> (table, row)
// mapping the table core treats as an external collaborator (table.EntityIndex).
package entityindex

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/archtable/table"
)

// MapIndex is the canonical, intmap-backed EntityIndex. Every insert,
// delete, swap, rotate, and merge touches this map on the hot path, so a
// specialized integer map (kamstrup/intmap, the same dependency the teacher
// uses for its own EntityId-keyed weak-ref cache) is a direct win over a
// plain Go map[uint64]Record.
type MapIndex struct {
	m *intmap.Map[table.EntityId, table.Record]
}

// New creates an empty MapIndex with capacity hint for sizeHint entities.
func New(sizeHint int) *MapIndex {
	if sizeHint <= 0 {
		sizeHint = 256
	}
	return &MapIndex{m: intmap.New[table.EntityId, table.Record](sizeHint)}
}

func (idx *MapIndex) Get(id table.EntityId) (table.Record, bool) {
	return idx.m.Get(id)
}

func (idx *MapIndex) Set(id table.EntityId, rec table.Record) {
	idx.m.Put(id, rec)
}

func (idx *MapIndex) Delete(id table.EntityId) {
	idx.m.Del(id)
}

// Len reports the number of live entities tracked.
func (idx *MapIndex) Len() int {
	return idx.m.Len()
}

var _ table.EntityIndex = (*MapIndex)(nil)
