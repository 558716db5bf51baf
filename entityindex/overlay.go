package entityindex

import "github.com/plus3/archtable/table"

// Overlay is the per-stage entity index a worker stage uses while a world is
// in progress (spec §3(b)/§5): reads fall through to a parent index when the
// overlay has nothing of its own to say, but every write lands only in the
// overlay's local map, leaving the parent untouched until a higher-level
// commit phase folds the stage back in.
//
// A local tombstone distinguishes "never written here, ask the parent" from
// "deleted in this stage" — without it, Delete would have no way to mask a
// record the parent still holds.
type Overlay struct {
	parent  table.EntityIndex
	local   map[table.EntityId]table.Record
	deleted map[table.EntityId]bool
}

// NewOverlay creates an Overlay reading through to parent. parent is
// typically a world's main MapIndex; it is never written to by the overlay.
func NewOverlay(parent table.EntityIndex) *Overlay {
	return &Overlay{
		parent:  parent,
		local:   make(map[table.EntityId]table.Record),
		deleted: make(map[table.EntityId]bool),
	}
}

// Get returns the overlay's own record for id if one was written or deleted
// in this stage; otherwise it falls through to the parent index.
func (o *Overlay) Get(id table.EntityId) (table.Record, bool) {
	if o.deleted[id] {
		return table.Record{}, false
	}
	if rec, ok := o.local[id]; ok {
		return rec, true
	}
	return o.parent.Get(id)
}

// Set writes rec into the overlay's own map, never touching the parent.
func (o *Overlay) Set(id table.EntityId, rec table.Record) {
	delete(o.deleted, id)
	o.local[id] = rec
}

// Delete masks id from the overlay, whether or not it exists in the parent,
// without removing anything from the parent itself.
func (o *Overlay) Delete(id table.EntityId) {
	delete(o.local, id)
	o.deleted[id] = true
}

var _ table.EntityIndex = (*Overlay)(nil)
