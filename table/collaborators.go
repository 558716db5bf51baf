package table

// ComponentLookup is the external component descriptor lookup (§6): given a
// component id it reports whether the id names a data-bearing component
// (size > 0), a tag (ok but size == 0), or is absent entirely (a relation id
// or an otherwise-unregistered id).
type ComponentLookup interface {
	Get(id EntityId) (size int, ok bool)
}

// Record is what the entity index stores for a live entity: the table it
// currently lives in and its row within that table's Data. Row is 1-based;
// 0 means "not in any table."
//
// The record names the owning Table directly rather than a serialized Type.
// Per §3, two tables with equal Type are the same archetype, so there is
// always exactly one live Table per Type; naming the Table is an equivalent,
// cheaper key than re-deriving or hashing Type. See DESIGN.md.
type Record struct {
	Table *Table
	Row   uint32
}

// EntityIndex is the external entity id -> Record mapping (§6). A Stage's
// EntityIndex overlays the main world index while in progress.
type EntityIndex interface {
	Get(id EntityId) (Record, bool)
	Set(id EntityId, rec Record)
	Delete(id EntityId)
}

// QueryActivator is the query engine's activation callback (§6,
// ecs_query_activate_table). A Table holds the set of activators currently
// interested in it; activation is a pure signal, not a state the Table
// tracks itself.
type QueryActivator interface {
	ActivateTable(table *Table, active bool)
}

// OnRemoveNotifier is the component-lifecycle event dispatcher (§6,
// ecs_notify), invoked only by Deinit and DeleteAll.
type OnRemoveNotifier interface {
	Notify(typ Type, table *Table, data *Data, startRow, count int)
}
