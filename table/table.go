// Package table implements the archetype table storage core of an ECS
// runtime: column layout, insertion/deletion with swap-remove semantics,
// bulk growth, row swapping and rotation, table merge, activation signaling,
// and the staged shadow-data mechanism used while a world is in progress.
//
// The entity index, component registry, query engine, and OnRemove
// dispatcher are external collaborators, named here only as interfaces
// (collaborators.go); concrete implementations live in sibling packages
// (entityindex, component, query, notify).
package table

// Flags are derived once, at Data creation, from a Table's Type.
type Flags uint8

const (
	// FlagHasBuiltins is set if any id in the table's Type is <= LastBuiltinID.
	FlagHasBuiltins Flags = 1 << iota
	// FlagIsPrefab is set if PrefabID is present in the table's Type.
	FlagIsPrefab
)

// Table owns type identity (an ordered component-id list), a committed Data,
// table flags, and the set of subscribed queries. A Table's Type never
// changes; moving an entity between component sets means moving it between
// Tables (Merge).
type Table struct {
	typ     Type
	data    *Data
	queries []QueryActivator
	flags   Flags
}

// NewTable creates a Table with its Type fixed. Call Init to allocate its
// committed Data before using it.
func NewTable(typ Type) *Table {
	return &Table{typ: typ}
}

// Type returns the table's immutable component-id list.
func (t *Table) Type() Type { return t.typ }

// Flags returns the table's derived flags.
func (t *Table) Flags() Flags { return t.flags }

// Data returns the table's committed Data. Mutations should generally go
// through GetData so staged writers see the shadow instead.
func (t *Table) Data() *Data { return t.data }

// Count returns the table's committed row count (ecs_table_count).
func (t *Table) Count() int {
	if t.data == nil {
		return 0
	}
	return t.data.Len()
}

// Init allocates the table's committed Data. Must be called once before any
// other operation.
func (t *Table) Init(world *World) error {
	t.queries = nil
	t.flags = 0
	d, err := newData(world.Components, t, t.typ)
	if err != nil {
		return err
	}
	t.data = d
	return nil
}

// GetData resolves the Data that mutations should target (§4.2): the
// committed Data if the world is not in progress, otherwise the per-stage
// shadow, created on first access and cached for the remainder of the stage.
func (t *Table) GetData(world *World, stage *Stage) (*Data, error) {
	if !world.InProgress {
		return t.data, nil
	}
	if d, ok := stage.dataStage[t]; ok {
		return d, nil
	}
	d, err := newData(world.Components, nil, t.typ)
	if err != nil {
		return nil, err
	}
	stage.dataStage[t] = d
	return d, nil
}

func activateTable(world *World, table *Table, query QueryActivator, activate bool) {
	if query != nil {
		query.ActivateTable(table, activate)
		return
	}
	for _, q := range table.queries {
		q.ActivateTable(table, activate)
	}
}

// RegisterQuery appends query to the table's subscriber list. If the table
// is already non-empty, it activates the new query immediately so it does
// not have to wait for the next empty-to-non-empty transition.
func (t *Table) RegisterQuery(world *World, query QueryActivator) {
	t.queries = append(t.queries, query)
	if t.Count() > 0 {
		activateTable(world, t, query, true)
	}
}

func clearColumns(t *Table) {
	for i := range t.data.columns {
		t.data.columns[i].data = nil
	}
}

// Clear frees every column buffer and, if the table had rows, deactivates
// it. It does not invoke OnRemove handlers; it is used for rollback.
func (t *Table) Clear(world *World) {
	count := t.data.Len()
	clearColumns(t)
	t.data.entities = nil
	if count > 0 {
		activateTable(world, t, nil, false)
	}
}

// ReplaceColumns frees the table's existing column buffers and Data
// envelope, then installs newData as the committed Data, activating or
// deactivating as the row count crosses the empty boundary.
//
// The free-then-install ordering is kept explicit and is never followed by a
// read of the just-freed pointer (spec §9's second open question: a literal
// C translation frees table->data and then indexes the just-freed pointer
// before assignment, which would be a use-after-free; the ordering here
// frees first, only ever reads from newData afterward).
func (t *Table) ReplaceColumns(world *World, newData *Data) {
	prevCount := 0
	if t.data != nil {
		prevCount = t.data.Len()
		clearColumns(t)
	}

	if newData != nil {
		t.data = newData
	}

	count := 0
	if t.data != nil {
		count = t.data.Len()
	}

	if prevCount == 0 && count > 0 {
		activateTable(world, t, nil, true)
	} else if prevCount > 0 && count == 0 {
		activateTable(world, t, nil, false)
	}
}

// Deinit invokes the OnRemove dispatcher over the table's full row range if
// the table has any rows.
func (t *Table) Deinit(world *World) {
	count := t.data.Len()
	if count > 0 {
		world.OnRemove.Notify(t.typ, t, t.data, 0, count)
	}
}

// DeleteAll deletes every entity in the table, invoking OnRemove handlers
// first (Deinit), then clearing storage (Clear). Use this for
// delete-by-filter; use Clear directly to restore a table to a previous
// state without notifying.
func (t *Table) DeleteAll(world *World) {
	t.Deinit(world)
	t.Clear(world)
}

// Free releases column buffers, the Data envelope, and the query
// subscription list, without invoking OnRemove or activation. Used during
// world teardown.
func (t *Table) Free(world *World) {
	if t.data != nil {
		clearColumns(t)
		t.data = nil
	}
	t.queries = nil
}
