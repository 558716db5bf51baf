// Package world ties the table core together into something an application
// can actually drive: a registry of live tables keyed by Type, on top of a
// table.World handle. None of this is part of the storage core itself (the
// type registry is named in spec.md as an external, out-of-scope
// collaborator) — it exists so cmd/tableinspector and cmd/tablestress have
// a real multi-archetype world to mutate, grounded on the teacher's
// Storage type (storage.go): a map keyed by archetype identity, plus
// Spawn/Delete entry points.
package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plus3/archtable/table"
)

// Registry holds every live table, keyed by its Type, alongside the
// table.World handle shared across all mutations.
type Registry struct {
	World  *table.World
	tables map[string]*table.Table
}

// New creates an empty Registry wired to the given collaborators.
func New(components table.ComponentLookup, onRemove table.OnRemoveNotifier, mainEntities table.EntityIndex) *Registry {
	return &Registry{
		World:  table.NewWorld(components, onRemove, mainEntities),
		tables: make(map[string]*table.Table),
	}
}

func typeKey(t table.Type) string {
	parts := make([]string, len(t))
	for i, id := range t {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// TableFor returns the table for typ, creating and initializing it if this
// is the first time typ has been seen. typ must already be sorted and
// duplicate-free (§3's Type invariant); TableFor does not re-sort it.
func (r *Registry) TableFor(typ table.Type) (*table.Table, error) {
	key := typeKey(typ)
	if t, ok := r.tables[key]; ok {
		return t, nil
	}
	if !typ.Sorted() {
		return nil, fmt.Errorf("world: type %v is not sorted", typ)
	}

	t := table.NewTable(typ)
	if err := t.Init(r.World); err != nil {
		return nil, err
	}
	r.tables[key] = t
	return t, nil
}

// Tables returns every live table, sorted by Type for deterministic
// iteration (used by the debug UI and tests).
func (r *Registry) Tables() []*table.Table {
	out := make([]*table.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return typeKey(out[i].Type()) < typeKey(out[j].Type())
	})
	return out
}

// Spawn inserts a new row for entity into the table for typ, resolving
// committed vs. staged Data through GetData, and records the entity's
// location in the main stage's entity index. The caller is responsible for
// writing the new row's component values via the returned Data and row.
func (r *Registry) Spawn(typ table.Type, entity table.EntityId) (t *table.Table, data *table.Data, row int, err error) {
	t, err = r.TableFor(typ)
	if err != nil {
		return nil, nil, 0, err
	}

	data, err = t.GetData(r.World, r.World.MainStage)
	if err != nil {
		return nil, nil, 0, err
	}

	row, err = t.Insert(r.World, data, entity)
	if err != nil {
		return nil, nil, 0, err
	}

	r.World.MainStage.Entities().Set(entity, table.Record{Table: t, Row: uint32(row + 1)})
	return t, data, row, nil
}

// Delete removes entity from whichever table it currently lives in, per the
// main stage's entity index, using swap-remove.
func (r *Registry) Delete(entity table.EntityId) error {
	rec, ok := r.World.MainStage.Entities().Get(entity)
	if !ok || rec.Table == nil {
		return fmt.Errorf("world: entity %d is not in any table", entity)
	}

	t := rec.Table
	data, err := t.GetData(r.World, r.World.MainStage)
	if err != nil {
		return err
	}

	if err := t.Delete(r.World, r.World.MainStage, data, int(rec.Row-1)); err != nil {
		return err
	}
	r.World.MainStage.Entities().Delete(entity)
	return nil
}

// Merge migrates every row of the table for oldTyp into the table for
// newTyp (creating newTyp's table if necessary), via table.Merge. newTyp
// must be a superset of oldTyp under the shared id order.
func (r *Registry) Merge(newTyp, oldTyp table.Type) error {
	oldTable, ok := r.tables[typeKey(oldTyp)]
	if !ok {
		return nil
	}
	newTable, err := r.TableFor(newTyp)
	if err != nil {
		return err
	}
	return table.Merge(r.World, newTable, oldTable)
}
