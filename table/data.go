package table

import "math"

// Data is the column set of one table plus the parallel entity-id column: a
// value-typed body that can be swapped wholesale (ReplaceColumns, Merge).
type Data struct {
	entities []EntityId
	columns  []Column
}

// Len is the row count, authoritative via the entity column's length.
func (d *Data) Len() int {
	return len(d.entities)
}

// Entities returns the entity-id column. The returned slice aliases internal
// storage and is invalidated by any operation that grows or truncates d;
// callers iterating it must not call back into a mutating table operation.
func (d *Data) Entities() []EntityId {
	return d.entities
}

// NumColumns returns the number of columns in d, parallel to the table's
// Type.
func (d *Data) NumColumns() int {
	return len(d.columns)
}

// ColumnBytes returns column i's raw packed byte buffer, aliasing internal
// storage under the same invalidation rule as Entities. Tag and relation-id
// columns carry no buffer and always return nil.
func (d *Data) ColumnBytes(i int) []byte {
	return d.columns[i].data
}

// ColumnSize returns column i's fixed element size in bytes, or 0 for a tag
// or relation-id column.
func (d *Data) ColumnSize(i int) int {
	return d.columns[i].size
}

// newData allocates a Data with len(typ) columns. For each position i it
// consults the component lookup for typ[i]: a positive size gives a
// data-bearing column, a zero size gives a tag column (no buffer), and a
// relation id or unregistered id (not ok) also gives no buffer. If table is
// non-nil its flags are derived once, here, from typ.
func newData(components ComponentLookup, table *Table, typ Type) (*Data, error) {
	d := &Data{
		columns: make([]Column, len(typ)),
	}

	for i, id := range typ {
		size := 0
		if !id.IsRelation() {
			if s, ok := components.Get(id); ok {
				size = s
			}
		}
		if size < 0 || int64(size) > math.MaxInt32 {
			return nil, &InternalError{Op: "new_data", Msg: "component size out of range"}
		}
		d.columns[i] = newColumn(size)

		if table != nil {
			if id <= LastBuiltinID {
				table.flags |= FlagHasBuiltins
			}
			if id == PrefabID {
				table.flags |= FlagIsPrefab
			}
		}
	}

	return d, nil
}
