package table

import "math"

// Insert appends entity as a new row to data, growing every data-bearing
// column by one uninitialized element. The caller is responsible for writing
// the new row's component values afterward.
//
// If the world is not in progress and this was the table's first row,
// queries are activated. If any column buffer was reallocated and data is
// the table's committed Data, world.ShouldResolve is set so callers caching
// raw column pointers know to refresh them.
func (t *Table) Insert(world *World, data *Data, entity EntityId) (int, error) {
	data.entities = append(data.entities, entity)

	reallocd := false
	for i := range data.columns {
		if data.columns[i].grow(1) {
			reallocd = true
		}
	}

	row := len(data.entities) - 1

	if !world.InProgress && row == 0 {
		activateTable(world, t, nil, true)
	}

	if reallocd && data == t.data {
		world.ShouldResolve = true
	}

	return row, nil
}

// Grow bulk-allocates count contiguous rows whose entity ids are
// firstEntity, firstEntity+1, ..., firstEntity+count-1. If the world is not
// in progress and the table went from empty to exactly count rows, queries
// are activated. Reallocation is detected as in Insert.
func (t *Table) Grow(world *World, data *Data, count int, firstEntity EntityId) (int, error) {
	if count < 0 || int64(len(data.entities))+int64(count) > math.MaxInt32 {
		return 0, &OutOfMemoryError{Op: "grow", Msg: "row count overflow"}
	}

	first := len(data.entities)
	for i := 0; i < count; i++ {
		data.entities = append(data.entities, firstEntity+EntityId(i))
	}

	reallocd := false
	for i := range data.columns {
		if data.columns[i].grow(count) {
			reallocd = true
		}
	}

	rowCount := data.Len()
	if !world.InProgress && rowCount == count {
		activateTable(world, t, nil, true)
	}

	if reallocd && data == t.data {
		world.ShouldResolve = true
	}

	return first, nil
}

// Delete removes the row at index using swap-remove: if index is the last
// row, every column is simply truncated; otherwise the last row is copied
// over index and then truncated. When a row is moved, stage.entities is
// updated so the moved entity's record points at its new row.
//
// If the world is not in progress and the table became empty, queries are
// deactivated.
func (t *Table) Delete(world *World, stage *Stage, data *Data, index int) error {
	n := data.Len()
	if n == 0 {
		return internalf("delete", "delete from empty table")
	}
	last := n - 1
	if index > last || index < 0 {
		return internalf("delete", "row index %d out of range [0,%d]", index, last)
	}

	if index == last {
		data.entities = data.entities[:last]
		for i := range data.columns {
			data.columns[i].truncateLast()
		}
	} else {
		moved := data.entities[last]
		data.entities[index] = moved
		data.entities = data.entities[:last]
		for i := range data.columns {
			data.columns[i].overwriteWithLast(index)
		}
		stage.entities.Set(moved, Record{Table: t, Row: uint32(index + 1)})
	}

	if !world.InProgress && last == 0 {
		activateTable(world, t, nil, false)
	}

	return nil
}

// SetSize reserves capacity in the entity column and every data-bearing
// column for at least count rows, without changing the current row count.
// It is a pure preallocation hint for callers about to perform a known
// number of inserts.
func (t *Table) SetSize(data *Data, count int) {
	if cap(data.entities) < count {
		grown := make([]EntityId, len(data.entities), count)
		copy(grown, data.entities)
		data.entities = grown
	}
	for i := range data.columns {
		data.columns[i].reserve(count)
	}
}

// Swap exchanges rows r1 and r2: entity ids, every data-bearing column's
// slot, and (for either row whose *Record was not supplied) the matching
// entity-index record's Row. It is a no-op if r1 == r2.
func Swap(stage *Stage, table *Table, data *Data, r1, r2 int, rec1, rec2 *Record) {
	if r1 == r2 {
		return
	}

	e1, e2 := data.entities[r1], data.entities[r2]
	data.entities[r1], data.entities[r2] = e2, e1

	if rec1 == nil {
		if r, ok := stage.entities.Get(e1); ok {
			rec1 = &r
		}
	}
	if rec2 == nil {
		if r, ok := stage.entities.Get(e2); ok {
			rec2 = &r
		}
	}
	if rec1 != nil {
		rec1.Row = uint32(r2 + 1)
		stage.entities.Set(e1, *rec1)
	}
	if rec2 != nil {
		rec2.Row = uint32(r1 + 1)
		stage.entities.Set(e2, *rec2)
	}

	for i := range data.columns {
		data.columns[i].swap(r1, r2)
	}
}

// MoveBackAndSwap rotates a window of count rows starting at row leftward by
// one: the element at row-1 is saved, rows [row, row+count) shift to
// [row-1, row+count-1), and the saved element lands at row+count-1. Every
// moved entity's record Row is updated to its new 1-based row.
func MoveBackAndSwap(stage *Stage, table *Table, data *Data, row, count int) {
	saved := data.entities[row-1]

	for j := 0; j < count; j++ {
		cur := data.entities[row+j]
		data.entities[row+j-1] = cur
		if r, ok := stage.entities.Get(cur); ok {
			r.Row = uint32(row + j)
			stage.entities.Set(cur, r)
		}
	}

	data.entities[row+count-1] = saved
	if r, ok := stage.entities.Get(saved); ok {
		r.Row = uint32(row + count)
		stage.entities.Set(saved, r)
	}

	for i := range data.columns {
		data.columns[i].rotateWindow(row, count)
	}
}
