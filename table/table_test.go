package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/archtable/table"
)

func insert(t *testing.T, w *table.World, stage *table.Stage, tbl *table.Table, entity table.EntityId) int {
	t.Helper()
	data, err := tbl.GetData(w, stage)
	require.NoError(t, err)
	row, err := tbl.Insert(w, data, entity)
	require.NoError(t, err)
	stage.Entities().Set(entity, table.Record{Table: tbl, Row: uint32(row + 1)})
	return row
}

// Empty lifecycle: a freshly initialized table has zero rows and no flags,
// and Count tracks Insert/Delete.
func TestEmptyLifecycle(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1, 2})
	require.NoError(t, tbl.Init(w))

	assert.Equal(t, 0, tbl.Count())
	assert.Equal(t, table.Flags(0), tbl.Flags())

	insert(t, w, w.MainStage, tbl, 100)
	assert.Equal(t, 1, tbl.Count())

	data := tbl.Data()
	require.NoError(t, tbl.Delete(w, w.MainStage, data, 0))
	assert.Equal(t, 0, tbl.Count())
}

// Swap-remove from middle: deleting the first of three rows moves the tail
// row into its place and updates the moved entity's index record.
func TestDeleteSwapRemoveFromMiddle(t *testing.T) {
	w, idx := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	insert(t, w, w.MainStage, tbl, 10)
	insert(t, w, w.MainStage, tbl, 20)
	insert(t, w, w.MainStage, tbl, 30)

	data := tbl.Data()
	require.NoError(t, tbl.Delete(w, w.MainStage, data, 0))

	assert.Equal(t, []table.EntityId{30, 20}, data.Entities())

	rec, ok := idx.Get(20)
	require.True(t, ok)
	assert.EqualValues(t, 2, rec.Row)

	rec, ok = idx.Get(30)
	require.True(t, ok)
	assert.EqualValues(t, 1, rec.Row)
}

// Deleting the last row is a pure truncation with no moved entity.
func TestDeleteLastRowIsTruncation(t *testing.T) {
	w, idx := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	insert(t, w, w.MainStage, tbl, 10)
	insert(t, w, w.MainStage, tbl, 20)

	data := tbl.Data()
	require.NoError(t, tbl.Delete(w, w.MainStage, data, 1))

	assert.Equal(t, []table.EntityId{10}, data.Entities())
	rec, ok := idx.Get(10)
	require.True(t, ok)
	assert.EqualValues(t, 1, rec.Row)
}

func TestDeleteOutOfRangeIsInternalError(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))
	insert(t, w, w.MainStage, tbl, 10)

	data := tbl.Data()
	err := tbl.Delete(w, w.MainStage, data, 5)
	var internal *table.InternalError
	require.ErrorAs(t, err, &internal)
}

func TestDeleteFromEmptyIsInternalError(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	err := tbl.Delete(w, w.MainStage, tbl.Data(), 0)
	var internal *table.InternalError
	require.ErrorAs(t, err, &internal)
}

// In-progress mutations target a per-stage shadow, leaving the committed
// Data untouched until an external commit phase folds it back.
func TestInProgressShadow(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))
	insert(t, w, w.MainStage, tbl, 1)

	w.InProgress = true
	stage := table.NewStage(newFakeIndex())

	shadow := insert(t, w, stage, tbl, 2)
	assert.Equal(t, 0, shadow)

	// Committed Data is untouched.
	assert.Equal(t, 1, tbl.Count())

	shadowData, err := tbl.GetData(w, stage)
	require.NoError(t, err)
	assert.Equal(t, 1, shadowData.Len())

	w.InProgress = false
}

// Activation fires edge-triggered: only on the empty<->non-empty
// transitions, and only while not in progress.
func TestActivationEdgeTriggered(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	q := &fakeQuery{}
	tbl.RegisterQuery(w, q)
	assert.Empty(t, q.activations)

	insert(t, w, w.MainStage, tbl, 1)
	insert(t, w, w.MainStage, tbl, 2)
	assert.Equal(t, []bool{true}, q.activations)

	data := tbl.Data()
	require.NoError(t, tbl.Delete(w, w.MainStage, data, 0))
	assert.Equal(t, []bool{true}, q.activations)

	require.NoError(t, tbl.Delete(w, w.MainStage, data, 0))
	assert.Equal(t, []bool{true, false}, q.activations)
}

func TestActivationSuppressedWhileInProgress(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	q := &fakeQuery{}
	tbl.RegisterQuery(w, q)

	w.InProgress = true
	stage := table.NewStage(newFakeIndex())
	insert(t, w, stage, tbl, 1)
	w.InProgress = false

	assert.Empty(t, q.activations)
}

// RegisterQuery on an already non-empty table activates immediately.
func TestRegisterQueryActivatesExistingTable(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))
	insert(t, w, w.MainStage, tbl, 1)

	q := &fakeQuery{}
	tbl.RegisterQuery(w, q)
	assert.Equal(t, []bool{true}, q.activations)
}

// Reallocation flag: repeated inserts eventually grow a column's backing
// array, and world.ShouldResolve tracks exactly that transition.
func TestReallocationFlag(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	sawResolve := false
	for i := 0; i < 64; i++ {
		w.ShouldResolve = false
		insert(t, w, w.MainStage, tbl, table.EntityId(i+1))
		if w.ShouldResolve {
			sawResolve = true
		}
	}
	assert.True(t, sawResolve, "expected at least one reallocation across 64 inserts")
}

// ShouldResolve is only meaningful for the committed Data; staged inserts
// never set it even if the shadow's column reallocates.
func TestReallocationFlagNotSetForStagedData(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	w.InProgress = true
	stage := table.NewStage(newFakeIndex())
	for i := 0; i < 64; i++ {
		w.ShouldResolve = false
		insert(t, w, stage, tbl, table.EntityId(i+1))
		assert.False(t, w.ShouldResolve)
	}
	w.InProgress = false
}

// Merge superset, per the scenario in the spec: old Type=[A], 3 rows;
// new Type=[A,B], 1 row. After merge, the new table holds all 4 rows with
// the old rows appended, and the old entities' index records point at the
// new table at the preserved 0-based rows 1..3 (not 2..4 — see
// TestMergeRowIsZeroBased and DESIGN.md Open Question 1).
func TestMergeSuperset(t *testing.T) {
	w, idx := newWorld()

	oldTable := table.NewTable(table.Type{1})
	require.NoError(t, oldTable.Init(w))
	insert(t, w, w.MainStage, oldTable, 1)
	insert(t, w, w.MainStage, oldTable, 2)
	insert(t, w, w.MainStage, oldTable, 3)

	newTable := table.NewTable(table.Type{1, 2})
	require.NoError(t, newTable.Init(w))
	insert(t, w, w.MainStage, newTable, 9)

	require.NoError(t, table.Merge(w, newTable, oldTable))

	newData := newTable.Data()
	assert.Equal(t, []table.EntityId{9, 1, 2, 3}, newData.Entities())
	assert.Equal(t, 4, newData.Len())

	// newCount was 1 (entity 9) before the merge, so the preserved 0-based
	// write (i + newCount) lands old row i=0 (entity 1) at 1, i=2 (entity 3)
	// at 3 — not 2/4. See TestMergeRowIsZeroBased and DESIGN.md Open
	// Question 1.
	rec, ok := idx.Get(1)
	require.True(t, ok)
	assert.EqualValues(t, 1, rec.Row)

	rec, ok = idx.Get(3)
	require.True(t, ok)
	assert.EqualValues(t, 3, rec.Row)

	assert.Equal(t, 0, oldTable.Count())
}

// TestMergeRowIsZeroBased pins the entity-index write in Merge's Step 1 at
// exactly 0-based (i + newCount), unlike every other write path in this
// package, which is 1-based. See DESIGN.md Open Question 1.
func TestMergeRowIsZeroBased(t *testing.T) {
	w, idx := newWorld()

	oldTable := table.NewTable(table.Type{1})
	require.NoError(t, oldTable.Init(w))
	insert(t, w, w.MainStage, oldTable, 1)

	newTable := table.NewTable(table.Type{1, 2})
	require.NoError(t, newTable.Init(w))

	require.NoError(t, table.Merge(w, newTable, oldTable))

	rec, ok := idx.Get(1)
	require.True(t, ok)
	// newCount was 0, i was 0: record.Row == 0, not 1.
	assert.EqualValues(t, 0, rec.Row)
}

func TestMergeNonSupersetIsInternalError(t *testing.T) {
	w, _ := newWorld()

	oldTable := table.NewTable(table.Type{2})
	require.NoError(t, oldTable.Init(w))
	insert(t, w, w.MainStage, oldTable, 1)

	newTable := table.NewTable(table.Type{1})
	require.NoError(t, newTable.Init(w))

	err := table.Merge(w, newTable, oldTable)
	var internal *table.InternalError
	require.ErrorAs(t, err, &internal)
}

func TestMergeIntoNilDeletesAll(t *testing.T) {
	w, idx := newWorld()

	oldTable := table.NewTable(table.Type{1})
	require.NoError(t, oldTable.Init(w))
	insert(t, w, w.MainStage, oldTable, 1)
	insert(t, w, w.MainStage, oldTable, 2)

	require.NoError(t, table.Merge(w, nil, oldTable))
	assert.Equal(t, 0, oldTable.Count())

	rec, ok := idx.Get(1)
	require.True(t, ok)
	assert.Nil(t, rec.Table)
}

// Rotate: move_back_and_swap(row=2, count=3) on entity column
// [e0,e1,e2,e3,e4,e5] yields [e0,e2,e3,e4,e1,e5]; e1's row becomes 5.
func TestMoveBackAndSwapRotate(t *testing.T) {
	w, idx := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	entities := []table.EntityId{100, 101, 102, 103, 104, 105}
	for _, e := range entities {
		insert(t, w, w.MainStage, tbl, e)
	}

	data := tbl.Data()
	table.MoveBackAndSwap(w.MainStage, tbl, data, 2, 3)

	assert.Equal(t, []table.EntityId{100, 102, 103, 104, 101, 105}, data.Entities())

	rec, ok := idx.Get(101)
	require.True(t, ok)
	assert.EqualValues(t, 5, rec.Row)

	rec, ok = idx.Get(102)
	require.True(t, ok)
	assert.EqualValues(t, 2, rec.Row)

	rec, ok = idx.Get(104)
	require.True(t, ok)
	assert.EqualValues(t, 4, rec.Row)
}

// Swap is its own inverse.
func TestSwapInvolution(t *testing.T) {
	w, idx := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	insert(t, w, w.MainStage, tbl, 1)
	insert(t, w, w.MainStage, tbl, 2)
	insert(t, w, w.MainStage, tbl, 3)

	data := tbl.Data()
	before := append([]table.EntityId(nil), data.Entities()...)

	table.Swap(w.MainStage, tbl, data, 0, 2, nil, nil)
	table.Swap(w.MainStage, tbl, data, 0, 2, nil, nil)

	assert.Equal(t, before, data.Entities())
	for _, e := range before {
		rec, ok := idx.Get(e)
		require.True(t, ok)
		for row, cur := range data.Entities() {
			if cur == e {
				assert.EqualValues(t, row+1, rec.Row)
			}
		}
	}
}

func TestSwapIsNoopWhenEqual(t *testing.T) {
	w, idx := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))
	insert(t, w, w.MainStage, tbl, 1)

	data := tbl.Data()
	table.Swap(w.MainStage, tbl, data, 0, 0, nil, nil)
	assert.Equal(t, []table.EntityId{1}, data.Entities())

	rec, ok := idx.Get(1)
	require.True(t, ok)
	assert.EqualValues(t, 1, rec.Row)
}

// ReplaceColumns' free-then-install ordering activates/deactivates on the
// empty<->non-empty boundary exactly as Insert/Delete would.
func TestReplaceColumnsActivation(t *testing.T) {
	w, _ := newWorld()
	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))

	q := &fakeQuery{}
	tbl.RegisterQuery(w, q)

	helper := table.NewTable(table.Type{1})
	require.NoError(t, helper.Init(w))
	freshData := helper.Data()

	tbl.ReplaceColumns(w, freshData)
	assert.Empty(t, q.activations)

	insert(t, w, w.MainStage, tbl, 1)
	assert.Equal(t, []bool{true}, q.activations)
}

func TestDeleteAllNotifiesOnRemove(t *testing.T) {
	notifier := &fakeNotifier{}
	idx := newFakeIndex()
	w := table.NewWorld(fakeComponents{}, notifier, idx)

	tbl := table.NewTable(table.Type{1})
	require.NoError(t, tbl.Init(w))
	insert(t, w, w.MainStage, tbl, 1)
	insert(t, w, w.MainStage, tbl, 2)

	tbl.DeleteAll(w)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, 0, notifier.calls[0].startRow)
	assert.Equal(t, 2, notifier.calls[0].count)
	assert.Equal(t, 0, tbl.Count())
}
