package table_test

import "github.com/plus3/archtable/table"

// fakeComponents is a minimal ComponentLookup for tests: component 1 is an
// 8-byte data component, component 2 is a 4-byte data component, component 9
// is a tag, everything else is unregistered.
type fakeComponents struct{}

func (fakeComponents) Get(id table.EntityId) (int, bool) {
	switch id {
	case 1:
		return 8, true
	case 2:
		return 4, true
	case 9:
		return 0, true
	default:
		return 0, false
	}
}

// fakeIndex is a plain map-backed table.EntityIndex for tests.
type fakeIndex struct {
	m map[table.EntityId]table.Record
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{m: make(map[table.EntityId]table.Record)}
}

func (f *fakeIndex) Get(id table.EntityId) (table.Record, bool) {
	r, ok := f.m[id]
	return r, ok
}

func (f *fakeIndex) Set(id table.EntityId, rec table.Record) {
	f.m[id] = rec
}

func (f *fakeIndex) Delete(id table.EntityId) {
	delete(f.m, id)
}

var _ table.EntityIndex = (*fakeIndex)(nil)

// fakeNotifier records every OnRemove call it receives.
type fakeNotifier struct {
	calls []fakeRemoval
}

type fakeRemoval struct {
	typ      table.Type
	startRow int
	count    int
}

func (f *fakeNotifier) Notify(typ table.Type, tbl *table.Table, data *table.Data, startRow, count int) {
	f.calls = append(f.calls, fakeRemoval{typ: typ, startRow: startRow, count: count})
}

var _ table.OnRemoveNotifier = (*fakeNotifier)(nil)

// fakeQuery records every activation transition it receives.
type fakeQuery struct {
	activations []bool
}

func (f *fakeQuery) ActivateTable(t *table.Table, active bool) {
	f.activations = append(f.activations, active)
}

var _ table.QueryActivator = (*fakeQuery)(nil)

func newWorld() (*table.World, *fakeIndex) {
	idx := newFakeIndex()
	w := table.NewWorld(fakeComponents{}, &fakeNotifier{}, idx)
	return w, idx
}
