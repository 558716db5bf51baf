// Package notify provides the concrete OnRemove dispatcher collaborator
// (table.OnRemoveNotifier), modeled directly on the source's ecs_notify
// call in ecs_table_deinit. The teacher has no equivalent lifecycle hook, so
// this is grounded on original_source/src/table.c rather than the teacher,
// kept in the teacher's small-interface-near-its-one-caller style
// (table.OnRemoveNotifier mirrors iComponentStorage's shape).
package notify

import "github.com/plus3/archtable/table"

// Removal is one recorded OnRemove notification.
type Removal struct {
	Type     table.Type
	Table    *table.Table
	StartRow int
	RowCount int
}

// Log is a slice-recording OnRemoveNotifier: every notification is appended
// for later inspection. Used by tests and the demo tools; a real
// application would dispatch to registered component destructors instead.
type Log struct {
	Removals []Removal
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Notify implements table.OnRemoveNotifier.
func (l *Log) Notify(typ table.Type, tbl *table.Table, data *table.Data, startRow, count int) {
	l.Removals = append(l.Removals, Removal{
		Type:     typ,
		Table:    tbl,
		StartRow: startRow,
		RowCount: count,
	})
}

var _ table.OnRemoveNotifier = (*Log)(nil)
