// Package query provides the minimal concrete query-engine collaborator the
// table core talks to (table.QueryActivator). It is deliberately not a
// filter or query language — that is explicitly out of scope for this core
// (spec Non-goals) — it only tracks which tables are currently active, the
// one contract Table.RegisterQuery/activation actually requires.
package query

import "github.com/plus3/archtable/table"

// Interest is a bare activation-tracking query stand-in: it records which
// tables a table core has told it are active, and nothing more. Grounded on
// the shape of the teacher's Query[T]/View[T] archetype cache (query.go,
// view.go) — "a thing the table notifies on activation" — pared down to
// exactly what spec §4.10 requires.
type Interest struct {
	active map[*table.Table]bool
}

// NewInterest creates an empty Interest.
func NewInterest() *Interest {
	return &Interest{active: make(map[*table.Table]bool)}
}

// ActivateTable implements table.QueryActivator.
func (q *Interest) ActivateTable(t *table.Table, activate bool) {
	if activate {
		q.active[t] = true
	} else {
		delete(q.active, t)
	}
}

// ActiveTables returns the tables currently signaled active, in no
// particular order.
func (q *Interest) ActiveTables() []*table.Table {
	out := make([]*table.Table, 0, len(q.active))
	for t := range q.active {
		out = append(out, t)
	}
	return out
}

// IsActive reports whether t has been activated and not since deactivated.
func (q *Interest) IsActive(t *table.Table) bool {
	return q.active[t]
}

var _ table.QueryActivator = (*Interest)(nil)
