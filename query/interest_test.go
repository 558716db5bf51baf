package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/archtable/query"
	"github.com/plus3/archtable/table"
)

func TestInterestActivateDeactivate(t *testing.T) {
	q := query.NewInterest()
	tbl := table.NewTable(table.Type{1})

	assert.False(t, q.IsActive(tbl))
	assert.Empty(t, q.ActiveTables())

	q.ActivateTable(tbl, true)
	assert.True(t, q.IsActive(tbl))
	assert.Equal(t, []*table.Table{tbl}, q.ActiveTables())

	q.ActivateTable(tbl, false)
	assert.False(t, q.IsActive(tbl))
	assert.Empty(t, q.ActiveTables())
}

func TestInterestTracksMultipleTables(t *testing.T) {
	q := query.NewInterest()
	t1 := table.NewTable(table.Type{1})
	t2 := table.NewTable(table.Type{2})

	q.ActivateTable(t1, true)
	q.ActivateTable(t2, true)
	assert.Len(t, q.ActiveTables(), 2)

	q.ActivateTable(t1, false)
	assert.Equal(t, []*table.Table{t2}, q.ActiveTables())
}

var _ table.QueryActivator = query.NewInterest()
