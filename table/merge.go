package table

// Merge moves all rows of oldTable into newTable, appending. newTable's Type
// must be a superset of oldTable's Type under the shared total order (§4.11).
// If newTable is nil, oldTable is deleted wholesale (DeleteAll) instead.
//
// Merge performs the entity-index rewrite for every old row unconditionally,
// before checking whether there is anything left to merge column-wise — see
// DESIGN.md "Supplemented features" for why skipping rows with a zero count
// never loses anything here, since the loop bound is old_count itself.
func Merge(world *World, newTable, oldTable *Table) error {
	if oldTable == newTable {
		return internalf("merge", "old_table and new_table are the same table")
	}
	oldData := oldTable.data
	if oldData == nil {
		return internalf("merge", "old_table has no Data")
	}

	oldCount := oldData.Len()
	newCount := 0
	if newTable != nil && newTable.data != nil {
		newCount = newTable.data.Len()
	}

	// Step 1: rewrite the entity index for every old row. The row written
	// is 0-based (i + newCount), not 1-based like every other write path in
	// this package — preserved intentionally, see DESIGN.md Open Question 1.
	for i, e := range oldData.entities {
		world.MainStage.entities.Set(e, Record{
			Table: newTable,
			Row:   uint32(i + newCount),
		})
	}

	if newTable == nil {
		oldTable.DeleteAll(world)
		return nil
	}

	if oldCount == 0 {
		return nil
	}

	newData := newTable.data
	if newData == nil {
		return internalf("merge", "new_table has no Data")
	}

	// The entity id columns are merged separately, in mergeEntityColumn
	// below (the source's "first iteration special-cases size =
	// sizeof(entity_id)" per §4.11 step 3). Data.columns here is allocated
	// 1:1 with Type (no reserved leading slot), so the component-column walk
	// below compares type[iNew] against type[iOld] directly from index 0,
	// with no index shift.
	newType, oldType := newTable.typ, oldTable.typ
	iNew, iOld := 0, 0
	newCompCount, oldCompCount := len(newType), len(oldType)

	for iNew < newCompCount && iOld < oldCompCount {
		newId, oldId := newType[iNew], oldType[iOld]

		if newId.IsRelation() || oldId.IsRelation() {
			break
		}

		switch {
		case newId == oldId:
			mergeVector(&newData.columns[iNew], &oldData.columns[iOld])
			iNew++
			iOld++
		case newId < oldId:
			return internalf("merge", "new_table type is not a superset of old_table type")
		default: // newId > oldId
			oldData.columns[iOld].data = nil
			iOld++
		}
	}

	mergeEntityColumn(newData, oldData)
	return nil
}

func mergeEntityColumn(newData, oldData *Data) {
	if len(newData.entities) == 0 {
		newData.entities = oldData.entities
	} else {
		newData.entities = append(newData.entities, oldData.entities...)
	}
	oldData.entities = nil
}
