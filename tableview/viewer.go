// Package tableview renders a live view of a world.Registry's tables as a
// Dear ImGui panel, adapted line-for-line in structure from the teacher's
// debugui/archetype_viewer.go (sortable ImGui table, per-row entity-count
// bar), re-pointed at *table.Table instead of *ecs.Archetype.
package tableview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/archtable/table"
	"github.com/plus3/archtable/world"
)

// row is the cached, render-ready summary of one table.
type row struct {
	table      *table.Table
	typeLabel  string
	numColumns int
	rowCount   int
	flags      table.Flags
}

// TableViewer is an ImGui panel listing every table currently registered
// in a world.Registry.
type TableViewer struct {
	registry *world.Registry

	rows           []row
	lastTableCount int
	sortColumn     int
	sortAscending  bool
	selectedType   string
}

// New creates a TableViewer bound to registry, sorted by row count
// descending by default (mirroring the teacher's viewer default).
func New(registry *world.Registry) *TableViewer {
	return &TableViewer{
		registry:      registry,
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render draws the panel. It returns the Type label of the row the user
// clicked, if any, for a caller to drive a detail view with.
func (v *TableViewer) Render() string {
	if !imgui.BeginV("Table Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	v.rebuildIfNeeded()

	maxRows := 0
	for _, r := range v.rows {
		if r.rowCount > maxRows {
			maxRows = r.rowCount
		}
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("TableViewerTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.End()
		return ""
	}

	imgui.TableSetupColumn("Type")
	imgui.TableSetupColumn("Columns")
	imgui.TableSetupColumn("Rows")
	imgui.TableSetupColumn("Flags")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		v.sortColumn = int(spec.ColumnIndex())
		v.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		v.sort()
		sortSpecs.SetSpecsDirty(false)
	}

	var clicked string

	for _, r := range v.rows {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		isSelected := v.selectedType == r.typeLabel
		if imgui.SelectableBoolV(r.typeLabel, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			clicked = r.typeLabel
			v.selectedType = r.typeLabel
		}

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", r.numColumns))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", r.rowCount))

		imgui.TableNextColumn()
		imgui.Text(flagsLabel(r.flags))

		if maxRows > 0 {
			barWidth := float32(r.rowCount) / float32(maxRows) * 80.0
			imgui.SameLine()
			drawList := imgui.WindowDrawList()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
		}
	}

	imgui.EndTable()
	imgui.End()
	return clicked
}

func flagsLabel(f table.Flags) string {
	var parts []string
	if f&table.FlagHasBuiltins != 0 {
		parts = append(parts, "builtins")
	}
	if f&table.FlagIsPrefab != 0 {
		parts = append(parts, "prefab")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func (v *TableViewer) rebuildIfNeeded() {
	tables := v.registry.Tables()
	if len(tables) == v.lastTableCount {
		v.refreshCounts(tables)
		return
	}
	v.lastTableCount = len(tables)
	v.rebuild(tables)
}

func (v *TableViewer) rebuild(tables []*table.Table) {
	v.rows = make([]row, 0, len(tables))
	for _, t := range tables {
		v.rows = append(v.rows, newRow(t))
	}
	v.sort()
}

func (v *TableViewer) refreshCounts(tables []*table.Table) {
	byPtr := make(map[*table.Table]int, len(v.rows))
	for i, r := range v.rows {
		byPtr[r.table] = i
	}
	for _, t := range tables {
		if i, ok := byPtr[t]; ok {
			v.rows[i].rowCount = t.Count()
		}
	}
	if v.sortColumn == 2 {
		v.sort()
	}
}

func newRow(t *table.Table) row {
	ids := make([]string, len(t.Type()))
	for i, id := range t.Type() {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return row{
		table:      t,
		typeLabel:  strings.Join(ids, ","),
		numColumns: len(t.Type()),
		rowCount:   t.Count(),
		flags:      t.Flags(),
	}
}

func (v *TableViewer) sort() {
	sort.Slice(v.rows, func(i, j int) bool {
		a, b := v.rows[i], v.rows[j]
		var less bool
		switch v.sortColumn {
		case 0:
			less = a.typeLabel < b.typeLabel
		case 1:
			less = a.numColumns < b.numColumns
		case 2:
			less = a.rowCount < b.rowCount
		default:
			less = a.rowCount < b.rowCount
		}
		if !v.sortAscending {
			return !less
		}
		return less
	})
}
