package tui

import (
	"fmt"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
)

func groupColumns() []table.Column {
	return []table.Column{
		{Title: "Tag", Width: 8},
		{Title: "Label", Width: 8},
		{Title: "Title", Width: 24},
		{Title: "Primary", Width: 14},
		{Title: "Count", Width: 6},
		{Title: "Mean X", Width: 8},
		{Title: "Mean Y", Width: 8},
	}
}

// refreshGroupTable rebuilds the table rows from the current dataset.
func (m *Model) refreshGroupTable() {
	pal := m.opts.Theme.Palette
	rows := make([]table.Row, 0, len(m.groups))
	for _, g := range m.groups {
		rows = append(rows, table.Row{
			g.Tag,
			pal.Label(g.Tag),
			g.Title,
			strings.Join(g.Primary, ","),
			fmt.Sprintf("%d", g.Count),
			fmt.Sprintf("%.2f", g.MeanX),
			fmt.Sprintf("%.2f", g.MeanY),
		})
	}
	// clear rows first so a shorter dataset never leaves the cursor past the end
	m.tbl.SetRows(nil)
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
}

// selectedGroup returns the tag of the highlighted table row.
func (m Model) selectedGroup() (string, bool) {
	row := m.tbl.SelectedRow()
	if len(row) == 0 {
		return "", false
	}
	return row[0], true
}
