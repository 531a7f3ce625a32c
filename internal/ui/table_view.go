package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/filter"
	"taskboard/internal/table"
	"taskboard/internal/task"
)

const (
	defaultWidth = 110
	panelWidth   = 38
	cellGap      = 2
	minCellWidth = 8
)

func (m Model) renderTablePage() string {
	var b strings.Builder
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	if chips := m.renderChips(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.mode == modeColumns {
		b.WriteString(m.renderColumnEditor())
		return b.String()
	}

	content, done := m.body(m.engine.Len())
	if !done {
		content = m.renderTable()
	}
	if m.details.IsOpen() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", m.renderDetails())
	}
	b.WriteString(content)
	return b.String()
}

func (m Model) renderFilterBar() string {
	var parts []string
	if m.mode == modeSearch {
		parts = append(parts, m.search.View())
	} else {
		search := m.filters.Search
		if search == "" {
			search = mutedStyle.Render("(none)")
		}
		parts = append(parts, "Search: "+search)
	}
	for i, f := range filterControls {
		v := m.filters.Get(f)
		if v == "" {
			v = "All"
		} else {
			v = displayFilterValue(f, v)
		}
		label := fmt.Sprintf("%s: ‹%s›", filterLabel(f), v)
		if m.mode == modeFilters && i == m.filterIndex {
			label = activeControl.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderChips() string {
	chips := m.filters.Chips()
	if len(chips) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(chips)+1)
	for _, c := range chips {
		rendered = append(rendered, chipStyle.Render(c.Label))
	}
	rendered = append(rendered, mutedStyle.Render(" "+m.cfg.Keys.Reset+" to reset"))
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}

func filterLabel(f filter.Field) string {
	switch f {
	case filter.FieldStatus:
		return "Status"
	case filter.FieldPriority:
		return "Priority"
	case filter.FieldAssignee:
		return "Assignee"
	}
	return "Search"
}

func displayFilterValue(f filter.Field, v string) string {
	switch f {
	case filter.FieldStatus:
		return task.FormatStatus(v)
	case filter.FieldPriority:
		return task.FormatPriority(v)
	}
	return v
}

func (m Model) tableWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	if m.details.IsOpen() {
		w -= panelWidth + 2
	}
	return max(w, minCellWidth)
}

func (m Model) renderTable() string {
	cols := m.columns.Visible()
	widths := table.Widths(cols, m.tableWidth()-2, cellGap, minCellWidth)
	gap := strings.Repeat(" ", cellGap)

	var b strings.Builder
	header := table.Header(cols, m.engine.Sort())
	cells := make([]string, len(header))
	for i, h := range header {
		style := headerStyle
		if i == m.colCursor {
			style = headerCursor
		}
		cells[i] = style.Render(table.Fit(h, widths[i]))
	}
	b.WriteString("  " + strings.Join(cells, gap))
	b.WriteString("\n")

	viewport := m.viewportRows()
	rows, start := m.engine.VisibleRows(viewport)
	skip := max(m.engine.Offset()-start, 0)
	focus := int(m.engine.Focus())
	for i, t := range rows {
		if i < skip {
			continue
		}
		if i-skip >= viewport {
			break
		}
		idx := start + i
		values := table.Cells(t, cols)
		for j := range values {
			values[j] = table.Fit(values[j], widths[j])
		}
		marker := "  "
		if m.details.IsOpen() && m.details.Task.ID == t.ID {
			marker = selectedMark.Render("● ")
		}
		line := strings.Join(values, gap)
		if idx == focus {
			line = focusedRow.Render(line)
		}
		b.WriteString(marker + line)
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(m.pager().View() + fmt.Sprintf(" • %d tasks", m.engine.Len())))
	return b.String()
}

// pager mirrors the engine's page state for the footer.
func (m Model) pager() paginator.Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "Page %d of %d"
	p.PerPage = m.engine.PageSize()
	p.SetTotalPages(m.engine.Len())
	p.Page = m.engine.Page() - 1
	return p
}

func (m Model) renderDetails() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.details.Title()))
	b.WriteString("\n\n")
	inner := panelWidth - 4
	for _, f := range m.details.Fields() {
		b.WriteString(labelStyle.Render(f.Label))
		b.WriteString("\n")
		v := f.Value
		if strings.TrimSpace(v) == "" {
			v = "-"
		}
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(v))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(m.cfg.Keys.Cancel + " to close"))
	return panelStyle.Width(panelWidth).Render(b.String())
}
