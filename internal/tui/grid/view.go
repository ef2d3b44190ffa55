package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/datagrid/internal/render"
	"github.com/rshade/datagrid/internal/table"
	"github.com/rshade/datagrid/internal/tui"
)

const cellSeparator = " │ "

// View renders the browser.
func (m *Model) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	widths := m.columnWidths()
	m.widths = widths
	var b strings.Builder
	b.WriteString(m.renderHeader(widths))
	b.WriteString("\n")
	b.WriteString(tui.SubtleStyle.Render(strings.Repeat("─", totalWidth(widths))))
	b.WriteString("\n")

	switch {
	case m.state == ViewStateLoading:
		b.WriteString(tui.RenderLoading(m.loading))
	case m.state == ViewStateError:
		b.WriteString(tui.CriticalStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.table.Empty():
		b.WriteString(tui.SubtleStyle.Render(table.NoDataText))
	default:
		b.WriteString(m.rows.View())
	}
	b.WriteString("\n\n")

	if ctrl, ok := m.table.Pagination(); ok {
		b.WriteString(render.Bar(lipgloss.DefaultRenderer(), ctrl, render.TextOptions{}))
		b.WriteString("  ")
		b.WriteString(m.pager.View())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader(widths []int) string {
	labels := render.HeaderLabels(m.table)
	cells := make([]string, len(labels))
	for i, label := range labels {
		style := tui.HeaderStyle
		if i == m.focus {
			style = tui.FocusStyle
		}
		cells[i] = style.Render(pad(label, widths[i]))
	}
	return strings.Join(cells, cellSeparator)
}

func (m *Model) renderRow(cells []string, selected bool) string {
	widths := m.widths
	padded := make([]string, len(cells))
	for i, c := range cells {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		padded[i] = pad(c, w)
	}
	line := strings.Join(padded, cellSeparator)
	if selected {
		return tui.SelectedStyle.Render(line)
	}
	return line
}

// columnWidths returns the display width of each visible column over the
// header and the rows of the current page.
func (m *Model) columnWidths() []int {
	labels := render.HeaderLabels(m.table)
	widths := make([]int, len(labels))
	for i, label := range labels {
		widths[i] = lipgloss.Width(label)
	}
	for _, row := range m.table.Body() {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	total := lipgloss.Width(cellSeparator) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
