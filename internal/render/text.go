package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/datagrid/internal/pagination"
	"github.com/rshade/datagrid/internal/table"
)

// Navigation control labels.
const (
	labelFirst = "<<"
	labelPrev  = "<"
	labelNext  = ">"
	labelLast  = ">>"
)

// Palette colors (ANSI 256).
const (
	colorBorder   = "240"
	colorHeader   = "229"
	colorDisabled = "241"
)

// TextOptions control static text rendering.
type TextOptions struct {
	// NoColor disables colors and text attributes.
	NoColor bool
}

// Text writes the table as a bordered text grid followed by the pagination bar
// when the table is paginated.
func Text(w io.Writer, t *table.Table, opts TextOptions) error {
	r := lipgloss.NewRenderer(w)
	grid := Grid(r, t, opts)

	var out strings.Builder
	out.WriteString(grid)
	out.WriteString("\n")
	if t.Empty() {
		out.WriteString(r.NewStyle().
			Width(lipgloss.Width(grid)).
			Align(lipgloss.Center).
			Render(table.NoDataText))
		out.WriteString("\n")
	}
	if ctrl, ok := t.Pagination(); ok {
		out.WriteString(Bar(r, ctrl, opts))
		out.WriteString("\n")
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// Grid renders the header and the visible page as a lipgloss table.
func Grid(r *lipgloss.Renderer, t *table.Table, opts TextOptions) string {
	headerStyle := r.NewStyle().Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	borderStyle := r.NewStyle()
	if !opts.NoColor {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.Color(colorHeader))
		borderStyle = borderStyle.Foreground(lipgloss.Color(colorBorder))
	}

	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(HeaderLabels(t)...).
		Rows(t.Body()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// HeaderLabels returns the header texts with their sort indicators.
func HeaderLabels(t *table.Table) []string {
	cells := t.Header()
	labels := make([]string, len(cells))
	for i, c := range cells {
		if c.Indicator == "" {
			labels[i] = c.Label
			continue
		}
		labels[i] = c.Label + " " + c.Indicator
	}
	return labels
}

// Bar renders the navigation controls, page-size options and record range.
// Disabled controls are blanked out.
func Bar(r *lipgloss.Renderer, c *pagination.Controller, opts TextOptions) string {
	aff := c.Affordances()
	disabled := r.NewStyle()
	if !opts.NoColor {
		disabled = disabled.Foreground(lipgloss.Color(colorDisabled))
	}

	control := func(label string, enabled bool) string {
		if enabled {
			return label
		}
		return disabled.Render(strings.Repeat(" ", len(label)))
	}

	parts := []string{
		control(labelFirst, aff.First),
		control(labelPrev, aff.Prev),
		PageSizeOptions(c),
		control(labelNext, aff.Next),
		control(labelLast, aff.Last),
	}
	return strings.Join(parts, " ") + "   " + RangeText(c.Range())
}

// PageSizeOptions lists the selectable page sizes with the current one bracketed.
func PageSizeOptions(c *pagination.Controller) string {
	current := c.State().PageSize
	options := c.PageSizeOptions()
	parts := make([]string, len(options))
	for i, size := range options {
		label := strconv.Itoa(size)
		if size == current {
			label = "[" + label + "]"
		}
		parts[i] = label
	}
	return fmt.Sprintf("%s rows", strings.Join(parts, " "))
}

// RangeText formats a record range as "11 to 20 of 25" with grouped digits.
func RangeText(rg pagination.Range) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d to %d of %d", rg.From, rg.To, rg.Total)
}
