// Package tui holds the styles and loading indicator shared by the datagrid
// terminal views.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette colors (ANSI 256).
const (
	ColorHeader   = lipgloss.Color("229")
	ColorSubtle   = lipgloss.Color("241")
	ColorSelected = lipgloss.Color("237")
	ColorCritical = lipgloss.Color("196")
	ColorSpinner  = lipgloss.Color("81")
)

// Shared styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)   //nolint:gochecknoglobals // Shared style
	FocusStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)             //nolint:gochecknoglobals // Shared style
	SelectedStyle = lipgloss.NewStyle().Background(ColorSelected)            //nolint:gochecknoglobals // Shared style
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorSubtle)              //nolint:gochecknoglobals // Shared style
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true) //nolint:gochecknoglobals // Shared style
	SpinnerStyle  = lipgloss.NewStyle().Foreground(ColorSpinner)             //nolint:gochecknoglobals // Shared style
)
