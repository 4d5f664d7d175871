// Package styles provides Lip Gloss styles for the paddock dashboard.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI.
var (
	// Primary colors
	Primary     = lipgloss.Color("#E10600") // Racing red
	Secondary   = lipgloss.Color("#38BDF8") // Sky
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#15151E") // Asphalt
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

// Header styles.
var (
	// HeaderStyle is the main header container.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Padding(0, 1)

	// HeaderLabelStyle is for header labels.
	HeaderLabelStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary)

	// HeaderValueStyle is for header values.
	HeaderValueStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Bold(true)

	// TitleStyle is for the application title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true)
)

// Panel styles.
var (
	// BoxStyle is a standard box with border.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// FocusedBoxStyle is a box that's currently focused.
	FocusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// PanelTitleStyle is for panel titles.
	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true)

	// TableHeaderStyle is for table column headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(MutedLight).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(BorderColor).
				BorderBottom(true).
				Padding(0, 1)

	// TableSelectedStyle is for the selected row of the focused table.
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Bold(true)
)

// Text styles.
var (
	// MutedTextStyle is for de-emphasized text.
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorTextStyle is for error messages.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	// WarningTextStyle is for warning messages.
	WarningTextStyle = lipgloss.NewStyle().
				Foreground(Warning)
)

// Status bar styles.
var (
	// StatusBarStyle is the main status bar container.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	// KeyStyle is for keyboard shortcut keys.
	KeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// HelpStyle is for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)
)
