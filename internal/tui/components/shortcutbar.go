package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/paddock/internal/tui/styles"
)

// ShortcutDef defines a single keyboard shortcut.
type ShortcutDef struct {
	Key  string
	Desc string
}

// ShortcutBar is a component that displays keyboard shortcuts at the bottom
// of the dashboard.
type ShortcutBar struct {
	shortcuts []ShortcutDef
	width     int
	centered  bool
}

// NewShortcutBar creates a new ShortcutBar with the given shortcuts.
func NewShortcutBar(shortcuts ...ShortcutDef) *ShortcutBar {
	return &ShortcutBar{
		shortcuts: shortcuts,
	}
}

// SetShortcuts replaces all shortcuts.
func (s *ShortcutBar) SetShortcuts(shortcuts ...ShortcutDef) {
	s.shortcuts = shortcuts
}

// SetWidth sets the bar width for alignment.
func (s *ShortcutBar) SetWidth(width int) {
	s.width = width
}

// SetCentered controls whether the bar content is centered.
func (s *ShortcutBar) SetCentered(centered bool) {
	s.centered = centered
}

// View renders the shortcut bar.
func (s *ShortcutBar) View() string {
	if len(s.shortcuts) == 0 {
		return ""
	}

	parts := make([]string, 0, len(s.shortcuts))
	for _, sc := range s.shortcuts {
		parts = append(parts, s.renderShortcut(sc))
	}

	content := strings.Join(parts, s.renderSeparator())

	if s.centered && s.width > 0 {
		containerStyle := lipgloss.NewStyle().
			Width(s.width).
			Align(lipgloss.Center)
		return containerStyle.Render(content)
	}

	return styles.StatusBarStyle.Render(content)
}

// renderShortcut renders a single shortcut (key: description).
func (s *ShortcutBar) renderShortcut(sc ShortcutDef) string {
	return styles.KeyStyle.Render(sc.Key) + styles.HelpStyle.Render(":"+sc.Desc)
}

func (s *ShortcutBar) renderSeparator() string {
	return lipgloss.NewStyle().Foreground(styles.Muted).Render(" │ ")
}

// DashboardShortcuts are the shortcuts shown under the standings tables.
var DashboardShortcuts = []ShortcutDef{
	{"←→", "focus"},
	{"↑↓", "scroll"},
	{"r", "refresh"},
	{"?", "help"},
	{"q", "quit"},
}
