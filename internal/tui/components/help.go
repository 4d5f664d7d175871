package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/paddock/internal/tui/styles"
)

// Shortcut represents a keyboard shortcut.
type Shortcut struct {
	Key  string
	Desc string
}

// ShortcutGroup represents a group of related shortcuts.
type ShortcutGroup struct {
	Title     string
	Shortcuts []Shortcut
}

// HelpOverlay displays keyboard shortcuts and help information.
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	groups  []ShortcutGroup
}

// NewHelpOverlay creates a new HelpOverlay component.
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  48,
		height: 18,
		groups: []ShortcutGroup{
			{
				Title: "Navigation",
				Shortcuts: []Shortcut{
					{"←/h", "Focus drivers"},
					{"→/l", "Focus constructors"},
					{"j/↓", "Move down"},
					{"k/↑", "Move up"},
				},
			},
			{
				Title: "Data",
				Shortcuts: []Shortcut{
					{"r", "Refresh from the API"},
				},
			},
			{
				Title: "General",
				Shortcuts: []Shortcut{
					{"?", "Toggle help"},
					{"q", "Quit"},
				},
			},
		},
	}
}

// SetGroups sets custom shortcut groups.
func (h *HelpOverlay) SetGroups(groups []ShortcutGroup) {
	h.groups = groups
}

// SetSize sets the overlay dimensions.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Show makes the overlay visible.
func (h *HelpOverlay) Show() {
	h.visible = true
}

// Hide hides the overlay.
func (h *HelpOverlay) Hide() {
	h.visible = false
}

// Toggle toggles visibility.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the overlay is visible.
func (h *HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update closes the overlay on any key press.
func (h *HelpOverlay) Update(msg tea.Msg) tea.Cmd {
	if !h.visible {
		return nil
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		h.Hide()
		return func() tea.Msg {
			return HelpClosedMsg{}
		}
	}
	return nil
}

// View renders the help overlay.
func (h *HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Background(styles.Primary).
		Bold(true).
		Padding(0, 1)
	if h.width > 4 {
		titleStyle = titleStyle.Width(h.width - 4)
	}
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for i, group := range h.groups {
		b.WriteString(h.renderGroup(group))
		if i < len(h.groups)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Muted).
		Italic(true)
	b.WriteString(footerStyle.Render("Press any key to close"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(styles.Primary).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}

func (h *HelpOverlay) renderGroup(group ShortcutGroup) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true)
	b.WriteString(titleStyle.Render(group.Title))
	b.WriteString("\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Bold(true).
		Width(8)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.MutedLight)

	for _, shortcut := range group.Shortcuts {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(shortcut.Key))
		b.WriteString(" ")
		b.WriteString(descStyle.Render(shortcut.Desc))
		b.WriteString("\n")
	}

	return b.String()
}

// HelpClosedMsg is sent when the help overlay is closed.
type HelpClosedMsg struct{}
