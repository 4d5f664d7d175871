package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/paddock/internal/tui/styles"
)

// Spinner is a component that displays an animated spinner with status text.
type Spinner struct {
	spinner    spinner.Model
	statusText string
}

// NewSpinner creates a new Spinner component with default styling.
func NewSpinner() *Spinner {
	return NewSpinnerWithStyle(spinner.Dot)
}

// NewSpinnerWithStyle creates a new Spinner with a custom spinner style.
func NewSpinnerWithStyle(style spinner.Spinner) *Spinner {
	s := spinner.New()
	s.Spinner = style
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Spinner{
		spinner:    s,
		statusText: "Loading…",
	}
}

// SetStatusText sets the status text to display next to the spinner.
func (s *Spinner) SetStatusText(text string) {
	s.statusText = text
}

// Tick returns the command that advances the animation by one frame.
func (s *Spinner) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update handles spinner tick messages. Ticks for other spinners are ignored.
func (s *Spinner) Update(msg tea.Msg) (*Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with its status text.
func (s *Spinner) View() string {
	return s.spinner.View() + " " + styles.MutedTextStyle.Render(s.statusText)
}
