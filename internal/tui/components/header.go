// Package components provides reusable TUI components for paddock.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/paddock/internal/tui/styles"
)

// HeaderData contains the data to display in the header.
type HeaderData struct {
	Season int
	Clock  time.Time
}

// Header is a component that displays the title, season and clock.
type Header struct {
	data  HeaderData
	width int
}

// NewHeader creates a new Header component.
func NewHeader(season int) *Header {
	return &Header{
		data: HeaderData{Season: season},
	}
}

// SetData updates the header data.
func (h *Header) SetData(data HeaderData) {
	h.data = data
}

// SetClock sets the time shown on the right of the header.
func (h *Header) SetClock(t time.Time) {
	h.data.Clock = t
}

// SetWidth sets the width for the header.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	title := styles.TitleStyle.Render("F1 STANDINGS")

	sep := styles.HeaderLabelStyle.Render(" │ ")

	seasonLabel := styles.HeaderLabelStyle.Render("Season: ")
	seasonValue := styles.HeaderValueStyle.Render(fmt.Sprintf("%d", h.data.Season))

	left := title + sep + seasonLabel + seasonValue

	var right string
	if !h.data.Clock.IsZero() {
		right = styles.HeaderValueStyle.Render(h.data.Clock.Format("15:04:05"))
	}

	content := left
	if right != "" {
		content = left + sep + right
		// Push the clock to the right edge when there is room.
		if h.width > 0 {
			gap := h.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
			if gap > 0 {
				content = left + styles.HeaderLabelStyle.Render(fmt.Sprintf("%*s", gap, "")) + right
			}
		}
	}

	headerStyle := styles.HeaderStyle
	if h.width > 0 {
		headerStyle = headerStyle.Width(h.width)
	}

	return headerStyle.Render(content)
}
