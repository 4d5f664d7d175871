package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dbmrq/paddock/internal/tui/styles"
)

// Fixed column widths shared by both tables.
const (
	PosWidth  = 3
	PtsWidth  = 6
	WinsWidth = 4

	MinDriverWidth      = 10
	MinTeamWidth        = 8
	MinConstructorWidth = 10

	// cellPadding is the horizontal padding the table styles add to every cell.
	cellPadding = 2
	// panelChrome is the border plus padding around a panel.
	panelChrome = 4
)

// Ellipsis marks a truncated cell.
const Ellipsis = "…"

// DriverColumns lays out Pos/Driver/Team/Pts/Wins for an inner width. The
// space left after the fixed columns is split 55/45 between driver and team.
func DriverColumns(width int) []table.Column {
	rest := width - PosWidth - PtsWidth - WinsWidth - 5*cellPadding
	driver := max(rest*55/100, MinDriverWidth)
	team := max(rest-driver, MinTeamWidth)

	return []table.Column{
		{Title: "Pos", Width: PosWidth},
		{Title: "Driver", Width: driver},
		{Title: "Team", Width: team},
		{Title: "Pts", Width: PtsWidth},
		{Title: "Wins", Width: WinsWidth},
	}
}

// ConstructorColumns lays out Pos/Constructor/Pts/Wins for an inner width.
func ConstructorColumns(width int) []table.Column {
	rest := width - PosWidth - PtsWidth - WinsWidth - 4*cellPadding

	return []table.Column{
		{Title: "Pos", Width: PosWidth},
		{Title: "Constructor", Width: max(rest, MinConstructorWidth)},
		{Title: "Pts", Width: PtsWidth},
		{Title: "Wins", Width: WinsWidth},
	}
}

// Truncate shortens s to width display cells, ending it with Ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// StandingsTable is a bordered panel with a title, a status line and a
// scrollable table of standings.
type StandingsTable struct {
	title   string
	columns func(width int) []table.Column

	table   table.Model
	spinner *Spinner

	cells   [][]string
	status  string
	stale   bool
	errText string
	loading bool

	width  int
	height int
}

// NewStandingsTable creates a panel whose columns are computed by columns.
func NewStandingsTable(title string, columns func(width int) []table.Column) *StandingsTable {
	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Selected = styles.TableSelectedStyle

	t := table.New(
		table.WithColumns(columns(0)),
		table.WithStyles(s),
	)
	t.Blur()

	st := &StandingsTable{
		title:   title,
		columns: columns,
		table:   t,
		spinner: NewSpinner(),
	}
	st.SetSize(60, 20)
	return st
}

// NewDriversTable creates the drivers' championship panel.
func NewDriversTable(year int) *StandingsTable {
	return NewStandingsTable(fmt.Sprintf("Drivers — %d", year), DriverColumns)
}

// NewConstructorsTable creates the constructors' championship panel.
func NewConstructorsTable(year int) *StandingsTable {
	return NewStandingsTable(fmt.Sprintf("Constructors — %d", year), ConstructorColumns)
}

// Title returns the panel title.
func (s *StandingsTable) Title() string {
	return s.title
}

// SetSize sets the outer size of the panel including its border.
func (s *StandingsTable) SetSize(width, height int) {
	s.width = width
	s.height = height

	inner := max(width-panelChrome, 0)
	s.table.SetColumns(s.columns(inner))
	s.table.SetWidth(inner)
	// border (2) + title + status line
	s.table.SetHeight(max(height-4, 3))
	s.applyRows()
}

// Columns returns the current column layout.
func (s *StandingsTable) Columns() []table.Column {
	return s.table.Columns()
}

// SetLoading marks the panel as loading and returns the command that starts
// the spinner. It returns nil if the panel is already loading.
func (s *StandingsTable) SetLoading() tea.Cmd {
	if s.loading {
		return nil
	}
	s.loading = true
	return s.spinner.Tick()
}

// IsLoading reports whether a request is in flight.
func (s *StandingsTable) IsLoading() bool {
	return s.loading
}

// SetRows replaces the rows and the status line. A stale status is rendered
// as a warning.
func (s *StandingsTable) SetRows(cells [][]string, status string, stale bool) {
	s.loading = false
	s.errText = ""
	s.cells = cells
	s.status = status
	s.stale = stale
	s.applyRows()
}

// SetError clears the rows and shows msg in the status line.
func (s *StandingsTable) SetError(msg string) {
	s.loading = false
	s.errText = msg
	s.cells = nil
	s.status = ""
	s.stale = false
	s.applyRows()
}

// Rows returns the untruncated cells currently shown.
func (s *StandingsTable) Rows() [][]string {
	return s.cells
}

// Cursor returns the index of the selected row.
func (s *StandingsTable) Cursor() int {
	return s.table.Cursor()
}

// Subtitle returns the status line as plain text.
func (s *StandingsTable) Subtitle() string {
	switch {
	case s.loading:
		return s.spinner.statusText
	case s.errText != "":
		return "Error: " + s.errText
	default:
		return s.status
	}
}

// Focus makes the table respond to navigation keys.
func (s *StandingsTable) Focus() {
	s.table.Focus()
}

// Blur stops the table from responding to navigation keys.
func (s *StandingsTable) Blur() {
	s.table.Blur()
}

// Focused reports whether the table has focus.
func (s *StandingsTable) Focused() bool {
	return s.table.Focused()
}

// Update advances the spinner and, when focused, moves the cursor.
func (s *StandingsTable) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd
	}
	return nil
}

// View renders the panel.
func (s *StandingsTable) View() string {
	inner := max(s.width-panelChrome, 0)

	title := styles.PanelTitleStyle.Render(Truncate(s.title, inner))

	var status string
	switch {
	case s.loading:
		status = s.spinner.View()
	case s.errText != "":
		status = styles.ErrorTextStyle.Render(Truncate("Error: "+s.errText, inner))
	case s.stale:
		status = styles.WarningTextStyle.Render(Truncate(s.status, inner))
	default:
		status = styles.MutedTextStyle.Render(Truncate(s.status, inner))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, status, s.table.View())

	box := styles.BoxStyle
	if s.table.Focused() {
		box = styles.FocusedBoxStyle
	}
	if s.width > 2 {
		box = box.Width(s.width - 2)
	}
	return box.Render(content)
}

// applyRows pushes the cells into the table, truncated to the column widths.
func (s *StandingsTable) applyRows() {
	cols := s.table.Columns()
	rows := make([]table.Row, 0, len(s.cells))
	for _, cells := range s.cells {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			if i < len(cols) {
				cell = Truncate(cell, cols[i].Width)
			}
			row[i] = cell
		}
		rows = append(rows, row)
	}
	s.table.SetRows(rows)
}
