// Package tui provides the terminal dashboard for paddock.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	perrors "github.com/dbmrq/paddock/internal/errors"
	"github.com/dbmrq/paddock/internal/fetch"
	"github.com/dbmrq/paddock/internal/standings"
	"github.com/dbmrq/paddock/internal/tui/components"
)

// DefaultStackBelowWidth is the terminal width under which the tables are
// stacked vertically.
const DefaultStackBelowWidth = 110

// Size used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 32
)

// Fetcher provides standings for a season.
type Fetcher interface {
	Drivers(ctx context.Context, year int, force bool) ([]standings.DriverStanding, fetch.Meta, error)
	Constructors(ctx context.Context, year int, force bool) ([]standings.ConstructorStanding, fetch.Meta, error)
}

// Options configures the dashboard.
type Options struct {
	Fetcher Fetcher
	// Year is the season to show. Zero means the current year.
	Year int
	// StackBelowWidth overrides DefaultStackBelowWidth when positive.
	StackBelowWidth int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// FocusedPane indicates which table has focus.
type FocusedPane int

const (
	FocusDrivers FocusedPane = iota
	FocusConstructors
)

// Layout is how the two tables are arranged.
type Layout int

const (
	LayoutHorizontal Layout = iota
	LayoutVertical
)

// Model is the Bubble Tea model for the standings dashboard.
type Model struct {
	// Components
	header       *components.Header
	drivers      *components.StandingsTable
	constructors *components.StandingsTable
	shortcuts    *components.ShortcutBar
	helpOverlay  *components.HelpOverlay

	// Data
	ctx             context.Context
	fetcher         Fetcher
	year            int
	driverRows      []standings.DriverStanding
	constructorRows []standings.ConstructorStanding

	// Window dimensions
	width      int
	height     int
	stackBelow int
	layout     Layout

	quitting    bool
	focusedPane FocusedPane
	now         func() time.Time
}

// New creates a new dashboard model. Requests made by the model use ctx.
func New(ctx context.Context, opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	year := opts.Year
	if year == 0 {
		year = now().Year()
	}
	stackBelow := opts.StackBelowWidth
	if stackBelow <= 0 {
		stackBelow = DefaultStackBelowWidth
	}

	m := &Model{
		header:       components.NewHeader(year),
		drivers:      components.NewDriversTable(year),
		constructors: components.NewConstructorsTable(year),
		shortcuts:    components.NewShortcutBar(components.DashboardShortcuts...),
		helpOverlay:  components.NewHelpOverlay(),
		ctx:          ctx,
		fetcher:      opts.Fetcher,
		year:         year,
		stackBelow:   stackBelow,
		now:          now,
	}
	m.header.SetClock(now())
	m.setFocus(FocusDrivers)
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init starts the clock and requests both tables.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.refresh(false))
}

// tickCmd returns a command that sends a tick message every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// refresh requests every table that is not already loading.
func (m *Model) refresh(force bool) tea.Cmd {
	var cmds []tea.Cmd
	if !m.drivers.IsLoading() {
		cmds = append(cmds, m.drivers.SetLoading(), m.loadDrivers(force))
	}
	if !m.constructors.IsLoading() {
		cmds = append(cmds, m.constructors.SetLoading(), m.loadConstructors(force))
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadDrivers(force bool) tea.Cmd {
	ctx, f, year := m.ctx, m.fetcher, m.year
	return func() tea.Msg {
		if f == nil {
			return DriversLoadedMsg{Year: year, Err: errors.New("no standings source")}
		}
		rows, meta, err := f.Drivers(ctx, year, force)
		return DriversLoadedMsg{Year: year, Rows: rows, Meta: meta, Err: err}
	}
}

func (m *Model) loadConstructors(force bool) tea.Cmd {
	ctx, f, year := m.ctx, m.fetcher, m.year
	return func() tea.Msg {
		if f == nil {
			return ConstructorsLoadedMsg{Year: year, Err: errors.New("no standings source")}
		}
		rows, meta, err := f.Constructors(ctx, year, force)
		return ConstructorsLoadedMsg{Year: year, Rows: rows, Meta: meta, Err: err}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.helpOverlay.IsVisible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, m.helpOverlay.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.header.SetClock(msg.Time)
		return m, tickCmd()

	case DriversLoadedMsg:
		if msg.Year != m.year {
			return m, nil
		}
		if msg.Err != nil && msg.Rows == nil {
			m.driverRows = nil
			m.drivers.SetError(errorText(msg.Err))
			return m, nil
		}
		m.driverRows = msg.Rows
		m.drivers.SetRows(driverCells(msg.Rows), status(len(msg.Rows), standings.KindDrivers, msg.Meta), msg.Meta.Source == fetch.SourceStale)
		return m, nil

	case ConstructorsLoadedMsg:
		if msg.Year != m.year {
			return m, nil
		}
		if msg.Err != nil && msg.Rows == nil {
			m.constructorRows = nil
			m.constructors.SetError(errorText(msg.Err))
			return m, nil
		}
		m.constructorRows = msg.Rows
		m.constructors.SetRows(constructorCells(msg.Rows), status(len(msg.Rows), standings.KindConstructors, msg.Meta), msg.Meta.Source == fetch.SourceStale)
		return m, nil

	case components.HelpClosedMsg:
		return m, nil
	}

	// Spinner ticks carry their own IDs, so both tables can see every one.
	return m, tea.Batch(m.drivers.Update(msg), m.constructors.Update(msg))
}

// handleKeyPress handles keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "r":
		return m, m.refresh(true)

	case "left", "h":
		m.setFocus(FocusDrivers)
		return m, nil

	case "right", "l":
		m.setFocus(FocusConstructors)
		return m, nil

	case "tab":
		if m.focusedPane == FocusDrivers {
			m.setFocus(FocusConstructors)
		} else {
			m.setFocus(FocusDrivers)
		}
		return m, nil

	case "?":
		m.helpOverlay.Toggle()
		return m, nil
	}

	return m, m.focusedTable().Update(msg)
}

func (m *Model) setFocus(pane FocusedPane) {
	m.focusedPane = pane
	if pane == FocusDrivers {
		m.drivers.Focus()
		m.constructors.Blur()
	} else {
		m.constructors.Focus()
		m.drivers.Blur()
	}
}

func (m *Model) focusedTable() *components.StandingsTable {
	if m.focusedPane == FocusConstructors {
		return m.constructors
	}
	return m.drivers
}

// resize lays out the panels for a terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.shortcuts.SetWidth(width)

	// header + shortcut bar
	body := max(height-2, 0)

	if width >= m.stackBelow {
		m.layout = LayoutHorizontal
		left := width / 2
		m.drivers.SetSize(left, body)
		m.constructors.SetSize(width-left, body)
	} else {
		m.layout = LayoutVertical
		top := body / 2
		m.drivers.SetSize(width, top)
		m.constructors.SetSize(width, body-top)
	}
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.helpOverlay.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpOverlay.View())
	}

	var body string
	if m.layout == LayoutHorizontal {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.drivers.View(), m.constructors.View())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.drivers.View(), m.constructors.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.shortcuts.View())
}

// Year returns the season being shown.
func (m *Model) Year() int {
	return m.year
}

// DriverRows returns the driver rows currently shown.
func (m *Model) DriverRows() []standings.DriverStanding {
	return m.driverRows
}

// ConstructorRows returns the constructor rows currently shown.
func (m *Model) ConstructorRows() []standings.ConstructorStanding {
	return m.constructorRows
}

func driverCells(rows []standings.DriverStanding) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			standings.FormatPosition(r.Position),
			r.Driver,
			r.Team,
			standings.FormatPoints(r.Points),
			strconv.Itoa(r.Wins),
		})
	}
	return cells
}

func constructorCells(rows []standings.ConstructorStanding) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			standings.FormatPosition(r.Position),
			r.Constructor,
			standings.FormatPoints(r.Points),
			strconv.Itoa(r.Wins),
		})
	}
	return cells
}

// status is the panel subtitle for a successful load, e.g. "Total 20 drivers".
func status(n int, kind standings.Kind, meta fetch.Meta) string {
	s := fmt.Sprintf("Total %d %s", n, kind)
	if meta.Source == fetch.SourceStale && !meta.FetchedAt.IsZero() {
		s += fmt.Sprintf(" (cached %s)", meta.FetchedAt.Local().Format("15:04"))
	}
	return s
}

// errorText is the short message shown in a panel for err.
func errorText(err error) string {
	var pe *perrors.PaddockError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

// Run starts the dashboard and blocks until the user quits or ctx is done.
// Requests still in flight are cancelled on return.
func Run(ctx context.Context, opts Options) error {
	return run(ctx, opts, tea.WithAltScreen())
}

func run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progOpts = append(progOpts, tea.WithContext(ctx))
	p := tea.NewProgram(New(ctx, opts), progOpts...)
	_, err := p.Run()
	return err
}
