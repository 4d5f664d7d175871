package tui

import (
	"time"

	"github.com/dbmrq/paddock/internal/fetch"
	"github.com/dbmrq/paddock/internal/standings"
)

// Message types for TUI state updates.

// DriversLoadedMsg is sent when a drivers' standings request finishes.
type DriversLoadedMsg struct {
	Year int
	Rows []standings.DriverStanding
	Meta fetch.Meta
	Err  error
}

// ConstructorsLoadedMsg is sent when a constructors' standings request finishes.
type ConstructorsLoadedMsg struct {
	Year int
	Rows []standings.ConstructorStanding
	Meta fetch.Meta
	Err  error
}

// TickMsg is sent every second to update the clock.
type TickMsg struct {
	Time time.Time
}
