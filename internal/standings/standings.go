// Package standings defines the driver and constructor standing rows shown by
// the dashboard.
package standings

import (
	"fmt"
	"sort"
)

// Kind identifies which standings table a row set belongs to.
type Kind string

const (
	// KindDrivers is the drivers' championship.
	KindDrivers Kind = "drivers"
	// KindConstructors is the constructors' championship.
	KindConstructors Kind = "constructors"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Key returns the cache key for a kind and season, e.g. "drivers_2026".
func Key(kind Kind, year int) string {
	return fmt.Sprintf("%s_%d", kind, year)
}

// DriverStanding is one row of the drivers' championship.
type DriverStanding struct {
	Position int     `json:"position"`
	Driver   string  `json:"driver"`
	Team     string  `json:"team"`
	Points   float64 `json:"points"`
	Wins     int     `json:"wins"`
}

// ConstructorStanding is one row of the constructors' championship.
type ConstructorStanding struct {
	Position    int     `json:"position"`
	Constructor string  `json:"constructor"`
	Points      float64 `json:"points"`
	Wins        int     `json:"wins"`
}

// SortDrivers orders rows by position ascending. Unclassified rows
// (position 0) keep their relative order at the end.
func SortDrivers(rows []DriverStanding) {
	sort.SliceStable(rows, func(i, j int) bool {
		return positionLess(rows[i].Position, rows[j].Position)
	})
}

// SortConstructors orders rows by position ascending. Unclassified rows
// (position 0) keep their relative order at the end.
func SortConstructors(rows []ConstructorStanding) {
	sort.SliceStable(rows, func(i, j int) bool {
		return positionLess(rows[i].Position, rows[j].Position)
	})
}

func positionLess(a, b int) bool {
	switch {
	case a == 0:
		return false
	case b == 0:
		return true
	default:
		return a < b
	}
}

// FormatPoints renders points without a trailing ".0" for whole numbers.
func FormatPoints(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d", int64(p))
	}
	return fmt.Sprintf("%g", p)
}

// FormatPosition renders a position, using "-" for unclassified rows.
func FormatPosition(p int) string {
	if p <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", p)
}
