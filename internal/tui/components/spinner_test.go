package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
)

func TestSpinner_View(t *testing.T) {
	s := NewSpinner()
	if !strings.Contains(s.View(), "Loading…") {
		t.Errorf("default spinner view = %q", s.View())
	}

	s.SetStatusText("Fetching")
	if !strings.Contains(s.View(), "Fetching") {
		t.Errorf("spinner view = %q", s.View())
	}
}

func TestSpinner_Tick(t *testing.T) {
	s := NewSpinner()
	cmd := s.Tick()
	if cmd == nil {
		t.Fatal("Tick should return a command")
	}

	msg := cmd()
	if _, ok := msg.(spinner.TickMsg); !ok {
		t.Fatalf("expected spinner.TickMsg, got %T", msg)
	}

	_, next := s.Update(msg)
	if next == nil {
		t.Error("Update on own tick should schedule the next frame")
	}
}

func TestSpinner_IgnoresForeignTicks(t *testing.T) {
	a := NewSpinner()
	b := NewSpinner()

	msg := b.Tick()()
	if _, cmd := a.Update(msg); cmd != nil {
		t.Error("a spinner should ignore ticks from another spinner")
	}
}
