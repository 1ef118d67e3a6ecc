package input

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FromTeaMouse converts a Bubble Tea mouse message. Wheel events and presses
// of buttons other than the left one are not part of a drag gesture.
func FromTeaMouse(msg tea.MouseMsg) (MouseEvent, bool) {
	point := Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return MouseEvent{}, false
		}
		return MouseEvent{Action: Press, Point: point}, true
	case tea.MouseActionMotion:
		return MouseEvent{Action: Move, Point: point}, true
	case tea.MouseActionRelease:
		return MouseEvent{Action: Release, Point: point}, true
	default:
		return MouseEvent{}, false
	}
}

// FromTea converts a Bubble Tea mouse message into an event of modality m.
// Terminals report touch screens as mouse input, so touch mode rewraps the
// position as a single contact point and drops it on release.
func FromTea(msg tea.MouseMsg, m Modality) (Event, bool) {
	ev, ok := FromTeaMouse(msg)
	if !ok {
		return nil, false
	}
	if m != Touch {
		return ev, true
	}
	if ev.Action == Release {
		return TouchEvent{Action: Release}, true
	}
	return TouchEvent{Action: ev.Action, Touches: []Point{ev.Point}}, true
}
