// Package input normalizes mouse and touch events into a single sample type
// consumed by the drag engine.
//
// Hosts deliver either MouseEvent or TouchEvent values; an Adapter configured
// for one modality drops events of the other, mirroring how a page only wires
// mouse handlers on desktop and touch handlers on mobile. Touch events carry a
// list of active contact points and only the first one is tracked. A touch
// release carries no points, so the adapter reuses the last known position.
package input

import (
	"fmt"
	"strings"
)

// Modality identifies the kind of pointing device.
type Modality int

const (
	Mouse Modality = iota
	Touch
)

func (m Modality) String() string {
	switch m {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	default:
		return fmt.Sprintf("modality(%d)", int(m))
	}
}

// ParseModality maps a configuration value onto a Modality.
func ParseModality(value string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "mouse":
		return Mouse, nil
	case "touch":
		return Touch, nil
	default:
		return Mouse, fmt.Errorf("input: unsupported modality %q", value)
	}
}

// Action is the gesture phase an event belongs to.
type Action int

const (
	Press Action = iota
	Move
	Release
)

func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Point is a position in client coordinates.
type Point struct {
	X float64
	Y float64
}

// Sample is the normalized event handed to the drag engine.
type Sample struct {
	Modality Modality
	Action   Action
	Point
}

// Event is implemented by the raw event variants.
type Event interface {
	modality() Modality
	normalize(last Point) (Sample, bool)
}

// MouseEvent is a raw mouse event.
type MouseEvent struct {
	Action Action
	Point
}

func (MouseEvent) modality() Modality { return Mouse }

func (e MouseEvent) normalize(Point) (Sample, bool) {
	return Sample{Modality: Mouse, Action: e.Action, Point: e.Point}, true
}

// TouchEvent is a raw touch event with the currently active contact points.
type TouchEvent struct {
	Action  Action
	Touches []Point
}

func (TouchEvent) modality() Modality { return Touch }

func (e TouchEvent) normalize(last Point) (Sample, bool) {
	if len(e.Touches) == 0 {
		if e.Action != Release {
			return Sample{}, false
		}
		return Sample{Modality: Touch, Action: Release, Point: last}, true
	}
	return Sample{Modality: Touch, Action: e.Action, Point: e.Touches[0]}, true
}

// Adapter turns raw events of its modality into samples.
type Adapter struct {
	modality Modality
	last     Point
}

// NewAdapter returns an adapter accepting events of the given modality.
func NewAdapter(m Modality) *Adapter {
	return &Adapter{modality: m}
}

// Modality reports which events the adapter accepts.
func (a *Adapter) Modality() Modality {
	return a.modality
}

// Normalize converts ev. The boolean is false when the event belongs to the
// other modality or carries no usable position.
func (a *Adapter) Normalize(ev Event) (Sample, bool) {
	if ev == nil || ev.modality() != a.modality {
		return Sample{}, false
	}
	sample, ok := ev.normalize(a.last)
	if !ok {
		return Sample{}, false
	}
	a.last = sample.Point
	return sample, true
}
