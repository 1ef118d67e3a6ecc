// Package geometry maps pointer coordinates onto list rows.
//
// Rows have a fixed height and are separated by a fixed margin. A vertical
// coordinate that falls inside the margin gap below a row belongs to no row
// (the dead-zone) and resolves to Invalid.
package geometry

import "math"

// Invalid is the slot index returned for positions that map to no row.
const Invalid = -1

const (
	// DefaultRowHeight is the pixel height of a list row.
	DefaultRowHeight = 26
	// DefaultRowMargin is the pixel gap between two rows.
	DefaultRowMargin = 5
)

// Layout describes the fixed row metrics of a list.
type Layout struct {
	RowHeight float64
	RowMargin float64
}

// DefaultLayout returns the pixel layout used by the browser list.
func DefaultLayout() Layout {
	return Layout{RowHeight: DefaultRowHeight, RowMargin: DefaultRowMargin}
}

// Pitch is the distance between the tops of two consecutive rows.
func (l Layout) Pitch() float64 {
	return l.RowHeight + l.RowMargin
}

// SlotIndex returns the row under y, or Invalid when y lies above the list
// or in the margin gap after a row. Coordinates are relative to the top of
// the list.
func (l Layout) SlotIndex(y float64) int {
	pitch := l.Pitch()
	if pitch <= 0 || y < 0 {
		return Invalid
	}
	index := int(math.Floor(y / pitch))
	if y > float64(index)*pitch+l.RowHeight {
		return Invalid
	}
	return index
}

// SlotOffset is the vertical distance a row travels when moving from one
// slot to another.
func (l Layout) SlotOffset(from, to int) float64 {
	return float64(to-from) * l.Pitch()
}

// SlotIndex applies the default layout.
func SlotIndex(y float64) int {
	return DefaultLayout().SlotIndex(y)
}

// Size is the extent of a list container.
type Size struct {
	Width  float64
	Height float64
}

// Contains reports whether the container-relative point lies inside the
// container. Edges are inclusive.
func (s Size) Contains(x, y float64) bool {
	return x >= 0 && x <= s.Width && y >= 0 && y <= s.Height
}

// WithinBounds is a rectangle containment test against a container of the
// given size.
func WithinBounds(x, y, width, height float64) bool {
	return Size{Width: width, Height: height}.Contains(x, y)
}

// Rect positions a container in client coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Size drops the position.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Local converts client coordinates into container-relative ones.
func (r Rect) Local(x, y float64) (float64, float64) {
	return x - r.Left, y - r.Top
}

// Contains reports whether the client point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	lx, ly := r.Local(x, y)
	return r.Size().Contains(lx, ly)
}
