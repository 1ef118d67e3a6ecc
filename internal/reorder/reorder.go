// Package reorder moves a single element of a slice to a new position.
package reorder

// Move removes the element at selected and reinserts it at hovered, shifting
// the elements in between by one slot. Elements outside the span keep their
// positions. Out-of-range indices and selected == hovered leave s untouched.
// The work is linear in the distance between the two indices.
func Move[T any](s []T, selected, hovered int) bool {
	if selected == hovered {
		return false
	}
	if selected < 0 || hovered < 0 || selected >= len(s) || hovered >= len(s) {
		return false
	}
	moving := s[selected]
	if selected < hovered {
		copy(s[selected:hovered], s[selected+1:hovered+1])
	} else {
		copy(s[hovered+1:selected+1], s[hovered:selected])
	}
	s[hovered] = moving
	return true
}
