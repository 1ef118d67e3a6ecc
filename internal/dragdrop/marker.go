package dragdrop

// Marker annotates a sibling row with the direction it would shift if the
// gesture completed at the current hover position.
type Marker uint8

const (
	MarkerNone Marker = iota
	MarkerShiftUp
	MarkerShiftDown
)

func (m Marker) String() string {
	switch m {
	case MarkerShiftUp:
		return "shift-up"
	case MarkerShiftDown:
		return "shift-down"
	default:
		return "none"
	}
}

// markRows fills markers for a drag from selected to hovered. The dragged row
// is never marked.
func markRows(markers []Marker, selected, hovered int) {
	for i := range markers {
		switch {
		case hovered > selected && i > selected && i <= hovered:
			markers[i] = MarkerShiftUp
		case hovered < selected && i >= hovered && i < selected:
			markers[i] = MarkerShiftDown
		default:
			markers[i] = MarkerNone
		}
	}
}
