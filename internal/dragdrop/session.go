package dragdrop

import (
	"fmt"

	"mediapair/internal/geometry"
)

// Phase is the lifecycle position of a Session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseDragging
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config carries the geometry of the list a gesture runs on.
type Config struct {
	Layout geometry.Layout
	Bounds geometry.Size
	Rows   int
	// OnCommit runs from Finish when the gesture resolved to a move.
	OnCommit func(selected, hovered int)
}

// SettlePlan describes the animation that follows a release.
type SettlePlan struct {
	Selected int
	Hovered  int
	// From is the dragged row's offset at release and Target the offset it
	// settles at. Target is zero for a no-op.
	From   float64
	Target float64
	NoOp   bool
}

// Result reports how a finished gesture resolved.
type Result struct {
	Selected  int
	Hovered   int
	Committed bool
}

// Session is a single drag gesture. It is not safe for concurrent use.
type Session struct {
	lock     *Lock
	cfg      Config
	phase    Phase
	selected int
	hovered  int
	startY   float64
	offset   float64
	markers  []Marker
}

// Begin starts a gesture at the list-relative point (x, y). It returns false
// without touching the lock when the point is outside the list, in a margin
// dead-zone, or below the last row, and false when another gesture holds the
// lock.
func Begin(lock *Lock, cfg Config, x, y float64) (*Session, bool) {
	if !cfg.Bounds.Contains(x, y) {
		return nil, false
	}
	index := cfg.Layout.SlotIndex(y)
	if index == geometry.Invalid || index >= cfg.Rows {
		return nil, false
	}
	s, ok := arm(lock, cfg, index)
	if !ok {
		return nil, false
	}
	s.startY = y
	return s, true
}

func arm(lock *Lock, cfg Config, index int) (*Session, bool) {
	if lock == nil || !lock.TryAcquire() {
		return nil, false
	}
	return &Session{
		lock:     lock,
		cfg:      cfg,
		phase:    PhaseArmed,
		selected: index,
		hovered:  index,
		markers:  make([]Marker, cfg.Rows),
	}, true
}

// Move feeds a list-relative pointer sample. Samples outside the list or in a
// dead-zone invalidate the hover target but keep the current markers. The
// offset only tracks samples inside the list and holds its last value outside.
func (s *Session) Move(x, y float64) {
	switch s.phase {
	case PhaseArmed:
		s.phase = PhaseDragging
	case PhaseDragging:
	default:
		return
	}

	if !s.cfg.Bounds.Contains(x, y) {
		s.hovered = geometry.Invalid
		return
	}
	s.offset = y - s.startY
	index := s.cfg.Layout.SlotIndex(y)
	if index >= s.cfg.Rows {
		index = geometry.Invalid
	}
	s.hover(index)
}

func (s *Session) hover(index int) {
	if index == geometry.Invalid {
		s.hovered = geometry.Invalid
		return
	}
	if index != s.hovered {
		markRows(s.markers, s.selected, index)
	}
	s.hovered = index
}

// Release ends pointer tracking and returns the settle animation to play.
func (s *Session) Release() (SettlePlan, bool) {
	if s.phase != PhaseArmed && s.phase != PhaseDragging {
		return SettlePlan{}, false
	}
	s.phase = PhaseSettling
	plan := SettlePlan{
		Selected: s.selected,
		Hovered:  s.hovered,
		From:     s.offset,
		NoOp:     !s.resolvesToMove(),
	}
	if !plan.NoOp {
		plan.Target = s.cfg.Layout.SlotOffset(s.selected, s.hovered)
	}
	return plan, true
}

func (s *Session) resolvesToMove() bool {
	return s.hovered != geometry.Invalid && s.hovered != s.selected
}

// Finish returns the session to idle: markers and offset are cleared, the
// lock is released, and OnCommit runs for a move. Only the first call after
// Release has any effect.
func (s *Session) Finish() (Result, bool) {
	if s.phase != PhaseSettling {
		return Result{}, false
	}
	s.phase = PhaseIdle
	clear(s.markers)
	s.offset = 0
	s.lock.Release()

	result := Result{Selected: s.selected, Hovered: s.hovered, Committed: s.resolvesToMove()}
	if result.Committed && s.cfg.OnCommit != nil {
		s.cfg.OnCommit(s.selected, s.hovered)
	}
	return result, true
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Selected() int { return s.selected }

func (s *Session) Hovered() int { return s.hovered }

// Offset is the dragged row's vertical displacement from its slot.
func (s *Session) Offset() float64 { return s.offset }

// Marker returns the shift marker of row i.
func (s *Session) Marker(i int) Marker {
	if i < 0 || i >= len(s.markers) {
		return MarkerNone
	}
	return s.markers[i]
}

// Markers returns a copy of all row markers.
func (s *Session) Markers() []Marker {
	return append([]Marker(nil), s.markers...)
}
