package dragdrop

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"mediapair/internal/geometry"
	"mediapair/internal/input"
	"mediapair/internal/logging"
)

// ListID names one of the two reorderable lists.
type ListID int

const (
	ListVideos ListID = iota
	ListSubtitles
)

func (l ListID) String() string {
	switch l {
	case ListVideos:
		return "video"
	case ListSubtitles:
		return "subtitle"
	default:
		return fmt.Sprintf("list(%d)", int(l))
	}
}

// Lists enumerates every ListID in display order.
var Lists = []ListID{ListVideos, ListSubtitles}

// CommitFunc receives the (selected, hovered) pair of a completed gesture.
type CommitFunc func(list ListID, selected, hovered int)

// Gesture is a settle that the host must play and then report through
// Coordinator.Settled.
type Gesture struct {
	ID   string
	List ListID
	SettlePlan
}

// ListView is the render state of one list.
type ListView struct {
	Active    bool
	Phase     Phase
	GestureID string
	Selected  int
	Hovered   int
	Offset    float64
	Markers   []Marker
}

// Marker returns the marker of row i or MarkerNone.
func (v ListView) Marker(i int) Marker {
	if i < 0 || i >= len(v.Markers) {
		return MarkerNone
	}
	return v.Markers[i]
}

type listGeometry struct {
	rect geometry.Rect
	rows int
}

// Coordinator routes input samples to the list under the pointer and owns
// the single gesture lock shared by both lists.
type Coordinator struct {
	mu       sync.Mutex
	lock     Lock
	layout   geometry.Layout
	lists    map[ListID]listGeometry
	active   *Session
	list     ListID
	id       string
	onCommit CommitFunc
	changed  func()
	logger   *slog.Logger
}

// NewCoordinator builds a coordinator using layout for both lists.
func NewCoordinator(layout geometry.Layout, onCommit CommitFunc, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		layout:   layout,
		lists:    make(map[ListID]listGeometry, len(Lists)),
		onCommit: onCommit,
		logger:   logging.NewComponentLogger(logger, "dragdrop"),
	}
}

// OnChange registers fn to run after any state change that affects
// rendering. It replaces a previous registration.
func (c *Coordinator) OnChange(fn func()) {
	c.mu.Lock()
	c.changed = fn
	c.mu.Unlock()
}

// SetList records where a list is drawn and how many rows it has.
func (c *Coordinator) SetList(list ListID, rect geometry.Rect, rows int) {
	c.mu.Lock()
	c.lists[list] = listGeometry{rect: rect, rows: rows}
	c.mu.Unlock()
}

// Busy reports whether a gesture holds the lock.
func (c *Coordinator) Busy() bool {
	return c.lock.Held()
}

// Handle consumes one input sample. It returns a Gesture when the sample was
// a release that ended a drag.
func (c *Coordinator) Handle(sample input.Sample) (Gesture, bool) {
	c.mu.Lock()
	gesture, changed, ok := c.handleLocked(sample)
	notify := c.changed
	c.mu.Unlock()

	if changed && notify != nil {
		notify()
	}
	return gesture, ok
}

func (c *Coordinator) handleLocked(sample input.Sample) (Gesture, bool, bool) {
	switch sample.Action {
	case input.Press:
		return Gesture{}, c.press(sample), false
	case input.Move:
		if c.active == nil {
			return Gesture{}, false, false
		}
		geo := c.lists[c.list]
		x, y := geo.rect.Local(sample.X, sample.Y)
		c.active.Move(x, y)
		return Gesture{}, true, false
	case input.Release:
		if c.active == nil {
			return Gesture{}, false, false
		}
		plan, ok := c.active.Release()
		if !ok {
			return Gesture{}, false, false
		}
		c.logger.Debug("gesture released",
			logging.GestureID(c.id),
			logging.List(c.list.String()),
			logging.Int("selected", plan.Selected),
			logging.Int("hovered", plan.Hovered),
			logging.Bool("no_op", plan.NoOp),
		)
		return Gesture{ID: c.id, List: c.list, SettlePlan: plan}, true, true
	default:
		return Gesture{}, false, false
	}
}

func (c *Coordinator) press(sample input.Sample) bool {
	for _, list := range Lists {
		geo, ok := c.lists[list]
		if !ok || !geo.rect.Contains(sample.X, sample.Y) {
			continue
		}
		x, y := geo.rect.Local(sample.X, sample.Y)
		session, ok := Begin(&c.lock, c.sessionConfig(geo), x, y)
		if !ok {
			c.logger.Debug("gesture start ignored",
				logging.List(list.String()),
				logging.Bool("locked", c.lock.Held()),
				logging.Float("y", y),
			)
			return false
		}
		c.start(list, session, sample.Modality.String())
		return true
	}
	return false
}

func (c *Coordinator) sessionConfig(geo listGeometry) Config {
	return Config{Layout: c.layout, Bounds: geo.rect.Size(), Rows: geo.rows}
}

func (c *Coordinator) start(list ListID, session *Session, source string) {
	c.active = session
	c.list = list
	c.id = uuid.NewString()
	c.logger.Debug("gesture started",
		logging.GestureID(c.id),
		logging.List(list.String()),
		logging.String("source", source),
		logging.Int("selected", session.Selected()),
	)
}

// Nudge moves row index of list by delta slots as a complete gesture that
// skips pointer tracking. It shares the lock and settle path of a drag.
func (c *Coordinator) Nudge(list ListID, index, delta int) (Gesture, bool) {
	c.mu.Lock()
	gesture, ok := c.nudgeLocked(list, index, delta)
	notify := c.changed
	c.mu.Unlock()

	if ok && notify != nil {
		notify()
	}
	return gesture, ok
}

func (c *Coordinator) nudgeLocked(list ListID, index, delta int) (Gesture, bool) {
	geo, ok := c.lists[list]
	target := index + delta
	if !ok || delta == 0 || index < 0 || index >= geo.rows || target < 0 || target >= geo.rows {
		return Gesture{}, false
	}
	session, ok := arm(&c.lock, c.sessionConfig(geo), index)
	if !ok {
		return Gesture{}, false
	}
	c.start(list, session, "keyboard")
	session.phase = PhaseDragging
	session.hover(target)
	plan, _ := session.Release()
	return Gesture{ID: c.id, List: list, SettlePlan: plan}, true
}

// Settled finishes the gesture identified by id. The commit callback runs
// once, after the coordinator state is reset. Stale ids are ignored.
func (c *Coordinator) Settled(id string, cause SettleCause) bool {
	c.mu.Lock()
	if c.active == nil || c.id != id {
		c.mu.Unlock()
		return false
	}
	session, list := c.active, c.list
	result, ok := session.Finish()
	c.active = nil
	c.id = ""
	notify, commit := c.changed, c.onCommit
	c.mu.Unlock()

	if !ok {
		return false
	}
	c.logger.Debug("gesture settled",
		logging.GestureID(id),
		logging.List(list.String()),
		logging.String("cause", cause.String()),
		logging.Bool("committed", result.Committed),
	)
	if result.Committed && commit != nil {
		commit(list, result.Selected, result.Hovered)
	}
	if notify != nil {
		notify()
	}
	return true
}

// View returns the render state of list.
func (c *Coordinator) View(list ListID) ListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil || c.list != list {
		return ListView{Selected: geometry.Invalid, Hovered: geometry.Invalid}
	}
	return ListView{
		Active:    true,
		Phase:     c.active.Phase(),
		GestureID: c.id,
		Selected:  c.active.Selected(),
		Hovered:   c.active.Hovered(),
		Offset:    c.active.Offset(),
		Markers:   c.active.Markers(),
	}
}
