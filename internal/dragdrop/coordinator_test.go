package dragdrop_test

import (
	"testing"

	"mediapair/internal/dragdrop"
	"mediapair/internal/geometry"
	"mediapair/internal/input"
	"mediapair/internal/logging"
)

type commitCall struct {
	list              dragdrop.ListID
	selected, hovered int
}

// Two side-by-side lists of three one-cell rows separated by one-cell
// margins. Samples use cell centres.
func newTestCoordinator(t *testing.T) (*dragdrop.Coordinator, *[]commitCall) {
	t.Helper()
	var calls []commitCall
	c := dragdrop.NewCoordinator(geometry.Layout{RowHeight: 1, RowMargin: 1}, func(list dragdrop.ListID, selected, hovered int) {
		calls = append(calls, commitCall{list, selected, hovered})
	}, logging.NewNop())
	c.SetList(dragdrop.ListVideos, geometry.Rect{Left: 0, Top: 2, Width: 30, Height: 6}, 3)
	c.SetList(dragdrop.ListSubtitles, geometry.Rect{Left: 40, Top: 2, Width: 30, Height: 6}, 3)
	return c, &calls
}

func sample(action input.Action, x, y float64) input.Sample {
	return input.Sample{Modality: input.Mouse, Action: action, Point: input.Point{X: x, Y: y}}
}

func TestCoordinatorDragCommitsOnSettle(t *testing.T) {
	c, calls := newTestCoordinator(t)

	c.Handle(sample(input.Press, 5.5, 2.5))
	if !c.Busy() {
		t.Fatal("press on a row should start a gesture")
	}
	c.Handle(sample(input.Move, 5.5, 6.5))
	view := c.View(dragdrop.ListVideos)
	if !view.Active || view.Hovered != 2 || view.Marker(1) != dragdrop.MarkerShiftUp {
		t.Fatalf("unexpected view %+v", view)
	}

	gesture, ok := c.Handle(sample(input.Release, 5.5, 6.5))
	if !ok || gesture.List != dragdrop.ListVideos || gesture.Target != 4 {
		t.Fatalf("unexpected gesture %+v ok=%v", gesture, ok)
	}
	if len(*calls) != 0 {
		t.Fatal("commit must wait for settle")
	}

	if !c.Settled(gesture.ID, dragdrop.SettleCompleted) {
		t.Fatal("Settled rejected the active gesture")
	}
	if c.Busy() {
		t.Fatal("lock should be free after settle")
	}
	if len(*calls) != 1 || (*calls)[0] != (commitCall{dragdrop.ListVideos, 0, 2}) {
		t.Fatalf("unexpected commits %+v", *calls)
	}
	if c.Settled(gesture.ID, dragdrop.SettleTimedOut) {
		t.Fatal("second Settled for the same gesture should be ignored")
	}
	if len(*calls) != 1 {
		t.Fatalf("commit ran %d times", len(*calls))
	}
}

func TestCoordinatorIgnoresPressOnOtherListWhileSettling(t *testing.T) {
	c, calls := newTestCoordinator(t)

	c.Handle(sample(input.Press, 5.5, 2.5))
	c.Handle(sample(input.Move, 5.5, 4.5))
	gesture, _ := c.Handle(sample(input.Release, 5.5, 4.5))

	c.Handle(sample(input.Press, 45.5, 6.5))
	c.Handle(sample(input.Move, 45.5, 2.5))
	if _, ok := c.Handle(sample(input.Release, 45.5, 2.5)); ok {
		t.Fatal("release should belong to no new gesture")
	}
	if view := c.View(dragdrop.ListSubtitles); view.Active {
		t.Fatalf("subtitle list should be idle, got %+v", view)
	}
	if view := c.View(dragdrop.ListVideos); view.Phase != dragdrop.PhaseSettling {
		t.Fatalf("video gesture should still be settling, got %s", view.Phase)
	}

	c.Settled(gesture.ID, dragdrop.SettleTimedOut)
	if len(*calls) != 1 || (*calls)[0].list != dragdrop.ListVideos {
		t.Fatalf("unexpected commits %+v", *calls)
	}
}

func TestCoordinatorPressInMarginDoesNothing(t *testing.T) {
	c, _ := newTestCoordinator(t)
	c.Handle(sample(input.Press, 5.5, 3.5))
	if c.Busy() {
		t.Fatal("press in a margin must not start a gesture")
	}
	c.Handle(sample(input.Press, 35.5, 2.5))
	if c.Busy() {
		t.Fatal("press between lists must not start a gesture")
	}
}

func TestCoordinatorDragOutOfListResolvesNoOp(t *testing.T) {
	c, calls := newTestCoordinator(t)
	c.Handle(sample(input.Press, 45.5, 4.5))
	c.Handle(sample(input.Move, 45.5, 6.5))
	c.Handle(sample(input.Move, 45.5, 20.5))
	gesture, ok := c.Handle(sample(input.Release, 45.5, 20.5))
	if !ok || !gesture.NoOp {
		t.Fatalf("expected no-op gesture, got %+v", gesture)
	}
	c.Settled(gesture.ID, dragdrop.SettleCompleted)
	if len(*calls) != 0 {
		t.Fatalf("no-op gesture committed: %+v", *calls)
	}
}

func TestCoordinatorNudge(t *testing.T) {
	c, calls := newTestCoordinator(t)

	gesture, ok := c.Nudge(dragdrop.ListSubtitles, 1, -1)
	if !ok || gesture.Target != -2 || gesture.Hovered != 0 {
		t.Fatalf("unexpected nudge gesture %+v ok=%v", gesture, ok)
	}
	if view := c.View(dragdrop.ListSubtitles); view.Marker(0) != dragdrop.MarkerShiftDown {
		t.Fatalf("nudge should mark the displaced row, got %+v", view)
	}
	if _, ok := c.Nudge(dragdrop.ListVideos, 0, 1); ok {
		t.Fatal("nudge must respect the gesture lock")
	}
	c.Settled(gesture.ID, dragdrop.SettleCompleted)
	if len(*calls) != 1 || (*calls)[0] != (commitCall{dragdrop.ListSubtitles, 1, 0}) {
		t.Fatalf("unexpected commits %+v", *calls)
	}

	for _, tc := range []struct{ index, delta int }{{0, -1}, {2, 1}, {1, 0}, {5, -1}} {
		if _, ok := c.Nudge(dragdrop.ListVideos, tc.index, tc.delta); ok {
			t.Fatalf("nudge(%d,%d) should be rejected", tc.index, tc.delta)
		}
	}
	if c.Busy() {
		t.Fatal("rejected nudges must not hold the lock")
	}
}

func TestCoordinatorIgnoresStaleGestureID(t *testing.T) {
	c, _ := newTestCoordinator(t)
	c.Handle(sample(input.Press, 5.5, 2.5))
	c.Handle(sample(input.Release, 5.5, 2.5))
	if c.Settled("not-a-gesture", dragdrop.SettleCompleted) {
		t.Fatal("unknown id should be ignored")
	}
	if !c.Busy() {
		t.Fatal("gesture should remain active")
	}
}

func TestCoordinatorNotifiesChanges(t *testing.T) {
	c, _ := newTestCoordinator(t)
	changes := 0
	c.OnChange(func() { changes++ })

	c.Handle(sample(input.Press, 5.5, 2.5))
	c.Handle(sample(input.Move, 5.5, 4.5))
	gesture, _ := c.Handle(sample(input.Release, 5.5, 4.5))
	c.Settled(gesture.ID, dragdrop.SettleCompleted)
	if changes != 4 {
		t.Fatalf("changes = %d, want 4", changes)
	}
}
