package input_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mediapair/internal/input"
)

func TestAdapterDropsOtherModality(t *testing.T) {
	mouse := input.NewAdapter(input.Mouse)
	if _, ok := mouse.Normalize(input.TouchEvent{Action: input.Press, Touches: []input.Point{{X: 1, Y: 2}}}); ok {
		t.Fatal("mouse adapter accepted a touch event")
	}
	touch := input.NewAdapter(input.Touch)
	if _, ok := touch.Normalize(input.MouseEvent{Action: input.Press, Point: input.Point{X: 1, Y: 2}}); ok {
		t.Fatal("touch adapter accepted a mouse event")
	}
	if _, ok := touch.Normalize(nil); ok {
		t.Fatal("nil event accepted")
	}
}

func TestAdapterMouse(t *testing.T) {
	a := input.NewAdapter(input.Mouse)
	sample, ok := a.Normalize(input.MouseEvent{Action: input.Move, Point: input.Point{X: 4, Y: 9}})
	if !ok {
		t.Fatal("expected mouse sample")
	}
	if sample.Modality != input.Mouse || sample.Action != input.Move || sample.X != 4 || sample.Y != 9 {
		t.Fatalf("unexpected sample: %+v", sample)
	}
}

func TestAdapterTouchUsesFirstPointAndLastPositionOnRelease(t *testing.T) {
	a := input.NewAdapter(input.Touch)
	start, ok := a.Normalize(input.TouchEvent{Action: input.Press, Touches: []input.Point{{X: 3, Y: 5}, {X: 90, Y: 90}}})
	if !ok || start.X != 3 || start.Y != 5 {
		t.Fatalf("unexpected press sample: %+v ok=%v", start, ok)
	}
	if _, ok := a.Normalize(input.TouchEvent{Action: input.Move, Touches: []input.Point{{X: 3, Y: 40}}}); !ok {
		t.Fatal("expected move sample")
	}
	if _, ok := a.Normalize(input.TouchEvent{Action: input.Move}); ok {
		t.Fatal("move without touches should be dropped")
	}
	end, ok := a.Normalize(input.TouchEvent{Action: input.Release})
	if !ok {
		t.Fatal("expected release sample")
	}
	if end.Action != input.Release || end.X != 3 || end.Y != 40 {
		t.Fatalf("release should reuse last position, got %+v", end)
	}
}

func TestParseModality(t *testing.T) {
	cases := map[string]input.Modality{"": input.Mouse, "Mouse": input.Mouse, " touch ": input.Touch}
	for value, want := range cases {
		got, err := input.ParseModality(value)
		if err != nil {
			t.Fatalf("ParseModality(%q) error: %v", value, err)
		}
		if got != want {
			t.Fatalf("ParseModality(%q) = %v, want %v", value, got, want)
		}
	}
	if _, err := input.ParseModality("pen"); err == nil {
		t.Fatal("expected error for unsupported modality")
	}
}

func TestFromTeaMouse(t *testing.T) {
	cases := []struct {
		name   string
		msg    tea.MouseMsg
		want   input.Action
		wantOK bool
	}{
		{"left press", tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, input.Press, true},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, 0, false},
		{"wheel", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, 0, false},
		{"motion", tea.MouseMsg{X: 2, Y: 7, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, input.Move, true},
		{"release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}, input.Release, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := input.FromTeaMouse(tc.msg)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && ev.Action != tc.want {
				t.Fatalf("action = %v, want %v", ev.Action, tc.want)
			}
		})
	}
}

func TestFromTeaTouchModeRoundTripsThroughAdapter(t *testing.T) {
	adapter := input.NewAdapter(input.Touch)
	msgs := []tea.MouseMsg{
		{X: 4, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		{X: 4, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		{X: 0, Y: 0, Action: tea.MouseActionRelease},
	}
	var got []input.Sample
	for _, msg := range msgs {
		ev, ok := input.FromTea(msg, input.Touch)
		if !ok {
			t.Fatalf("FromTea rejected %+v", msg)
		}
		if _, isTouch := ev.(input.TouchEvent); !isTouch {
			t.Fatalf("expected touch event, got %T", ev)
		}
		sample, ok := adapter.Normalize(ev)
		if !ok {
			t.Fatalf("adapter dropped %+v", ev)
		}
		got = append(got, sample)
	}
	last := got[len(got)-1]
	if last.Action != input.Release || last.Y != 5 {
		t.Fatalf("touch release should reuse last position, got %+v", last)
	}
}
