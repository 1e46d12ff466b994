package glint

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "resize", "x": 10, "y": 20, "width": 300, "height": 150},
			{"action": "reducedMotion", "enabled": true},
			{"action": "wait", "frames": 3}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if st := runner.steps[2]; st.Width != 300 || st.Height != 150 {
		t.Errorf("resize step = %+v", st)
	}
	if !runner.steps[3].Enabled {
		t.Error("reducedMotion step should be enabled")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"invalid json", `not json`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "teleport"}]}`, `unknown action "teleport"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func mustScript(t *testing.T, data string) *ScriptRunner {
	t.Helper()
	r, err := LoadScript([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestScriptClickWaitsForInput(t *testing.T) {
	h, rec := newTestHost(t)
	runner := mustScript(t, `{"steps": [{"action": "click", "x": 50, "y": 50}]}`)
	h.SetScript(runner)

	// Frame 1 queues press and release and consumes the press.
	h.step(frame)
	if runner.Done() {
		t.Error("runner should not be done while injected input is pending")
	}
	h.step(frame)
	h.step(frame)
	if !runner.Done() {
		t.Error("runner should be done once the click has played out")
	}
	if n := len(rec.events); n != 4 {
		t.Errorf("got %d events, want show, press, burst, release", n)
	}
}

func TestScriptWait(t *testing.T) {
	h, _ := newTestHost(t)
	runner := mustScript(t, `{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)

	for i := range 3 {
		runner.step(h)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", i+1)
		}
	}
	runner.step(h)
	if !runner.Done() {
		t.Error("runner should be done after the screenshot step")
	}
	if len(h.screenshotQueue) != 1 || h.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", h.screenshotQueue)
	}
}

func TestScriptResizeAndReducedMotion(t *testing.T) {
	h, _ := newTestHost(t)
	b := NewBorder(DefaultBorderConfig(), WithBorderRand(testRand()))
	h.SetBorder(b, Rect{0, 0, 100, 100})
	runner := mustScript(t, `{"steps": [
		{"action": "resize", "x": 5, "y": 5, "width": 200, "height": 80},
		{"action": "reducedMotion", "enabled": true}
	]}`)
	h.SetScript(runner)

	h.step(frame)
	if got := h.BorderRegion(); got != (Rect{5, 5, 200, 80}) {
		t.Errorf("region = %+v", got)
	}
	if w, hgt := b.Size(); w != 200 || hgt != 80 {
		t.Errorf("border size = %vx%v, want 200x80", w, hgt)
	}

	h.step(frame)
	if !b.ReducedMotion() {
		t.Error("border should be static after reducedMotion")
	}
	if h.Cursor() != nil {
		t.Error("cursor should be torn down under reduced motion")
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestScriptDragAndLeave(t *testing.T) {
	h, _ := newTestHost(t)
	runner := mustScript(t, `{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 30, "toY": 0, "frames": 4},
		{"action": "leave"}
	]}`)
	h.SetScript(runner)
	for range 10 {
		h.step(frame)
	}
	if !runner.Done() {
		t.Fatal("runner should be done")
	}
	if h.Cursor().Phase() != CursorHidden {
		t.Errorf("phase = %v, want hidden", h.Cursor().Phase())
	}
}
