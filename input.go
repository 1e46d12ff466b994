package glint

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSample is one reading of the primary pointer.
type PointerSample struct {
	X, Y    float64
	Pressed bool
	// Away is set when the pointer cannot be over the region at all, e.g.
	// the window lost focus.
	Away bool
}

// IntentReceiver accepts pointer intents. *Cursor implements it.
type IntentReceiver interface {
	Enqueue(in Intent)
}

// PointerTracker turns a stream of pointer samples into intents for one
// tracked region. It is a pure state machine over samples, so it runs the
// same for polled, injected, and recorded input.
type PointerTracker struct {
	// Region is the tracked area in screen coordinates. An empty Region
	// tracks the whole window.
	Region Rect

	inside  bool
	down    bool
	hasLast bool
	lastX   float64
	lastY   float64
	out     []Intent
}

// Inside reports whether the last sample was inside the region.
func (t *PointerTracker) Inside() bool {
	return t.inside
}

// Down reports whether the button was held at the last sample.
func (t *PointerTracker) Down() bool {
	return t.down
}

// Reset forgets all pointer state. The next sample inside the region is
// treated as an entry.
func (t *PointerTracker) Reset() {
	region := t.Region
	out := t.out[:0]
	*t = PointerTracker{Region: region, out: out}
}

// Process feeds one sample through the state machine and returns the
// resulting intents in order: move, then press or release, then leave. The
// returned slice is reused by the next call.
func (t *PointerTracker) Process(s PointerSample) []Intent {
	t.out = t.out[:0]
	pos := Vec2{s.X, s.Y}
	inside := !s.Away && (t.Region.Empty() || t.Region.Contains(s.X, s.Y))
	moved := !t.hasLast || s.X != t.lastX || s.Y != t.lastY

	if inside && (moved || !t.inside) {
		t.out = append(t.out, Intent{Kind: IntentMove, Position: pos})
	}
	switch {
	case s.Pressed && !t.down:
		t.down = true
		// A press that starts outside the region is not ours.
		if inside {
			t.out = append(t.out, Intent{Kind: IntentPress, Position: pos})
		}
	case !s.Pressed && t.down:
		t.down = false
		t.out = append(t.out, Intent{Kind: IntentRelease, Position: pos})
	}
	if t.inside && !inside {
		t.out = append(t.out, Intent{Kind: IntentLeave, Position: pos})
	}

	t.inside = inside
	t.hasLast = true
	t.lastX, t.lastY = s.X, s.Y
	return t.out
}

// Feed processes s and forwards every resulting intent to r.
func (t *PointerTracker) Feed(s PointerSample, r IntentReceiver) {
	for _, in := range t.Process(s) {
		r.Enqueue(in)
	}
}

// PollPointer reads the mouse through ebiten. Call it from Update.
func PollPointer() PointerSample {
	x, y := ebiten.CursorPosition()
	return PointerSample{
		X:       float64(x),
		Y:       float64(y),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Away:    !ebiten.IsFocused(),
	}
}
