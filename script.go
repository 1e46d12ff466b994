package glint

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a replay script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Enabled bool    `json:"enabled,omitempty"`
}

// script is the top-level JSON structure for a replay script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"move":          true,
	"press":         true,
	"release":       true,
	"click":         true,
	"drag":          true,
	"leave":         true,
	"resize":        true,
	"reducedMotion": true,
	"wait":          true,
	"screenshot":    true,
}

// ScriptRunner sequences injected pointer input, border resizes,
// reduced-motion toggles, and screenshots across frames for automated
// visual checks. Attach it with Host.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON replay script. Unknown actions are rejected here
// rather than skipped during playback.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a runner. Its step runs at the start of every Update,
// before input is read.
func (h *Host) SetScript(r *ScriptRunner) {
	h.script = r
}

// Done reports whether every step has run and its input has been consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(h *Host) {
	if r.done {
		return
	}
	// Let queued input play out before the next step.
	if h.Injecting() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	logger().Debug("script step", "index", r.cursor-1, "action", st.Action)

	switch st.Action {
	case "move":
		h.InjectMove(st.X, st.Y)
	case "press":
		h.InjectPress(st.X, st.Y)
	case "release":
		h.InjectRelease(st.X, st.Y)
	case "click":
		h.InjectClick(st.X, st.Y)
	case "drag":
		h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "leave":
		h.InjectLeave()
	case "resize":
		h.SetBorderRegion(Rect{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height})
	case "reducedMotion":
		h.SetReducedMotion(st.Enabled)
	case "screenshot":
		h.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !h.Injecting() {
		r.done = true
	}
}
