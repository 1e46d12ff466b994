package glint

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// glyphTransition is the duration of the cursor glyph's press and visibility
// animations.
const glyphTransition = 200 * time.Millisecond

// Tween animates one float64 toward a target value. Retargeting mid-flight
// starts a new tween from the current value, so reversing a transition never
// jumps.
//
// There is no global animation manager; the owner calls Update each tick.
type Tween struct {
	value    float64
	to       float64
	duration float32
	fn       ease.TweenFunc
	tw       *gween.Tween
}

// NewTween creates a tween resting at value. Transitions started with Set take
// duration and follow fn.
func NewTween(value float64, duration time.Duration, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{
		value:    value,
		to:       value,
		duration: float32(duration.Seconds()),
		fn:       fn,
	}
}

// Value returns the current animated value.
func (t *Tween) Value() float64 {
	return t.value
}

// Target returns the value the tween is heading toward.
func (t *Tween) Target() float64 {
	return t.to
}

// Done reports whether the tween has reached its target.
func (t *Tween) Done() bool {
	return t.tw == nil
}

// Set starts a transition from the current value to v. Setting the current
// target again is a no-op.
func (t *Tween) Set(v float64) {
	if v == t.to {
		return
	}
	t.to = v
	if t.duration <= 0 {
		t.Jump(v)
		return
	}
	t.tw = gween.New(float32(t.value), float32(v), t.duration, t.fn)
}

// Jump moves to v immediately, cancelling any transition.
func (t *Tween) Jump(v float64) {
	t.value, t.to, t.tw = v, v, nil
}

// Update advances the transition by dt seconds and reports whether it has
// finished.
func (t *Tween) Update(dt float64) bool {
	if t.tw == nil {
		return true
	}
	val, finished := t.tw.Update(float32(dt))
	t.value = float64(val)
	if finished {
		t.value = t.to
		t.tw = nil
	}
	return finished
}

// pulse is a repeating scale-up and fade-out ring, restarted every period
// while active.
type pulse struct {
	period float32
	grow   *gween.Tween
	fade   *gween.Tween

	active bool
	Scale  float64
	Alpha  float64
}

func newPulse(period time.Duration) *pulse {
	return &pulse{period: float32(period.Seconds())}
}

func (p *pulse) start() {
	p.active = true
	p.restart()
}

func (p *pulse) restart() {
	p.grow = gween.New(1, 2, p.period, ease.OutCubic)
	p.fade = gween.New(0.3, 0, p.period, ease.OutCubic)
	p.Scale, p.Alpha = 1, 0.3
}

func (p *pulse) stop() {
	p.active = false
	p.grow, p.fade = nil, nil
	p.Scale, p.Alpha = 1, 0
}

func (p *pulse) update(dt float64) {
	if !p.active {
		return
	}
	s, done := p.grow.Update(float32(dt))
	a, _ := p.fade.Update(float32(dt))
	p.Scale, p.Alpha = float64(s), float64(a)
	if done {
		p.restart()
	}
}
