package glint

import (
	"math"
	"math/rand/v2"
)

const (
	// borderStep is the distortion time advanced per reference frame at Speed 1.
	borderStep = 0.01
	// Displacement amplitudes in pixels for the two noise harmonics.
	borderAmp1 = 5.0
	borderAmp2 = 3.0

	defaultBorderPoints = 100
	// minPositive replaces non-positive speed or thickness settings.
	minPositive = 0.01
)

// glowPasses are drawn back to front: the same path stroked with growing blur
// and falling opacity to approximate bloom.
var glowPasses = [...]struct{ blur, alpha float64 }{
	{10, 1.0},
	{20, 0.5},
	{30, 0.3},
}

// BorderConfig controls the look of an electric border. It may be replaced
// between frames with Border.SetConfig.
type BorderConfig struct {
	Color Color
	// Speed scales how fast the distortion evolves. Must be > 0.
	Speed float64
	// Chaos scales the displacement amplitude. The intended range is [0, 1]
	// but values outside it are accepted and amplify proportionally.
	Chaos float64
	// Thickness is the stroke width in pixels. Must be > 0.
	Thickness float64
	// Points is the number of perimeter samples. Defaults to 100.
	Points int
}

// DefaultBorderConfig returns the stock electric-cyan border.
func DefaultBorderConfig() BorderConfig {
	return BorderConfig{
		Color:     DefaultColor,
		Speed:     1,
		Chaos:     0.5,
		Thickness: 2,
		Points:    defaultBorderPoints,
	}
}

// normalize clamps malformed values to usable ones. Decoration never fails.
func (c BorderConfig) normalize() BorderConfig {
	if c.Color == (Color{}) {
		c.Color = DefaultColor
	}
	if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
		c.Speed = minPositive
	}
	if !(c.Thickness > 0) || math.IsInf(c.Thickness, 0) {
		c.Thickness = minPositive
	}
	c.Chaos = finiteOr(c.Chaos, 0)
	if c.Points <= 0 {
		c.Points = defaultBorderPoints
	}
	return c
}

// BorderState is the lifecycle state of a Border.
type BorderState uint8

const (
	BorderIdle      BorderState = iota // no valid geometry; renders nothing
	BorderAnimating                    // ticking and distorting every frame
	BorderStatic                       // reduced motion: one undistorted outline, not ticking
)

// String returns the state name.
func (s BorderState) String() string {
	switch s {
	case BorderIdle:
		return "idle"
	case BorderAnimating:
		return "animating"
	case BorderStatic:
		return "static"
	default:
		return "unknown"
	}
}

// BorderOption configures a Border at construction.
type BorderOption func(*Border)

// WithBorderRand sets the random source used for point phases. Useful for
// deterministic output in tests and screenshots.
func WithBorderRand(rng *rand.Rand) BorderOption {
	return func(b *Border) { b.rng = rng }
}

// Border is the perimeter distortion engine: an animated, noise-displaced
// outline that traces a rectangle of externally supplied size.
//
// Resize and SetConfig only stage values; they are applied by the next Update.
type Border struct {
	cfg BorderConfig
	rng *rand.Rand

	state   BorderState
	reduced bool
	closed  bool

	width, height float64
	pendingW      float64
	pendingH      float64
	dirty         bool
	resample      bool

	time   float64
	points []BoundaryPoint
	path   []Vec2
	list   DrawList

	clock  *Clock
	handle TickHandle
}

// NewBorder creates an idle border. It starts animating on the first Update
// after a Resize with non-zero dimensions.
func NewBorder(cfg BorderConfig, opts ...BorderOption) *Border {
	b := &Border{cfg: cfg.normalize()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns the active configuration.
func (b *Border) Config() BorderConfig {
	return b.cfg
}

// State returns the current lifecycle state.
func (b *Border) State() BorderState {
	return b.state
}

// Size returns the dimensions currently applied to the outline.
func (b *Border) Size() (width, height float64) {
	return b.width, b.height
}

// Time returns the accumulated distortion time.
func (b *Border) Time() float64 {
	return b.time
}

// Resize stages new element dimensions for the next Update. Zero or negative
// dimensions move the border to idle; the next valid size resumes it.
func (b *Border) Resize(width, height float64) {
	if b.closed {
		return
	}
	b.pendingW, b.pendingH = width, height
	b.dirty = true
	if b.reduced {
		// Static borders no longer tick, so refresh the outline now.
		b.applyPending()
		b.renderStatic()
	}
}

// SetConfig hot-swaps the configuration. Malformed values are clamped.
// Changing the point count re-samples the perimeter on the next Update.
func (b *Border) SetConfig(cfg BorderConfig) {
	cfg = cfg.normalize()
	if cfg.Points != b.cfg.Points {
		b.resample = true
	}
	b.cfg = cfg
	if b.reduced && !b.closed {
		b.applyPending()
		b.renderStatic()
	}
}

// SetReducedMotion switches between animated and static rendering. When
// enabled, the border emits one undistorted outline and stops ticking until
// disabled again.
func (b *Border) SetReducedMotion(reduced bool) {
	if b.closed || reduced == b.reduced {
		return
	}
	b.reduced = reduced
	if reduced {
		b.handle.Remove()
		b.applyPending()
		b.renderStatic()
		return
	}
	b.setState(BorderIdle)
	b.list.Reset()
	b.register()
}

// ReducedMotion reports whether reduced motion is active.
func (b *Border) ReducedMotion() bool {
	return b.reduced
}

// Attach registers the border's Update with a clock. Calling Attach again
// moves it to the new clock.
func (b *Border) Attach(c *Clock) {
	if b.closed {
		return
	}
	b.handle.Remove()
	b.clock = c
	b.register()
}

func (b *Border) register() {
	if b.clock == nil || b.reduced || b.closed || b.handle.Active() {
		return
	}
	b.handle = b.clock.Register(b.Update)
}

// Close detaches the border from its clock and drops all geometry. It is safe
// to call more than once; no further ticks run after the first call.
func (b *Border) Close() {
	if b.closed {
		return
	}
	b.handle.Remove()
	b.handle = TickHandle{}
	b.closed = true
	b.points = nil
	b.path = nil
	b.list.Reset()
	b.setState(BorderIdle)
}

// Update advances the distortion by dt seconds and rebuilds the draw list.
func (b *Border) Update(dt float64) {
	if b.closed || b.reduced {
		return
	}
	b.applyPending()
	if len(b.points) == 0 {
		b.list.Reset()
		b.setState(BorderIdle)
		return
	}
	b.setState(BorderAnimating)
	b.time += borderStep * b.cfg.Speed * Frames(dt)
	b.displace(b.cfg.Chaos)
	b.emit()
}

// Commands returns the draw commands for the current frame. An idle border
// returns an empty list.
func (b *Border) Commands() []DrawCommand {
	return b.list.Commands()
}

// Points returns the current displaced outline. The slice is owned by the
// border and is overwritten on the next Update.
func (b *Border) Points() []Vec2 {
	return b.path
}

// applyPending commits staged dimensions and re-samples when they changed.
func (b *Border) applyPending() {
	if b.dirty {
		b.dirty = false
		if b.pendingW != b.width || b.pendingH != b.height {
			b.width, b.height = b.pendingW, b.pendingH
			b.resample = true
		}
	}
	if !b.resample {
		return
	}
	b.resample = false
	b.points = SamplePerimeter(b.width, b.height, b.cfg.Points, b.rng)
	if cap(b.path) < len(b.points) {
		b.path = make([]Vec2, len(b.points))
	}
	b.path = b.path[:len(b.points)]
	logger().Debug("border resampled", "width", b.width, "height", b.height, "points", len(b.points))
}

// displace moves every sample perpendicular to its edge.
func (b *Border) displace(chaos float64) {
	t := b.time
	for i, p := range b.points {
		d := math.Sin(t+p.Phase)*chaos*borderAmp1 +
			math.Cos(2*t+p.Phase*0.5)*chaos*borderAmp2
		b.path[i] = p.Position.Add(p.Edge.normal().Mul(d))
	}
}

func (b *Border) emit() {
	b.list.Reset()
	for _, pass := range glowPasses {
		b.list.Polyline(b.path, true, b.cfg.Thickness, pass.blur, b.cfg.Color.WithAlpha(pass.alpha))
	}
}

func (b *Border) renderStatic() {
	if len(b.points) == 0 {
		b.list.Reset()
		b.setState(BorderIdle)
		return
	}
	b.displace(0)
	b.emit()
	b.setState(BorderStatic)
}

func (b *Border) setState(s BorderState) {
	if b.state == s {
		return
	}
	logger().Debug("border state", "from", b.state.String(), "to", s.String())
	b.state = s
}
