package glint

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

const (
	defaultCursorSize      = 20.0
	defaultParticleCount   = 5
	defaultCursorSmoothing = 0.15

	// Glyph proportions relative to Size.
	ringStroke     = 2.0
	ringGlow       = 10.0
	dotRatio       = 0.3
	trailRatio     = 0.3
	pressRingScale = 0.75
	pressDotScale  = 1.5

	pingPeriod = time.Second
)

// CursorConfig controls the splash cursor.
type CursorConfig struct {
	Color Color
	// Size is the glyph ring diameter in pixels.
	Size float64
	// TrailLength caps the number of trail points.
	TrailLength int
	// ParticleCount is the number of particles spawned per press.
	ParticleCount int
	// Smoothing is the per-reference-frame fraction of the remaining distance
	// the glyph covers toward the pointer. 1 follows the pointer exactly.
	Smoothing float64
	// TrailMaxAge is how long a trail point lives.
	TrailMaxAge time.Duration
	Burst       BurstConfig
}

// DefaultCursorConfig returns the stock splash cursor settings.
func DefaultCursorConfig() CursorConfig {
	return CursorConfig{
		Color:         DefaultColor,
		Size:          defaultCursorSize,
		TrailLength:   defaultTrailLength,
		ParticleCount: defaultParticleCount,
		Smoothing:     defaultCursorSmoothing,
		TrailMaxAge:   defaultTrailMaxAge,
		Burst:         DefaultBurstConfig(),
	}
}

func (c CursorConfig) normalize() CursorConfig {
	if c.Color == (Color{}) {
		c.Color = DefaultColor
	}
	if !(c.Size > 0) || math.IsInf(c.Size, 0) {
		c.Size = defaultCursorSize
	}
	if c.TrailLength <= 0 {
		c.TrailLength = defaultTrailLength
	}
	if c.ParticleCount <= 0 {
		c.ParticleCount = defaultParticleCount
	}
	if !(c.Smoothing > 0) {
		c.Smoothing = defaultCursorSmoothing
	}
	c.Smoothing = min(c.Smoothing, 1)
	if c.TrailMaxAge <= 0 {
		c.TrailMaxAge = defaultTrailMaxAge
	}
	if c.Burst == (BurstConfig{}) {
		c.Burst = DefaultBurstConfig()
	}
	c.Burst = c.Burst.normalize()
	return c
}

// Env carries the host capabilities that decide whether a cursor may run.
type Env struct {
	// ReducedMotion is the user's accessibility preference.
	ReducedMotion bool
	// HasFinePointer reports a hover-capable pointing device. Touch-only
	// devices report false.
	HasFinePointer bool
}

// Allowed reports whether a cursor may be constructed in this environment.
func (e Env) Allowed() bool {
	return !e.ReducedMotion && e.HasFinePointer
}

// CursorPhase is the lifecycle state of a Cursor.
type CursorPhase uint8

const (
	CursorHidden CursorPhase = iota
	CursorVisible
	CursorPressed
)

// String returns the phase name.
func (p CursorPhase) String() string {
	switch p {
	case CursorHidden:
		return "hidden"
	case CursorVisible:
		return "visible"
	case CursorPressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// CursorState is the pointer state a Cursor tracks. Target follows input
// exactly; Smoothed eases toward it every tick.
type CursorState struct {
	Smoothed Vec2
	Target   Vec2
	Visible  bool
	Pressed  bool
}

// CursorOption configures a Cursor at construction.
type CursorOption func(*Cursor)

// WithCursorRand sets the random source for burst particles.
func WithCursorRand(rng *rand.Rand) CursorOption {
	return func(c *Cursor) { c.rng = rng }
}

// WithEventSink routes cursor events to sink.
func WithEventSink(sink EventSink) CursorOption {
	return func(c *Cursor) { c.sink = sink }
}

// Cursor is the splash cursor engine: a smoothed glyph, a fading trail of
// recent pointer positions, and particle bursts on press.
//
// Move, Press, Release, and Leave only enqueue intents. All state changes
// happen in Update.
type Cursor struct {
	cfg   CursorConfig
	state CursorState
	// placed is set once the glyph has a real position to ease from.
	placed bool
	closed bool
	now    time.Duration

	intents intentQueue
	trail   *Trail
	pool    *ParticlePool
	rng     *rand.Rand

	ringScale *Tween
	dotScale  *Tween
	opacity   *Tween
	ping      *pulse

	list   DrawList
	sink   EventSink
	clock  *Clock
	handle TickHandle
}

// NewCursor creates a cursor, or returns ErrCursorDisabled when env forbids
// one (reduced motion or no fine pointer). A disabled cursor is never built,
// so there is nothing to tick or tear down.
func NewCursor(cfg CursorConfig, env Env, opts ...CursorOption) (*Cursor, error) {
	if !env.Allowed() {
		logger().Debug("cursor disabled", "reducedMotion", env.ReducedMotion, "finePointer", env.HasFinePointer)
		return nil, ErrCursorDisabled
	}
	c := &Cursor{cfg: cfg.normalize()}
	for _, opt := range opts {
		opt(c)
	}
	c.trail = NewTrail(c.cfg.TrailLength, c.cfg.TrailMaxAge)
	c.pool = NewParticlePool(c.cfg.Burst, c.rng)
	c.ringScale = NewTween(1, glyphTransition, ease.OutQuad)
	c.dotScale = NewTween(1, glyphTransition, ease.OutQuad)
	c.opacity = NewTween(0, glyphTransition, ease.OutQuad)
	c.ping = newPulse(pingPeriod)
	return c, nil
}

// Config returns the active configuration.
func (c *Cursor) Config() CursorConfig {
	return c.cfg
}

// SetConfig replaces the configuration. Changing the trail bounds starts a
// fresh trail; live particles keep their spawn-time color and size.
func (c *Cursor) SetConfig(cfg CursorConfig) {
	if c.closed {
		return
	}
	cfg = cfg.normalize()
	if cfg.TrailLength != c.cfg.TrailLength || cfg.TrailMaxAge != c.cfg.TrailMaxAge {
		c.trail = NewTrail(cfg.TrailLength, cfg.TrailMaxAge)
	}
	*c.pool.Config() = cfg.Burst
	c.cfg = cfg
}

// State returns the tracked pointer state.
func (c *Cursor) State() CursorState {
	return c.state
}

// Phase returns the lifecycle phase derived from the pointer state.
func (c *Cursor) Phase() CursorPhase {
	switch {
	case !c.state.Visible:
		return CursorHidden
	case c.state.Pressed:
		return CursorPressed
	default:
		return CursorVisible
	}
}

// SetEventSink replaces the lifecycle event receiver. A nil sink discards
// events.
func (c *Cursor) SetEventSink(sink EventSink) {
	c.sink = sink
}

// Pending returns the number of intents waiting for the next Update.
func (c *Cursor) Pending() int {
	return c.intents.len()
}

// Trail returns the live trail points, oldest first. The slice is reused by
// the next Update.
func (c *Cursor) Trail() []TrailPoint {
	return c.trail.Points()
}

// Particles returns the live burst particles. The slice is reused by the next
// Update.
func (c *Cursor) Particles() []Particle {
	return c.pool.Live()
}

// Move records that the pointer moved to (x, y) inside the tracked region.
func (c *Cursor) Move(x, y float64) {
	c.enqueue(Intent{Kind: IntentMove, Position: Vec2{x, y}})
}

// Press records a button press at (x, y).
func (c *Cursor) Press(x, y float64) {
	c.enqueue(Intent{Kind: IntentPress, Position: Vec2{x, y}})
}

// Release records a button release.
func (c *Cursor) Release() {
	c.enqueue(Intent{Kind: IntentRelease})
}

// Leave records that the pointer left the tracked region.
func (c *Cursor) Leave() {
	c.enqueue(Intent{Kind: IntentLeave})
}

// Enqueue adds a pre-built intent. Input after Close is dropped.
func (c *Cursor) Enqueue(in Intent) {
	c.enqueue(in)
}

func (c *Cursor) enqueue(in Intent) {
	if c.closed {
		return
	}
	c.intents.push(in)
}

// Attach registers the cursor's Update with a clock. Calling Attach again
// moves it to the new clock.
func (c *Cursor) Attach(clock *Clock) {
	if c.closed {
		return
	}
	c.handle.Remove()
	c.clock = clock
	if clock != nil {
		c.handle = clock.Register(c.Update)
	}
}

// Close detaches the cursor from its clock, drops queued intents, and clears
// the trail and particles. Further input is ignored. Close is idempotent.
func (c *Cursor) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.handle.Remove()
	c.handle = TickHandle{}
	c.intents.reset()
	c.trail.Reset()
	c.pool.Reset()
	c.ping.stop()
	c.list.Reset()
	c.state.Visible, c.state.Pressed = false, false
	logger().Debug("cursor closed")
}

// Closed reports whether Close has been called.
func (c *Cursor) Closed() bool {
	return c.closed
}

// Update consumes queued intents, then advances smoothing, the trail, the
// particles, and the glyph animations by dt seconds, and rebuilds the draw
// list.
func (c *Cursor) Update(dt float64) {
	if c.closed {
		return
	}
	if !(dt >= 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	c.now += time.Duration(dt * float64(time.Second))

	c.intents.drain(c.apply)

	c.state.Smoothed = c.state.Smoothed.Lerp(c.state.Target, Damp(c.cfg.Smoothing, Frames(dt)))
	c.trail.Prune(c.now)
	c.pool.Tick(dt)
	c.ringScale.Update(dt)
	c.dotScale.Update(dt)
	c.opacity.Update(dt)
	c.ping.update(dt)

	c.emit()
}

// Commands returns the frame's draw list: trail segments, particle disks,
// then the glyph.
func (c *Cursor) Commands() []DrawCommand {
	return c.list.Commands()
}

func (c *Cursor) apply(in Intent) {
	switch in.Kind {
	case IntentMove:
		c.moveTo(in.Position)
	case IntentPress:
		c.moveTo(in.Position)
		if c.state.Pressed {
			return
		}
		c.state.Pressed = true
		c.ringScale.Set(pressRingScale)
		c.dotScale.Set(pressDotScale)
		c.ping.start()
		c.pool.SpawnBurst(in.Position, c.cfg.ParticleCount, c.cfg.Color)
		c.publish(EventPress, in.Position, 0)
		c.publish(EventBurst, in.Position, c.cfg.ParticleCount)
	case IntentRelease:
		c.release()
	case IntentLeave:
		c.release()
		if !c.state.Visible {
			return
		}
		c.state.Visible = false
		c.opacity.Set(0)
		c.publish(EventHide, c.state.Target, 0)
	}
}

func (c *Cursor) moveTo(p Vec2) {
	c.state.Target = p
	if !c.placed {
		c.state.Smoothed = p
		c.placed = true
	}
	c.trail.Push(p, c.now)
	if !c.state.Visible {
		c.state.Visible = true
		c.opacity.Set(1)
		c.publish(EventShow, p, 0)
	}
}

func (c *Cursor) release() {
	if !c.state.Pressed {
		return
	}
	c.state.Pressed = false
	c.ringScale.Set(1)
	c.dotScale.Set(1)
	c.ping.stop()
	c.publish(EventRelease, c.state.Target, 0)
}

func (c *Cursor) publish(t EventType, p Vec2, count int) {
	logger().Debug("cursor event", "type", t.String(), "x", p.X, "y", p.Y)
	if c.sink == nil {
		return
	}
	c.sink.EmitEvent(Event{Type: t, X: p.X, Y: p.Y, Count: count})
}

func (c *Cursor) emit() {
	c.list.Reset()
	c.trail.AppendSegments(&c.list, c.now, c.cfg.Size*trailRatio, c.cfg.Color)
	c.pool.AppendCommands(&c.list)

	alpha := c.opacity.Value()
	if alpha <= 0 {
		return
	}
	center := c.state.Smoothed
	radius := c.cfg.Size / 2
	col := c.cfg.Color.WithAlpha(alpha)
	if c.ping.active && c.ping.Alpha > 0 {
		c.list.StrokeCircle(center, radius*c.ping.Scale, ringStroke, 0, c.cfg.Color.WithAlpha(alpha*c.ping.Alpha))
	}
	ring := radius * c.ringScale.Value()
	c.list.StrokeCircle(center, ring, ringStroke, ringGlow, col.WithAlpha(0.5))
	c.list.StrokeCircle(center, ring, ringStroke, 0, col)
	c.list.FillCircle(center, c.cfg.Size*dotRatio/2*c.dotScale.Value(), col)
}
