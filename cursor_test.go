package glint

import (
	"errors"
	"testing"
	"time"
)

var fineEnv = Env{HasFinePointer: true}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) EmitEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newTestCursor(t *testing.T, opts ...CursorOption) *Cursor {
	t.Helper()
	opts = append([]CursorOption{WithCursorRand(testRand())}, opts...)
	c, err := NewCursor(DefaultCursorConfig(), fineEnv, opts...)
	if err != nil {
		t.Fatalf("NewCursor: %v", err)
	}
	return c
}

// step runs n reference frames.
func step(c *Cursor, n int) {
	for range n {
		c.Update(frame)
	}
}

func TestNewCursorGating(t *testing.T) {
	tests := []struct {
		name    string
		env     Env
		wantErr bool
	}{
		{"fine pointer", Env{HasFinePointer: true}, false},
		{"reduced motion", Env{ReducedMotion: true, HasFinePointer: true}, true},
		{"touch only", Env{}, true},
		{"touch and reduced", Env{ReducedMotion: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCursor(DefaultCursorConfig(), tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrCursorDisabled) {
					t.Errorf("err = %v, want ErrCursorDisabled", err)
				}
				if c != nil {
					t.Error("disabled cursor should not be constructed")
				}
				return
			}
			if err != nil || c == nil {
				t.Fatalf("NewCursor: %v", err)
			}
		})
	}
}

func TestCursorInputIsStaged(t *testing.T) {
	c := newTestCursor(t)
	c.Move(40, 30)
	c.Press(40, 30)
	if c.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", c.Pending())
	}
	if c.State() != (CursorState{}) {
		t.Errorf("state changed before Update: %+v", c.State())
	}
	if len(c.Particles()) != 0 {
		t.Error("burst spawned before Update")
	}
	c.Update(frame)
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d after Update, want 0", c.Pending())
	}
	if c.Phase() != CursorPressed {
		t.Errorf("Phase() = %v, want pressed", c.Phase())
	}
}

func TestCursorPhases(t *testing.T) {
	c := newTestCursor(t)
	if c.Phase() != CursorHidden {
		t.Fatalf("initial Phase() = %v, want hidden", c.Phase())
	}
	steps := []struct {
		do   func()
		want CursorPhase
	}{
		{func() { c.Move(10, 10) }, CursorVisible},
		{func() { c.Press(10, 10) }, CursorPressed},
		{func() { c.Release() }, CursorVisible},
		{func() { c.Leave() }, CursorHidden},
		{func() { c.Move(5, 5) }, CursorVisible},
		{func() { c.Press(5, 5) }, CursorPressed},
		{func() { c.Leave() }, CursorHidden},
	}
	for i, s := range steps {
		s.do()
		c.Update(frame)
		if got := c.Phase(); got != s.want {
			t.Fatalf("step %d: Phase() = %v, want %v", i, got, s.want)
		}
	}
}

func TestCursorFirstMoveSnaps(t *testing.T) {
	c := newTestCursor(t)
	c.Move(120, 80)
	c.Update(frame)
	assertVec(t, "smoothed", c.State().Smoothed, Vec2{120, 80})
	assertVec(t, "target", c.State().Target, Vec2{120, 80})
}

func TestCursorSmoothing(t *testing.T) {
	c := newTestCursor(t)
	c.Move(0, 0)
	c.Update(frame)
	c.Move(100, 0)
	c.Update(frame)
	assertVec(t, "one frame", c.State().Smoothed, Vec2{15, 0})
	c.Update(frame)
	assertVec(t, "two frames", c.State().Smoothed, Vec2{15 + 85*0.15, 0})
}

func TestCursorSmoothingFrameRateIndependent(t *testing.T) {
	a := newTestCursor(t)
	b := newTestCursor(t)
	for _, c := range []*Cursor{a, b} {
		c.Move(0, 0)
		c.Update(frame)
		c.Move(100, 50)
	}
	a.Update(frame)
	b.Update(frame / 2)
	b.Update(frame / 2)
	assertVec(t, "30Hz vs 120Hz", b.State().Smoothed, a.State().Smoothed)
}

func TestCursorBurstOncePerPress(t *testing.T) {
	c := newTestCursor(t)
	c.Move(50, 50)
	c.Press(50, 50)
	c.Update(frame)
	if got := len(c.Particles()); got != 5 {
		t.Fatalf("particles after press = %d, want 5", got)
	}
	// Holding, a repeated press without release, and the release itself
	// must not spawn more.
	c.Press(50, 50)
	step(c, 3)
	c.Release()
	c.Update(frame)
	if got := len(c.Particles()); got != 5 {
		t.Errorf("particles = %d, want 5", got)
	}
	c.Press(60, 60)
	c.Update(frame)
	if got := len(c.Particles()); got != 10 {
		t.Errorf("particles after second press = %d, want 10", got)
	}
}

func TestCursorParticlesDie(t *testing.T) {
	c := newTestCursor(t)
	c.Press(50, 50)
	step(c, 60)
	if n := len(c.Particles()); n != 0 {
		t.Errorf("%d particles alive after 60 frames", n)
	}
}

func TestCursorTrailStampsAndPrunes(t *testing.T) {
	c := newTestCursor(t)
	for i := range 5 {
		c.Move(float64(i), 0)
		c.Update(0.1)
	}
	pts := c.Trail()
	if len(pts) != 5 {
		t.Fatalf("trail = %d points, want 5", len(pts))
	}
	for i, p := range pts {
		want := time.Duration(i+1) * 100 * time.Millisecond
		if d := p.CreatedAt - want; d < -time.Microsecond || d > time.Microsecond {
			t.Errorf("point %d stamped %v, want %v", i, p.CreatedAt, want)
		}
	}
	c.Update(0.25)
	// Now 750ms: the points stamped at 100ms and 200ms have expired.
	if got := len(c.Trail()); got != 3 {
		t.Errorf("trail after 250ms = %d points, want 3", got)
	}
}

func TestCursorTrailBounded(t *testing.T) {
	c := newTestCursor(t)
	for i := range 100 {
		c.Move(float64(i), float64(i))
		if i%3 == 0 {
			c.Update(frame)
		}
	}
	c.Update(frame)
	if got := len(c.Trail()); got > 20 {
		t.Errorf("trail = %d points, want <= 20", got)
	}
}

func TestCursorEvents(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCursor(t, WithEventSink(rec))
	c.Move(1, 2)
	c.Move(3, 4)
	c.Press(5, 6)
	c.Release()
	c.Leave()
	c.Leave()
	c.Update(frame)

	want := []EventType{EventShow, EventPress, EventBurst, EventRelease, EventHide}
	got := rec.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	burst := rec.events[2]
	if burst.Count != 5 || burst.X != 5 || burst.Y != 6 {
		t.Errorf("burst event = %+v", burst)
	}
}

func TestCursorLeaveWhilePressedReleases(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCursor(t, WithEventSink(rec))
	c.Press(5, 5)
	c.Leave()
	c.Update(frame)
	if c.State().Pressed {
		t.Error("leaving should release the press")
	}
	got := rec.types()
	if got[len(got)-2] != EventRelease || got[len(got)-1] != EventHide {
		t.Errorf("events = %v, want release then hide at the end", got)
	}
}

func TestCursorGlyphPressScale(t *testing.T) {
	c := newTestCursor(t)
	c.Move(100, 100)
	c.Update(frame)
	c.Press(100, 100)
	step(c, 15)

	cmds := c.Commands()
	dot := cmds[len(cmds)-1]
	ring := cmds[len(cmds)-2]
	if dot.Type != CommandFillCircle || ring.Type != CommandStrokeCircle {
		t.Fatalf("glyph tail = %v, %v; want stroke-circle, fill-circle", ring.Type, dot.Type)
	}
	assertNear(t, "pressed ring radius", ring.Radius, 10*0.75)
	assertNear(t, "pressed dot radius", dot.Radius, 20*0.3/2*1.5)
	assertNear(t, "ring width", ring.Width, 2)
	assertVec(t, "glyph center", ring.Center, Vec2{100, 100})

	c.Release()
	step(c, 15)
	cmds = c.Commands()
	assertNear(t, "released ring radius", cmds[len(cmds)-2].Radius, 10)
	assertNear(t, "released dot radius", cmds[len(cmds)-1].Radius, 3)
}

func TestCursorGlyphFadesOnLeave(t *testing.T) {
	c := newTestCursor(t)
	c.Move(10, 10)
	step(c, 15)
	cmds := c.Commands()
	assertNear(t, "shown opacity", cmds[len(cmds)-1].Color.A, 1)

	c.Leave()
	step(c, 40)
	if n := len(c.Commands()); n != 0 {
		t.Errorf("hidden cursor with expired trail emitted %d commands", n)
	}
}

func TestCursorCommandOrder(t *testing.T) {
	c := newTestCursor(t)
	c.Move(0, 0)
	c.Update(frame)
	c.Move(20, 0)
	c.Press(20, 0)
	c.Update(frame)

	cmds := c.Commands()
	// trail segment, five particles, ping, ring glow, ring, dot
	want := []CommandType{CommandLine}
	for range 5 {
		want = append(want, CommandFillCircle)
	}
	want = append(want, CommandStrokeCircle, CommandStrokeCircle, CommandStrokeCircle, CommandFillCircle)
	if len(cmds) < len(want) {
		t.Fatalf("commands = %d, want %d", len(cmds), len(want))
	}
	// The press lands on the move position, so the last segment is zero length.
	cmds = cmds[len(cmds)-len(want):]
	for i, w := range want {
		if cmds[i].Type != w {
			t.Errorf("command %d = %v, want %v", i, cmds[i].Type, w)
		}
	}
	assertNear(t, "trail width", cmds[0].Width, 20*0.3)
}

func TestCursorClose(t *testing.T) {
	clock := NewClock()
	c := newTestCursor(t)
	c.Attach(clock)
	c.Move(10, 10)
	c.Press(10, 10)
	clock.Tick(frame)
	c.Move(20, 20)

	c.Close()
	c.Close()
	if clock.Len() != 0 {
		t.Errorf("clock.Len() = %d after Close, want 0", clock.Len())
	}
	if c.Pending() != 0 || len(c.Trail()) != 0 || len(c.Particles()) != 0 {
		t.Error("Close should drop intents, trail, and particles")
	}
	c.Move(1, 1)
	c.Update(frame)
	c.Attach(clock)
	if c.Pending() != 0 || clock.Len() != 0 || len(c.Commands()) != 0 {
		t.Error("closed cursor accepted input")
	}
	if !c.Closed() {
		t.Error("Closed() = false")
	}
}

func TestCursorAttachTicks(t *testing.T) {
	clock := NewClock()
	c := newTestCursor(t)
	c.Attach(clock)
	c.Move(3, 4)
	clock.Tick(frame)
	if c.Phase() != CursorVisible {
		t.Errorf("Phase() = %v, want visible", c.Phase())
	}
}

func TestCursorConfigNormalize(t *testing.T) {
	c, err := NewCursor(CursorConfig{Smoothing: 3, Size: -1}, fineEnv)
	if err != nil {
		t.Fatal(err)
	}
	cfg := c.Config()
	def := DefaultCursorConfig()
	if cfg.Size != def.Size || cfg.TrailLength != def.TrailLength ||
		cfg.ParticleCount != def.ParticleCount || cfg.TrailMaxAge != def.TrailMaxAge {
		t.Errorf("Config() = %+v, want defaults", cfg)
	}
	assertNear(t, "smoothing clamped", cfg.Smoothing, 1)
	if cfg.Burst != DefaultBurstConfig() {
		t.Error("zero Burst should take defaults")
	}
}

func TestCursorSetConfig(t *testing.T) {
	c := newTestCursor(t)
	c.Move(1, 1)
	c.Update(frame)
	cfg := c.Config()
	cfg.TrailLength = 4
	cfg.ParticleCount = 9
	c.SetConfig(cfg)
	if len(c.Trail()) != 0 {
		t.Error("new trail bounds should start a fresh trail")
	}
	c.Press(2, 2)
	c.Update(frame)
	if got := len(c.Particles()); got != 9 {
		t.Errorf("particles = %d, want 9", got)
	}
}

func TestCursorPhaseString(t *testing.T) {
	for p, want := range map[CursorPhase]string{
		CursorHidden: "hidden", CursorVisible: "visible", CursorPressed: "pressed", 7: "unknown",
	} {
		if got := p.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", p, got, want)
		}
	}
}

func TestIntentQueueOrder(t *testing.T) {
	var q intentQueue
	q.push(Intent{Kind: IntentMove})
	q.push(Intent{Kind: IntentPress})
	var got []IntentKind
	q.drain(func(in Intent) {
		got = append(got, in.Kind)
		if in.Kind == IntentMove {
			q.push(Intent{Kind: IntentLeave})
		}
	})
	if len(got) != 2 || got[0] != IntentMove || got[1] != IntentPress {
		t.Errorf("drained %v, want [move press]", got)
	}
	if q.len() != 1 {
		t.Errorf("intent queued during drain: len = %d, want 1", q.len())
	}
	q.drain(func(in Intent) {
		if in.Kind != IntentLeave {
			t.Errorf("kind = %v, want leave", in.Kind)
		}
	})
	if IntentRelease.String() != "release" || IntentKind(9).String() != "unknown" {
		t.Error("IntentKind.String mismatch")
	}
}
