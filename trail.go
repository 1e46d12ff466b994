package glint

import "time"

const (
	defaultTrailLength = 20
	defaultTrailMaxAge = 500 * time.Millisecond
)

// TrailPoint is one recorded pointer position.
type TrailPoint struct {
	Position  Vec2
	CreatedAt time.Duration
}

// Trail is a time- and size-bounded history of pointer positions, stored in a
// fixed ring. Points are kept in ascending CreatedAt order.
type Trail struct {
	ring   []TrailPoint
	head   int // index of the oldest point
	n      int
	maxAge time.Duration

	live   []TrailPoint
	segBuf []Vec2
}

// NewTrail creates a trail holding at most length points, each living for
// at most maxAge. Non-positive arguments fall back to 20 points / 500ms.
func NewTrail(length int, maxAge time.Duration) *Trail {
	if length <= 0 {
		length = defaultTrailLength
	}
	if maxAge <= 0 {
		maxAge = defaultTrailMaxAge
	}
	return &Trail{
		ring:   make([]TrailPoint, length),
		maxAge: maxAge,
	}
}

// Cap returns the maximum number of points.
func (t *Trail) Cap() int {
	return len(t.ring)
}

// MaxAge returns the age at which points expire.
func (t *Trail) MaxAge() time.Duration {
	return t.maxAge
}

// Len returns the number of stored points, live or not yet pruned.
func (t *Trail) Len() int {
	return t.n
}

// Push appends a point stamped with now, evicting the oldest point when the
// trail is full. A timestamp earlier than the newest point is raised to it
// so the trail stays ordered.
func (t *Trail) Push(p Vec2, now time.Duration) {
	if t.n > 0 {
		if last := t.at(t.n - 1).CreatedAt; now < last {
			now = last
		}
	}
	if t.n == len(t.ring) {
		t.head = (t.head + 1) % len(t.ring)
		t.n--
	}
	t.ring[(t.head+t.n)%len(t.ring)] = TrailPoint{Position: p, CreatedAt: now}
	t.n++
}

// Prune drops every point whose age at now has reached MaxAge and returns the
// remaining points oldest first. The returned slice is reused by the next
// call to Prune or Points.
func (t *Trail) Prune(now time.Duration) []TrailPoint {
	for t.n > 0 && now-t.ring[t.head].CreatedAt >= t.maxAge {
		t.ring[t.head] = TrailPoint{}
		t.head = (t.head + 1) % len(t.ring)
		t.n--
	}
	return t.Points()
}

// Points returns the stored points oldest first without pruning.
func (t *Trail) Points() []TrailPoint {
	t.live = t.live[:0]
	for i := 0; i < t.n; i++ {
		t.live = append(t.live, t.at(i))
	}
	return t.live
}

// Reset removes every point.
func (t *Trail) Reset() {
	clear(t.ring)
	t.head = 0
	t.n = 0
}

func (t *Trail) at(i int) TrailPoint {
	return t.ring[(t.head+i)%len(t.ring)]
}

// fade returns 1 - age/maxAge clamped to [0, 1].
func (t *Trail) fade(age time.Duration) float64 {
	return clamp01(1 - float64(age)/float64(t.maxAge))
}

// AppendSegments draws the trail as connected segments in chronological
// order. Each segment's width and opacity scale with the freshness of its
// newer end, so the stroke thins and fades toward the oldest point.
func (t *Trail) AppendSegments(dst *DrawList, now time.Duration, width float64, c Color) {
	if t.n < 2 {
		return
	}
	need := 2 * (t.n - 1)
	if cap(t.segBuf) < need {
		t.segBuf = make([]Vec2, need)
	}
	t.segBuf = t.segBuf[:need]
	for i := 1; i < t.n; i++ {
		a, b := t.at(i-1), t.at(i)
		f := t.fade(now - b.CreatedAt)
		if f <= 0 {
			continue
		}
		seg := t.segBuf[2*(i-1) : 2*i]
		seg[0], seg[1] = a.Position, b.Position
		dst.Line(seg, width*f, c.WithAlpha(f))
	}
}
