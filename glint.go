package glint

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrSurfaceNotReady is returned by Canvas.Draw when the destination image is
// missing or has zero area. The frame is skipped and retried on the next tick.
var ErrSurfaceNotReady = errors.New("glint: surface not ready")

// ErrCursorDisabled is returned by NewCursor when the environment gates the
// cursor effect off (reduced motion, or no fine pointer).
var ErrCursorDisabled = errors.New("glint: cursor effect disabled")

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// EventType identifies a cursor lifecycle event delivered to an EventSink.
type EventType uint8

const (
	EventShow    EventType = iota // cursor became visible (first move inside the region)
	EventHide                     // pointer left the tracked region
	EventPress                    // pointer button pressed
	EventRelease                  // pointer button released
	EventBurst                    // a particle burst was spawned
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventShow:
		return "show"
	case EventHide:
		return "hide"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventBurst:
		return "burst"
	default:
		return "unknown"
	}
}

// Event carries a cursor lifecycle notification.
type Event struct {
	Type  EventType
	X, Y  float64
	Count int // particles spawned (EventBurst only)
}

// EventSink is the interface for optional event integration, e.g. the
// Donburi adapter in glint/ecs.
type EventSink interface {
	EmitEvent(event Event)
}
