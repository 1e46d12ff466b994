package ecs

import (
	"github.com/phanxgames/glint"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for glint cursor events.
var EventType = events.NewEventType[glint.Event]()

// CursorState holds the latest pointer state mirrored by SyncCursor.
var CursorState = donburi.NewComponentType[glint.CursorState]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on EventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) glint.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event glint.Event) {
	EventType.Publish(s.world, event)
}

// SyncCursor copies c's pointer state into the world's CursorState entity,
// creating it on first use. A nil cursor stores the zero (hidden) state.
func SyncCursor(world donburi.World, c *glint.Cursor) *donburi.Entry {
	entry, ok := CursorState.First(world)
	if !ok {
		entry = world.Entry(world.Create(CursorState))
	}
	var state glint.CursorState
	if c != nil {
		state = c.State()
	}
	CursorState.SetValue(entry, state)
	return entry
}
