package glint

import (
	"math"
	"time"
)

// ReferenceFPS is the refresh rate the per-frame constants of both effects
// were tuned at. Simulation steps are scaled by dt*ReferenceFPS so a 60 Hz
// frame reproduces them exactly and other refresh rates look the same.
const ReferenceFPS = 60.0

// Frames converts a delta in seconds into reference frames.
func Frames(dt float64) float64 {
	return dt * ReferenceFPS
}

type tickEntry struct {
	id uint32
	fn func(dt float64)
}

// Clock is a cooperative per-frame scheduler. Engines register a tick
// callback with it; the host calls Tick once per display refresh.
//
// There is no goroutine behind a Clock: everything runs synchronously
// inside Tick on the caller's goroutine.
type Clock struct {
	// Speed scales every delta passed to callbacks. Zero pauses simulation.
	Speed float64

	now     time.Duration
	entries []tickEntry
	nextID  uint32
	frame   uint64
}

// NewClock returns a clock running at normal speed.
func NewClock() *Clock {
	return &Clock{Speed: 1}
}

// TickHandle allows removing a registered tick callback.
type TickHandle struct {
	id    uint32
	clock *Clock
}

// Remove unregisters the callback so it no longer fires. Calling Remove more
// than once, or on a zero TickHandle, is a no-op.
func (h TickHandle) Remove() {
	if h.clock == nil || h.id == 0 {
		return
	}
	h.clock.remove(h.id)
}

// Active reports whether the callback is still registered.
func (h TickHandle) Active() bool {
	if h.clock == nil || h.id == 0 {
		return false
	}
	for i := range h.clock.entries {
		if h.clock.entries[i].id == h.id {
			return true
		}
	}
	return false
}

// Register adds fn to the tick list. Callbacks run in registration order.
func (c *Clock) Register(fn func(dt float64)) TickHandle {
	c.nextID++
	c.entries = append(c.entries, tickEntry{id: c.nextID, fn: fn})
	return TickHandle{id: c.nextID, clock: c}
}

func (c *Clock) remove(id uint32) {
	for i := range c.entries {
		if c.entries[i].id == id {
			copy(c.entries[i:], c.entries[i+1:])
			c.entries[len(c.entries)-1] = tickEntry{}
			c.entries = c.entries[:len(c.entries)-1]
			return
		}
	}
}

// Tick advances simulation time by dt seconds scaled by Speed and runs every
// registered callback with the scaled delta. Non-positive or non-finite
// deltas are ignored. A callback removed during Tick does not run later in
// the same Tick.
func (c *Clock) Tick(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	scaled := dt * c.Speed
	if !(scaled > 0) {
		return
	}
	c.now += time.Duration(scaled * float64(time.Second))
	c.frame++

	// Iterate by ID so removals during the walk are observed.
	for i := 0; i < len(c.entries); {
		e := c.entries[i]
		e.fn(scaled)
		if i < len(c.entries) && c.entries[i].id == e.id {
			i++
		}
	}
}

// Now returns the simulation time accumulated by Tick.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Frame returns the number of ticks that advanced time.
func (c *Clock) Frame() uint64 {
	return c.frame
}

// Len returns the number of registered callbacks.
func (c *Clock) Len() int {
	return len(c.entries)
}

// Stop removes every callback. No callback runs after Stop returns.
func (c *Clock) Stop() {
	clear(c.entries)
	c.entries = c.entries[:0]
}
