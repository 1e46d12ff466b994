package glint

// IntentKind identifies a pointer intent.
type IntentKind uint8

const (
	IntentMove    IntentKind = iota // pointer moved to Position
	IntentPress                     // button pressed at Position
	IntentRelease                   // button released
	IntentLeave                     // pointer left the tracked region
)

// String returns the intent name.
func (k IntentKind) String() string {
	switch k {
	case IntentMove:
		return "move"
	case IntentPress:
		return "press"
	case IntentRelease:
		return "release"
	case IntentLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// Intent is an immutable record of pointer input. Input handlers only enqueue
// intents; the owning engine consumes them at the start of its next tick.
type Intent struct {
	Kind     IntentKind
	Position Vec2
}

// intentQueue is a FIFO of pending intents. Draining swaps buffers so intents
// enqueued while draining wait for the next drain.
type intentQueue struct {
	pending []Intent
	spare   []Intent
}

func (q *intentQueue) push(in Intent) {
	q.pending = append(q.pending, in)
}

func (q *intentQueue) len() int {
	return len(q.pending)
}

// drain calls fn for every queued intent in arrival order and empties the
// queue.
func (q *intentQueue) drain(fn func(Intent)) {
	if len(q.pending) == 0 {
		return
	}
	batch := q.pending
	q.pending = q.spare[:0]
	for _, in := range batch {
		fn(in)
	}
	q.spare = batch[:0]
}

func (q *intentQueue) reset() {
	q.pending = q.pending[:0]
}
