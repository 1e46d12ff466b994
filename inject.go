package glint

// Injected samples stand in for the live pointer, one per frame, and run
// through the same PointerTracker as real input. Coordinates are screen
// coordinates, matching what a screenshot shows.

// InjectMove queues a pointer move to (x, y). The button keeps whatever
// state the previous injected sample left it in.
func (h *Host) InjectMove(x, y float64) {
	h.inject(PointerSample{X: x, Y: y, Pressed: h.injectDown})
}

// InjectPress queues a button press at (x, y).
func (h *Host) InjectPress(x, y float64) {
	h.injectDown = true
	h.inject(PointerSample{X: x, Y: y, Pressed: true})
}

// InjectRelease queues a button release at (x, y).
func (h *Host) InjectRelease(x, y float64) {
	h.injectDown = false
	h.inject(PointerSample{X: x, Y: y})
}

// InjectLeave queues a sample with the pointer away from the window. A held
// button is released first.
func (h *Host) InjectLeave() {
	h.injectDown = false
	h.inject(PointerSample{Away: true})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (h *Host) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// with the button held, and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (h *Host) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(toX, toY)
}

// Injecting reports whether injected samples are still waiting.
func (h *Host) Injecting() bool {
	return len(h.injectQueue) > 0
}

func (h *Host) inject(s PointerSample) {
	h.injectQueue = append(h.injectQueue, s)
}
