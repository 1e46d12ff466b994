package glint

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultScreenshotDir = "screenshots"

// Host is an ebiten.Game that owns one clock, an optional electric border,
// an optional splash cursor, and the canvas both draw through. It polls the
// pointer, replays injected input and scripts, and captures screenshots.
type Host struct {
	// ClearColor fills the screen before drawing. Transparent skips the fill.
	ClearColor Color
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// Input reads the live pointer each frame. Defaults to PollPointer; nil
	// disables live input so only injected samples reach the cursor.
	Input func() PointerSample
	// BorderFill makes the border region follow the window size, inset by
	// BorderInset on every side.
	BorderFill  bool
	BorderInset float64
	// ExitWhenDone ends the game loop once an attached script finishes.
	ExitWhenDone bool

	clock  *Clock
	canvas *Canvas

	border       *Border
	borderRegion Rect

	cursor       *Cursor
	cursorCfg    CursorConfig
	cursorOpts   []CursorOption
	cursorWanted bool
	tracker      PointerTracker

	env   Env
	sink  EventSink
	debug bool

	injectQueue     []PointerSample
	injectDown      bool
	script          *ScriptRunner
	screenshotQueue []string
	fps             fpsOverlay

	width, height int
	skipped       int
	stats         debugStats
	updateFunc    func() error
}

// NewHost creates a host with an environment detected from the platform and
// live pointer polling.
func NewHost() *Host {
	return &Host{
		ScreenshotDir: defaultScreenshotDir,
		Input:         PollPointer,
		clock:         NewClock(),
		canvas:        NewCanvas(),
		env:           DetectEnv(),
	}
}

// DetectEnv reports the platform's pointer capability. Mobile targets are
// treated as touch-only. Reduced motion has no portable source and defaults
// to off; hosts read it from configuration.
func DetectEnv() Env {
	switch runtime.GOOS {
	case "android", "ios":
		return Env{HasFinePointer: false}
	default:
		return Env{HasFinePointer: true}
	}
}

// Clock returns the host's clock. Effects attached to it tick once per Update.
func (h *Host) Clock() *Clock {
	return h.clock
}

// Canvas returns the shared canvas, e.g. to disable glow or add filters.
func (h *Host) Canvas() *Canvas {
	return h.canvas
}

// Border returns the attached border, or nil.
func (h *Host) Border() *Border {
	return h.border
}

// Cursor returns the live cursor, or nil when none is enabled or the
// environment gates it off.
func (h *Host) Cursor() *Cursor {
	return h.cursor
}

// Env returns the current environment.
func (h *Host) Env() Env {
	return h.env
}

// SetBorder attaches b to the host clock and outlines region. A previously
// attached border is closed.
func (h *Host) SetBorder(b *Border, region Rect) {
	if h.border != nil && h.border != b {
		h.border.Close()
	}
	h.border = b
	if b == nil {
		return
	}
	b.SetReducedMotion(h.env.ReducedMotion)
	b.Attach(h.clock)
	h.SetBorderRegion(region)
}

// SetBorderRegion moves and resizes the outlined rectangle.
func (h *Host) SetBorderRegion(region Rect) {
	h.borderRegion = region
	if h.border != nil {
		h.border.Resize(region.Width, region.Height)
	}
}

// BorderRegion returns the outlined rectangle in screen coordinates.
func (h *Host) BorderRegion() Rect {
	return h.borderRegion
}

// EnableCursor builds a splash cursor with cfg. It returns ErrCursorDisabled
// when the environment gates the effect off; the host remembers the request
// and builds the cursor if a later SetEnv allows it.
func (h *Host) EnableCursor(cfg CursorConfig, opts ...CursorOption) error {
	h.cursorCfg = cfg
	h.cursorOpts = opts
	h.cursorWanted = true
	if h.cursor != nil {
		h.cursor.Close()
		h.cursor = nil
	}
	return h.buildCursor()
}

// DisableCursor tears down the cursor and forgets the request.
func (h *Host) DisableCursor() {
	h.cursorWanted = false
	h.dropCursor()
}

func (h *Host) buildCursor() error {
	opts := h.cursorOpts
	if h.sink != nil {
		opts = append(opts[:len(opts):len(opts)], WithEventSink(h.sink))
	}
	c, err := NewCursor(h.cursorCfg, h.env, opts...)
	if err != nil {
		return err
	}
	c.Attach(h.clock)
	h.cursor = c
	h.tracker.Reset()
	return nil
}

func (h *Host) dropCursor() {
	if h.cursor == nil {
		return
	}
	h.cursor.Close()
	h.cursor = nil
	h.tracker.Reset()
}

// SetCursorRegion limits pointer tracking to region. An empty region tracks
// the whole window.
func (h *Host) SetCursorRegion(region Rect) {
	h.tracker.Region = region
}

// SetEnv applies a new environment. The border switches between animated
// and static rendering; the cursor is torn down or rebuilt to match.
func (h *Host) SetEnv(env Env) {
	h.env = env
	if h.border != nil {
		h.border.SetReducedMotion(env.ReducedMotion)
	}
	if !h.cursorWanted {
		return
	}
	switch {
	case !env.Allowed():
		h.dropCursor()
	case h.cursor == nil:
		if err := h.buildCursor(); err != nil {
			logger().Warn("cursor rebuild failed", "err", err)
		}
	}
}

// SetReducedMotion toggles the reduced-motion preference.
func (h *Host) SetReducedMotion(reduced bool) {
	env := h.env
	env.ReducedMotion = reduced
	h.SetEnv(env)
}

// SetEventSink forwards cursor lifecycle events to sink.
func (h *Host) SetEventSink(sink EventSink) {
	h.sink = sink
	if h.cursor != nil {
		h.cursor.SetEventSink(sink)
	}
}

// SetDebugMode enables per-frame timing and command-count logging at debug
// level through the logger installed with SetLogger.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// SetUpdateFunc sets a callback run at the start of every Update, before
// input and effects advance. A non-nil error stops the game loop.
func (h *Host) SetUpdateFunc(fn func() error) {
	h.updateFunc = fn
}

// SkippedFrames returns how many draws were skipped because the screen was
// not ready.
func (h *Host) SkippedFrames() int {
	return h.skipped
}

// Update implements ebiten.Game. Every frame advances by 1/TPS seconds.
func (h *Host) Update() error {
	if h.updateFunc != nil {
		if err := h.updateFunc(); err != nil {
			return err
		}
	}
	h.step(1.0 / float64(ebiten.TPS()))
	if h.ExitWhenDone && h.script != nil && h.script.Done() {
		logger().Info("script finished", "frames", h.clock.Frame())
		return ebiten.Termination
	}
	return nil
}

// step runs one frame of input and simulation.
func (h *Host) step(dt float64) {
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}

	if h.script != nil {
		h.script.step(h)
	}
	if s, ok := h.nextSample(); ok && h.cursor != nil {
		h.tracker.Feed(s, h.cursor)
	}
	h.clock.Tick(dt)
	if h.ShowFPS {
		h.fps.update(dt)
	}

	if h.debug {
		h.stats.updateTime = time.Since(t0)
	}
}

// nextSample returns the pointer reading for this frame. Injected samples
// take priority over live input, one per frame.
func (h *Host) nextSample() (PointerSample, bool) {
	if len(h.injectQueue) > 0 {
		s := h.injectQueue[0]
		copy(h.injectQueue, h.injectQueue[1:])
		h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]
		return s, true
	}
	if h.Input == nil {
		return PointerSample{}, false
	}
	return h.Input(), true
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if h.debug {
		t0 = time.Now()
	}
	if h.ClearColor.A > 0 && screen != nil {
		screen.Fill(h.ClearColor)
	}

	var borderCmds, cursorCmds []DrawCommand
	if h.border != nil {
		borderCmds = h.border.Commands()
		h.canvas.Offset = Vec2{h.borderRegion.X, h.borderRegion.Y}
		h.drawLayer(screen, borderCmds)
	}
	if h.cursor != nil {
		cursorCmds = h.cursor.Commands()
		h.canvas.Offset = Vec2{}
		h.drawLayer(screen, cursorCmds)
	}
	if h.ShowFPS && screen != nil {
		h.fps.draw(screen)
	}
	if screen != nil {
		h.flushScreenshots(screen)
	}

	if h.debug {
		h.stats.drawTime = time.Since(t0)
		h.stats.borderCmds = len(borderCmds)
		h.stats.cursorCmds = len(cursorCmds)
		if h.cursor != nil {
			h.stats.particles = len(h.cursor.Particles())
			h.stats.trailPoints = len(h.cursor.Trail())
		}
		h.stats.skippedDraws = h.skipped
		h.debugLog(h.stats)
	}
}

func (h *Host) drawLayer(screen *ebiten.Image, cmds []DrawCommand) {
	err := h.canvas.Draw(screen, cmds)
	switch {
	case err == nil:
	case errors.Is(err, ErrSurfaceNotReady):
		h.skipped++
		logger().Debug("frame skipped", "reason", err)
	default:
		logger().Error("draw failed", "err", err)
	}
}

// Layout implements ebiten.Game. The logical screen matches the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		if h.BorderFill {
			in := h.BorderInset
			h.SetBorderRegion(Rect{
				X:      in,
				Y:      in,
				Width:  float64(outsideWidth) - 2*in,
				Height: float64(outsideHeight) - 2*in,
			})
		}
	}
	return outsideWidth, outsideHeight
}

// Close tears down both effects, stops the clock, and frees GPU images.
func (h *Host) Close() {
	if h.border != nil {
		h.border.Close()
	}
	h.DisableCursor()
	h.clock.Stop()
	h.canvas.Dispose()
	h.fps.dispose()
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// TPS overrides ebiten's tick rate. Zero keeps the default of 60.
	TPS int
}

// Run opens a window and drives h until the window closes or an update
// returns an error. The system cursor is hidden while a splash cursor runs.
func Run(h *Host, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if h.cursor != nil {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	defer h.Close()

	logger().Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height,
		"border", h.border != nil, "cursor", h.cursor != nil)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
