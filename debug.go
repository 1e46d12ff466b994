package glint

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// discardHandler drops every record. It keeps the library silent until the
// host installs a logger with SetLogger.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(discardHandler{}))
}

// SetLogger installs the logger used for debug output (state transitions,
// skipped frames, per-frame stats). Passing nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	pkgLogger.Store(l.With("lib", "glint"))
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}

// debugStats holds per-frame timing and command counts.
// Only populated when Host debug mode is on.
type debugStats struct {
	updateTime   time.Duration
	drawTime     time.Duration
	borderCmds   int
	cursorCmds   int
	particles    int
	trailPoints  int
	skippedDraws int
}

// debugLog writes the frame's stats at debug level.
func (h *Host) debugLog(stats debugStats) {
	if !h.debug {
		return
	}
	logger().Debug("frame",
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"total", stats.updateTime+stats.drawTime,
		"borderCmds", stats.borderCmds,
		"cursorCmds", stats.cursorCmds,
		"particles", stats.particles,
		"trail", stats.trailPoints,
		"skipped", stats.skippedDraws,
	)
}
