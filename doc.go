// Package glint draws two decorative pointer and outline effects for
// [Ebitengine]: an electric border that traces a rectangle with an animated,
// noise-displaced glowing stroke, and a splash cursor that follows the
// pointer with a smoothed glyph, a fading trail, and particle bursts on
// press.
//
// # Quick start
//
// [Host] is an [ebiten.Game] that owns a [Clock], draws through a shared
// [Canvas], and feeds pointer input to the cursor. [Run] opens a window for
// it:
//
//	host := glint.NewHost()
//	host.SetBorder(glint.NewBorder(glint.DefaultBorderConfig()), glint.Rect{
//		X: 100, Y: 100, Width: 400, Height: 240,
//	})
//	_ = host.EnableCursor(glint.DefaultCursorConfig())
//	glint.Run(host, glint.RunConfig{Title: "glint", Width: 640, Height: 480})
//
// For full control, embed the effects in your own game: attach them to a
// [Clock] you tick from Update, and draw their [DrawCommand] lists with a
// [Canvas]:
//
//	border := glint.NewBorder(cfg)
//	border.Attach(clock)
//	border.Resize(w, h)
//	// Update: clock.Tick(1.0 / float64(ebiten.TPS()))
//	// Draw:   canvas.Draw(screen, border.Commands())
//
// # Timing
//
// Both effects are frame-rate independent. Per-frame constants are defined
// at a 60 Hz reference rate and scaled by the elapsed time, so the same
// animation plays at any tick rate.
//
// # Input
//
// [Cursor.Move], [Cursor.Press], [Cursor.Release], and [Cursor.Leave] only
// queue intents; the cursor applies them on its next Update. A
// [PointerTracker] derives those intents from raw pointer samples, whether
// polled, injected with [Host.InjectClick] and friends, or replayed from a
// script loaded with [LoadScript].
//
// # Accessibility
//
// With reduced motion the border renders one static, undistorted outline
// and the cursor is not created at all ([ErrCursorDisabled]). The cursor is
// likewise skipped on devices without a fine, hover-capable pointer.
//
// # Configuration
//
// [LoadConfig] reads both effects' settings from GLINT_* environment
// variables via [envconfig]. Colors accept CSS-style strings ("#7df9ff",
// "rgba(125, 249, 255, 0.8)", "cyan").
//
// Cursor events can be bridged into a [Donburi] world with the glint/ecs
// sub-module.
//
// [Ebitengine]: https://ebitengine.org
// [envconfig]: https://github.com/kelseyhightower/envconfig
// [Donburi]: https://github.com/yohamta/donburi
package glint
