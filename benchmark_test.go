package glint

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// setupBenchHost creates a host with a border around most of a 640x480
// screen and a cursor that is mid-burst.
func setupBenchHost(b *testing.B) *Host {
	h := NewHost()
	h.Input = nil
	h.SetEnv(Env{HasFinePointer: true})
	h.SetBorder(NewBorder(DefaultBorderConfig(), WithBorderRand(testRand())), Rect{20, 20, 600, 440})
	if err := h.EnableCursor(DefaultCursorConfig(), WithCursorRand(testRand())); err != nil {
		b.Fatal(err)
	}
	h.InjectDrag(100, 100, 400, 300, 30)
	for range 15 {
		h.step(frame)
	}
	return h
}

// --- Simulation Benchmarks ---

func BenchmarkHost_Step(b *testing.B) {
	h := setupBenchHost(b)
	defer h.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.step(frame)
	}
}

// --- Rendering Benchmarks ---

func BenchmarkHost_Draw_Glow(b *testing.B) {
	h := setupBenchHost(b)
	defer h.Close()
	screen := ebiten.NewImage(640, 480)
	h.Draw(screen) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.Draw(screen)
	}
}

func BenchmarkHost_Draw_NoGlow(b *testing.B) {
	h := setupBenchHost(b)
	defer h.Close()
	h.Canvas().DisableGlow = true
	screen := ebiten.NewImage(640, 480)
	h.Draw(screen)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.Draw(screen)
	}
}

func BenchmarkFilter_BlurLayer(b *testing.B) {
	h := setupBenchHost(b)
	defer h.Close()
	h.Canvas().Filters = []Filter{NewBlurFilter(4)}
	screen := ebiten.NewImage(640, 480)
	h.Draw(screen)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h.Draw(screen)
	}
}

func BenchmarkStrokeVertices_Border(b *testing.B) {
	border := NewBorder(DefaultBorderConfig(), WithBorderRand(testRand()))
	border.Resize(600, 440)
	border.Update(frame)
	cmd := border.Commands()[0]

	var path vector.Path
	var verts []ebiten.Vertex
	var inds []uint16

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		verts, inds = strokeVertices(&path, verts[:0], inds[:0], &cmd, Vec2{20, 20})
	}
}

func BenchmarkRenderTexturePool_AcquireRelease(b *testing.B) {
	var pool renderTexturePool
	defer pool.Dispose()
	pool.Release(pool.Acquire(200, 120))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pool.Release(pool.Acquire(200, 120))
	}
}
