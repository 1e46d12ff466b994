package glint

import (
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// testRand returns a deterministic source for reproducible tests.
func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}
	assertVec(t, "Add", a.Add(b), Vec2{4, 2})
	assertVec(t, "Sub", a.Sub(b), Vec2{2, 6})
	assertVec(t, "Mul", a.Mul(2), Vec2{6, 8})
	assertNear(t, "Len", a.Len(), 5)
	assertVec(t, "Lerp", a.Lerp(b, 0.5), Vec2{2, 1})
}

func TestFromAngle(t *testing.T) {
	assertVec(t, "0 rad", FromAngle(0, 3), Vec2{3, 0})
	assertVec(t, "pi/2", FromAngle(math.Pi/2, 2), Vec2{0, 2})
	assertVec(t, "pi", FromAngle(math.Pi, 1), Vec2{-1, 0})
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestDamp(t *testing.T) {
	assertNear(t, "one frame", Damp(0.15, 1), 0.15)
	assertNear(t, "zero frames", Damp(0.15, 0), 0)
	// Two frames of 0.15 smoothing leave (0.85)^2 of the distance.
	assertNear(t, "two frames", Damp(0.15, 2), 1-0.85*0.85)
	// Half a frame applied twice equals one frame.
	half := Damp(0.15, 0.5)
	remaining := (1 - half) * (1 - half)
	assertNear(t, "half frames compose", 1-remaining, 0.15)
}

func TestRangeRandom(t *testing.T) {
	r := Range{10, 20}
	rng := testRand()
	for i := 0; i < 100; i++ {
		v := r.Random(rng)
		if v < 10 || v > 20 {
			t.Fatalf("Random() = %v, outside [10, 20]", v)
		}
	}
	if got := (Range{7, 7}).Random(nil); got != 7 {
		t.Errorf("degenerate Random() = %v, want 7", got)
	}
}

func TestFiniteOr(t *testing.T) {
	assertNear(t, "finite", finiteOr(2, 1), 2)
	assertNear(t, "nan", finiteOr(math.NaN(), 1), 1)
	assertNear(t, "inf", finiteOr(math.Inf(1), 1), 1)
}
