package glint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// DefaultColor is the electric cyan both effects use when no color is given.
var DefaultColor = Color{R: 0x7d / 255.0, G: 0xf9 / 255.0, B: 1, A: 1}

// ParseColor parses a color string as accepted by CSS: "#rgb", "#rrggbb",
// "#rrggbbaa", "rgb(r, g, b)", "rgba(r, g, b, a)" or a named color such as
// "cyan". Channels in rgb() are 0-255; alpha in rgba() is 0-1.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return Color{}, fmt.Errorf("parse color: empty string")
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("parse color %q: unknown color", s)
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level color literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func parseFunc(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("parse color %q: malformed", s)
	}
	name := s[:open]
	parts := strings.Split(s[open+1:len(s)-1], ",")
	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return Color{}, fmt.Errorf("parse color %q: unknown function %q", s, name)
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("parse color %q: want %d components, got %d", s, want, len(parts))
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		if i < 3 {
			v /= 255
		}
		ch[i] = Clamp(v, 0, 1)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(c.A * a)
	return c
}

// Hex formats c as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

// CSS formats c as a CSS rgba() expression.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", to8(c.R), to8(c.G), to8(c.B),
		strconv.FormatFloat(clamp01(c.A), 'f', -1, 64))
}

// RGBA implements color.Color. The result is premultiplied, as ebiten expects.
func (c Color) RGBA() (r, g, b, a uint32) {
	a8 := clamp01(c.A)
	r = uint32(clamp01(c.R)*a8*0xffff + 0.5)
	g = uint32(clamp01(c.G)*a8*0xffff + 0.5)
	b = uint32(clamp01(c.B)*a8*0xffff + 0.5)
	a = uint32(a8*0xffff + 0.5)
	return
}

// ColorScale converts c into a premultiplied ebiten.ColorScale.
func (c Color) ColorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := clamp01(c.A)
	cs.SetR(float32(clamp01(c.R) * a))
	cs.SetG(float32(clamp01(c.G) * a))
	cs.SetB(float32(clamp01(c.B) * a))
	cs.SetA(float32(a))
	return cs
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
