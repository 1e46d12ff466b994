package glint

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas draws command lists onto ebiten images. Blurred commands are drawn
// into a pooled offscreen layer, run through a BlurFilter, and composited
// under a crisp copy of the same stroke.
//
// A Canvas is not safe for concurrent use; it belongs to the draw goroutine.
type Canvas struct {
	// Offset translates every command, e.g. to the tracked region's origin.
	Offset Vec2
	// DisableGlow draws blurred commands crisp only. Useful on slow GPUs.
	DisableGlow bool
	// Filters, when set, run over the whole command list rendered into a
	// screen-sized layer before it is composited onto the destination.
	Filters []Filter

	pool  renderTexturePool
	blurs map[int]*BlurFilter
	white *ebiten.Image

	path   vector.Path
	verts  []ebiten.Vertex
	inds   []uint16
	triOp  ebiten.DrawTrianglesOptions
	drawOp ebiten.DrawImageOptions
}

// NewCanvas returns a canvas with glow enabled.
func NewCanvas() *Canvas {
	return &Canvas{blurs: make(map[int]*BlurFilter)}
}

// whiteSubImage returns the solid source image for stroked triangles. The
// 1-pixel border keeps linear sampling from bleeding transparent edges in.
func (c *Canvas) whiteSubImage() *ebiten.Image {
	if c.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite)
		c.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return c.white
}

// Draw renders cmds onto dst. It returns ErrSurfaceNotReady, drawing nothing,
// when dst is nil or has zero area; the caller skips the frame.
func (c *Canvas) Draw(dst *ebiten.Image, cmds []DrawCommand) error {
	if dst == nil || dst.Bounds().Empty() {
		return ErrSurfaceNotReady
	}
	if len(cmds) == 0 {
		return nil
	}
	if len(c.Filters) == 0 {
		c.drawAll(dst, cmds, c.Offset)
		return nil
	}

	b := dst.Bounds()
	pad := filterChainPadding(c.Filters)
	layer := c.pool.Acquire(b.Dx()+2*pad, b.Dy()+2*pad)
	c.drawAll(layer, cmds, c.Offset.Add(Vec2{float64(pad - b.Min.X), float64(pad - b.Min.Y)}))
	result, scratch := applyFilters(c.Filters, layer, &c.pool)

	op := &c.drawOp
	op.GeoM.Reset()
	op.GeoM.Translate(float64(b.Min.X-pad), float64(b.Min.Y-pad))
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(result, op)

	c.pool.Release(result)
	c.pool.Release(scratch)
	return nil
}

// Dispose frees offscreen images. The canvas may be reused afterwards.
func (c *Canvas) Dispose() {
	c.pool.Dispose()
	for r, f := range c.blurs {
		f.Dispose()
		delete(c.blurs, r)
	}
}

func (c *Canvas) drawAll(dst *ebiten.Image, cmds []DrawCommand, off Vec2) {
	for i := range cmds {
		cmd := &cmds[i]
		if !drawable(cmd) {
			continue
		}
		if cmd.Blur > 0 && !c.DisableGlow {
			c.drawGlow(dst, cmd, off)
		}
		c.drawCommand(dst, cmd, off)
	}
}

// drawable reports whether a command would put any pixels on screen.
func drawable(cmd *DrawCommand) bool {
	if !(cmd.Color.A > 0) {
		return false
	}
	switch cmd.Type {
	case CommandPolyline:
		return len(cmd.Points) >= 2 && cmd.Width > 0
	case CommandLine:
		return len(cmd.Points) == 2 && cmd.Width > 0
	case CommandFillCircle:
		return cmd.Radius > 0
	case CommandStrokeCircle:
		return cmd.Radius > 0 && cmd.Width > 0
	default:
		return false
	}
}

// drawGlow renders cmd into a pooled layer cropped to its bounds, blurs it,
// and composites the halo onto dst.
func (c *Canvas) drawGlow(dst *ebiten.Image, cmd *DrawCommand, off Vec2) {
	blur := c.blurFilter(int(math.Round(cmd.Blur)))
	pad := float64(blur.Padding())
	r := commandBounds(cmd)
	r = Rect{
		X:      math.Floor(r.X + off.X - pad),
		Y:      math.Floor(r.Y + off.Y - pad),
		Width:  math.Ceil(r.Width + 2*pad + 1),
		Height: math.Ceil(r.Height + 2*pad + 1),
	}
	if !r.Overlaps(imageRect(dst)) {
		return
	}

	w, h := int(r.Width), int(r.Height)
	src := c.pool.Acquire(w, h)
	halo := c.pool.Acquire(w, h)
	c.drawCommand(src, cmd, off.Sub(Vec2{r.X, r.Y}))
	blur.Apply(src, halo)

	op := &c.drawOp
	op.GeoM.Reset()
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Reset()
	op.Blend = cmd.Blend.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(halo, op)

	c.pool.Release(src)
	c.pool.Release(halo)
}

func (c *Canvas) blurFilter(radius int) *BlurFilter {
	if c.blurs == nil {
		c.blurs = make(map[int]*BlurFilter)
	}
	f, ok := c.blurs[radius]
	if !ok {
		f = NewBlurFilter(radius)
		c.blurs[radius] = f
	}
	return f
}

func (c *Canvas) drawCommand(dst *ebiten.Image, cmd *DrawCommand, off Vec2) {
	switch cmd.Type {
	case CommandPolyline:
		c.strokePolyline(dst, cmd, off)
	case CommandFillCircle:
		vector.FillCircle(dst,
			float32(cmd.Center.X+off.X), float32(cmd.Center.Y+off.Y), float32(cmd.Radius),
			cmd.Color, true)
	case CommandStrokeCircle:
		vector.StrokeCircle(dst,
			float32(cmd.Center.X+off.X), float32(cmd.Center.Y+off.Y), float32(cmd.Radius),
			float32(cmd.Width), cmd.Color, true)
	case CommandLine:
		a, b := cmd.Points[0].Add(off), cmd.Points[1].Add(off)
		vector.StrokeLine(dst,
			float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			float32(cmd.Width), cmd.Color, true)
	}
}

func (c *Canvas) strokePolyline(dst *ebiten.Image, cmd *DrawCommand, off Vec2) {
	c.verts, c.inds = strokeVertices(&c.path, c.verts[:0], c.inds[:0], cmd, off)
	if len(c.inds) == 0 {
		return
	}
	c.triOp.Blend = cmd.Blend.EbitenBlend()
	c.triOp.AntiAlias = true
	dst.DrawTriangles(c.verts, c.inds, c.whiteSubImage(), &c.triOp)
}

// strokeVertices tessellates a polyline command with round joins and caps and
// colors every vertex with the command color. The path is cleared first.
func strokeVertices(path *vector.Path, verts []ebiten.Vertex, inds []uint16, cmd *DrawCommand, off Vec2) ([]ebiten.Vertex, []uint16) {
	*path = vector.Path{}
	p0 := cmd.Points[0].Add(off)
	path.MoveTo(float32(p0.X), float32(p0.Y))
	for _, p := range cmd.Points[1:] {
		p = p.Add(off)
		path.LineTo(float32(p.X), float32(p.Y))
	}
	if cmd.Closed {
		path.Close()
	}

	so := vector.StrokeOptions{
		Width:    float32(cmd.Width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	start := len(verts)
	verts, inds = path.AppendVerticesAndIndicesForStroke(verts, inds, &so)

	r, g, b, a := float32(clamp01(cmd.Color.R)), float32(clamp01(cmd.Color.G)),
		float32(clamp01(cmd.Color.B)), float32(clamp01(cmd.Color.A))
	for i := start; i < len(verts); i++ {
		v := &verts[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	return verts, inds
}

// commandBounds returns the axis-aligned box covered by cmd's ink, stroke
// width included, before any offset.
func commandBounds(cmd *DrawCommand) Rect {
	switch cmd.Type {
	case CommandFillCircle:
		return Rect{cmd.Center.X - cmd.Radius, cmd.Center.Y - cmd.Radius, 2 * cmd.Radius, 2 * cmd.Radius}
	case CommandStrokeCircle:
		r := cmd.Radius + cmd.Width/2
		return Rect{cmd.Center.X - r, cmd.Center.Y - r, 2 * r, 2 * r}
	}
	if len(cmd.Points) == 0 {
		return Rect{}
	}
	minX, minY := cmd.Points[0].X, cmd.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range cmd.Points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	hw := cmd.Width / 2
	return Rect{minX - hw, minY - hw, maxX - minX + cmd.Width, maxY - minY + cmd.Width}
}

func imageRect(img *ebiten.Image) Rect {
	b := img.Bounds()
	return Rect{float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy())}
}
