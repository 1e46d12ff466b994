package glint

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandPolyline     CommandType = iota // stroked path through Points
	CommandFillCircle                      // filled disk at Center
	CommandStrokeCircle                    // ring at Center
	CommandLine                            // single stroked segment Points[0]-Points[1]
)

// String returns the command name.
func (t CommandType) String() string {
	switch t {
	case CommandPolyline:
		return "polyline"
	case CommandFillCircle:
		return "fill-circle"
	case CommandStrokeCircle:
		return "stroke-circle"
	case CommandLine:
		return "line"
	default:
		return "unknown"
	}
}

// DrawCommand is a single draw instruction emitted by an engine for one frame.
// Commands are plain data; a Canvas turns them into ebiten draw calls.
type DrawCommand struct {
	Type CommandType

	// Points holds the path for CommandPolyline and the two endpoints for
	// CommandLine. It is a slice header into engine-owned memory and is only
	// valid until the engine's next Update.
	Points []Vec2
	Closed bool

	Center Vec2
	Radius float64

	// Width is the stroke width for polylines, rings, and lines.
	Width float64
	// Blur is the glow radius in pixels. Zero draws a crisp stroke.
	Blur  float64
	Color Color
	Blend BlendMode
}

// DrawList accumulates draw commands for a frame. The zero value is ready to use.
type DrawList struct {
	cmds []DrawCommand
}

// Reset empties the list, keeping its capacity.
func (l *DrawList) Reset() {
	clear(l.cmds)
	l.cmds = l.cmds[:0]
}

// Len returns the number of commands.
func (l *DrawList) Len() int {
	return len(l.cmds)
}

// Commands returns the accumulated commands. The returned slice MUST NOT be
// retained past the next Reset.
func (l *DrawList) Commands() []DrawCommand {
	return l.cmds
}

// Polyline appends a stroked path.
func (l *DrawList) Polyline(points []Vec2, closed bool, width, blur float64, c Color) {
	l.cmds = append(l.cmds, DrawCommand{
		Type: CommandPolyline, Points: points, Closed: closed,
		Width: width, Blur: blur, Color: c,
	})
}

// FillCircle appends a filled disk.
func (l *DrawList) FillCircle(center Vec2, radius float64, c Color) {
	l.cmds = append(l.cmds, DrawCommand{
		Type: CommandFillCircle, Center: center, Radius: radius, Color: c,
	})
}

// StrokeCircle appends a ring, optionally blurred into a glow.
func (l *DrawList) StrokeCircle(center Vec2, radius, width, blur float64, c Color) {
	l.cmds = append(l.cmds, DrawCommand{
		Type: CommandStrokeCircle, Center: center, Radius: radius,
		Width: width, Blur: blur, Color: c,
	})
}

// Line appends a single segment. seg must hold exactly two points.
func (l *DrawList) Line(seg []Vec2, width float64, c Color) {
	l.cmds = append(l.cmds, DrawCommand{
		Type: CommandLine, Points: seg, Width: width, Color: c,
	})
}
