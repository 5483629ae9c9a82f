package pictionary

// Point is a pen position in canvas coordinate space.
type Point struct {
	X float64
	Y float64
}

// Stroke is one continuous pen-down-to-pen-up path.
type Stroke []Point

// Canvas is the append-only stroke model for the current round. Local
// pointer input and remote draw events feed the same primitive, so strokes
// are indistinguishable by origin once recorded.
//
// Like Round, Canvas is owned by a single event loop; Session serializes
// access.
type Canvas struct {
	strokes []Stroke
	open    bool
	pos     *Point // last pen position; survives pen-up, cleared on reset
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// BeginStrokeAt starts a new path at p. Any open stroke ends first; the new
// path is not connected to the previous one.
func (c *Canvas) BeginStrokeAt(p Point) {
	c.strokes = append(c.strokes, Stroke{p})
	c.open = true
	c.pos = &p
}

// ExtendStrokeTo appends p to the open stroke. Without an open stroke the
// sample is ignored, matching pointer-move with the pen up.
func (c *Canvas) ExtendStrokeTo(p Point) {
	if !c.open {
		return
	}
	last := len(c.strokes) - 1
	c.strokes[last] = append(c.strokes[last], p)
	c.pos = &p
}

// EndStroke closes the open stroke on pointer-up or pointer-leave. The pen
// position is retained: a remote sample arriving with no open stroke still
// continues from here.
func (c *Canvas) EndStroke() {
	c.open = false
}

// ApplyRemote records one replicated pen sample. With an open stroke it
// extends it; otherwise it starts a new stroke continuing from the last
// known pen position. The very first sample on a blank canvas has no
// previous position and just starts the path.
func (c *Canvas) ApplyRemote(ev DrawEvent) {
	p := Point{X: ev.X, Y: ev.Y}
	if c.open {
		c.ExtendStrokeTo(p)
		return
	}
	s := Stroke{}
	if c.pos != nil {
		s = append(s, *c.pos)
	}
	s = append(s, p)
	c.strokes = append(c.strokes, s)
	c.open = true
	c.pos = &p
}

// Reset clears every stroke and the implicit pen position.
func (c *Canvas) Reset() {
	c.strokes = nil
	c.open = false
	c.pos = nil
}

// Strokes returns a copy of all recorded paths in draw order, the
// rendering projection for a UI layer.
func (c *Canvas) Strokes() []Stroke {
	out := make([]Stroke, len(c.strokes))
	for i, s := range c.strokes {
		out[i] = append(Stroke(nil), s...)
	}
	return out
}

// PointCount returns the total number of recorded points.
func (c *Canvas) PointCount() int {
	n := 0
	for _, s := range c.strokes {
		n += len(s)
	}
	return n
}
