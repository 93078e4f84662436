package state

// CaptureState is the drawing state machine's current mode.
type CaptureState int

const (
	Idle CaptureState = iota
	Drawing
)

const (
	// smoothWeight is the exponential-smoothing weight toward the raw
	// fingertip sample each tick.
	smoothWeight = 0.3

	// promoteDistance is how far (meters) the fingertip must travel from
	// the last frozen point before the trailing point is promoted to a
	// permanent one.
	promoteDistance = 0.01

	// speedThinning scales thickness down as the fingertip speeds up
	// (seconds per meter of travel), floored at minThicknessScale.
	speedThinning     = 0.5
	minThicknessScale = 0.1
)

// Input is one tick of device state, already read by the caller. If the
// device read fails upstream the caller simply skips the tick.
type Input struct {
	Fingertip         Vec3
	PinchJustEngaged  bool
	PinchJustReleased bool
	UIConsumingInput  bool
	TickDuration      float64 // seconds
}

// Capture turns per-tick fingertip samples into strokes. While Drawing
// it owns the active stroke exclusively; on pinch release it commits the
// stroke to the Painting and returns to Idle.
type Capture struct {
	painting *Painting
	state    CaptureState
	active   Stroke
	prevTip  Vec3 // previous tick's smoothed fingertip
}

// NewCapture creates an idle capture machine committing into p.
func NewCapture(p *Painting) *Capture {
	return &Capture{painting: p}
}

// State reports whether a stroke is currently being drawn.
func (c *Capture) State() CaptureState {
	return c.state
}

// ActiveStroke returns a copy of the in-progress stroke for rendering.
// Nil while Idle.
func (c *Capture) ActiveStroke() Stroke {
	if c.active == nil {
		return nil
	}
	return c.active.Clone()
}

// Step advances the state machine one tick.
//
// Idle: a pinch-engage edge starts a stroke, unless the UI layer is
// consuming the same input. Drawing: a pinch-release edge finalizes the
// stroke; otherwise the active stroke grows toward the fingertip.
//
// Both edges can arrive on the same tick. That still commits the
// 2-point seed as a degenerate stroke.
func (c *Capture) Step(in Input, brush Brush) {
	switch c.state {
	case Idle:
		if in.PinchJustEngaged && !in.UIConsumingInput {
			c.begin(in.Fingertip, brush)
			if in.PinchJustReleased {
				c.finish()
			}
		}
	case Drawing:
		if in.PinchJustReleased {
			c.finish()
			return
		}
		c.extend(in, brush)
	}
}

// begin seeds the active stroke with two identical points: point 0 is
// the fixed anchor, point 1 is the trailing point that extend will
// either freeze or overwrite.
func (c *Capture) begin(tip Vec3, brush Brush) {
	seed := StrokePoint{Position: tip, Color: brush.Color, Thickness: brush.Thickness}
	c.active = Stroke{seed, seed}
	c.prevTip = tip
	c.state = Drawing
}

func (c *Capture) extend(in Input, brush Brush) {
	// Smoothed fingertip is the authoritative point for this tick.
	tip := c.prevTip.Lerp(in.Fingertip, smoothWeight)

	speed := 0.0
	if in.TickDuration > 0 {
		speed = tip.Distance(c.prevTip) / in.TickDuration
	}
	scale := 1 - speed*speedThinning
	if scale < minThicknessScale {
		scale = minThicknessScale
	}
	pt := StrokePoint{
		Position:  tip,
		Color:     brush.Color,
		Thickness: scale * brush.Thickness,
	}

	// The trailing point tracks the fingertip every tick so the stroke
	// never pops between sparse samples; it only becomes permanent once
	// the fingertip has moved promoteDistance past the last frozen point.
	anchor := c.active[len(c.active)-2]
	if anchor.Position.Distance(tip) > promoteDistance {
		c.active = append(c.active, pt)
	} else {
		c.active[len(c.active)-1] = pt
	}
	c.prevTip = tip
}

func (c *Capture) finish() {
	c.painting.Commit(c.active.Clone())
	c.active = nil
	c.state = Idle
}
