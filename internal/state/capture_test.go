package state

import (
	"image/color"
	"math"
	"testing"
)

var testBrush = Brush{
	Color:     color.NRGBA{R: 255, A: 255},
	Thickness: 0.01,
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStepIgnoresEngageWhenUIConsumesInput(t *testing.T) {
	c := NewCapture(NewPainting())
	c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true, UIConsumingInput: true}, testBrush)
	if c.State() != Idle {
		t.Fatalf("State() = %v, want Idle", c.State())
	}
	if c.ActiveStroke() != nil {
		t.Fatal("active stroke started while UI consumed the input")
	}
}

func TestStepSeedsTwoPointsOnEngage(t *testing.T) {
	c := NewCapture(NewPainting())
	start := V3(0.1, 0.2, 0.3)
	c.Step(Input{Fingertip: start, PinchJustEngaged: true}, testBrush)

	if c.State() != Drawing {
		t.Fatalf("State() = %v, want Drawing", c.State())
	}
	active := c.ActiveStroke()
	if len(active) != 2 {
		t.Fatalf("len(active) = %d, want 2", len(active))
	}
	for i, pt := range active {
		if pt.Position != start {
			t.Errorf("point %d position = %v, want %v", i, pt.Position, start)
		}
		if pt.Color != testBrush.Color || !approx(pt.Thickness, testBrush.Thickness) {
			t.Errorf("point %d = %+v, want brush color/thickness", i, pt)
		}
	}
}

func TestStepOverwritesTrailingPointWithinThreshold(t *testing.T) {
	c := NewCapture(NewPainting())
	c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true}, testBrush)
	c.Step(Input{Fingertip: V3(0.005, 0, 0), TickDuration: 0.016}, testBrush)

	active := c.ActiveStroke()
	if len(active) != 2 {
		t.Fatalf("len(active) = %d, want 2 (trailing point overwritten)", len(active))
	}
	// Smoothing pulls the tip 30% toward the raw sample.
	if got, want := active[1].Position.X, 0.3*0.005; !approx(got, want) {
		t.Errorf("trailing X = %v, want %v", got, want)
	}
	if active[0].Position != V3(0, 0, 0) {
		t.Errorf("anchor moved to %v", active[0].Position)
	}
}

func TestStepAppendsPastThreshold(t *testing.T) {
	c := NewCapture(NewPainting())
	c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true}, testBrush)
	c.Step(Input{Fingertip: V3(0.1, 0, 0), TickDuration: 0.016}, testBrush)

	active := c.ActiveStroke()
	if len(active) != 3 {
		t.Fatalf("len(active) = %d, want 3 (point promoted)", len(active))
	}
	if got, want := active[2].Position.X, 0.3*0.1; !approx(got, want) {
		t.Errorf("new point X = %v, want %v", got, want)
	}
}

func TestStepNoPopInvariant(t *testing.T) {
	c := NewCapture(NewPainting())
	c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true}, testBrush)

	tip := V3(0, 0, 0)
	for i := 0; i < 200; i++ {
		// Wander with a mix of small and large steps.
		step := 0.002
		if i%7 == 0 {
			step = 0.05
		}
		tip = tip.Add(V3(step, step/2, -step/3))
		before := len(c.ActiveStroke())
		c.Step(Input{Fingertip: tip, TickDuration: 0.016}, testBrush)
		active := c.ActiveStroke()
		if len(active) == before {
			gap := active[len(active)-1].Position.Distance(active[len(active)-2].Position)
			if gap > promoteDistance {
				t.Fatalf("tick %d: trailing gap %v exceeds threshold without append", i, gap)
			}
		}
	}
}

func TestStepThicknessThinsWithSpeed(t *testing.T) {
	tests := []struct {
		name string
		tip  Vec3
		dt   float64
		want float64 // fraction of brush thickness
	}{
		{"stationary", V3(0, 0, 0), 0.016, 1.0},
		{"zero tick duration treated as zero speed", V3(1, 0, 0), 0, 1.0},
		{"fast motion floors at 10%", V3(1, 0, 0), 0.001, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapture(NewPainting())
			c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true}, testBrush)
			c.Step(Input{Fingertip: tt.tip, TickDuration: tt.dt}, testBrush)
			active := c.ActiveStroke()
			got := active[len(active)-1].Thickness
			if want := tt.want * testBrush.Thickness; !approx(got, want) {
				t.Errorf("thickness = %v, want %v", got, want)
			}
		})
	}
}

func TestStepModerateSpeedScalesThickness(t *testing.T) {
	c := NewCapture(NewPainting())
	c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true}, testBrush)

	// Raw sample 0.05m away, smoothing moves the tip 0.015m in 0.016s:
	// speed = 0.9375 m/s, scale = 1 - 0.9375*0.5 = 0.53125.
	c.Step(Input{Fingertip: V3(0.05, 0, 0), TickDuration: 0.016}, testBrush)
	active := c.ActiveStroke()
	got := active[len(active)-1].Thickness
	if want := 0.53125 * testBrush.Thickness; !approx(got, want) {
		t.Errorf("thickness = %v, want %v", got, want)
	}
}

func TestStepReleaseCommitsStroke(t *testing.T) {
	p := NewPainting()
	c := NewCapture(p)
	c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true}, testBrush)
	c.Step(Input{Fingertip: V3(0.1, 0, 0), TickDuration: 0.016}, testBrush)
	c.Step(Input{Fingertip: V3(0.1, 0, 0), PinchJustReleased: true, TickDuration: 0.016}, testBrush)

	if c.State() != Idle {
		t.Fatalf("State() = %v, want Idle after release", c.State())
	}
	if c.ActiveStroke() != nil {
		t.Fatal("active stroke not cleared after release")
	}
	if p.Len() != 1 {
		t.Fatalf("painting has %d strokes, want 1", p.Len())
	}
	if got := p.Strokes()[0]; len(got) != 3 {
		t.Errorf("committed stroke has %d points, want 3", len(got))
	}
}

func TestStepDegenerateStroke(t *testing.T) {
	p := NewPainting()
	c := NewCapture(p)
	start := V3(0.5, 0.5, 0.5)
	c.Step(Input{Fingertip: start, PinchJustEngaged: true}, testBrush)
	c.Step(Input{Fingertip: start, PinchJustReleased: true, TickDuration: 0.016}, testBrush)

	if p.Len() != 1 {
		t.Fatalf("painting has %d strokes, want 1", p.Len())
	}
	s := p.Strokes()[0]
	if len(s) != 2 || s[0].Position != start || s[1].Position != start {
		t.Fatalf("degenerate stroke = %+v, want two identical points at %v", s, start)
	}

	// The degenerate stroke must survive a serialization round trip.
	text := Serialize(p.Strokes())
	back, err := Deserialize(text)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(back) != 1 || len(back[0]) != 2 {
		t.Fatalf("round trip gave %d strokes, want 1 with 2 points", len(back))
	}
}

func TestStepEngageAndReleaseSameTick(t *testing.T) {
	p := NewPainting()
	c := NewCapture(p)
	start := V3(0.2, 0.3, 0.4)
	c.Step(Input{
		Fingertip:         start,
		PinchJustEngaged:  true,
		PinchJustReleased: true,
		TickDuration:      0.016,
	}, testBrush)

	if c.State() != Idle {
		t.Fatalf("State() = %v, want Idle after same-tick engage+release", c.State())
	}
	if c.ActiveStroke() != nil {
		t.Fatal("active stroke left behind after same-tick engage+release")
	}
	if p.Len() != 1 {
		t.Fatalf("painting has %d strokes, want 1", p.Len())
	}
	s := p.Strokes()[0]
	if len(s) != 2 || s[0].Position != start || s[1].Position != start {
		t.Fatalf("committed stroke = %+v, want two identical points at %v", s, start)
	}
}

func TestActiveStrokeIsACopy(t *testing.T) {
	c := NewCapture(NewPainting())
	c.Step(Input{Fingertip: V3(0, 0, 0), PinchJustEngaged: true}, testBrush)

	view := c.ActiveStroke()
	view[0].Position = V3(9, 9, 9)
	if c.ActiveStroke()[0].Position != V3(0, 0, 0) {
		t.Fatal("renderer view aliases the active stroke buffer")
	}
}
