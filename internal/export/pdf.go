package export

import (
	"AirSketch/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 15.0 // mm
	minLineWidth = 0.2  // mm, below this gofpdf lines become invisible
)

// PDF writes an A4 PDF of the stroke list to path. Strokes are
// projected orthographically onto the XY plane and scaled uniformly to
// fit inside the page margins. World Y points up, page Y points down,
// so the projection flips the vertical axis.
func PDF(path string, strokes []state.Stroke) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	min, max, ok := state.StrokeBounds(strokes)
	if !ok {
		// An empty painting still exports as a blank page.
		return pdf.OutputFileAndClose(path)
	}

	pageW, pageH := pdf.GetPageSize()
	availW := pageW - 2*pageMargin
	availH := pageH - 2*pageMargin

	span := max.Sub(min)
	scale := fitScale(span.X, span.Y, availW, availH)

	project := func(p state.Vec3) (float64, float64) {
		return pageMargin + (p.X-min.X)*scale, pageMargin + (max.Y-p.Y)*scale
	}

	for _, s := range strokes {
		if len(s) < 2 {
			continue
		}
		c := s[0].Color
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		for i := 1; i < len(s); i++ {
			width := s[i].Thickness * scale
			if width < minLineWidth {
				width = minLineWidth
			}
			pdf.SetLineWidth(width)
			x1, y1 := project(s[i-1].Position)
			x2, y2 := project(s[i].Position)
			pdf.Line(x1, y1, x2, y2)
		}
	}
	return pdf.OutputFileAndClose(path)
}

// fitScale picks the largest uniform scale that keeps a spanX x spanY
// box inside availW x availH. Degenerate spans (a single point or a
// perfectly vertical/horizontal painting) fall back to the other axis,
// or to 1:1 when both collapse.
func fitScale(spanX, spanY, availW, availH float64) float64 {
	scale := 0.0
	if spanX > 0 {
		scale = availW / spanX
	}
	if spanY > 0 {
		if s := availH / spanY; scale == 0 || s < scale {
			scale = s
		}
	}
	if scale == 0 {
		scale = 1
	}
	return scale
}
