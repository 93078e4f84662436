package state

// Painting is the document: the ordered list of committed strokes
// (insertion order is z-order and undo order) plus the redo stack of
// strokes removed by Undo. The in-progress stroke lives in Capture,
// never here.
type Painting struct {
	strokes []Stroke
	redo    []Stroke
}

// NewPainting returns an empty document.
func NewPainting() *Painting {
	return &Painting{}
}

// Commit appends a finished stroke. Committing does not touch the redo
// stack, so strokes undone earlier stay redoable.
func (p *Painting) Commit(s Stroke) {
	p.strokes = append(p.strokes, s)
}

// Undo moves the most recent stroke onto the redo stack. Undo on an
// empty painting is a no-op.
func (p *Painting) Undo() {
	if len(p.strokes) == 0 {
		return
	}
	last := p.strokes[len(p.strokes)-1]
	p.strokes = p.strokes[:len(p.strokes)-1]
	p.redo = append(p.redo, last)
}

// Redo re-appends the most recently undone stroke. Redo with an empty
// redo stack is a no-op.
func (p *Painting) Redo() {
	if len(p.redo) == 0 {
		return
	}
	last := p.redo[len(p.redo)-1]
	p.redo = p.redo[:len(p.redo)-1]
	p.strokes = append(p.strokes, last)
}

// Clear discards all committed strokes and the redo stack.
func (p *Painting) Clear() {
	p.strokes = nil
	p.redo = nil
}

// Replace swaps in a freshly loaded stroke list, discarding the redo
// stack. Used after a successful Deserialize.
func (p *Painting) Replace(strokes []Stroke) {
	p.strokes = strokes
	p.redo = nil
}

// Strokes returns a read-only view of the committed strokes. The outer
// slice is copied so callers cannot reorder the document; the strokes
// themselves are never mutated after commit.
func (p *Painting) Strokes() []Stroke {
	out := make([]Stroke, len(p.strokes))
	copy(out, p.strokes)
	return out
}

// Len returns the number of committed strokes.
func (p *Painting) Len() int {
	return len(p.strokes)
}

// RedoLen returns the depth of the redo stack.
func (p *Painting) RedoLen() int {
	return len(p.redo)
}

// StrokeBounds returns the axis-aligned box enclosing every point of
// the stroke list, padded by each point's thickness. ok is false for an
// empty list. The PDF exporter uses it to fit the painting to a page.
func StrokeBounds(strokes []Stroke) (min, max Vec3, ok bool) {
	for _, s := range strokes {
		for _, pt := range s {
			r := pt.Thickness / 2
			lo := pt.Position.Sub(V3(r, r, r))
			hi := pt.Position.Add(V3(r, r, r))
			if !ok {
				min, max, ok = lo, hi, true
				continue
			}
			if lo.X < min.X {
				min.X = lo.X
			}
			if lo.Y < min.Y {
				min.Y = lo.Y
			}
			if lo.Z < min.Z {
				min.Z = lo.Z
			}
			if hi.X > max.X {
				max.X = hi.X
			}
			if hi.Y > max.Y {
				max.Y = hi.Y
			}
			if hi.Z > max.Z {
				max.Z = hi.Z
			}
		}
	}
	return min, max, ok
}
