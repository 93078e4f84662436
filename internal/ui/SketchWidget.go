package ui

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"sync"
	"time"

	"AirSketch/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// SketchWidget renders the painting and drives the capture state
// machine. On the desktop the mouse stands in for the tracked hand:
// button-down is the pinch-engage edge, button-up the release edge, and
// pointer motion supplies fingertip samples on the Z=0 plane.
type SketchWidget struct {
	widget.BaseWidget
	mu             sync.RWMutex
	painting       *state.Painting
	capture        *state.Capture
	brush          state.Brush
	pixelsPerMeter float64
	panX, panY     float32
	lastTick       time.Time
	statusBar      *widget.Label

	// onCommit fires after a stroke is finalized locally, for network
	// broadcast; onClear when the local user clears the document. Both
	// are guarded by mu because the session layer installs them from
	// its own goroutine once the connection is up.
	onCommit func(s state.Stroke)
	onClear  func()
}

var _ fyne.Widget = (*SketchWidget)(nil)
var _ fyne.Draggable = (*SketchWidget)(nil)
var _ desktop.Mouseable = (*SketchWidget)(nil)

// NewSketchWidget creates an empty document with the given view scale
// and starting brush.
func NewSketchWidget(pixelsPerMeter float64, brush state.Brush) *SketchWidget {
	p := state.NewPainting()
	w := &SketchWidget{
		painting:       p,
		capture:        state.NewCapture(p),
		brush:          brush,
		pixelsPerMeter: pixelsPerMeter,
		panX:           480,
		panY:           360,
		statusBar:      widget.NewLabel("Ready"),
	}
	w.ExtendBaseWidget(w)
	return w
}

// toWorld maps a screen position to world meters on the Z=0 plane.
// Screen Y grows downward, world Y grows upward.
func (w *SketchWidget) toWorld(pos fyne.Position) state.Vec3 {
	return state.V3(
		float64(pos.X-w.panX)/w.pixelsPerMeter,
		float64(w.panY-pos.Y)/w.pixelsPerMeter,
		0,
	)
}

func (w *SketchWidget) toScreen(p state.Vec3) fyne.Position {
	return fyne.NewPos(
		w.panX+float32(p.X*w.pixelsPerMeter),
		w.panY-float32(p.Y*w.pixelsPerMeter),
	)
}

// tick advances the capture machine one step with a real tick duration.
func (w *SketchWidget) tick(pos fyne.Position, engaged, released bool) {
	w.mu.Lock()
	now := time.Now()
	dt := 0.0
	if !w.lastTick.IsZero() {
		dt = now.Sub(w.lastTick).Seconds()
	}
	w.lastTick = now

	in := state.Input{
		Fingertip:         w.toWorld(pos),
		PinchJustEngaged:  engaged,
		PinchJustReleased: released,
		TickDuration:      dt,
	}
	before := w.painting.Len()
	w.capture.Step(in, w.brush)

	var committed state.Stroke
	if w.painting.Len() > before {
		committed = w.painting.Strokes()[w.painting.Len()-1]
	}
	onCommit := w.onCommit
	w.mu.Unlock()

	if committed != nil && onCommit != nil {
		onCommit(committed)
	}
	w.Refresh()
}

func (w *SketchWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.tick(e.Position, true, false)
	}
}

func (w *SketchWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.tick(e.Position, false, true)
	}
}

func (w *SketchWidget) Dragged(e *fyne.DragEvent) {
	w.mu.RLock()
	drawing := w.capture.State() == state.Drawing
	w.mu.RUnlock()

	if drawing {
		w.tick(e.Position, false, false)
		return
	}
	w.mu.Lock()
	w.panX += e.Dragged.DX
	w.panY += e.Dragged.DY
	w.mu.Unlock()
	w.Refresh()
}

func (w *SketchWidget) DragEnd() {}

func (w *SketchWidget) MouseIn(*desktop.MouseEvent) {}

func (w *SketchWidget) MouseOut() {}

func (w *SketchWidget) MouseMoved(*desktop.MouseEvent) {}

// SetColor changes the brush color for subsequent strokes.
func (w *SketchWidget) SetColor(c color.NRGBA) {
	w.mu.Lock()
	w.brush.Color = c
	w.mu.Unlock()
}

// SetThickness changes the brush thickness in meters.
func (w *SketchWidget) SetThickness(m float64) {
	w.mu.Lock()
	w.brush.Thickness = m
	w.mu.Unlock()
}

// Undo removes the most recent stroke.
func (w *SketchWidget) Undo() {
	w.mu.Lock()
	w.painting.Undo()
	w.mu.Unlock()
	w.Refresh()
}

// Redo restores the most recently undone stroke.
func (w *SketchWidget) Redo() {
	w.mu.Lock()
	w.painting.Redo()
	w.mu.Unlock()
	w.Refresh()
}

// Clear starts a new document and notifies the session, if any.
func (w *SketchWidget) Clear() {
	w.mu.Lock()
	w.painting.Clear()
	onClear := w.onClear
	w.mu.Unlock()
	w.Refresh()
	if onClear != nil {
		onClear()
	}
}

// SetOnCommit installs the callback invoked with each locally finalized
// stroke. Safe to call from any goroutine, even mid-stroke.
func (w *SketchWidget) SetOnCommit(fn func(s state.Stroke)) {
	w.mu.Lock()
	w.onCommit = fn
	w.mu.Unlock()
}

// SetOnClear installs the callback invoked when the local user clears
// the document. Safe to call from any goroutine.
func (w *SketchWidget) SetOnClear(fn func()) {
	w.mu.Lock()
	w.onClear = fn
	w.mu.Unlock()
}

// AddRemoteStroke commits a stroke relayed from another viewer.
func (w *SketchWidget) AddRemoteStroke(s state.Stroke) {
	w.mu.Lock()
	w.painting.Commit(s)
	w.mu.Unlock()
	w.Refresh()
}

// ClearRemote applies a clear relayed from another viewer.
func (w *SketchWidget) ClearRemote() {
	w.mu.Lock()
	w.painting.Clear()
	w.mu.Unlock()
	w.Refresh()
}

// Strokes returns the committed strokes for export.
func (w *SketchWidget) Strokes() []state.Stroke {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.painting.Strokes()
}

// StatusBar exposes the status label for window assembly.
func (w *SketchWidget) StatusBar() *widget.Label {
	return w.statusBar
}

// SetStatus updates the status label from any goroutine.
func (w *SketchWidget) SetStatus(text string) {
	fyne.Do(func() {
		w.statusBar.SetText(text)
	})
}

// SaveToFile serializes the committed strokes through the writer the
// file dialog handed us. The codec produces text; the dialog owns the I/O.
func (w *SketchWidget) SaveToFile(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[UI] error closing writer: %v", err)
		}
	}()

	strokes := w.Strokes()
	text := state.Serialize(strokes)
	if _, err := io.WriteString(writer, text); err != nil {
		log.Printf("[UI] save failed: %v", err)
		w.SetStatus("Error writing file")
		return
	}
	w.SetStatus(fmt.Sprintf("Saved %d strokes", len(strokes)))
}

// LoadFromFile replaces the document with the reader's contents. On a
// malformed file the current painting is left untouched.
func (w *SketchWidget) LoadFromFile(reader fyne.URIReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("[UI] error closing reader: %v", err)
		}
	}()

	text, err := io.ReadAll(reader)
	if err != nil {
		log.Printf("[UI] load failed: %v", err)
		w.SetStatus("Error reading file")
		return
	}

	strokes, err := state.Deserialize(string(text))
	if err != nil {
		log.Printf("[UI] load failed: %v", err)
		w.SetStatus("Invalid sketch file: " + err.Error())
		return
	}

	w.mu.Lock()
	w.painting.Replace(strokes)
	w.mu.Unlock()
	w.Refresh()
	w.SetStatus(fmt.Sprintf("Loaded %d strokes", len(strokes)))
}

func (w *SketchWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &sketchRenderer{widget: w}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type sketchRenderer struct {
	widget     *SketchWidget
	background *canvas.Rectangle
}

func (r *sketchRenderer) Objects() []fyne.CanvasObject {
	r.widget.mu.RLock()
	defer r.widget.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	strokes := r.widget.painting.Strokes()
	if active := r.widget.capture.ActiveStroke(); active != nil {
		strokes = append(strokes, active)
	}

	for _, s := range strokes {
		if len(s) < 2 {
			continue
		}
		for i := 1; i < len(s); i++ {
			segment := canvas.NewLine(s[i].Color)
			segment.StrokeWidth = float32(s[i].Thickness * r.widget.pixelsPerMeter)
			segment.Position1 = r.widget.toScreen(s[i-1].Position)
			segment.Position2 = r.widget.toScreen(s[i].Position)
			objects = append(objects, segment)
		}
	}
	return objects
}

func (r *sketchRenderer) Refresh() {
	canvas.Refresh(r.widget)
}

func (r *sketchRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *sketchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *sketchRenderer) Destroy() {}
