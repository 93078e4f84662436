package ui

import (
	"image/color"
	"log"

	"AirSketch/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// --- The Main Toolbar ---
func NewToolbar(board *SketchWidget, win fyne.Window) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), board.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), board.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { showSaveDialog(board, win) }),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { showOpenDialog(board, win) }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { showExportDialog(board, win) }),
	)

	// --- Color Palette ---
	colorBox := container.NewHBox(
		newColorSwatch(color.NRGBA{A: 255}, board.SetColor),                        // Black
		newColorSwatch(color.NRGBA{R: 255, A: 255}, board.SetColor),                // Red
		newColorSwatch(color.NRGBA{G: 255, A: 255}, board.SetColor),                // Green
		newColorSwatch(color.NRGBA{B: 255, A: 255}, board.SetColor),                // Blue
		newColorSwatch(color.NRGBA{R: 255, G: 255, A: 255}, board.SetColor),        // Yellow
		newColorSwatch(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, board.SetColor), // White
	)

	// --- Brush Thickness Slider (millimeters) ---
	thicknessSlider := widget.NewSlider(1.0, 20.0)
	thicknessSlider.SetValue(5.0)
	thicknessSlider.OnChanged = func(mm float64) {
		board.SetThickness(mm / 1000)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), thicknessSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

func showSaveDialog(board *SketchWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		board.SaveToFile(writer)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".skp"}))
	d.SetFileName("untitled.skp")
	d.Show()
}

func showOpenDialog(board *SketchWidget, win fyne.Window) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if reader == nil {
			return
		}
		board.LoadFromFile(reader)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".skp"}))
	d.Show()
}

func showExportDialog(board *SketchWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		if err := writer.Close(); err != nil {
			log.Printf("[UI] error closing writer: %v", err)
		}
		if err := export.PDF(path, board.Strokes()); err != nil {
			dialog.ShowError(err, win)
			return
		}
		board.SetStatus("Exported PDF to " + path)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.SetFileName("sketch.pdf")
	d.Show()
}
