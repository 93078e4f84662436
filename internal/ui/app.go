package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// RunApp assembles the window and blocks until it closes. shareLink is
// shown in the status bar when hosting; pass "" when joining.
func RunApp(shareLink string, board *SketchWidget) {
	myApp := app.New()
	myWindow := myApp.NewWindow("AirSketch")
	myWindow.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(board, myWindow)
	if shareLink != "" {
		board.StatusBar().SetText("Share link: " + shareLink)
	}

	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, board)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
