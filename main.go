package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"time"

	"AirSketch/internal/config"
	"AirSketch/internal/net"
	"AirSketch/internal/state"
	"AirSketch/internal/ui"

	"fyne.io/fyne/v2"
	"github.com/gorilla/websocket"
)

const CustomURLScheme = "airsketch://"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	args := os.Args
	if len(args) > 1 && strings.HasPrefix(args[1], CustomURLScheme) {
		runViewer(cfg, args[1])
	} else {
		runHost(cfg)
	}
}

func newBoard(cfg config.Config) *ui.SketchWidget {
	brush := state.Brush{
		Color:     color.NRGBA{A: 255},
		Thickness: cfg.BrushThickness,
	}
	return ui.NewSketchWidget(cfg.PixelsPerMeter, brush)
}

func runHost(cfg config.Config) {
	log.Println("Starting as HOST")
	board := newBoard(cfg)
	session := net.NewSession()
	hub := net.NewHub()

	// A viewer's message is applied locally and relayed to everyone else.
	hub.OnMessage = func(msg net.Message, sender *websocket.Conn) {
		applyMessage(board, session, msg)
		hub.Broadcast(msg, sender)
	}

	board.SetOnCommit(func(s state.Stroke) {
		msg := net.Message{Type: net.MsgDraw, Stroke: state.Serialize([]state.Stroke{s})}
		session.Stamp(&msg)
		hub.Broadcast(msg, nil)
	})
	board.SetOnClear(func() {
		msg := net.Message{Type: net.MsgClear}
		session.Stamp(&msg)
		hub.Broadcast(msg, nil)
	})

	go func() {
		if err := hub.ListenAndServe(cfg.Port); err != nil {
			log.Fatalf("host server: %v", err)
		}
	}()

	if server, err := net.Advertise(cfg.Port); err != nil {
		log.Printf("[NET] mDNS advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	hostIP, err := net.OutgoingIP()
	if err != nil {
		hostIP = "127.0.0.1"
	}
	shareLink := fmt.Sprintf("%s%s:%d", CustomURLScheme, hostIP, cfg.Port)
	log.Printf("Share link: %s", shareLink)
	ui.RunApp(shareLink, board)
}

func runViewer(cfg config.Config, link string) {
	log.Println("Starting as VIEWER")
	board := newBoard(cfg)
	session := net.NewSession()

	address := strings.TrimSuffix(strings.TrimPrefix(link, CustomURLScheme), "/")
	go connectToHost(address, board, session)
	ui.RunApp("", board)
}

func connectToHost(address string, board *ui.SketchWidget, session *net.Session) {
	time.Sleep(500 * time.Millisecond) // give the UI time to launch

	if address == "" || address == "discover" {
		found, err := discoverHost()
		if err != nil {
			board.SetStatus(fmt.Sprintf("No host found: %v", err))
			return
		}
		address = found
	}

	client, err := net.Dial(address)
	if err != nil {
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer client.Close()
	board.SetStatus("Connected to " + address)

	board.SetOnCommit(func(s state.Stroke) {
		msg := net.Message{Type: net.MsgDraw, Stroke: state.Serialize([]state.Stroke{s})}
		session.Stamp(&msg)
		if err := client.Send(msg); err != nil {
			log.Printf("[NET] failed to send stroke: %v", err)
		}
	})
	board.SetOnClear(func() {
		msg := net.Message{Type: net.MsgClear}
		session.Stamp(&msg)
		if err := client.Send(msg); err != nil {
			log.Printf("[NET] failed to send clear: %v", err)
		}
	})

	err = client.Listen(func(msg net.Message) {
		applyMessage(board, session, msg)
	})
	board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
}

func discoverHost() (string, error) {
	found := make(chan string, 1)
	err := net.Browse(func(addr string) {
		select {
		case found <- addr:
		default:
		}
	})
	if err != nil {
		return "", err
	}
	select {
	case addr := <-found:
		return addr, nil
	case <-time.After(2 * time.Second):
		return "", fmt.Errorf("no %s service on this network", net.ServiceType)
	}
}

// applyMessage mutates the board from a relayed message, once per
// message ID. Board mutations are marshalled onto the UI goroutine.
func applyMessage(board *ui.SketchWidget, session *net.Session, msg net.Message) {
	if !session.FirstSighting(msg.ID) {
		return
	}
	switch msg.Type {
	case net.MsgDraw:
		strokes, err := state.Deserialize(msg.Stroke)
		if err != nil {
			log.Printf("[NET] dropping malformed stroke: %v", err)
			return
		}
		fyne.Do(func() {
			for _, s := range strokes {
				board.AddRemoteStroke(s)
			}
		})
	case net.MsgClear:
		fyne.Do(board.ClearRemote)
	default:
		log.Printf("[NET] unknown message type %q", msg.Type)
	}
}
