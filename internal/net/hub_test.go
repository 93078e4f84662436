package net

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForViewers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d viewers, want %d", hub.Count(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubRelaysToOtherViewers(t *testing.T) {
	hub := NewHub()
	hub.OnMessage = func(msg Message, sender *websocket.Conn) {
		hub.Broadcast(msg, sender)
	}
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	sender := dialTestHub(t, srv)
	receiver := dialTestHub(t, srv)
	waitForViewers(t, hub, 2)

	sent := Message{Type: MsgDraw, ID: "m1", OwnerID: "a", Stroke: "0 0 0 255 0 0 0.01"}
	if err := sender.WriteJSON(sent); err != nil {
		t.Fatalf("send: %v", err)
	}

	receiver.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Message
	if err := receiver.ReadJSON(&got); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if got != sent {
		t.Errorf("relayed message = %+v, want %+v", got, sent)
	}

	// The sender must not get its own message back.
	sender.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var echo Message
	if err := sender.ReadJSON(&echo); err == nil {
		t.Errorf("sender received its own message back: %+v", echo)
	}
}

func TestHubBroadcastReachesAllViewers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	a := dialTestHub(t, srv)
	b := dialTestHub(t, srv)
	waitForViewers(t, hub, 2)

	hub.Broadcast(Message{Type: MsgClear, OwnerID: "host"}, nil)

	for name, conn := range map[string]*websocket.Conn{"a": a, "b": b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got Message
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("viewer %s: %v", name, err)
		}
		if got.Type != MsgClear {
			t.Errorf("viewer %s got %+v, want clear", name, got)
		}
	}
}

func TestHubRemovesClosedConnections(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	conn := dialTestHub(t, srv)
	waitForViewers(t, hub, 1)
	conn.Close()
	waitForViewers(t, hub, 0)
}
