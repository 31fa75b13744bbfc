// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// serveHub upgrades every request and attaches it to hub, the way the API
// websocket handler does.
func serveHub(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}))
	t.Cleanup(server.Close)
	return server
}

// dialWebSocket establishes a WebSocket connection to the test server
func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestNewClient_AssignsIncreasingIDs(t *testing.T) {
	hub := NewHub()
	a := NewClient(hub, nil)
	b := NewClient(hub, nil)

	if b.ID() <= a.ID() {
		t.Errorf("ids not increasing: %d then %d", a.ID(), b.ID())
	}
	if cap(a.send) != sendBuffer {
		t.Errorf("send capacity = %d, want %d", cap(a.send), sendBuffer)
	}
}

func TestClient_Constants(t *testing.T) {
	if pingPeriod >= pongWait {
		t.Errorf("pingPeriod %v must be shorter than pongWait %v", pingPeriod, pongWait)
	}
	if writeWait != 10*time.Second {
		t.Errorf("writeWait = %v", writeWait)
	}
}

func TestClient_ReceivesBroadcast(t *testing.T) {
	hub := NewHub()
	stop := runHub(t, hub)
	server := serveHub(t, hub)

	conn := dialWebSocket(t, server)
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.BroadcastCaptureImported(11, 4, "lab.json", "watcher")

	msg := readMessage(t, conn)
	if msg.Type != MessageTypeCaptureImported {
		t.Fatalf("type = %q", msg.Type)
	}
	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data has type %T", msg.Data)
	}
	if data["captureId"] != float64(11) || data["filename"] != "lab.json" {
		t.Errorf("data = %v", data)
	}

	stop()
}

func TestClient_PingPong(t *testing.T) {
	hub := NewHub()
	stop := runHub(t, hub)
	server := serveHub(t, hub)

	conn := dialWebSocket(t, server)
	defer conn.Close()

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Errorf("type = %q, want pong", msg.Type)
	}

	stop()
}

func TestClient_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()
	runHub(t, hub)
	server := serveHub(t, hub)

	conn := dialWebSocket(t, server)
	waitForClients(t, hub, 1)

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitForClients(t, hub, 0)
}

func TestClient_ClosedByHubShutdown(t *testing.T) {
	hub := NewHub()
	stop := runHub(t, hub)
	server := serveHub(t, hub)

	conn := dialWebSocket(t, server)
	defer conn.Close()
	waitForClients(t, hub, 1)

	stop()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to close after hub shutdown")
	}
}
