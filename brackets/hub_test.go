package brackets

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func dialRoom(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 16), Room: TournamentRoom}
		if !hub.Subscribe(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForRoomSize(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(TournamentRoom) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room size = %d, want %d", hub.RoomSize(TournamentRoom), want)
}

func TestHubPublishReachesSubscriber(t *testing.T) {
	hub := startHub(t)
	conn := dialRoom(t, hub)
	waitForRoomSize(t, hub, 1)

	hub.Publish(EventMatchReported, map[string]int{"winner_id": 1, "loser_id": 2})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]int `json:"payload"`
		RoomID  string         `json:"room_id"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if msg.Type != EventMatchReported {
		t.Fatalf("type = %q, want %q", msg.Type, EventMatchReported)
	}
	if msg.RoomID != TournamentRoom {
		t.Fatalf("room = %q, want %q", msg.RoomID, TournamentRoom)
	}
	if msg.Payload["winner_id"] != 1 {
		t.Fatalf("payload = %v, want winner_id 1", msg.Payload)
	}
}

func TestHubUnregistersClosedClient(t *testing.T) {
	hub := startHub(t)
	conn := dialRoom(t, hub)
	waitForRoomSize(t, hub, 1)

	_ = conn.Close()
	waitForRoomSize(t, hub, 0)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := startHub(t)
	// Must not block or panic.
	hub.Publish(EventPlayersCleared, nil)
	if hub.RoomSize(TournamentRoom) != 0 {
		t.Fatal("expected empty room")
	}
}

func TestHubSubscribeAfterStop(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	hub.Stop()
	hub.Stop()

	if hub.Subscribe(&Client{Hub: hub, Room: TournamentRoom}) {
		t.Fatal("Subscribe on a stopped hub returned true")
	}
}
