package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/events"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, room string) *Client {
	return &Client{
		hub:  hub,
		room: room,
		send: make(chan []byte, 256),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubRegistration(t *testing.T) {
	hub := startHub(t)
	client := mockClient(hub, StaffRoom)

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[StaffRoom] == nil {
		t.Fatal("staff room not created")
	}
	if !hub.rooms[StaffRoom][client] {
		t.Fatal("client not registered in staff room")
	}
}

func TestHubCleanupEmptyRoom(t *testing.T) {
	hub := startHub(t)
	room := OrderRoom("AB12CD34")
	client1 := mockClient(hub, room)
	client2 := mockClient(hub, room)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[room]) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(hub.rooms[room]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client1
	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.rooms[room] != nil {
		t.Fatal("room should be deleted when last client unregisters")
	}
}

func TestBroadcastToRoomIsolation(t *testing.T) {
	hub := startHub(t)
	staff := mockClient(hub, StaffRoom)
	customer := mockClient(hub, OrderRoom("AB12CD34"))

	hub.register <- staff
	hub.register <- customer
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"code":"AB12CD34"}`)
	err := hub.BroadcastToRoom(context.Background(), StaffRoom, Event{Type: enum.EventOrderCreated, Payload: testPayload})
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	select {
	case msg := <-staff.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != enum.EventOrderCreated {
			t.Errorf("expected type %q, got %q", enum.EventOrderCreated, received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("staff client did not receive message")
	}

	select {
	case <-customer.send:
		t.Fatal("customer should not receive staff room message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyReachesStaffAndMatchingOrderOnly(t *testing.T) {
	hub := startHub(t)
	staff := mockClient(hub, StaffRoom)
	tracking := mockClient(hub, OrderRoom("AB12CD34"))
	other := mockClient(hub, OrderRoom("ZZZZ9999"))

	for _, c := range []*Client{staff, tracking, other} {
		hub.register <- c
	}
	time.Sleep(10 * time.Millisecond)

	e := events.OrderEvent{
		Type:    enum.EventOrderStatusChanged,
		OrderID: uuid.New(),
		Code:    "AB12CD34",
		Status:  enum.OrderStatusShipped,
		Total:   "28.50",
	}
	if err := hub.Notify(context.Background(), e); err != nil {
		t.Fatalf("notify: %v", err)
	}

	for name, c := range map[string]*Client{"staff": staff, "tracking": tracking} {
		select {
		case msg := <-c.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("%s: unmarshal: %v", name, err)
			}
			var payload events.OrderEvent
			if err := json.Unmarshal(received.Payload, &payload); err != nil {
				t.Fatalf("%s: unmarshal payload: %v", name, err)
			}
			if payload.Status != enum.OrderStatusShipped {
				t.Errorf("%s: expected status shipped, got %q", name, payload.Status)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("%s did not receive event", name)
		}
	}

	select {
	case <-other.send:
		t.Fatal("client tracking another order should not receive event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunClosesClientsOnShutdown(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := mockClient(hub, StaffRoom)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if _, ok := <-client.send; ok {
		t.Fatal("client send channel should be closed")
	}
}

func TestLeaveAfterShutdownReturns(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := mockClient(hub, StaffRoom)
	if !hub.join(client) {
		t.Fatal("join failed on a running hub")
	}
	cancel()
	<-hub.done

	left := make(chan struct{})
	go func() {
		hub.leave(client)
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("leave blocked after the hub stopped")
	}
}

func TestJoinAfterShutdownFails(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hub.Run(ctx)

	if hub.join(mockClient(hub, StaffRoom)) {
		t.Fatal("join succeeded on a stopped hub")
	}
}

// waitForRoom polls until room has n clients.
func waitForRoom(t *testing.T, hub *Hub, room string, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		got := len(hub.rooms[room])
		hub.mu.RUnlock()
		if got == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %s never reached %d clients", room, n)
}

func TestServeOrder_NormalizesCode(t *testing.T) {
	hub := startHub(t)
	r := chi.NewRouter()
	r.Get("/ws/orders/{code}", func(w http.ResponseWriter, r *http.Request) {
		ServeOrder(hub, zap.NewNop(), w, r)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders/ab12cd34"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForRoom(t, hub, OrderRoom("AB12CD34"), 1)

	e := events.OrderEvent{Type: enum.EventOrderStatusChanged, OrderID: uuid.New(), Code: "AB12CD34", Status: enum.OrderStatusConfirmed}
	if err := hub.Notify(context.Background(), e); err != nil {
		t.Fatalf("notify: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var received Event
	if err := json.Unmarshal(msg, &received); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if received.Type != enum.EventOrderStatusChanged {
		t.Errorf("expected type %q, got %q", enum.EventOrderStatusChanged, received.Type)
	}
}

func TestBroadcastToRoomHonoursContext(t *testing.T) {
	hub := NewHub() // not running; the buffer will fill
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < cap(hub.broadcast); i++ {
		hub.broadcast <- &roomEvent{}
	}
	if err := hub.BroadcastToRoom(ctx, StaffRoom, Event{Type: "x"}); err == nil {
		t.Fatal("expected context error when broadcast queue is full")
	}
}
