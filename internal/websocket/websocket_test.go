package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/luckydraw/internal/draw"
	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/internal/models"
	"github.com/abrezinsky/luckydraw/internal/services"
)

// mockDrawService implements services.DrawServicer for testing
type mockDrawService struct {
	mu       sync.Mutex
	selected string
	draws    int
	drawErr  error
}

func (m *mockDrawService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	return []models.CategoryCount{{Name: "A", Count: 2}}, nil
}

func (m *mockDrawService) Select(ctx context.Context, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category != "A" {
		return draw.ErrUnknownCategory
	}
	m.selected = category
	return nil
}

func (m *mockDrawService) Draw(ctx context.Context) (*services.DrawOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draws++
	if m.drawErr != nil {
		return nil, m.drawErr
	}
	return &services.DrawOutcome{Winner: &models.Winner{Category: m.selected}}, nil
}

func (m *mockDrawService) LastWinner(ctx context.Context) (*models.Winner, error) {
	return nil, services.ErrNoWinnerYet
}

func (m *mockDrawService) Preview(ctx context.Context, maxDimension uint) ([]byte, error) {
	return nil, services.ErrNoWinnerYet
}

func (m *mockDrawService) History(ctx context.Context, limit int) ([]models.DrawRecord, error) {
	return nil, nil
}

func (m *mockDrawService) HistoryEntry(ctx context.Context, id string) (*models.DrawRecord, error) {
	return nil, nil
}

func (m *mockDrawService) HistorySummary(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

func (m *mockDrawService) ClearHistory(ctx context.Context) error {
	return nil
}

func (m *mockDrawService) Status(ctx context.Context) (*services.Status, error) {
	return &services.Status{State: "idle", CanDraw: true, Candidates: 3}, nil
}

func (m *mockDrawService) drawCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draws
}

func setupHub(t *testing.T, svc *mockDrawService) (*Hub, *websocket.Conn) {
	t.Helper()
	hub := New(logger.Discard(), svc)
	hub.Start()
	t.Cleanup(hub.Stop)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return hub, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg map[string]interface{}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("bad json %s: %v", data, err)
	}
	return msg
}

func TestHub_SendsSnapshotOnConnect(t *testing.T) {
	_, conn := setupHub(t, &mockDrawService{})

	msg := readMessage(t, conn)
	if msg["type"] != MsgSnapshot {
		t.Fatalf("expected snapshot, got %v", msg["type"])
	}
	payload := msg["payload"].(map[string]interface{})
	cats := payload["categories"].([]interface{})
	if len(cats) != 1 {
		t.Errorf("expected one category, got %v", cats)
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub, conn := setupHub(t, &mockDrawService{})
	readMessage(t, conn) // snapshot

	hub.BroadcastMessage(services.MsgDrawReady, map[string]bool{"can_draw": true})

	msg := readMessage(t, conn)
	if msg["type"] != services.MsgDrawReady {
		t.Errorf("expected draw_ready, got %v", msg["type"])
	}
}

func TestHub_DrawCommand(t *testing.T) {
	svc := &mockDrawService{}
	_, conn := setupHub(t, svc)
	readMessage(t, conn)

	if err := conn.WriteJSON(map[string]string{"type": "draw"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for svc.drawCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if svc.drawCount() != 1 {
		t.Errorf("expected one draw, got %d", svc.drawCount())
	}
}

func TestHub_FailedCommandNotifiesSender(t *testing.T) {
	svc := &mockDrawService{drawErr: draw.ErrEmptyPool}
	_, conn := setupHub(t, svc)
	readMessage(t, conn)

	conn.WriteJSON(map[string]string{"type": "draw"})

	msg := readMessage(t, conn)
	if msg["type"] != MsgNotice {
		t.Fatalf("expected notice, got %v", msg["type"])
	}
	payload := msg["payload"].(map[string]interface{})
	if payload["kind"] != "conflict" {
		t.Errorf("expected conflict kind, got %v", payload["kind"])
	}
}

func TestHub_SelectUnknownCategory(t *testing.T) {
	_, conn := setupHub(t, &mockDrawService{})
	readMessage(t, conn)

	conn.WriteJSON(map[string]string{"type": "select", "category": "Z"})

	msg := readMessage(t, conn)
	payload := msg["payload"].(map[string]interface{})
	if msg["type"] != MsgNotice || payload["kind"] != "invalid_input" {
		t.Errorf("expected invalid_input notice, got %v", msg)
	}
}

func TestHub_StopClosesClients(t *testing.T) {
	hub, conn := setupHub(t, &mockDrawService{})
	readMessage(t, conn)

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hub.Stop()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to close after Stop")
	}

	// Broadcasting after Stop must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 32; i++ {
			hub.BroadcastMessage("x", nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BroadcastMessage blocked after Stop")
	}
}
