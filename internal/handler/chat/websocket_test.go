package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type wsResult struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func dialSession(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws/" + sessionID
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readResult(t *testing.T, conn *websocket.Conn) wsResult {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsResult
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocketConversation(t *testing.T) {
	r, chatSvc := setupRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	session, _ := chatSvc.CreateSession(context.Background(), "", "en")
	conn := dialSession(t, srv, session.ID)

	if msg := readResult(t, conn); msg.Type != "result" || msg.Data["type"] != "connected" {
		t.Fatalf("expected connected notice, got %+v", msg)
	}

	if err := conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": "I want to kill myself"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readResult(t, conn); msg.Data["type"] != "user" {
		t.Fatalf("expected user echo, got %+v", msg)
	}
	bot := readResult(t, conn)
	if bot.Data["type"] != "bot" || bot.Data["topic"] != "crisis" {
		t.Fatalf("expected crisis reply, got %+v", bot)
	}

	if err := conn.WriteJSON(map[string]any{"type": "rating", "data": map[string]int{"rating": 4}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	ended := readResult(t, conn)
	if ended.Data["type"] != "ended" || ended.Data["rating"] != float64(4) {
		t.Fatalf("expected ended notice, got %+v", ended)
	}

	got, _ := chatSvc.GetSession(context.Background(), session.ID)
	if !got.Escalated || got.Rating != 4 {
		t.Fatalf("session not updated: %+v", got)
	}
}

func TestWebSocketRejectsUnknownTypes(t *testing.T) {
	r, chatSvc := setupRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	session, _ := chatSvc.CreateSession(context.Background(), "", "en")
	conn := dialSession(t, srv, session.ID)
	readResult(t, conn)

	if err := conn.WriteJSON(map[string]any{"type": "audio"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readResult(t, conn); msg.Type != "error" {
		t.Fatalf("expected error, got %+v", msg)
	}

	if err := conn.WriteJSON(map[string]any{"type": "text", "sessionId": "other", "data": map[string]string{"text": "hi"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readResult(t, conn); msg.Type != "error" || msg.Data["message"] != "session mismatch" {
		t.Fatalf("expected session mismatch, got %+v", msg)
	}
}

func TestWebSocketUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
}
