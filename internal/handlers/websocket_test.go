package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"task_tracker/internal/config"
	"task_tracker/internal/models"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, testStream)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestNewHandler_StreamDefaults(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, config.StreamConfig{})
	if h.stream.DefaultInterval != defaultInterval || h.stream.MaxInterval != maxInterval {
		t.Fatalf("unexpected defaults: %+v", h.stream)
	}
}

// --- websocket integration tests ---

func dialStream(t *testing.T, srvURL, query string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srvURL)
	u.Scheme = "ws"
	u.Path = "/api/v1/tasks/stream"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), authHeader("valid"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestWebSocket_TaskStream_InitialAndPeriodic(t *testing.T) {
	tasks := &mockTasks{tasks: []models.Task{
		{ID: "t-1", OwnerID: "user-a", Title: "first", Status: models.StatusTodo, Priority: 2},
	}}
	s := &service.Service{Authorization: signedIn("user-a"), Tasks: tasks}

	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	conn := dialStream(t, srv.URL, "interval_ms=20") // fast ticks for the test
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read initial snapshot
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "tasks" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var got []models.Task
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("unmarshal tasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "first" {
		t.Fatalf("unexpected tasks: %+v", got)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "tasks" {
		t.Fatalf("expected type=tasks, got %+v", env)
	}
}

func TestWebSocket_InitialListError_Closes(t *testing.T) {
	tasks := &mockTasks{err: errors.New("boom")}
	s := &service.Service{Authorization: signedIn("user-a"), Tasks: tasks}

	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	conn := dialStream(t, srv.URL, "")
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var env wsEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("expected an error frame first, got %v", err)
	}
	if env.Type != "error" || env.Error != errInternal {
		t.Fatalf("unexpected frame: %+v", env)
	}

	// then the server closes
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}

func TestWebSocket_RequiresToken(t *testing.T) {
	s := &service.Service{Authorization: signedIn("user-a"), Tasks: &mockTasks{}}
	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/api/v1/tasks/stream"
	_, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err == nil {
		t.Fatalf("expected handshake failure without token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 response, got %+v", resp)
	}
}
