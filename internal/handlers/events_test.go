package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	tt "task_tracker"
	"task_tracker/internal/models"
	"task_tracker/internal/service"
)

// stubEventRepo backs a real EventLogService so range and type checks run as in production.
type stubEventRepo struct {
	resp     []models.Event
	lastType string
	calls    int
}

func (s *stubEventRepo) Append(context.Context, models.Event) error { return nil }

func (s *stubEventRepo) List(_ context.Context, _ string, _, _ time.Time, typ string) ([]models.Event, error) {
	s.calls++
	s.lastType = typ
	return s.resp, nil
}

func TestEventsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	repo := &stubEventRepo{resp: []models.Event{
		{EventID: "e1", OccurredAt: now, Type: models.EventTaskCreated, Description: "created"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventTaskUpdated, Description: "updated"},
	}}
	r := newTestRouter(&service.Service{
		Authorization: signedIn("user-99"),
		EventLog:      service.NewEventLogService(repo),
	})

	// valid range; lowercase type is normalized before it reaches the store
	q := "/api/v1/events?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=task_updated"
	w := doJSON(r, http.MethodGet, q, "")
	if w.Code != http.StatusOK {
		t.Fatalf("events status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int            `json:"count"`
		Events []models.Event `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if repo.lastType != models.EventTaskUpdated {
		t.Fatalf("expected type TASK_UPDATED, got %q", repo.lastType)
	}

	cases := []struct {
		name  string
		query string
		field string
	}{
		{name: "unparseable from", query: "from=notatime", field: "from"},
		{name: "unparseable to", query: "to=31/08/2025", field: "to"},
		{name: "inverted range", query: "from=2025-02-01&to=2025-01-01", field: "from"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := repo.calls
			w := doJSON(r, http.MethodGet, "/api/v1/events?"+tc.query, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var body struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.ErrValidation.Error() || body.Fields[tc.field] == "" {
				t.Fatalf("expected validation body naming %q, got %s", tc.field, w.Body.String())
			}
			if repo.calls != before {
				t.Fatalf("store must not be queried for an invalid filter")
			}
		})
	}
}

func TestEventsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{Authorization: signedIn("user-1"), EventLog: logs})

	w := doJSON(r, http.MethodGet, "/api/v1/events?to=2025-08-31", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	want := time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(want) {
		t.Fatalf("expected %v, got %v", want, logs.lastTo)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := map[string]bool{
		"2025-08-27T15:04:05Z":      true,
		"2025-08-27T15:04:05+02:00": true,
		"2025-08-27 15:04:05":       true,
		"2025-08-27":                true,
		"27/08/2025":                false,
		"":                          false,
	}
	for in, ok := range cases {
		_, err := parseQueryTime(in)
		if (err == nil) != ok {
			t.Fatalf("parseQueryTime(%q) err=%v, want ok=%v", in, err, ok)
		}
	}
}
