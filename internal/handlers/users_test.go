package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	tt "task_tracker"
	"task_tracker/internal/models"
	"task_tracker/internal/service"
)

func TestUserHandlers_Me(t *testing.T) {
	auth := signedIn("user-a")
	auth.profile = models.PublicUser{ID: "user-a", Email: "a@example.com", Role: models.RoleUser}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodGet, "/api/v1/users/me", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["email"] != "a@example.com" || auth.lastProfileID != "user-a" {
		t.Fatalf("unexpected profile response: %s", w.Body.String())
	}
	if _, ok := out["password_hash"]; ok {
		t.Fatalf("password hash leaked")
	}
}

func TestUserHandlers_ChangePassword(t *testing.T) {
	auth := signedIn("user-a")
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodPut, "/api/v1/users/me/password", `{"current_password":"old-pass","new_password":"new-pass"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if auth.lastChange != [3]string{"user-a", "old-pass", "new-pass"} {
		t.Fatalf("unexpected call: %v", auth.lastChange)
	}

	auth.changeErr = tt.ErrInvalidCredentials
	w = doJSON(r, http.MethodPut, "/api/v1/users/me/password", `{"current_password":"nope","new_password":"new-pass"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPut, "/api/v1/users/me/password", `{"new_password":"new-pass"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing current_password, got %d", w.Code)
	}
}
