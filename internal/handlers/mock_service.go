package handlers

import (
	"context"
	"net/http"
	"time"

	"task_tracker/internal/config"
	"task_tracker/internal/models"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerRes service.AuthResult
	registerErr error
	loginRes    service.AuthResult
	loginErr    error
	identity    models.Identity
	authErr     error
	profile     models.PublicUser
	profileErr  error
	changeErr   error

	lastRegister   service.RegisterInput
	lastLoginEmail string
	lastLoginPass  string
	lastToken      string
	lastProfileID  string
	lastChange     [3]string
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (service.AuthResult, error) {
	m.lastRegister = in
	return m.registerRes, m.registerErr
}
func (m *mockAuth) Login(_ context.Context, email, password string) (service.AuthResult, error) {
	m.lastLoginEmail = email
	m.lastLoginPass = password
	return m.loginRes, m.loginErr
}
func (m *mockAuth) ValidateCredentials(_ context.Context, email, password string) (models.User, error) {
	return models.User{}, m.loginErr
}
func (m *mockAuth) Authenticate(token string) (models.Identity, error) {
	m.lastToken = token
	return m.identity, m.authErr
}
func (m *mockAuth) Profile(_ context.Context, userID string) (models.PublicUser, error) {
	m.lastProfileID = userID
	return m.profile, m.profileErr
}
func (m *mockAuth) ChangePassword(_ context.Context, userID, current, next string) error {
	m.lastChange = [3]string{userID, current, next}
	return m.changeErr
}

type mockTasks struct {
	task  models.Task
	tasks []models.Task
	err   error

	lastOwner  string
	lastID     string
	lastInput  service.TaskInput
	lastPatch  service.TaskPatch
	lastFilter service.TaskFilter
	calls      int
}

func (m *mockTasks) Create(_ context.Context, ownerID string, in service.TaskInput) (models.Task, error) {
	m.calls++
	m.lastOwner, m.lastInput = ownerID, in
	return m.task, m.err
}
func (m *mockTasks) FindOne(_ context.Context, ownerID, id string) (models.Task, error) {
	m.calls++
	m.lastOwner, m.lastID = ownerID, id
	return m.task, m.err
}
func (m *mockTasks) Filter(_ context.Context, ownerID string, f service.TaskFilter) ([]models.Task, error) {
	m.calls++
	m.lastOwner, m.lastFilter = ownerID, f
	return m.tasks, m.err
}
func (m *mockTasks) Update(_ context.Context, ownerID, id string, p service.TaskPatch) (models.Task, error) {
	m.calls++
	m.lastOwner, m.lastID, m.lastPatch = ownerID, id, p
	return m.task, m.err
}
func (m *mockTasks) Remove(_ context.Context, ownerID, id string) error {
	m.calls++
	m.lastOwner, m.lastID = ownerID, id
	return m.err
}

type mockEventLog struct {
	resp      []models.Event
	err       error
	lastOwner string
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
}

func (m *mockEventLog) List(_ context.Context, ownerID string, f service.LogFilter) ([]models.Event, error) {
	m.lastOwner = ownerID
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

var testStream = config.StreamConfig{DefaultInterval: time.Second, MaxInterval: 10 * time.Second}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, testStream)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// signedIn returns an auth mock that accepts any token as the given user.
func signedIn(userID string) *mockAuth {
	return &mockAuth{identity: models.Identity{UserID: userID, LoginKey: userID + "@example.com"}}
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
