package service

import (
	"context"
	"sync"
	"time"

	tt "task_tracker"
	"task_tracker/internal/models"
	"task_tracker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-0123456789abcdef-0123456789"

// mockUserRepo is an in-memory repository.UserRepo. Fn fields override the default behaviour.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User // by id

	CreateFn     func(u models.User) error
	GetByEmailFn func(email string) (*models.User, error)

	createCalls int
	hashWrites  []string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]models.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	m.hashWrites = append(m.hashWrites, u.PasswordHash)
	if m.CreateFn != nil {
		return m.CreateFn(u)
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return tt.ErrDuplicate
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(email)
	}
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return tt.ErrUserNotFound
	}
	m.hashWrites = append(m.hashWrites, hash)
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

// mockTaskRepo keeps tasks in memory and applies the same id+owner predicate as the SQL repo.
type mockTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]models.Task
	order []string

	err        error
	lastFilter repository.TaskFilter
	listCalls  int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: map[string]models.Task{}}
}

func (m *mockTaskRepo) Create(_ context.Context, t models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.tasks[t.ID] = t
	m.order = append(m.order, t.ID)
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id, ownerID string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Task{}, m.err
	}
	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return models.Task{}, tt.ErrTaskNotFound
	}
	return t, nil
}

func (m *mockTaskRepo) List(_ context.Context, ownerID string, f repository.TaskFilter) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Task{}
	for _, id := range m.order {
		t, ok := m.tasks[id]
		if !ok || t.OwnerID != ownerID {
			continue
		}
		if f.DueDate != nil && (t.DueDate == nil || !t.DueDate.Equal(*f.DueDate)) {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTaskRepo) Update(_ context.Context, t models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cur, ok := m.tasks[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return tt.ErrTaskNotFound
	}
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return tt.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotCtx   context.Context
	gotOwner string
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	appended []models.Event

	// configured outputs
	events    []models.Event
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, ownerID string, from, to time.Time, typ string) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotCtx = ctx
	f.gotOwner = ownerID
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

type authFixture struct {
	svc    *AuthService
	users  *mockUserRepo
	events *fakeEventRepo
	tokens *TokenManager
}

func newAuthFixture() *authFixture {
	users := newMockUserRepo()
	events := &fakeEventRepo{}
	hasher := NewBcryptHasher(bcrypt.MinCost, nil)
	tokens, err := NewTokenManager(testSecret, time.Hour, "task-tracker")
	if err != nil {
		panic(err)
	}
	svc, err := NewAuthService(NewUserDirectory(users, hasher, nil), hasher, tokens, newRecorder(events, nil), nil)
	if err != nil {
		panic(err)
	}
	return &authFixture{svc: svc, users: users, events: events, tokens: tokens}
}

func ptr[T any](v T) *T { return &v }
