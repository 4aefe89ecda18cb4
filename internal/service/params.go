package service

import (
	"time"

	"task_tracker/internal/models"
)

// RegisterInput is the raw registration payload.
type RegisterInput struct {
	Email    string
	Password string
	FullName string // optional
	Role     string // optional; defaults to "user", "admin" is refused
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// TaskInput carries client-settable fields of a new task. There is deliberately no owner field.
type TaskInput struct {
	Title       string
	Description string
	Status      string     // "" means TODO
	DueDate     *time.Time // day precision
	Priority    *int       // nil means 0
}

// TaskPatch lists the fields an update may touch; nil leaves the stored value alone.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
	Priority    *int
	// ClearDueDate removes the due date; it cannot be combined with DueDate.
	ClearDueDate bool
}

// TaskFilter supports listing by due date, priority and status. Nil/empty means "don't filter".
type TaskFilter struct {
	DueDate  *time.Time
	Priority *int
	Status   string
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "USER_REGISTERED", "LOGIN_FAILED", "TASK_CREATED", ...
}
