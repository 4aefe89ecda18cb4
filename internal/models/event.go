package models

import "time"

const (
	EventUserRegistered  = "USER_REGISTERED"
	EventLoginFailed     = "LOGIN_FAILED"
	EventPasswordChanged = "PASSWORD_CHANGED"
	EventTaskCreated     = "TASK_CREATED"
	EventTaskUpdated     = "TASK_UPDATED"
	EventTaskDeleted     = "TASK_DELETED"
)

// Event is a single entry of a user's activity log.
type Event struct {
	EventID     string    `json:"event_id"`
	OwnerID     string    `json:"-"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // USER_REGISTERED | LOGIN_FAILED | TASK_CREATED ...
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
