package service

import (
	"context"
	"fmt"

	"task_tracker/internal/config"
	"task_tracker/internal/logger"
	"task_tracker/internal/models"
	"task_tracker/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	ValidateCredentials(ctx context.Context, email, password string) (models.User, error)
	Authenticate(token string) (models.Identity, error)
	Profile(ctx context.Context, userID string) (models.PublicUser, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// Tasks is the ownership-scoped task store. ownerID is the verified token subject.
type Tasks interface {
	Create(ctx context.Context, ownerID string, in TaskInput) (models.Task, error)
	FindOne(ctx context.Context, ownerID, id string) (models.Task, error)
	Filter(ctx context.Context, ownerID string, f TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, ownerID, id string, p TaskPatch) (models.Task, error)
	Remove(ctx context.Context, ownerID, id string) error
}

// EventLog exposes the caller's append-only activity history.
type EventLog interface {
	List(ctx context.Context, ownerID string, f LogFilter) ([]models.Event, error)
}

type Service struct {
	Authorization
	Tasks
	EventLog
}

// NewService wires the repository layer into concrete services.
// The signing key and bcrypt cost are read once here and never change afterwards.
func NewService(repos *repository.Repository, cfg config.AuthConfig, log *logger.Logger) (*Service, error) {
	tokens, err := NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	hasher := NewBcryptHasher(cfg.BcryptCost, log)
	events := newRecorder(repos.Events, log)

	auth, err := NewAuthService(NewUserDirectory(repos.Users, hasher, log), hasher, tokens, events, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		Authorization: auth,
		Tasks:         NewTaskService(repos.Tasks, events),
		EventLog:      NewEventLogService(repos.Events),
	}, nil
}
