package repository

import (
	"context"
	"database/sql"
	"time"

	"task_tracker/internal/models"
	"task_tracker/internal/repository/db"
)

// UserRepo persists User rows. Lookups return (nil, nil) when nothing matches.
type UserRepo interface {
	Create(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// TaskRepo persists Task rows. Every method is scoped by owner id.
type TaskRepo interface {
	Create(ctx context.Context, t models.Task) error
	GetByID(ctx context.Context, id, ownerID string) (models.Task, error)
	List(ctx context.Context, ownerID string, f TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, t models.Task) error
	Delete(ctx context.Context, id, ownerID string) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, ownerID string, from, to time.Time, typ string) ([]models.Event, error)
}

// TaskFilter holds optional criteria; nil/empty fields are not filtered on.
type TaskFilter struct {
	DueDate  *time.Time
	Priority *int
	Status   string
}

type Repository struct {
	Users  UserRepo
	Tasks  TaskRepo
	Events EventRepo
}

func NewRepository(conn *sql.DB, d db.Dialect) *Repository {
	return &Repository{
		Users:  NewUserRepository(conn, d),
		Tasks:  NewTaskRepository(conn, d),
		Events: NewEventRepository(conn, d),
	}
}
