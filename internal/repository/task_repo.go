package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	tt "task_tracker"
	"task_tracker/internal/models"
	"task_tracker/internal/repository/db"
)

type TaskRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewTaskRepository(conn *sql.DB, d db.Dialect) *TaskRepository {
	return &TaskRepository{db: conn, dialect: d}
}

var _ TaskRepo = (*TaskRepository)(nil)

// Every statement that touches an existing row filters on id AND owner_id in one predicate,
// so a row owned by someone else is indistinguishable from a missing one.
const (
	taskColumns = `id, owner_id, title, description, status, due_date, priority, created_at, updated_at`

	insertTaskSQL = `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectTaskSQL = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND owner_id = ?`
	listTasksSQL  = `SELECT ` + taskColumns + ` FROM tasks`
	updateTaskSQL = `UPDATE tasks SET title = ?, description = ?, status = ?, due_date = ?, priority = ?, updated_at = ? WHERE id = ? AND owner_id = ?`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = ? AND owner_id = ?`
)

// Create inserts t as-is; the service has already stamped OwnerID from the caller identity.
func (r *TaskRepository) Create(ctx context.Context, t models.Task) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertTaskSQL),
		t.ID,
		t.OwnerID,
		t.Title,
		nullString(t.Description),
		t.Status,
		formatDueDate(t.DueDate),
		t.Priority,
		t.CreatedAt.UTC(),
		t.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert task for owner %q: %w", t.OwnerID, err)
	}
	return nil
}

// GetByID returns tt.ErrTaskNotFound when no row matches both id and owner.
func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID string) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(selectTaskSQL), id, ownerID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, tt.ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("select task %q: %w", id, err)
	}
	return t, nil
}

// List returns the owner's tasks matching the conjunction of the non-empty criteria, oldest first.
func (r *TaskRepository) List(ctx context.Context, ownerID string, f TaskFilter) ([]models.Task, error) {
	conds := []string{"owner_id = ?"}
	args := []any{ownerID}

	if f.DueDate != nil {
		conds = append(conds, "due_date = ?")
		args = append(args, f.DueDate.Format(models.DateLayout))
	}
	if f.Priority != nil {
		conds = append(conds, "priority = ?")
		args = append(args, *f.Priority)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}

	q := listTasksSQL + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks for owner %q: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable columns. Zero affected rows means tt.ErrTaskNotFound.
func (r *TaskRepository) Update(ctx context.Context, t models.Task) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(updateTaskSQL),
		t.Title,
		nullString(t.Description),
		t.Status,
		formatDueDate(t.DueDate),
		t.Priority,
		t.UpdatedAt.UTC(),
		t.ID,
		t.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update task %q: %w", t.ID, err)
	}
	return expectOneRow(res, tt.ErrTaskNotFound)
}

// Delete removes the row. Zero affected rows means tt.ErrTaskNotFound.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteTaskSQL), id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task %q: %w", id, err)
	}
	return expectOneRow(res, tt.ErrTaskNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (models.Task, error) {
	var (
		t           models.Task
		description sql.NullString
		dueDate     sql.NullString
	)
	if err := s.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Title,
		&description,
		&t.Status,
		&dueDate,
		&t.Priority,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return models.Task{}, err
	}
	t.Description = description.String
	if dueDate.Valid && dueDate.String != "" {
		d, err := time.Parse(models.DateLayout, dueDate.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse due_date %q: %w", dueDate.String, err)
		}
		t.DueDate = &d
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func formatDueDate(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Format(models.DateLayout), Valid: true}
}
