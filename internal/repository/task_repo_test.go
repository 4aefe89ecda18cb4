package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	tt "task_tracker"
	"task_tracker/internal/models"
	"task_tracker/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
)

var taskCols = []string{"id", "owner_id", "title", "description", "status", "due_date", "priority", "created_at", "updated_at"}

func newMockTaskRepo(t *testing.T) (*TaskRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = conn.Close()
	})
	return NewTaskRepository(conn, db.SQLite), mock
}

func TestTaskRepository_Create(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	due := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(insertTaskSQL)).
		WithArgs("t-1", "owner-a", "T1", nil, models.StatusTodo, "2025-05-10", 1, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.Task{
		ID: "t-1", OwnerID: "owner-a", Title: "T1", Status: models.StatusTodo,
		DueDate: &due, Priority: 1, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestTaskRepository_GetByID_ScopedByOwner(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)
		rows := sqlmock.NewRows(taskCols).
			AddRow("t-1", "owner-a", "T1", "desc", "DONE", "2025-05-10", 3, now, now)
		mock.ExpectQuery(regexp.QuoteMeta(selectTaskSQL)).
			WithArgs("t-1", "owner-a").
			WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), "t-1", "owner-a")
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Title != "T1" || got.Description != "desc" || got.Priority != 3 || got.Status != "DONE" {
			t.Fatalf("unexpected task: %+v", got)
		}
		if got.DueDate == nil || got.DueDate.Format(models.DateLayout) != "2025-05-10" {
			t.Fatalf("unexpected due date: %v", got.DueDate)
		}
	})

	t.Run("other owner looks missing", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectTaskSQL)).
			WithArgs("t-1", "owner-b").
			WillReturnRows(sqlmock.NewRows(taskCols))

		_, err := repo.GetByID(context.Background(), "t-1", "owner-b")
		if !errors.Is(err, tt.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestTaskRepository_List_BuildsConjunctivePredicate(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	due := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	prio := 1

	cases := []struct {
		name  string
		f     TaskFilter
		query string
		args  []driver.Value
	}{
		{
			name:  "owner only",
			f:     TaskFilter{},
			query: listTasksSQL + ` WHERE owner_id = ? ORDER BY created_at ASC, id ASC`,
			args:  []driver.Value{"owner-a"},
		},
		{
			name:  "due date and priority",
			f:     TaskFilter{DueDate: &due, Priority: &prio},
			query: listTasksSQL + ` WHERE owner_id = ? AND due_date = ? AND priority = ? ORDER BY created_at ASC, id ASC`,
			args:  []driver.Value{"owner-a", "2025-12-01", 1},
		},
		{
			name:  "status only",
			f:     TaskFilter{Status: models.StatusDone},
			query: listTasksSQL + ` WHERE owner_id = ? AND status = ? ORDER BY created_at ASC, id ASC`,
			args:  []driver.Value{"owner-a", "DONE"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockTaskRepo(t)

			rows := sqlmock.NewRows(taskCols).
				AddRow("t-1", "owner-a", "T1", nil, "TODO", nil, 1, now, now)
			mock.ExpectQuery("^" + regexp.QuoteMeta(tc.query) + "$").
				WithArgs(tc.args...).
				WillReturnRows(rows)

			got, err := repo.List(context.Background(), "owner-a", tc.f)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 1 || got[0].DueDate != nil || got[0].Description != "" {
				t.Fatalf("unexpected result: %+v", got)
			}
		})
	}
}

func TestTaskRepository_Update(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	task := models.Task{ID: "t-1", OwnerID: "owner-a", Title: "new", Status: "IN_PROGRESS", Priority: 2, UpdatedAt: now}

	t.Run("updated", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(updateTaskSQL)).
			WithArgs("new", nil, "IN_PROGRESS", nil, 2, now, "t-1", "owner-a").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Update(context.Background(), task); err != nil {
			t.Fatalf("Update: %v", err)
		}
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(updateTaskSQL)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Update(context.Background(), task); !errors.Is(err, tt.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteTaskSQL)).
			WithArgs("t-1", "owner-a").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), "t-1", "owner-a"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	t.Run("foreign owner deletes nothing", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteTaskSQL)).
			WithArgs("t-1", "owner-b").
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Delete(context.Background(), "t-1", "owner-b"); !errors.Is(err, tt.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newMockTaskRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(deleteTaskSQL)).
			WillReturnError(errors.New("down"))

		err := repo.Delete(context.Background(), "t-1", "owner-a")
		if err == nil || errors.Is(err, tt.ErrTaskNotFound) {
			t.Fatalf("expected raw error, got %v", err)
		}
	})
}
