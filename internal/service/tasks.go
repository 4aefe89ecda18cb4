package service

import (
	"context"
	"time"

	"task_tracker/internal/models"
	"task_tracker/internal/repository"

	"github.com/google/uuid"
)

// TaskService is the ownership-scoped task store. ownerID always comes from a verified token.
type TaskService struct {
	repo   repository.TaskRepo
	events *recorder
	now    func() time.Time
}

func NewTaskService(repo repository.TaskRepo, events *recorder) *TaskService {
	return &TaskService{repo: repo, events: events, now: time.Now}
}

// Create stamps ownerID onto a new task. The input type has no owner field to override it.
func (s *TaskService) Create(ctx context.Context, ownerID string, in TaskInput) (models.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Task{}, err
	}
	valid, err := validateTaskInput(in)
	if err != nil {
		return models.Task{}, err
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	t := models.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       valid.Title,
		Description: valid.Description,
		Status:      valid.Status,
		DueDate:     valid.DueDate,
		Priority:    *valid.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return models.Task{}, wrapRepoErr("create task", err)
	}

	s.events.record(ctx, ownerID, models.EventTaskCreated, "Task created: "+t.Title, map[string]any{"task_id": t.ID})
	return t, nil
}

// FindOne returns tt.ErrTaskNotFound for both a missing id and a task owned by someone else.
func (s *TaskService) FindOne(ctx context.Context, ownerID, id string) (models.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Task{}, err
	}
	t, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return models.Task{}, wrapRepoErr("find task", err)
	}
	return t, nil
}

// Filter lists the owner's tasks matching every criterion that is set.
func (s *TaskService) Filter(ctx context.Context, ownerID string, f TaskFilter) ([]models.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	valid, err := validateTaskFilter(f)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.List(ctx, ownerID, repository.TaskFilter{
		DueDate:  valid.DueDate,
		Priority: valid.Priority,
		Status:   valid.Status,
	})
	if err != nil {
		return nil, wrapRepoErr("filter tasks", err)
	}
	return tasks, nil
}

// Update applies the allow-listed patch fields. The stored owner is never touched.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, p TaskPatch) (models.Task, error) {
	if err := requireOwner(ownerID); err != nil {
		return models.Task{}, err
	}
	patch, err := validateTaskPatch(p)
	if err != nil {
		return models.Task{}, err
	}

	t, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return models.Task{}, wrapRepoErr("find task", err)
	}

	changed := applyPatch(&t, patch)
	t.UpdatedAt = s.now().UTC().Truncate(time.Microsecond)

	// zero rows here means the task vanished between read and write
	if err := s.repo.Update(ctx, t); err != nil {
		return models.Task{}, wrapRepoErr("update task", err)
	}

	s.events.record(ctx, ownerID, models.EventTaskUpdated, "Task updated: "+t.Title,
		map[string]any{"task_id": t.ID, "fields": changed})
	return t, nil
}

// Remove deletes the task. Zero affected rows is tt.ErrTaskNotFound.
func (s *TaskService) Remove(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return wrapRepoErr("delete task", err)
	}
	s.events.record(ctx, ownerID, models.EventTaskDeleted, "Task deleted", map[string]any{"task_id": id})
	return nil
}

func applyPatch(t *models.Task, p TaskPatch) []string {
	var changed []string
	if p.Title != nil {
		t.Title = *p.Title
		changed = append(changed, "title")
	}
	if p.Description != nil {
		t.Description = *p.Description
		changed = append(changed, "description")
	}
	if p.Status != nil {
		t.Status = *p.Status
		changed = append(changed, "status")
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
		changed = append(changed, "due_date")
	case p.DueDate != nil:
		t.DueDate = p.DueDate
		changed = append(changed, "due_date")
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
		changed = append(changed, "priority")
	}
	return changed
}
