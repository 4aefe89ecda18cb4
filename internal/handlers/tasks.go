package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	tt "task_tracker"
	"task_tracker/internal/models"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest is the task creation payload. Owner fields in the body are ignored.
type CreateTaskRequest struct {
	Title       string `json:"title" example:"Write quarterly report"`
	Description string `json:"description,omitempty" example:"Numbers from finance first"`
	// TODO | IN_PROGRESS | DONE, defaults to TODO
	Status string `json:"status,omitempty" example:"TODO"`
	// YYYY-MM-DD or RFC3339, truncated to the day
	DueDate  string `json:"due_date,omitempty" example:"2025-09-30"`
	Priority *int   `json:"priority,omitempty" example:"3"`
}

// UpdateTaskRequest lists the patchable fields; omitted or null fields keep their value.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" example:"IN_PROGRESS"`
	// YYYY-MM-DD or RFC3339; an empty string clears the due date
	DueDate  *string `json:"due_date,omitempty" example:"2025-10-01"`
	Priority *int    `json:"priority,omitempty" example:"5"`
}

// parseDueDate accepts a bare date or a full RFC3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(models.DateLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func dueDateError() error {
	return tt.NewValidationError("due_date", "must be YYYY-MM-DD or RFC3339")
}

// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      CreateTaskRequest  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/tasks [post]
// @Security     BearerAuth
func (h *Handler) createTask(c *gin.Context) {
	var req CreateTaskRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	in := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.DueDate != "" {
		d, err := parseDueDate(req.DueDate)
		if err != nil {
			h.respondError(c, dueDateError(), "task_create_failed")
			return
		}
		in.DueDate = &d
	}

	task, err := h.services.Tasks.Create(c.Request.Context(), callerID(c), in)
	if err != nil {
		h.respondError(c, err, "task_create_failed")
		return
	}
	c.JSON(http.StatusCreated, task)
}

// @Summary      List tasks
// @Description  Absent criteria are not filtered on
// @Tags         tasks
// @Produce      json
// @Param        due_date  query     string  false  "YYYY-MM-DD"  example(2025-09-30)
// @Param        priority  query     int     false  "0..10"
// @Param        status    query     string  false  "Task status"  Enums(TODO,IN_PROGRESS,DONE)
// @Success      200       {object}  map[string]interface{}  "count, tasks"
// @Failure      400       {object}  map[string]interface{}
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/v1/tasks [get]
// @Security     BearerAuth
func (h *Handler) listTasks(c *gin.Context) {
	var f service.TaskFilter
	if qs := c.Query("due_date"); qs != "" {
		d, err := parseDueDate(qs)
		if err != nil {
			h.respondError(c, dueDateError(), "task_list_failed")
			return
		}
		f.DueDate = &d
	}
	if qs := c.Query("priority"); qs != "" {
		p, err := strconv.Atoi(qs)
		if err != nil {
			h.respondError(c, tt.NewValidationError("priority", "must be an integer"), "task_list_failed")
			return
		}
		f.Priority = &p
	}
	f.Status = c.Query("status")

	tasks, err := h.services.Filter(c.Request.Context(), callerID(c), f)
	if err != nil {
		h.respondError(c, err, "task_list_failed", "filter", f)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/tasks/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.services.FindOne(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "task_get_failed", "task_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Update task
// @Description  Omitted or null fields are left unchanged. Send "due_date": "" to remove the due date.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task id"
// @Param        body  body      UpdateTaskRequest  true  "Fields to change"
// @Success      200   {object}  models.Task
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/tasks/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	switch {
	case req.DueDate == nil:
	case strings.TrimSpace(*req.DueDate) == "":
		patch.ClearDueDate = true
	default:
		d, err := parseDueDate(*req.DueDate)
		if err != nil {
			h.respondError(c, dueDateError(), "task_update_failed")
			return
		}
		patch.DueDate = &d
	}

	task, err := h.services.Tasks.Update(c.Request.Context(), callerID(c), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err, "task_update_failed", "task_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Delete task
// @Tags         tasks
// @Param        id   path  string  true  "Task id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/tasks/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTask(c *gin.Context) {
	if err := h.services.Remove(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.respondError(c, err, "task_delete_failed", "task_id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}
