package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tt "task_tracker"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const queryTimeHint = "use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"

var (
	queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

	errQueryTime = errors.New("unrecognised time format")
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List activity events
// @Description  Returns only the caller's own events. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).
// @Tags         events
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query   string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day."  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(USER_REGISTERED,LOGIN_FAILED,PASSWORD_CHANGED,TASK_CREATED,TASK_UPDATED,TASK_DELETED)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]interface{}  "error, fields"
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/events [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	var f service.LogFilter
	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			h.respondError(c, tt.NewValidationError("from", queryTimeHint), "events_list_failed")
			return
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			h.respondError(c, tt.NewValidationError("to", queryTimeHint), "events_list_failed")
			return
		}
		if isDateOnly(qs) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	f.Type = c.Query("type")

	// range and type are checked by the event log itself
	events, err := h.services.EventLog.List(c.Request.Context(), callerID(c), f)
	if err != nil {
		h.respondError(c, err, "events_list_failed", "from", f.From, "to", f.To, "type", f.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseQueryTime accepts any of queryTimeLayouts and returns the instant in UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errQueryTime, s)
}
