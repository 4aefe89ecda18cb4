package service

import (
	"context"
	"strings"
	"time"

	tt "task_tracker"
	"task_tracker/internal/logger"
	"task_tracker/internal/models"
	"task_tracker/internal/repository"

	"github.com/google/uuid"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", tt.NewValidationError("from", "must be <= to")
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

// List returns the caller's own events, oldest first.
func (s *EventLogService) List(ctx context.Context, ownerID string, f LogFilter) ([]models.Event, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, ownerID, from, to, typ)
	if err != nil {
		return nil, wrapRepoErr("list events", err)
	}
	return events, nil
}

// recorder appends activity events on behalf of other services.
// A failed append is logged and otherwise ignored.
type recorder struct {
	events repository.EventRepo
	log    *logger.Logger
	now    func() time.Time
}

func newRecorder(events repository.EventRepo, log *logger.Logger) *recorder {
	return &recorder{events: events, log: log, now: time.Now}
}

func (r *recorder) record(ctx context.Context, ownerID, typ, desc string, meta map[string]any) {
	if r == nil || r.events == nil {
		return
	}
	e := models.Event{
		EventID:     uuid.NewString(),
		OwnerID:     ownerID,
		OccurredAt:  r.now().UTC(),
		Type:        typ,
		Description: desc,
	}
	if len(meta) > 0 {
		e.Metadata = meta
	}
	if err := r.events.Append(ctx, e); err != nil && r.log != nil {
		r.log.Warnw("event_append_failed", "type", typ, "owner_id", ownerID, "err", err)
	}
}
