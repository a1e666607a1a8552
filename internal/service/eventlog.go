package service

import (
	"context"
	"strings"
	"time"

	"hotel_climate/internal/models"
	"hotel_climate/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// LogFilter supports history filtering by time range, type and room.
type LogFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // "", "CHECK_IN", "CHECK_OUT", "AC_ON", "AC_OFF", "SETTINGS_CHANGE"
	RoomID int       // 0 means every room
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
func normalizeAndValidateFilter(f LogFilter) (repository.EventFilter, error) {
	out := repository.EventFilter{
		From:   normalizeToUTC(f.From),
		To:     normalizeToUTC(f.To),
		Type:   normalizeEventType(f.Type),
		RoomID: f.RoomID,
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return repository.EventFilter{}, ErrInvalidTimeRange
	}
	if out.RoomID < 0 {
		out.RoomID = 0
	}
	return out, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RoomEvent, error) {
	filter, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, filter)
}
