package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"energy_gauge/internal/models"
	"energy_gauge/internal/repository"
)

// EventLogService reads the gauge journal.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	// ErrInvalidFilter wraps every filter validation failure.
	ErrInvalidFilter = errors.New("invalid journal filter")

	errInvalidTimeRange = fmt.Errorf("%w: From must be <= To", ErrInvalidFilter)
)

var knownEventTypes = map[string]struct{}{
	models.EventReady:        {},
	models.EventReadyCleared: {},
	models.EventDisconnected: {},
	models.EventReconnected:  {},
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

// normalizeFilter converts times to UTC, canonicalizes the type and rejects
// inverted ranges or unknown types.
func normalizeFilter(f LogFilter) (LogFilter, error) {
	out := LogFilter{
		From: normalizeToUTC(f.From),
		To:   normalizeToUTC(f.To),
		Type: normalizeEventType(f.Type),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, errInvalidTimeRange
	}
	if out.Type != "" {
		if _, ok := knownEventTypes[out.Type]; !ok {
			return LogFilter{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidFilter, out.Type)
		}
	}
	return out, nil
}

// List returns journal entries matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.GaugeEvent, error) {
	nf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, nf.From, nf.To, nf.Type)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	return events, nil
}
