package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"adhhak/models"
)

const insertTimeout = 30 * time.Second

// EventInserter creates events in the clinic's Google Calendar.
type EventInserter interface {
	InsertEvent(ctx context.Context, event *gcal.Event) (*models.BookingConfirmation, error)
}

// DefaultCalendarService wraps the Google Calendar API client. The client
// is built once with the CredentialManager as its token source, so every
// call authenticates with the freshest access token.
type DefaultCalendarService struct {
	svc        *gcal.Service
	calendarID string
	logger     *zap.Logger
}

func NewDefaultCalendarService(ctx context.Context, manager *CredentialManager, calendarID string, logger *zap.Logger) (*DefaultCalendarService, error) {
	svc, err := gcal.NewService(ctx, option.WithTokenSource(manager))
	if err != nil {
		return nil, fmt.Errorf("calendar service init: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &DefaultCalendarService{svc: svc, calendarID: calendarID, logger: logger}, nil
}

// InsertEvent inserts the event and asks Google to notify all attendees.
func (s *DefaultCalendarService) InsertEvent(ctx context.Context, event *gcal.Event) (*models.BookingConfirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	created, err := s.svc.Events.Insert(s.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		// A token failure from the pre-call recheck surfaces here; keep
		// it an AuthError so the caller can tell the cases apart.
		var aErr *AuthError
		if errors.As(err, &aErr) {
			return nil, aErr
		}
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			return nil, &ProviderError{Code: gErr.Code, Message: gErr.Message, Err: err}
		}
		return nil, &ProviderError{Message: "event insert failed", Err: err}
	}

	s.logger.Info("Calendar event created",
		zap.String("eventId", created.Id),
		zap.String("calendarId", s.calendarID),
	)
	return &models.BookingConfirmation{
		EventID:   created.Id,
		EventLink: created.HtmlLink,
		HTMLLink:  created.HtmlLink,
	}, nil
}
