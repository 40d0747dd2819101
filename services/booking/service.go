package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"adhhak/models"
	"adhhak/utils"
)

// CreateBooking runs the full booking flow: validation, credential
// assurance, event composition, calendar insert and the notification
// email. Validation and calendar failures abort the booking; a failed
// notification does not, because the calendar event is the authoritative
// side effect and it already exists.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error) {
	logger := utils.GetLogger()

	result := Validate(req, time.Now(), s.Clinic.Location)
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	if err := s.Auth.EnsureValid(ctx); err != nil {
		return nil, err
	}

	event := ComposeEvent(req, s.Clinic)

	conf, err := s.Calendar.InsertEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	if err := s.Notifier.SendBookingNotification(ctx, req, conf.EventLink); err != nil {
		logger.Warn("Booking notification email failed",
			zap.String("eventId", conf.EventID),
			zap.Error(err),
		)
	}

	return conf, nil
}

// TimeSlots exposes the clinic's bookable times to the frontend.
func (s *DefaultBookingService) TimeSlots() []string {
	return TimeSlots(s.Clinic)
}
