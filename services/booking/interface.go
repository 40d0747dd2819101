package booking

import (
	"context"

	"adhhak/models"
	"adhhak/services/calendar"
	"adhhak/services/notification"
)

// BookingService creates appointments in the clinic calendar.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error)
	TimeSlots() []string
}

// Authenticator guarantees a fresh calendar credential before an event
// is created.
type Authenticator interface {
	EnsureValid(ctx context.Context) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Auth     Authenticator
	Calendar calendar.EventInserter
	Notifier notification.NotificationService
	Clinic   Clinic
}
