package notification

import (
	"context"

	"adhhak/models"
)

// NotificationService tells the clinic about a newly created booking.
// Sends are best effort: callers log failures and move on, they never
// undo the booking.
type NotificationService interface {
	SendBookingNotification(ctx context.Context, req models.BookingRequest, eventLink string) error
}

// SendError reports a failed notification email. It is advisory by
// contract: logged by the orchestrator, never surfaced to the client.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return "notification email: " + e.Err.Error()
}

func (e *SendError) Unwrap() error { return e.Err }
