package models

// BookingRequest is the payload submitted by the booking form. It lives
// only for the duration of one booking call; the calendar event it
// produces is the system of record.
type BookingRequest struct {
	Date    string `json:"date"` // calendar day, YYYY-MM-DD
	Time    string `json:"time"` // 24-hour HH:MM
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// ValidationResult collects every business-rule violation of a booking
// request so the client can surface all of them at once.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// BookingConfirmation identifies the calendar event created for a booking.
type BookingConfirmation struct {
	EventID   string `json:"eventId"`
	EventLink string `json:"eventLink"`
	HTMLLink  string `json:"htmlLink"`
}
