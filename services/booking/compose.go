package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"adhhak/models"
)

// ComposeEvent turns a validated booking request into the calendar event
// for the clinic's Google Calendar. Deterministic, no I/O. The request is
// assumed valid: date and time already passed Validate.
func ComposeEvent(req models.BookingRequest, clinic Clinic) *gcal.Event {
	day, _ := time.ParseInLocation(dateLayout, req.Date, clinic.Location)
	hour, minute := parseClock(req.Time)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, clinic.Location)
	end := start.Add(time.Duration(clinic.AppointmentDurationHours) * time.Hour)

	var desc strings.Builder
	desc.WriteString("Nouveau rendez-vous client\n\n")
	fmt.Fprintf(&desc, "Client: %s\n", req.Name)
	fmt.Fprintf(&desc, "Email client: %s\n", req.Email)
	fmt.Fprintf(&desc, "Téléphone: %s\n", req.Phone)
	if req.Message != "" {
		fmt.Fprintf(&desc, "Message du client: %s\n", req.Message)
	}
	desc.WriteString("\n---\n")
	fmt.Fprintf(&desc, "Ce rendez-vous a été réservé via le site web %s.", clinic.Name)

	return &gcal.Event{
		Summary:     fmt.Sprintf("RDV - %s - Consultation gratuite", req.Name),
		Description: desc.String(),
		Location:    clinic.Address,
		ColorId:     "1",
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: clinic.Location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: clinic.Location.String(),
		},
		Attendees: []*gcal.EventAttendee{
			{Email: req.Email, DisplayName: req.Name},
			{Email: clinic.DentistEmail},
		},
		// Replace the calendar's default reminder policy entirely.
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
		},
	}
}

func parseClock(s string) (hour, minute int) {
	parts := strings.SplitN(s, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}
