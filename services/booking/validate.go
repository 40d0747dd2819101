package booking

import (
	"regexp"
	"strings"
	"time"

	"adhhak/models"
)

const dateLayout = "2006-01-02"

var (
	timePattern  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate checks a booking request against the clinic's business rules.
// Every violated rule appends its message, so the client can report all
// problems at once. now is the reference instant and loc the clinic
// timezone; dates compare at day granularity.
func Validate(req models.BookingRequest, now time.Time, loc *time.Location) models.ValidationResult {
	var errs []string

	if req.Date == "" {
		errs = append(errs, "Date is required")
	} else if day, err := time.ParseInLocation(dateLayout, req.Date, loc); err != nil {
		errs = append(errs, "Invalid date format")
	} else {
		local := now.In(loc)
		today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		if day.Before(today) {
			errs = append(errs, "Date cannot be in the past")
		}
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			errs = append(errs, "Weekends are not available for booking")
		}
	}

	if req.Time == "" {
		errs = append(errs, "Time is required")
	} else if !timePattern.MatchString(req.Time) {
		errs = append(errs, "Invalid time format")
	}

	if len(strings.TrimSpace(req.Name)) < 2 {
		errs = append(errs, "Name must be at least 2 characters")
	}

	if req.Email == "" {
		errs = append(errs, "Email is required")
	} else if !emailPattern.MatchString(req.Email) {
		errs = append(errs, "Invalid email format")
	}

	if len(strings.TrimSpace(req.Phone)) < 8 {
		errs = append(errs, "Phone number is required and must be at least 8 characters")
	}

	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
