package booking

import (
	"fmt"
	"time"

	"adhhak/config"
)

// Clinic is the static clinic configuration a booking is validated and
// composed against.
type Clinic struct {
	Name                     string
	Address                  string
	DentistEmail             string
	AppointmentDurationHours int
	OpeningHour              int
	ClosingHour              int
	TimeSlotInterval         int
	Location                 *time.Location
}

// ClinicFromConfig resolves the clinic settings, including its timezone.
func ClinicFromConfig(cfg config.Config) (Clinic, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return Clinic{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.TimeZone, err)
	}
	return Clinic{
		Name:                     cfg.ClinicName,
		Address:                  cfg.ClinicLocation,
		DentistEmail:             cfg.DentistEmail,
		AppointmentDurationHours: cfg.AppointmentDurationHours,
		OpeningHour:              cfg.OpeningHour,
		ClosingHour:              cfg.ClosingHour,
		TimeSlotInterval:         cfg.TimeSlotInterval,
		Location:                 loc,
	}, nil
}
