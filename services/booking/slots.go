package booking

import "fmt"

// TimeSlots lists the bookable times between opening and closing hour at
// the configured interval. Purely presentational: nothing here checks
// whether a slot is already taken.
func TimeSlots(clinic Clinic) []string {
	interval := clinic.TimeSlotInterval
	if interval <= 0 {
		interval = 30
	}
	var slots []string
	for m := clinic.OpeningHour * 60; m < clinic.ClosingHour*60; m += interval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}
