package booking

import "strings"

// ValidationError rejects a booking whose request violates business
// rules. It carries every violation, already phrased for the client.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "booking validation failed: " + strings.Join(e.Errors, "; ")
}
