package booking

import "fmt"

// ValidationError rejects malformed or out-of-bounds input: a start
// outside business hours, a break overlap, a missing customer field.
// The caller fixes the request; nothing is retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid booking request: " + e.Reason
}

// ConflictError rejects an admission whose interval is no longer free.
// The caller is expected to re-fetch the slot grid and pick again.
type ConflictError struct {
	ConflictingBookingID string
}

func (e *ConflictError) Error() string {
	if e.ConflictingBookingID == "" {
		return "time slot already booked"
	}
	return fmt.Sprintf("time slot already booked (conflicts with %s)", e.ConflictingBookingID)
}

// NotFoundError reports a reference to a nonexistent record.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
