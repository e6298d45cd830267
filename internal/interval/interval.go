// Package interval implements half-open time-of-day interval
// arithmetic shared by slot generation and conflict checking.
package interval

import "github.com/Jojo-brz/saas-barbearia/internal/schedule"

// Interval is a half-open window [Start, End) within one day.
// End itself is not occupied, so back-to-back bookings never conflict.
type Interval struct {
	Start schedule.WallClock `json:"start"`
	End   schedule.WallClock `json:"end"`
}

// FromStart builds the interval occupied by a service of the given
// duration starting at t.
func FromStart(t schedule.WallClock, durationMinutes int) Interval {
	return Interval{Start: t, End: t + schedule.WallClock(durationMinutes)}
}

// Overlaps reports whether a and b share any minute. Touching
// endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Within reports whether inner lies entirely inside outer.
func Within(inner, outer Interval) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// OverlapsAny returns the index of the first member of set overlapping
// a, or -1 when none does.
func OverlapsAny(a Interval, set []Interval) int {
	for i, b := range set {
		if Overlaps(a, b) {
			return i
		}
	}
	return -1
}
