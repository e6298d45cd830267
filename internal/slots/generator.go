// Package slots derives the bookable time grid for one staff member on
// one date. The output is advisory: the authoritative conflict check
// happens at admission time.
package slots

import (
	"github.com/Jojo-brz/saas-barbearia/internal/interval"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// DefaultStepMinutes is the grid granularity used when the operator has
// not tuned SLOT_STEP_MINUTES.
const DefaultStepMinutes = 30

// Slot is one candidate start time on the grid. Unavailable slots are
// kept so the booking page can render them disabled.
type Slot struct {
	Time      schedule.WallClock `json:"time"`
	Available bool               `json:"available"`
}

// Generate enumerates candidate start times at stepMinutes granularity
// from rule.Open up to (exclusive) rule.Close and marks each against
// the booked intervals and the day's break window.
//
// Candidates whose service would spill past closing time are excluded
// entirely, never offered as unavailable. A closed day yields an empty
// grid. The function is pure and safe to call without synchronization.
func Generate(rule schedule.DayRule, serviceDuration, stepMinutes int, booked []interval.Interval) []Slot {
	if !rule.Active || serviceDuration <= 0 {
		return nil
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}

	var breakWindow interval.Interval
	hasBreak := rule.HasBreak()
	if hasBreak {
		breakWindow = interval.Interval{Start: *rule.BreakStart, End: *rule.BreakEnd}
	}

	var grid []Slot
	for t := rule.Open; t < rule.Close; t += schedule.WallClock(stepMinutes) {
		occupied := interval.FromStart(t, serviceDuration)

		if occupied.End > rule.Close {
			continue
		}

		available := interval.OverlapsAny(occupied, booked) < 0
		if available && hasBreak && interval.Overlaps(occupied, breakWindow) {
			available = false
		}

		grid = append(grid, Slot{Time: t, Available: available})
	}

	return grid
}
