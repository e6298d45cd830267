package schedule

import (
	"fmt"
	"time"
)

// DayRule is the operating-hours configuration for one weekday.
// Break fields are optional and always come in pairs.
type DayRule struct {
	Active     bool       `json:"active"`
	Open       WallClock  `json:"open"`
	Close      WallClock  `json:"close"`
	BreakStart *WallClock `json:"break_start,omitempty"`
	BreakEnd   *WallClock `json:"break_end,omitempty"`
}

// HasBreak reports whether both break boundaries are configured.
func (r DayRule) HasBreak() bool {
	return r.BreakStart != nil && r.BreakEnd != nil
}

// Weekly maps each weekday to its rule. A missing weekday is closed.
type Weekly map[time.Weekday]DayRule

// RuleFor returns the rule governing a calendar date. Absent weekdays
// yield a synthetic inactive rule rather than an error.
func (w Weekly) RuleFor(date time.Time) DayRule {
	rule, ok := w[date.Weekday()]
	if !ok {
		return DayRule{Active: false}
	}
	return rule
}

// InvalidScheduleError reports which day and field broke the ordering
// invariant on a schedule write.
type InvalidScheduleError struct {
	Day   time.Weekday
	Field string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s %s", e.Day, e.Field)
}

// Validate enforces the write-time invariants: an active day must have
// open < close, and a break window must satisfy
// open <= break_start < break_end <= close. Inactive days are not
// inspected beyond field ranges.
func (w Weekly) Validate() error {
	for day, rule := range w {
		if err := validateDay(day, rule); err != nil {
			return err
		}
	}
	return nil
}

func validateDay(day time.Weekday, rule DayRule) error {
	if !rule.Active {
		return nil
	}

	if !rule.Open.Valid() {
		return &InvalidScheduleError{Day: day, Field: "open"}
	}
	if !rule.Close.Valid() {
		return &InvalidScheduleError{Day: day, Field: "close"}
	}
	if rule.Open >= rule.Close {
		return &InvalidScheduleError{Day: day, Field: "open"}
	}

	if rule.BreakStart == nil && rule.BreakEnd == nil {
		return nil
	}
	if rule.BreakStart == nil || rule.BreakEnd == nil {
		return &InvalidScheduleError{Day: day, Field: "break"}
	}

	bs, be := *rule.BreakStart, *rule.BreakEnd
	if bs < rule.Open || bs >= be {
		return &InvalidScheduleError{Day: day, Field: "break_start"}
	}
	if be > rule.Close {
		return &InvalidScheduleError{Day: day, Field: "break_end"}
	}
	return nil
}
