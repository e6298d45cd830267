package models

import (
	"time"

	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// ScheduleDay is one weekday row of a shop's weekly schedule. Times are
// stored as "HH:MM" strings; validation happens before rows are written,
// so reads convert without re-checking invariants.
type ScheduleDay struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_schedule_shop_weekday,unique" json:"barbershop_id"`

	Weekday int `gorm:"index:idx_schedule_shop_weekday,unique" json:"weekday"`

	Active     bool   `json:"active"`
	Open       string `gorm:"size:5" json:"open"`
	Close      string `gorm:"size:5" json:"close"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rule converts the row to its domain form. Malformed time strings make
// the day inactive rather than erroring; the write boundary is where
// bad input is rejected.
func (d ScheduleDay) Rule() schedule.DayRule {
	if !d.Active {
		return schedule.DayRule{Active: false}
	}

	open, err1 := schedule.ParseWallClock(d.Open)
	close, err2 := schedule.ParseWallClock(d.Close)
	if err1 != nil || err2 != nil {
		return schedule.DayRule{Active: false}
	}

	rule := schedule.DayRule{Active: true, Open: open, Close: close}

	if d.BreakStart != "" && d.BreakEnd != "" {
		bs, err1 := schedule.ParseWallClock(d.BreakStart)
		be, err2 := schedule.ParseWallClock(d.BreakEnd)
		if err1 == nil && err2 == nil {
			rule.BreakStart = &bs
			rule.BreakEnd = &be
		}
	}

	return rule
}

// WeeklyFromDays assembles the domain schedule from stored rows.
func WeeklyFromDays(days []ScheduleDay) schedule.Weekly {
	weekly := make(schedule.Weekly, len(days))
	for _, d := range days {
		weekly[time.Weekday(d.Weekday)] = d.Rule()
	}
	return weekly
}
