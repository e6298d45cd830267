package models

import (
	"time"

	"github.com/Jojo-brz/saas-barbearia/internal/interval"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

const (
	BookingStatusScheduled = "scheduled"
	BookingStatusCancelled = "cancelled"
)

// Booking is a committed appointment. DurationMin is captured from the
// service at admission time; later edits to the service never change
// the interval an existing booking occupies. Rows are never rescheduled
// in place: a reschedule is a cancel plus a new admission.
type Booking struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `gorm:"index:idx_booking_barber_date" json:"barber_id"`
	ServiceID    uint `json:"service_id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`

	// Shop-local calendar date ("2006-01-02") and start minute of day.
	Date        string `gorm:"size:10;index:idx_booking_barber_date" json:"date"`
	StartMin    int    `json:"start_min"`
	DurationMin int    `json:"duration_min"`

	Status      string     `gorm:"size:20;default:'scheduled'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Start returns the booking's start as a wall-clock value.
func (b Booking) Start() schedule.WallClock {
	return schedule.WallClock(b.StartMin)
}

// Interval is the half-open window the booking occupies on its date.
func (b Booking) Interval() interval.Interval {
	return interval.FromStart(b.Start(), b.DurationMin)
}
