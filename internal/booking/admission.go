// Package booking is the sole write path for bookings. It guarantees
// that at most one scheduled booking occupies any (barber, interval)
// pair, even under concurrent admissions for the same slot.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jojo-brz/saas-barbearia/internal/interval"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

const dateLayout = "2006-01-02"

type AdmitInput struct {
	ShopID    uint
	BarberID  uint
	ServiceID uint

	Date  string // "2006-01-02", shop-local
	Start schedule.WallClock

	// Captured from the service at admission time, never re-derived.
	DurationMin int

	CustomerName  string
	CustomerPhone string
}

// Controller admits or rejects booking requests atomically. Admissions
// for one (barber, date) key are serialized by an in-process mutex on
// top of the store's own transaction scope, so two concurrent requests
// for overlapping intervals can never both observe "no conflict".
type Controller struct {
	store     Store
	schedules ScheduleSource
	locks     *keyedMutex
}

func NewController(store Store, schedules ScheduleSource) *Controller {
	return &Controller{
		store:     store,
		schedules: schedules,
		locks:     newKeyedMutex(),
	}
}

// Admit re-validates the proposed slot against the live schedule and
// booking set and either commits the booking or rejects it. The client
// grid is advisory only; this is the authoritative check.
func (c *Controller) Admit(ctx context.Context, in AdmitInput) (*models.Booking, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, &ValidationError{Reason: "invalid_date"}
	}

	weekly, err := c.schedules.WeeklySchedule(ctx, in.ShopID)
	if err != nil {
		return nil, fmt.Errorf("load weekly schedule: %w", err)
	}

	rule := weekly.RuleFor(date)
	proposed := interval.FromStart(in.Start, in.DurationMin)
	if err := checkAgainstRule(rule, proposed); err != nil {
		return nil, err
	}

	b := &models.Booking{
		PublicID:      uuid.NewString(),
		BarbershopID:  in.ShopID,
		BarberID:      in.BarberID,
		ServiceID:     in.ServiceID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Date:          in.Date,
		StartMin:      int(in.Start),
		DurationMin:   in.DurationMin,
		Status:        models.BookingStatusScheduled,
	}

	unlock := c.locks.Lock(staffDayKey(in.BarberID, in.Date))
	defer unlock()

	err = c.store.InStaffDayTx(ctx, in.BarberID, in.Date, func(tx Store) error {
		active, err := tx.ListActive(ctx, in.BarberID, in.Date)
		if err != nil {
			return err
		}

		for _, existing := range active {
			if interval.Overlaps(proposed, existing.Interval()) {
				return &ConflictError{ConflictingBookingID: existing.PublicID}
			}
		}

		return tx.Insert(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// Cancel marks the booking cancelled. The freed interval is visible to
// slot generation and admission as soon as the call returns.
func (c *Controller) Cancel(ctx context.Context, publicID string) (*models.Booking, error) {
	b, err := c.store.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if b.Status != models.BookingStatusScheduled {
		return nil, &ValidationError{Reason: "invalid_state"}
	}

	if err := c.store.MarkCancelled(ctx, b, time.Now()); err != nil {
		return nil, err
	}
	return b, nil
}

func validateInput(in AdmitInput) error {
	if in.DurationMin <= 0 {
		return &ValidationError{Reason: "non_positive_duration"}
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return &ValidationError{Reason: "missing_customer_name"}
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return &ValidationError{Reason: "missing_customer_phone"}
	}
	if !in.Start.Valid() {
		return &ValidationError{Reason: "invalid_start_time"}
	}
	return nil
}

// checkAgainstRule rejects requests that fall outside business hours or
// into the break window. Covers stale schedule caches and tampered
// client-side slot selection.
func checkAgainstRule(rule schedule.DayRule, proposed interval.Interval) error {
	if !rule.Active {
		return &ValidationError{Reason: "closed_day"}
	}

	day := interval.Interval{Start: rule.Open, End: rule.Close}
	if !interval.Within(proposed, day) {
		return &ValidationError{Reason: "outside_business_hours"}
	}

	if rule.HasBreak() {
		breakWindow := interval.Interval{Start: *rule.BreakStart, End: *rule.BreakEnd}
		if interval.Overlaps(proposed, breakWindow) {
			return &ValidationError{Reason: "overlaps_break"}
		}
	}
	return nil
}

func staffDayKey(barberID uint, date string) string {
	return fmt.Sprintf("%d|%s", barberID, date)
}
