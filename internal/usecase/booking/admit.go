package booking

import (
	"context"
	"errors"

	"github.com/Jojo-brz/saas-barbearia/internal/audit"
	domain "github.com/Jojo-brz/saas-barbearia/internal/booking"
	"github.com/Jojo-brz/saas-barbearia/internal/cache"
	"github.com/Jojo-brz/saas-barbearia/internal/httperr"
	"github.com/Jojo-brz/saas-barbearia/internal/metrics"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
	"github.com/Jojo-brz/saas-barbearia/internal/timezone"
)

type AdmitCommand struct {
	Shop     *models.Barbershop
	BarberID uint

	ServiceID uint

	Date string // "2006-01-02"
	Time string // "15:04"

	CustomerName  string
	CustomerPhone string
}

// AdmitBooking resolves the catalog, runs the authoritative admission
// and fires the deferred side effects (audit, cache bust, metrics)
// outside the atomic scope.
type AdmitBooking struct {
	repo   Repository
	engine *domain.Controller
	audit  *audit.Dispatcher
	cache  *cache.SlotsCache
}

func NewAdmitBooking(
	repo Repository,
	engine *domain.Controller,
	auditor *audit.Dispatcher,
	slotsCache *cache.SlotsCache,
) *AdmitBooking {
	return &AdmitBooking{
		repo:   repo,
		engine: engine,
		audit:  auditor,
		cache:  slotsCache,
	}
}

func (uc *AdmitBooking) Execute(ctx context.Context, in AdmitCommand) (*models.Booking, error) {
	svc, err := uc.repo.GetService(ctx, in.Shop.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, in.Shop.ID, in.BarberID)
	if err != nil {
		return nil, err
	}
	// Deactivated barbers stay listed on old bookings but take no new
	// ones.
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	start, err := schedule.ParseWallClock(in.Time)
	if err != nil {
		return nil, &domain.ValidationError{Reason: "invalid_time"}
	}

	// Shop-local: a date before the shop's "today" is gone for good.
	if in.Date < timezone.Today(in.Shop.Timezone) {
		return nil, &domain.ValidationError{Reason: "date_in_past"}
	}

	b, err := uc.engine.Admit(ctx, domain.AdmitInput{
		ShopID:        in.Shop.ID,
		BarberID:      in.BarberID,
		ServiceID:     svc.ID,
		Date:          in.Date,
		Start:         start,
		DurationMin:   svc.DurationMin,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
	})

	if err != nil {
		uc.observeFailure(in, err)
		return nil, err
	}

	metrics.IncAdmission(metrics.OutcomeCommitted)
	uc.cache.Invalidate(ctx, in.BarberID, in.Date)
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.Shop.ID,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &b.ID,
		Metadata: map[string]any{
			"barber_id": in.BarberID,
			"date":      in.Date,
			"start":     start.String(),
		},
	})

	return b, nil
}

func (uc *AdmitBooking) observeFailure(in AdmitCommand, err error) {
	var conflict *domain.ConflictError
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &conflict):
		metrics.IncAdmission(metrics.OutcomeConflict)
		uc.audit.Dispatch(audit.Event{
			BarbershopID: in.Shop.ID,
			Action:       "booking_conflict",
			Entity:       "booking",
			Metadata: map[string]any{
				"barber_id":     in.BarberID,
				"date":          in.Date,
				"time":          in.Time,
				"conflicts_with": conflict.ConflictingBookingID,
			},
		})
	case errors.As(err, &invalid):
		metrics.IncAdmission(metrics.OutcomeInvalid)
	default:
		metrics.IncAdmission(metrics.OutcomeError)
	}
}
