package booking

import (
	"context"
	"strings"

	"github.com/Jojo-brz/saas-barbearia/internal/audit"
	domain "github.com/Jojo-brz/saas-barbearia/internal/booking"
	"github.com/Jojo-brz/saas-barbearia/internal/cache"
	"github.com/Jojo-brz/saas-barbearia/internal/metrics"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
)

type CancelCommand struct {
	PublicID string

	// Scope checks. ShopID must match the booking. OwnerID is set for
	// owner-initiated cancellation; MatchPhone for customer-initiated
	// (the booking page asks for the phone used when booking).
	ShopID     uint
	OwnerID    *uint
	MatchPhone string
}

type CancelBooking struct {
	repo   Repository
	engine *domain.Controller
	audit  *audit.Dispatcher
	cache  *cache.SlotsCache
}

func NewCancelBooking(
	repo Repository,
	engine *domain.Controller,
	auditor *audit.Dispatcher,
	slotsCache *cache.SlotsCache,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		engine: engine,
		audit:  auditor,
		cache:  slotsCache,
	}
}

func (uc *CancelBooking) Execute(ctx context.Context, in CancelCommand) (*models.Booking, error) {
	b, err := uc.repo.GetByPublicID(ctx, in.PublicID)
	if err != nil {
		return nil, err
	}

	// A booking from another shop does not exist as far as the caller
	// is concerned.
	if b.BarbershopID != in.ShopID {
		return nil, &domain.NotFoundError{Resource: "booking", ID: in.PublicID}
	}

	// Admission stored the phone trimmed; compare like with like.
	if in.OwnerID == nil && strings.TrimSpace(in.MatchPhone) != b.CustomerPhone {
		return nil, &domain.NotFoundError{Resource: "booking", ID: in.PublicID}
	}

	cancelled, err := uc.engine.Cancel(ctx, in.PublicID)
	if err != nil {
		return nil, err
	}

	metrics.IncCancellation()
	uc.cache.Invalidate(ctx, cancelled.BarberID, cancelled.Date)
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.ShopID,
		UserID:       in.OwnerID,
		Action:       "booking_cancelled",
		Entity:       "booking",
		EntityID:     &cancelled.ID,
	})

	return cancelled, nil
}
