package booking

import (
	"context"
	"time"

	domain "github.com/Jojo-brz/saas-barbearia/internal/booking"
	"github.com/Jojo-brz/saas-barbearia/internal/cache"
	"github.com/Jojo-brz/saas-barbearia/internal/interval"
	"github.com/Jojo-brz/saas-barbearia/internal/metrics"
	"github.com/Jojo-brz/saas-barbearia/internal/slots"
)

type SlotQuery struct {
	ShopID    uint
	BarberID  uint
	ServiceID uint
	Date      string // "2006-01-02"
}

// GetSlotGrid computes the advisory slot grid for the booking page.
// The grid may go stale the moment it is rendered; the admission path
// re-validates, so no locking happens here.
type GetSlotGrid struct {
	repo  Repository
	cache *cache.SlotsCache
	step  int
}

func NewGetSlotGrid(repo Repository, slotsCache *cache.SlotsCache, stepMinutes int) *GetSlotGrid {
	if stepMinutes <= 0 {
		stepMinutes = slots.DefaultStepMinutes
	}
	return &GetSlotGrid{repo: repo, cache: slotsCache, step: stepMinutes}
}

func (uc *GetSlotGrid) Execute(ctx context.Context, in SlotQuery) ([]slots.Slot, error) {
	svc, err := uc.repo.GetService(ctx, in.ShopID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetBarber(ctx, in.ShopID, in.BarberID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, &domain.ValidationError{Reason: "invalid_date"}
	}

	if grid, ok := uc.cache.Get(ctx, in.ShopID, in.BarberID, in.Date, in.ServiceID, uc.step); ok {
		metrics.IncGridGenerated(metrics.GridSourceCache)
		return grid, nil
	}

	weekly, err := uc.repo.WeeklySchedule(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}
	rule := weekly.RuleFor(date)

	active, err := uc.repo.ListActive(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}

	booked := make([]interval.Interval, len(active))
	for i, b := range active {
		booked[i] = b.Interval()
	}

	grid := slots.Generate(rule, svc.DurationMin, uc.step, booked)
	metrics.IncGridGenerated(metrics.GridSourceComputed)

	uc.cache.Put(ctx, in.ShopID, in.BarberID, in.Date, in.ServiceID, uc.step, grid)

	return grid, nil
}
