package booking

import (
	"context"
	"time"

	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// Store is the durable record of committed bookings. Implementations
// must make InStaffDayTx atomic with respect to concurrent calls for
// the same (barber, date): a conflict check plus insert running inside
// it can never interleave with another admission for that key.
type Store interface {
	// ListActive returns the scheduled bookings for one barber on one
	// date, ordered by start time. Inside InStaffDayTx the rows are
	// read under the transaction's locking discipline.
	ListActive(ctx context.Context, barberID uint, date string) ([]models.Booking, error)

	Insert(ctx context.Context, b *models.Booking) error

	GetByPublicID(ctx context.Context, publicID string) (*models.Booking, error)

	// MarkCancelled flips the booking to cancelled; its interval stops
	// counting for generation and admission immediately.
	MarkCancelled(ctx context.Context, b *models.Booking, now time.Time) error

	// InStaffDayTx runs fn atomically for the given (barber, date) key.
	// fn receives a Store bound to the transaction scope. If fn errors
	// or ctx is cancelled the whole scope rolls back; no partial state
	// is ever observable.
	InStaffDayTx(ctx context.Context, barberID uint, date string, fn func(tx Store) error) error
}

// ScheduleSource supplies the weekly schedule the engine validates
// admissions against.
type ScheduleSource interface {
	WeeklySchedule(ctx context.Context, shopID uint) (schedule.Weekly, error)
}
