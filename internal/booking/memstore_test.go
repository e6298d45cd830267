package booking

import (
	"context"
	"sync"
	"time"

	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// memStore is an in-memory Store for tests. InStaffDayTx holds one
// coarse lock and buffers inserts, so a failed scope leaves nothing
// behind, matching the rollback discipline of the real adapter.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	bookings []models.Booking
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) ListActive(ctx context.Context, barberID uint, date string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listActiveLocked(barberID, date), nil
}

func (s *memStore) listActiveLocked(barberID uint, date string) []models.Booking {
	var out []models.Booking
	for _, b := range s.bookings {
		if b.BarberID == barberID && b.Date == date && b.Status == models.BookingStatusScheduled {
			out = append(out, b)
		}
	}
	return out
}

func (s *memStore) Insert(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(b)
	return nil
}

func (s *memStore) insertLocked(b *models.Booking) {
	s.nextID++
	b.ID = s.nextID
	s.bookings = append(s.bookings, *b)
}

func (s *memStore) GetByPublicID(ctx context.Context, publicID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].PublicID == publicID {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, &NotFoundError{Resource: "booking", ID: publicID}
}

func (s *memStore) MarkCancelled(ctx context.Context, b *models.Booking, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == b.ID {
			s.bookings[i].Status = models.BookingStatusCancelled
			s.bookings[i].CancelledAt = &now
			return nil
		}
	}
	return &NotFoundError{Resource: "booking", ID: b.PublicID}
}

func (s *memStore) InStaffDayTx(ctx context.Context, barberID uint, date string, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	for i := range tx.pending {
		s.insertLocked(&tx.pending[i])
	}
	return nil
}

// memTx sees the store under the transaction lock and buffers inserts
// until commit.
type memTx struct {
	store   *memStore
	pending []models.Booking
}

func (t *memTx) ListActive(ctx context.Context, barberID uint, date string) ([]models.Booking, error) {
	return t.store.listActiveLocked(barberID, date), nil
}

func (t *memTx) Insert(ctx context.Context, b *models.Booking) error {
	t.pending = append(t.pending, *b)
	return nil
}

func (t *memTx) GetByPublicID(ctx context.Context, publicID string) (*models.Booking, error) {
	for i := range t.store.bookings {
		if t.store.bookings[i].PublicID == publicID {
			b := t.store.bookings[i]
			return &b, nil
		}
	}
	return nil, &NotFoundError{Resource: "booking", ID: publicID}
}

func (t *memTx) MarkCancelled(ctx context.Context, b *models.Booking, now time.Time) error {
	for i := range t.store.bookings {
		if t.store.bookings[i].ID == b.ID {
			t.store.bookings[i].Status = models.BookingStatusCancelled
			t.store.bookings[i].CancelledAt = &now
			return nil
		}
	}
	return &NotFoundError{Resource: "booking", ID: b.PublicID}
}

func (t *memTx) InStaffDayTx(ctx context.Context, barberID uint, date string, fn func(tx Store) error) error {
	return fn(t)
}

// fixedSchedule serves one weekly schedule for every shop.
type fixedSchedule struct {
	weekly schedule.Weekly
}

func (f *fixedSchedule) WeeklySchedule(ctx context.Context, shopID uint) (schedule.Weekly, error) {
	return f.weekly, nil
}

var (
	_ Store          = (*memStore)(nil)
	_ Store          = (*memTx)(nil)
	_ ScheduleSource = (*fixedSchedule)(nil)
)
