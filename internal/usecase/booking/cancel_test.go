package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Jojo-brz/saas-barbearia/internal/booking"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
)

// stubStore backs the engine with a single booking, enough for the
// cancellation paths.
type stubStore struct {
	b *models.Booking
}

func (s *stubStore) ListActive(ctx context.Context, barberID uint, date string) ([]models.Booking, error) {
	if s.b != nil && s.b.BarberID == barberID && s.b.Date == date && s.b.Status == models.BookingStatusScheduled {
		return []models.Booking{*s.b}, nil
	}
	return nil, nil
}

func (s *stubStore) Insert(ctx context.Context, b *models.Booking) error {
	s.b = b
	return nil
}

func (s *stubStore) GetByPublicID(ctx context.Context, publicID string) (*models.Booking, error) {
	if s.b != nil && s.b.PublicID == publicID {
		b := *s.b
		return &b, nil
	}
	return nil, &domain.NotFoundError{Resource: "booking", ID: publicID}
}

func (s *stubStore) MarkCancelled(ctx context.Context, b *models.Booking, now time.Time) error {
	if s.b == nil || s.b.PublicID != b.PublicID {
		return &domain.NotFoundError{Resource: "booking", ID: b.PublicID}
	}
	s.b.Status = models.BookingStatusCancelled
	s.b.CancelledAt = &now
	return nil
}

func (s *stubStore) InStaffDayTx(ctx context.Context, barberID uint, date string, fn func(tx domain.Store) error) error {
	return fn(s)
}

var _ domain.Store = (*stubStore)(nil)

func scheduledBooking() *models.Booking {
	return &models.Booking{
		ID:            7,
		PublicID:      "pub-7",
		BarbershopID:  1,
		BarberID:      1,
		ServiceID:     2,
		CustomerName:  "Carlos",
		CustomerPhone: "11999990000",
		Date:          "2026-09-07",
		StartMin:      600,
		DurationMin:   60,
		Status:        models.BookingStatusScheduled,
	}
}

func newCancelUC(b *models.Booking) (*CancelBooking, *stubStore) {
	store := &stubStore{b: b}
	repo := &fakeRepo{booking: b}
	engine := domain.NewController(store, repo)
	return NewCancelBooking(repo, engine, nil, nil), store
}

func TestCancelByCustomerPhone(t *testing.T) {
	b := scheduledBooking()
	uc, store := newCancelUC(b)

	got, err := uc.Execute(context.Background(), CancelCommand{
		PublicID:   "pub-7",
		ShopID:     1,
		MatchPhone: "11999990000",
	})
	require.NoError(t, err)
	assert.Equal(t, "pub-7", got.PublicID)
	assert.Equal(t, models.BookingStatusCancelled, store.b.Status)
}

func TestCancelTrimsPhone(t *testing.T) {
	b := scheduledBooking()
	uc, store := newCancelUC(b)

	// The booking form stores the phone trimmed; a padded re-entry of
	// the same number must still match.
	_, err := uc.Execute(context.Background(), CancelCommand{
		PublicID:   "pub-7",
		ShopID:     1,
		MatchPhone: "  11999990000 ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, store.b.Status)
}

func TestCancelWrongPhone(t *testing.T) {
	uc, store := newCancelUC(scheduledBooking())

	_, err := uc.Execute(context.Background(), CancelCommand{
		PublicID:   "pub-7",
		ShopID:     1,
		MatchPhone: "11888880000",
	})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound, "a phone mismatch must not reveal the booking")
	assert.Equal(t, models.BookingStatusScheduled, store.b.Status)
}

func TestCancelOwnerSkipsPhone(t *testing.T) {
	b := scheduledBooking()
	uc, store := newCancelUC(b)

	ownerID := uint(3)
	_, err := uc.Execute(context.Background(), CancelCommand{
		PublicID: "pub-7",
		ShopID:   1,
		OwnerID:  &ownerID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, store.b.Status)
}

func TestCancelOtherShop(t *testing.T) {
	uc, _ := newCancelUC(scheduledBooking())

	_, err := uc.Execute(context.Background(), CancelCommand{
		PublicID:   "pub-7",
		ShopID:     2,
		MatchPhone: "11999990000",
	})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
