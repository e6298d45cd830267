package booking

import (
	"context"

	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// Repository is everything the booking use cases read from storage.
// The gorm adapter in infra/repository implements it.
type Repository interface {
	// -------- Catalog --------
	GetShopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)

	GetService(
		ctx context.Context,
		shopID uint,
		serviceID uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		shopID uint,
		barberID uint,
	) (*models.Barber, error)

	// -------- Schedule --------
	WeeklySchedule(ctx context.Context, shopID uint) (schedule.Weekly, error)

	// -------- Bookings (read-only) --------
	ListActive(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Booking, error)

	ListBookingsForDay(
		ctx context.Context,
		shopID uint,
		date string,
	) ([]models.Booking, error)

	GetByPublicID(ctx context.Context, publicID string) (*models.Booking, error)
}
