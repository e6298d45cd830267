package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jojo-brz/saas-barbearia/internal/booking"
	"github.com/Jojo-brz/saas-barbearia/internal/httperr"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

// BookingGormRepository backs the admission engine with Postgres. Row
// locks inside InStaffDayTx serialize same-day reads; the overlap
// exclusion constraint installed by internal/db is the backstop for
// multi-instance deployments, where an in-process mutex cannot reach.
type BookingGormRepository struct {
	db      *gorm.DB
	locking bool
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// booking.Store
// --------------------------------------------------

func (r *BookingGormRepository) ListActive(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx)
	if r.locking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.Booking
	if err := q.
		Where(
			"barber_id = ? AND date = ? AND status = ?",
			barberID, date, models.BookingStatusScheduled,
		).
		Order("start_min ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *BookingGormRepository) Insert(ctx context.Context, b *models.Booking) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if httperr.IsExclusionConflict(err) {
		// Another instance won the slot between our check and insert.
		return &booking.ConflictError{}
	}
	return err
}

func (r *BookingGormRepository) GetByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &booking.NotFoundError{Resource: "booking", ID: publicID}
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) MarkCancelled(
	ctx context.Context,
	b *models.Booking,
	now time.Time,
) error {

	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &now
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) InStaffDayTx(
	ctx context.Context,
	barberID uint,
	date string,
	fn func(tx booking.Store) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx, locking: true})
	})
}

// --------------------------------------------------
// booking.ScheduleSource
// --------------------------------------------------

func (r *BookingGormRepository) WeeklySchedule(
	ctx context.Context,
	shopID uint,
) (schedule.Weekly, error) {

	var days []models.ScheduleDay
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", shopID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	return models.WeeklyFromDays(days), nil
}

// --------------------------------------------------
// Catalog reads
// --------------------------------------------------

func (r *BookingGormRepository) GetShopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &booking.NotFoundError{Resource: "barbershop", ID: slug}
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	shopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = true", serviceID, shopID).
		First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &booking.NotFoundError{Resource: "service", ID: itoa(serviceID)}
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	shopID uint,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = true", barberID, shopID).
		First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &booking.NotFoundError{Resource: "barber", ID: itoa(barberID)}
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	shopID uint,
	date string,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND date = ?", shopID, date).
		Order("start_min ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// Compile-time checks
var (
	_ booking.Store          = (*BookingGormRepository)(nil)
	_ booking.ScheduleSource = (*BookingGormRepository)(nil)
)
