package db

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Jojo-brz/saas-barbearia/internal/config"
	"github.com/Jojo-brz/saas-barbearia/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.ScheduleDay{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Backstop for multi-instance deployments: Postgres itself rejects
	// two scheduled bookings for the same barber whose minute ranges
	// intersect, regardless of which process inserted them. Booting
	// without it would leave double bookings possible across instances,
	// so a failed DDL is fatal.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create btree_gist extension")
	}

	err = db.Exec(`
        ALTER TABLE bookings
        ADD CONSTRAINT bookings_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            date WITH =,
            int4range(start_min, start_min + duration_min) WITH &&
        )
        WHERE (status = 'scheduled')
    `).Error
	if err != nil && !isDuplicateObject(err) {
		log.Fatal().Err(err).Msg("failed to create booking overlap constraint")
	}

	return db
}

// isDuplicateObject reports whether err is Postgres telling us the
// constraint already exists from a previous boot (SQLSTATE 42710 or
// 42P07). Anything else is a real failure.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42710" || pgErr.Code == "42P07"
	}
	return false
}
