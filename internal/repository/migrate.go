package repository

import "gorm.io/gorm"

// Migrate creates or updates every table the reservation core touches.
// The partial unique index on appointments is a database-level backstop
// behind the locked overlap check: if a race ever slips past the
// transaction, the insert still fails with a unique violation that
// BookWithNoOverlap maps back to ErrOverlap.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&eventModel{},
		&slotModel{},
		&serviceModel{},
		&appointmentModel{},
	); err != nil {
		return err
	}

	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
ON appointments (service_id, appointment_time)
WHERE status <> 'cancelled'
`).Error
}
