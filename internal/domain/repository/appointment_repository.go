package repository

import (
	"time"

	"doctor-appointment-platform/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	// FindConflict returns the non-cancelled appointment occupying the exact
	// (doctor, timestamp) slot, excluding excludeID when non-zero. Nil when
	// the slot is free.
	FindConflict(db *gorm.DB, doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error)
	List(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// FindConfirmedBetween returns confirmed appointments with their patient
	// and doctor preloaded, for the reminder window.
	FindConfirmedBetween(db *gorm.DB, start, end time.Time) ([]entity.Appointment, error)
	// FindActiveInPeriod returns completed and confirmed appointments whose
	// date falls in the given calendar month.
	FindActiveInPeriod(db *gorm.DB, month, year int) ([]entity.Appointment, error)
}
