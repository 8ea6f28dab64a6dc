package repository

import (
	"errors"
	"time"

	"doctor-appointment-platform/internal/domain/entity"
	domainRepo "doctor-appointment-platform/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindConflict tests the slot invariant: exact timestamp equality against the
// same doctor, cancelled rows excluded. Cancelling frees the slot.
func (r *appointmentRepository) FindConflict(db *gorm.DB, doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error) {
	query := db.Where("doctor_id = ? AND appointment_date = ? AND status <> ?",
		doctorID, at, entity.AppointmentStatusCancelled)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var appointment entity.Appointment
	err := query.First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Model(&entity.Appointment{})

	if filter.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("appointment_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("appointment_date <= ?", *filter.EndDate)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date").Offset(filter.Skip).Limit(limit).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) FindConfirmedBetween(db *gorm.DB, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("appointment_date >= ? AND appointment_date <= ? AND status = ?",
			start, end, entity.AppointmentStatusConfirmed).
		Order("appointment_date").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveInPeriod(db *gorm.DB, month, year int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("EXTRACT(MONTH FROM appointment_date) = ? AND EXTRACT(YEAR FROM appointment_date) = ?", month, year).
		Where("status IN ?", []entity.AppointmentStatus{
			entity.AppointmentStatusCompleted,
			entity.AppointmentStatusConfirmed,
		}).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
