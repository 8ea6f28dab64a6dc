package usecase

import (
	"context"
	"errors"
	"time"

	"doctor-appointment-platform/internal/converter"
	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPastDate            = errors.New("appointment time must be in the future")
	ErrDoctorUnavailable   = errors.New("doctor is not available at this time")
	ErrSlotConflict        = errors.New("time slot already booked")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("status transition not allowed")
)

type AppointmentUsecase interface {
	// Book creates a pending appointment for the calling patient, enforcing
	// the future-date, doctor-role, availability and slot-conflict rules.
	Book(ctx context.Context, patientID uint, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, patientID uint, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, error)
	ListForDoctor(ctx context.Context, doctorID uint, skip, limit int) ([]dto.AppointmentResponse, error)
	// AdminUpdate mutates date/notes/status; the conflict check re-runs only
	// when the date changes.
	AdminUpdate(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	// DoctorUpdateStatus lets a doctor move their own appointment through the
	// status machine.
	DoctorUpdateStatus(ctx context.Context, doctorID, id uint, status entity.AppointmentStatus) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	loc             *time.Location
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	loc *time.Location,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		loc:             loc,
		now:             time.Now,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, patientID uint, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !req.AppointmentDate.UTC().After(u.now().UTC()) {
		return nil, ErrPastDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindDoctorByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !doctor.HasTimeslots() || !isWithinTimeslots(doctor.AvailableTimeslots, req.AppointmentDate, u.loc) {
		return nil, ErrDoctorUnavailable
	}

	conflict, err := u.appointmentRepo.FindConflict(tx, req.DoctorID, req.AppointmentDate, 0)
	if err != nil {
		u.log.Warnf("Failed conflict check for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotConflict
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
		Status:          entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// Two concurrent bookings can both pass the pre-check; the partial
		// unique slot index turns the loser into a conflict instead of a
		// duplicate row.
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, doctor=%d, patient=%d, at=%s",
		appointment.ID, appointment.DoctorID, appointment.PatientID,
		appointment.AppointmentDate.Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, patientID uint, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	filter.PatientID = patientID
	return u.List(ctx, filter)
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context, doctorID uint, skip, limit int) ([]dto.AppointmentResponse, error) {
	return u.List(ctx, &entity.AppointmentFilter{
		DoctorID: doctorID,
		Skip:     skip,
		Limit:    limit,
	})
}

func (u *appointmentUsecase) AdminUpdate(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if req.AppointmentDate != nil && !req.AppointmentDate.Equal(appointment.AppointmentDate) {
		conflict, err := u.appointmentRepo.FindConflict(tx, appointment.DoctorID, *req.AppointmentDate, appointment.ID)
		if err != nil {
			u.log.Warnf("Failed conflict check for appointment %d: %+v", id, err)
			return nil, err
		}
		if conflict != nil {
			return nil, ErrSlotConflict
		}
		appointment.AppointmentDate = *req.AppointmentDate
	}

	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if req.Status != nil {
		next := entity.AppointmentStatus(*req.Status)
		if !appointment.CanTransitionTo(next) {
			return nil, ErrInvalidTransition
		}
		appointment.Status = next
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DoctorUpdateStatus(ctx context.Context, doctorID, id uint, status entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	// Doctors only see their own appointments; leaking existence of someone
	// else's row would defeat that.
	if appointment == nil || appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}
	appointment.Status = status

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}
