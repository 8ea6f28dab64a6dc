package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func testDoctor() *entity.User {
	return &entity.User{
		ID:                 7,
		FullName:           "Dr. Rahim",
		UserType:           entity.UserTypeDoctor,
		AvailableTimeslots: "09:00-12:00,14:00-17:00",
	}
}

func TestBookAppointment(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Dhaka")
	inSlot := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		appointmentRepo := &mockAppointmentRepo{
			FindConflictFn: func(doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error) {
				assert.Equal(t, uint(7), doctorID)
				assert.Equal(t, uint(0), excludeID)
				return nil, nil
			},
			CreateFn: func(appointment *entity.Appointment) error {
				appointment.ID = 42
				return nil
			},
		}
		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return testDoctor(), nil },
		}

		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, userRepo, loc).(*appointmentUsecase)
		u.now = fixedNow

		resp, err := u.Book(context.Background(), 3, &dto.BookAppointmentRequest{
			DoctorID:        7,
			AppointmentDate: inSlot,
			Notes:           "first visit",
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(42), resp.ID)
		assert.Equal(t, uint(3), resp.PatientID)
		assert.Equal(t, string(entity.AppointmentStatusPending), resp.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("past date is rejected before any query", func(t *testing.T) {
		db, mock := newTestDB(t)

		u := NewAppointmentUsecase(db, testLogger(), &mockAppointmentRepo{}, &mockUserRepo{}, loc).(*appointmentUsecase)
		u.now = fixedNow

		_, err := u.Book(context.Background(), 3, &dto.BookAppointmentRequest{
			DoctorID:        7,
			AppointmentDate: time.Date(2026, 2, 1, 10, 0, 0, 0, loc),
		})
		assert.ErrorIs(t, err, ErrPastDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown doctor", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return nil, nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), &mockAppointmentRepo{}, userRepo, loc).(*appointmentUsecase)
		u.now = fixedNow

		_, err := u.Book(context.Background(), 3, &dto.BookAppointmentRequest{
			DoctorID:        99,
			AppointmentDate: inSlot,
		})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("outside declared timeslots", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return testDoctor(), nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), &mockAppointmentRepo{}, userRepo, loc).(*appointmentUsecase)
		u.now = fixedNow

		_, err := u.Book(context.Background(), 3, &dto.BookAppointmentRequest{
			DoctorID:        7,
			AppointmentDate: time.Date(2026, 3, 10, 13, 30, 0, 0, loc),
		})
		assert.ErrorIs(t, err, ErrDoctorUnavailable)
	})

	t.Run("doctor with no declared timeslots", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		doctor := testDoctor()
		doctor.AvailableTimeslots = "  "
		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return doctor, nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), &mockAppointmentRepo{}, userRepo, loc).(*appointmentUsecase)
		u.now = fixedNow

		_, err := u.Book(context.Background(), 3, &dto.BookAppointmentRequest{
			DoctorID:        7,
			AppointmentDate: inSlot,
		})
		assert.ErrorIs(t, err, ErrDoctorUnavailable)
	})

	t.Run("occupied slot", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appointmentRepo := &mockAppointmentRepo{
			FindConflictFn: func(doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error) {
				return &entity.Appointment{ID: 1, DoctorID: doctorID, AppointmentDate: at}, nil
			},
		}
		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return testDoctor(), nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, userRepo, loc).(*appointmentUsecase)
		u.now = fixedNow

		_, err := u.Book(context.Background(), 3, &dto.BookAppointmentRequest{
			DoctorID:        7,
			AppointmentDate: inSlot,
		})
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("losing a concurrent booking race reads as a conflict", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appointmentRepo := &mockAppointmentRepo{
			FindConflictFn: func(doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error) {
				return nil, nil
			},
			CreateFn: func(appointment *entity.Appointment) error {
				return duplicateKeyError("appointments_slot_unique")
			},
		}
		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return testDoctor(), nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, userRepo, loc).(*appointmentUsecase)
		u.now = fixedNow

		_, err := u.Book(context.Background(), 3, &dto.BookAppointmentRequest{
			DoctorID:        7,
			AppointmentDate: inSlot,
		})
		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}

func TestAdminUpdateAppointment(t *testing.T) {
	loc := time.UTC
	existing := func() *entity.Appointment {
		return &entity.Appointment{
			ID:              5,
			PatientID:       3,
			DoctorID:        7,
			AppointmentDate: time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
			Status:          entity.AppointmentStatusPending,
		}
	}

	t.Run("status transition within the machine", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) { return existing(), nil },
			UpdateFn:   func(appointment *entity.Appointment) error { return nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		status := "confirmed"
		resp, err := u.AdminUpdate(context.Background(), 5, &dto.UpdateAppointmentRequest{Status: &status})
		assert.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("forbidden transition", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) { return existing(), nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		status := "completed" // pending cannot jump straight to completed
		_, err := u.AdminUpdate(context.Background(), 5, &dto.UpdateAppointmentRequest{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("date change re-runs the conflict check excluding itself", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		newDate := time.Date(2026, 3, 11, 10, 0, 0, 0, loc)
		var checkedExclude uint
		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) { return existing(), nil },
			FindConflictFn: func(doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error) {
				checkedExclude = excludeID
				return nil, nil
			},
			UpdateFn: func(appointment *entity.Appointment) error { return nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		resp, err := u.AdminUpdate(context.Background(), 5, &dto.UpdateAppointmentRequest{AppointmentDate: &newDate})
		assert.NoError(t, err)
		assert.Equal(t, uint(5), checkedExclude)
		assert.True(t, resp.AppointmentDate.Equal(newDate))
	})

	t.Run("unchanged date skips the conflict check", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		sameDate := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) { return existing(), nil },
			FindConflictFn: func(doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error) {
				t.Fatal("conflict check must not run for an unchanged date")
				return nil, nil
			},
			UpdateFn: func(appointment *entity.Appointment) error { return nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		_, err := u.AdminUpdate(context.Background(), 5, &dto.UpdateAppointmentRequest{AppointmentDate: &sameDate})
		assert.NoError(t, err)
	})

	t.Run("missing appointment", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) { return nil, nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		_, err := u.AdminUpdate(context.Background(), 404, &dto.UpdateAppointmentRequest{})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestDoctorUpdateStatus(t *testing.T) {
	loc := time.UTC

	t.Run("doctor confirms own appointment", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) {
				return &entity.Appointment{ID: 5, DoctorID: 7, Status: entity.AppointmentStatusPending}, nil
			},
			UpdateFn: func(appointment *entity.Appointment) error { return nil },
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		resp, err := u.DoctorUpdateStatus(context.Background(), 7, 5, entity.AppointmentStatusConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("someone else's appointment reads as not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) {
				return &entity.Appointment{ID: 5, DoctorID: 8, Status: entity.AppointmentStatusPending}, nil
			},
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		_, err := u.DoctorUpdateStatus(context.Background(), 7, 5, entity.AppointmentStatusConfirmed)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appointmentRepo := &mockAppointmentRepo{
			FindByIDFn: func(id uint) (*entity.Appointment, error) {
				return &entity.Appointment{ID: 5, DoctorID: 7, Status: entity.AppointmentStatusCancelled}, nil
			},
		}
		u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, loc)

		_, err := u.DoctorUpdateStatus(context.Background(), 7, 5, entity.AppointmentStatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestListForPatientForcesOwnership(t *testing.T) {
	db, _ := newTestDB(t)

	var gotFilter *entity.AppointmentFilter
	appointmentRepo := &mockAppointmentRepo{
		ListFn: func(filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, &mockUserRepo{}, time.UTC)

	_, err := u.ListForPatient(context.Background(), 3, &entity.AppointmentFilter{PatientID: 999})
	assert.NoError(t, err)
	assert.Equal(t, uint(3), gotFilter.PatientID)
}
