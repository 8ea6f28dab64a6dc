package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
)

func TestGetUserViews(t *testing.T) {
	t.Run("patient view hides doctor columns", func(t *testing.T) {
		db, _ := newTestDB(t)
		userRepo := &mockUserRepo{
			FindByIDFn: func(id uint) (*entity.User, error) {
				return &entity.User{ID: 3, FullName: "Karim", UserType: entity.UserTypePatient}, nil
			},
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		view, err := u.GetUser(context.Background(), 3)
		assert.NoError(t, err)
		patient, ok := view.(*dto.PatientResponse)
		assert.True(t, ok, "expected a patient view, got %T", view)
		assert.Equal(t, "Karim", patient.FullName)
	})

	t.Run("doctor view carries practice fields", func(t *testing.T) {
		db, _ := newTestDB(t)
		userRepo := &mockUserRepo{
			FindByIDFn: func(id uint) (*entity.User, error) {
				d := testDoctor()
				return d, nil
			},
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		view, err := u.GetUser(context.Background(), 7)
		assert.NoError(t, err)
		doctor, ok := view.(*dto.DoctorResponse)
		assert.True(t, ok, "expected a doctor view, got %T", view)
		assert.Equal(t, "09:00-12:00,14:00-17:00", doctor.AvailableTimeslots)
	})

	t.Run("missing user", func(t *testing.T) {
		db, _ := newTestDB(t)
		userRepo := &mockUserRepo{
			FindByIDFn: func(id uint) (*entity.User, error) { return nil, nil },
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		_, err := u.GetUser(context.Background(), 404)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUpdateUserOwnership(t *testing.T) {
	t.Run("patient cannot update someone else", func(t *testing.T) {
		db, _ := newTestDB(t)
		u := NewUserUsecase(db, testLogger(), &mockUserRepo{})

		caller := &entity.User{ID: 3, UserType: entity.UserTypePatient}
		_, err := u.UpdateUser(context.Background(), caller, 4, &dto.UpdateUserRequest{})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("admin may update anyone", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		userRepo := &mockUserRepo{
			FindByIDFn: func(id uint) (*entity.User, error) {
				return &entity.User{ID: 4, FullName: "Old Name", UserType: entity.UserTypePatient}, nil
			},
			UpdateFn: func(user *entity.User) error { return nil },
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		caller := &entity.User{ID: 1, UserType: entity.UserTypeAdmin}
		name := "New Name"
		view, err := u.UpdateUser(context.Background(), caller, 4, &dto.UpdateUserRequest{FullName: &name})
		assert.NoError(t, err)
		assert.Equal(t, "New Name", view.(*dto.PatientResponse).FullName)
	})

	t.Run("region change is validated", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		userRepo := &mockUserRepo{
			FindByIDFn: func(id uint) (*entity.User, error) {
				return &entity.User{ID: 3, UserType: entity.UserTypePatient}, nil
			},
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		caller := &entity.User{ID: 3, UserType: entity.UserTypePatient}
		division := "Atlantis"
		_, err := u.UpdateUser(context.Background(), caller, 3, &dto.UpdateUserRequest{Division: &division})
		assert.ErrorIs(t, err, ErrUnknownRegion)
	})
}

func TestAdminUpdateDoctor(t *testing.T) {
	t.Run("replaces the specialization list", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var replaced []entity.DoctorSpecialization
		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return testDoctor(), nil },
			UpdateFn:         func(user *entity.User) error { return nil },
			ReplaceSpecializationsFn: func(doctorID uint, specs []entity.DoctorSpecialization) error {
				replaced = specs
				return nil
			},
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		resp, err := u.AdminUpdateDoctor(context.Background(), 7, &dto.AdminUpdateDoctorRequest{
			Specializations: []dto.SpecializationInput{
				{Specialized: "Cardiology"},
				{Specialized: "Internal Medicine", Description: "General practice"},
			},
		})
		assert.NoError(t, err)
		assert.Len(t, replaced, 2)
		assert.Len(t, resp.Specializations, 2)
		assert.Equal(t, "Cardiology", resp.Specializations[0].Specialized)
	})

	t.Run("status outside the enum", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return testDoctor(), nil },
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		status := "banned"
		_, err := u.AdminUpdateDoctor(context.Background(), 7, &dto.AdminUpdateDoctorRequest{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("target must be a doctor", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		userRepo := &mockUserRepo{
			FindDoctorByIDFn: func(id uint) (*entity.User, error) { return nil, nil },
		}
		u := NewUserUsecase(db, testLogger(), userRepo)

		_, err := u.AdminUpdateDoctor(context.Background(), 3, &dto.AdminUpdateDoctorRequest{})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}
