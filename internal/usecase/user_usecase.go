package usecase

import (
	"context"
	"errors"

	"doctor-appointment-platform/internal/converter"
	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotOwner       = errors.New("not allowed to modify this resource")
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrInvalidStatus  = errors.New("invalid status value")
)

type UserUsecase interface {
	GetUser(ctx context.Context, id uint) (interface{}, error)
	// UpdateUser applies a self-update; callers may only modify their own
	// record unless they are admins.
	UpdateUser(ctx context.Context, caller *entity.User, id uint, req *dto.UpdateUserRequest) (interface{}, error)
	SetProfileImage(ctx context.Context, id uint, filename string) error
	SearchDoctors(ctx context.Context, filter *entity.DoctorSearchFilter) ([]dto.DoctorResponse, error)
	AdminUpdateDoctor(ctx context.Context, doctorID uint, req *dto.AdminUpdateDoctorRequest) (*dto.DoctorResponse, error)
}

type userUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewUserUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
	}
}

func (u *userUsecase) GetUser(ctx context.Context, id uint) (interface{}, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return userView(user), nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, caller *entity.User, id uint, req *dto.UpdateUserRequest) (interface{}, error) {
	if caller.ID != id && !caller.IsAdmin() {
		return nil, ErrNotOwner
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := applyUserUpdate(user, req); err != nil {
		return nil, err
	}

	if req.Division != nil || req.District != nil || req.Thana != nil {
		if err := validateRegion(user.Division, user.District, user.Thana); err != nil {
			return nil, err
		}
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailTaken
		}
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrMobileTaken
		}
		u.log.Warnf("Failed to update user %d: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return userView(user), nil
}

func (u *userUsecase) SetProfileImage(ctx context.Context, id uint, filename string) error {
	result := u.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("profile_image", filename)
	if result.Error != nil {
		u.log.Warnf("Failed to set profile image for user %d: %+v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *userUsecase) SearchDoctors(ctx context.Context, filter *entity.DoctorSearchFilter) ([]dto.DoctorResponse, error) {
	doctors, err := u.userRepo.SearchDoctors(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorsToResponses(doctors), nil
}

func (u *userUsecase) AdminUpdateDoctor(ctx context.Context, doctorID uint, req *dto.AdminUpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindDoctorByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := applyUserUpdate(doctor, &req.UpdateUserRequest); err != nil {
		return nil, err
	}

	if req.Division != nil || req.District != nil || req.Thana != nil {
		if err := validateRegion(doctor.Division, doctor.District, doctor.Thana); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		status := entity.StatusType(*req.Status)
		switch status {
		case entity.StatusActive, entity.StatusInactive, entity.StatusSuspended:
			doctor.Status = status
		default:
			return nil, ErrInvalidStatus
		}
	}

	if err := u.userRepo.Update(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailTaken
		}
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrMobileTaken
		}
		u.log.Warnf("Failed to update doctor %d: %+v", doctorID, err)
		return nil, err
	}

	if req.Specializations != nil {
		specs := make([]entity.DoctorSpecialization, 0, len(req.Specializations))
		for _, s := range req.Specializations {
			specs = append(specs, entity.DoctorSpecialization{
				Specialized: s.Specialized,
				Description: s.Description,
			})
		}
		if err := u.userRepo.ReplaceSpecializations(tx, doctorID, specs); err != nil {
			u.log.Warnf("Failed to replace specializations for doctor %d: %+v", doctorID, err)
			return nil, err
		}
		doctor.Specializations = specs
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToDoctorResponse(doctor), nil
}

// applyUserUpdate copies the set fields of a partial update onto the entity,
// re-hashing the password when it changes.
func applyUserUpdate(user *entity.User, req *dto.UpdateUserRequest) error {
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.HashedPassword = string(hashed)
	}
	if req.Division != nil {
		user.Division = *req.Division
	}
	if req.District != nil {
		user.District = *req.District
	}
	if req.Thana != nil {
		user.Thana = *req.Thana
	}
	if req.LicenseNumber != nil {
		user.LicenseNumber = req.LicenseNumber
	}
	if req.ExperienceYears != nil {
		user.ExperienceYears = req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		user.ConsultationFee = req.ConsultationFee
	}
	if req.AvailableTimeslots != nil {
		user.AvailableTimeslots = *req.AvailableTimeslots
	}
	return nil
}

func userView(user *entity.User) interface{} {
	return converter.UserToView(user)
}
