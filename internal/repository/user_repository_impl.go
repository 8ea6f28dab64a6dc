package repository

import (
	"errors"

	"doctor-appointment-platform/internal/domain/entity"
	domainRepo "doctor-appointment-platform/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Specializations").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByMobile(db *gorm.DB, mobile string) (*entity.User, error) {
	var user entity.User
	err := db.Where("mobile = ?", mobile).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindDoctorByID(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Specializations").
		Where("id = ? AND user_type = ?", id, entity.UserTypeDoctor).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(db *gorm.DB, ids []uint) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []entity.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Save(user).Error
}

func (r *userRepository) SearchDoctors(db *gorm.DB, filter *entity.DoctorSearchFilter) ([]entity.User, error) {
	query := db.Model(&entity.User{}).
		Where("users.user_type = ?", entity.UserTypeDoctor)

	if filter.Specialization != "" {
		query = query.
			Joins("JOIN doctor_specializations ON doctor_specializations.doctor_id = users.id").
			Where("doctor_specializations.specialized ILIKE ?", "%"+filter.Specialization+"%").
			Distinct("users.*")
	}

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("users.full_name ILIKE ? OR users.email ILIKE ? OR users.mobile ILIKE ?", kw, kw, kw)
	}

	if filter.Division != "" {
		query = query.Where("users.division ILIKE ?", "%"+filter.Division+"%")
	}
	if filter.District != "" {
		query = query.Where("users.district ILIKE ?", "%"+filter.District+"%")
	}
	if filter.Thana != "" {
		query = query.Where("users.thana ILIKE ?", "%"+filter.Thana+"%")
	}

	if filter.IsAvailable != nil {
		if *filter.IsAvailable {
			query = query.Where("users.available_timeslots IS NOT NULL AND users.available_timeslots <> ''")
		} else {
			query = query.Where("users.available_timeslots IS NULL OR users.available_timeslots = ''")
		}
	}

	var doctors []entity.User
	err := query.Preload("Specializations").Order("users.full_name").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// ReplaceSpecializations clears and re-creates the doctor's specialization
// rows, mirroring the admin wholesale-update semantics.
func (r *userRepository) ReplaceSpecializations(db *gorm.DB, doctorID uint, specs []entity.DoctorSpecialization) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.DoctorSpecialization{}).Error; err != nil {
		return err
	}
	if len(specs) == 0 {
		return nil
	}
	for i := range specs {
		specs[i].DoctorID = doctorID
	}
	return db.Create(&specs).Error
}
