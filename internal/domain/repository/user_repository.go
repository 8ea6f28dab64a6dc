package repository

import (
	"doctor-appointment-platform/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByMobile(db *gorm.DB, mobile string) (*entity.User, error)
	FindDoctorByID(db *gorm.DB, id uint) (*entity.User, error)
	FindByIDs(db *gorm.DB, ids []uint) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	SearchDoctors(db *gorm.DB, filter *entity.DoctorSearchFilter) ([]entity.User, error)
	ReplaceSpecializations(db *gorm.DB, doctorID uint, specs []entity.DoctorSpecialization) error
}
