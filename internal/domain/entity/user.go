package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UserType discriminates the three account roles sharing the users table.
type UserType string

const (
	UserTypeAdmin   UserType = "admin"
	UserTypeDoctor  UserType = "doctor"
	UserTypePatient UserType = "patient"
)

// StatusType is the soft lifecycle of an account. Users are never hard-deleted.
type StatusType string

const (
	StatusActive    StatusType = "active"
	StatusInactive  StatusType = "inactive"
	StatusSuspended StatusType = "suspended"
)

// User holds patients, doctors and admins in a single table. The doctor-only
// columns (license, experience, fee, timeslots) stay NULL for other roles.
type User struct {
	ID              uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName        string           `gorm:"type:varchar(255);not null" json:"full_name"`
	Email           string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Mobile          string           `gorm:"type:varchar(14);uniqueIndex;not null" json:"mobile"`
	HashedPassword  string           `gorm:"type:text;not null" json:"-"`
	UserType        UserType         `gorm:"type:varchar(20);not null;index" json:"user_type"`
	Division        string           `gorm:"type:varchar(100)" json:"division,omitempty"`
	District        string           `gorm:"type:varchar(100)" json:"district,omitempty"`
	Thana           string           `gorm:"type:varchar(100)" json:"thana,omitempty"`
	ProfileImage    string           `gorm:"type:varchar(255)" json:"profile_image,omitempty"`
	LicenseNumber   *string          `gorm:"type:varchar(100)" json:"license_number,omitempty"`
	ExperienceYears *int             `json:"experience_years,omitempty"`
	ConsultationFee *decimal.Decimal `gorm:"type:decimal(10,2)" json:"consultation_fee,omitempty"`
	// AvailableTimeslots is a comma-separated list of "HH:MM-HH:MM" ranges.
	AvailableTimeslots string     `gorm:"type:text" json:"available_timeslots,omitempty"`
	Status             StatusType `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	Specializations []DoctorSpecialization `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"specializations,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsDoctor() bool {
	return u.UserType == UserTypeDoctor
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// Fee returns the consultation fee, zero when unset.
func (u *User) Fee() decimal.Decimal {
	if u.ConsultationFee == nil {
		return decimal.Zero
	}
	return *u.ConsultationFee
}

// HasTimeslots reports whether the doctor declared any availability at all.
func (u *User) HasTimeslots() bool {
	return strings.TrimSpace(u.AvailableTimeslots) != ""
}

// ValidUserType reports whether s is one of the three known roles.
func ValidUserType(s string) bool {
	switch UserType(s) {
	case UserTypeAdmin, UserTypeDoctor, UserTypePatient:
		return true
	}
	return false
}
