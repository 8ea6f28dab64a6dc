package entity

import "time"

// DoctorSpecialization is owned by exactly one doctor and is deleted with it.
type DoctorSpecialization struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uint      `gorm:"not null;index" json:"doctor_id"`
	Specialized string    `gorm:"type:varchar(200);not null" json:"specialized"`
	Description string    `gorm:"type:varchar(500)" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorSpecialization) TableName() string {
	return "doctor_specializations"
}
