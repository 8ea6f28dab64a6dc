package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DoctorReport is one doctor's earnings/visit summary for a calendar month.
// At most one row may exist per (doctor, month, year); a unique index backs
// the application-level pre-check.
type DoctorReport struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID           uint            `gorm:"not null;index" json:"doctor_id"`
	Month              int             `gorm:"not null" json:"month"`
	Year               int             `gorm:"not null" json:"year"`
	TotalPatientVisits int             `gorm:"not null;default:0" json:"total_patient_visits"`
	TotalAppointments  int             `gorm:"not null;default:0" json:"total_appointments"`
	TotalEarnings      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_earnings"`
	GeneratedAt        time.Time       `gorm:"autoCreateTime" json:"generated_at"`

	Doctor *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorReport) TableName() string {
	return "doctor_reports"
}
