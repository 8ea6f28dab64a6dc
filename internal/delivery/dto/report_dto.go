package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type DoctorReportResponse struct {
	ID                 uint            `json:"id"`
	DoctorID           uint            `json:"doctor_id"`
	Month              int             `json:"month"`
	Year               int             `json:"year"`
	TotalPatientVisits int             `json:"total_patient_visits"`
	TotalAppointments  int             `json:"total_appointments"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

type MonthlySummaryResponse struct {
	TotalPatients     int             `json:"total_patients"`
	TotalAppointments int             `json:"total_appointments"`
	TotalEarnings     decimal.Decimal `json:"total_earnings"`
}
