package repository

import (
	"doctor-appointment-platform/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlySummary aggregates all doctor reports matching a filter. Sums are
// zero (not null) when nothing matches.
type MonthlySummary struct {
	TotalPatients     int             `json:"total_patients"`
	TotalAppointments int             `json:"total_appointments"`
	TotalEarnings     decimal.Decimal `json:"total_earnings"`
}

type ReportRepository interface {
	// ExistsForPeriod reports whether any report row exists for (month, year).
	ExistsForPeriod(db *gorm.DB, month, year int) (bool, error)
	CreateBatch(db *gorm.DB, reports []*entity.DoctorReport) error
	List(db *gorm.DB, filter *entity.ReportFilter) ([]entity.DoctorReport, error)
	Summarize(db *gorm.DB, month, year int) (*MonthlySummary, error)
}
