package repository

import (
	"doctor-appointment-platform/internal/domain/entity"
	domainRepo "doctor-appointment-platform/internal/domain/repository"

	"gorm.io/gorm"
)

type reportRepository struct{}

func NewReportRepository() domainRepo.ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) ExistsForPeriod(db *gorm.DB, month, year int) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorReport{}).
		Where("month = ? AND year = ?", month, year).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reportRepository) CreateBatch(db *gorm.DB, reports []*entity.DoctorReport) error {
	if len(reports) == 0 {
		return nil
	}
	return db.Create(&reports).Error
}

func (r *reportRepository) List(db *gorm.DB, filter *entity.ReportFilter) ([]entity.DoctorReport, error) {
	query := db.Model(&entity.DoctorReport{})

	if filter.Month != 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}

	var reports []entity.DoctorReport
	err := query.Order("year DESC, month DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) Summarize(db *gorm.DB, month, year int) (*domainRepo.MonthlySummary, error) {
	query := db.Model(&entity.DoctorReport{}).
		Select("COALESCE(SUM(total_patient_visits), 0) as total_patients, COALESCE(SUM(total_appointments), 0) as total_appointments, COALESCE(SUM(total_earnings), 0) as total_earnings")

	if month != 0 {
		query = query.Where("month = ?", month)
	}
	if year != 0 {
		query = query.Where("year = ?", year)
	}

	var summary domainRepo.MonthlySummary
	if err := query.Scan(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
