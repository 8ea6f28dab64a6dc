package usecase

import (
	"context"
	"errors"
	"sort"

	"doctor-appointment-platform/internal/converter"
	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReportExists   = errors.New("reports already exist for this period")
	ErrNoAppointments = errors.New("no appointments found for this period")
)

type ReportUsecase interface {
	// Generate aggregates completed and confirmed appointments of a calendar
	// month into one report row per active doctor, inside a single
	// transaction. A second call for the same period fails with
	// ErrReportExists.
	Generate(ctx context.Context, month, year int) ([]dto.DoctorReportResponse, error)
	List(ctx context.Context, filter *entity.ReportFilter) ([]dto.DoctorReportResponse, error)
	Summary(ctx context.Context, month, year int) (*dto.MonthlySummaryResponse, error)
}

type reportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	reportRepo      repository.ReportRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
) ReportUsecase {
	return &reportUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		reportRepo:      reportRepo,
	}
}

func (u *reportUsecase) Generate(ctx context.Context, month, year int) ([]dto.DoctorReportResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.reportRepo.ExistsForPeriod(tx, month, year)
	if err != nil {
		u.log.Warnf("Failed report existence check for %d/%d: %+v", month, year, err)
		return nil, err
	}
	if exists {
		return nil, ErrReportExists
	}

	appointments, err := u.appointmentRepo.FindActiveInPeriod(tx, month, year)
	if err != nil {
		u.log.Warnf("Failed to fetch appointments for %d/%d: %+v", month, year, err)
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrNoAppointments
	}

	// Fees are read at aggregation time, one lookup per doctor. A later fee
	// change silently rewrites how past periods would aggregate; a known
	// limitation carried over deliberately.
	doctorIDs := make([]uint, 0)
	seen := make(map[uint]bool)
	for _, appt := range appointments {
		if !seen[appt.DoctorID] {
			seen[appt.DoctorID] = true
			doctorIDs = append(doctorIDs, appt.DoctorID)
		}
	}

	doctors, err := u.userRepo.FindByIDs(tx, doctorIDs)
	if err != nil {
		u.log.Warnf("Failed to fetch doctor fees for %d/%d: %+v", month, year, err)
		return nil, err
	}
	fees := make(map[uint]decimal.Decimal, len(doctors))
	for i := range doctors {
		fees[doctors[i].ID] = doctors[i].Fee()
	}

	type metrics struct {
		appointments int
		patients     map[uint]bool
	}
	perDoctor := make(map[uint]*metrics)
	for _, appt := range appointments {
		m := perDoctor[appt.DoctorID]
		if m == nil {
			m = &metrics{patients: make(map[uint]bool)}
			perDoctor[appt.DoctorID] = m
		}
		m.appointments++
		m.patients[appt.PatientID] = true
	}

	reports := make([]*entity.DoctorReport, 0, len(perDoctor))
	for _, doctorID := range doctorIDs {
		m := perDoctor[doctorID]
		reports = append(reports, &entity.DoctorReport{
			DoctorID:           doctorID,
			Month:              month,
			Year:               year,
			TotalPatientVisits: len(m.patients),
			TotalAppointments:  m.appointments,
			TotalEarnings:      fees[doctorID].Mul(decimal.NewFromInt(int64(m.appointments))),
		})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].DoctorID < reports[j].DoctorID })

	if err := u.reportRepo.CreateBatch(tx, reports); err != nil {
		// Concurrent generation for the same period: the unique period index
		// rejects the second writer.
		if isDuplicateKeyError(err, "period") {
			return nil, ErrReportExists
		}
		u.log.Warnf("Failed to persist reports for %d/%d: %+v", month, year, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Generated %d doctor reports for %d/%d", len(reports), month, year)

	out := make([]entity.DoctorReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, *r)
	}
	return converter.ReportsToResponses(out), nil
}

func (u *reportUsecase) List(ctx context.Context, filter *entity.ReportFilter) ([]dto.DoctorReportResponse, error) {
	reports, err := u.reportRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list reports: %+v", err)
		return nil, err
	}
	return converter.ReportsToResponses(reports), nil
}

func (u *reportUsecase) Summary(ctx context.Context, month, year int) (*dto.MonthlySummaryResponse, error) {
	summary, err := u.reportRepo.Summarize(u.db.WithContext(ctx), month, year)
	if err != nil {
		u.log.Warnf("Failed to summarize reports: %+v", err)
		return nil, err
	}
	return converter.SummaryToResponse(summary), nil
}
