package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/domain/repository"
	"doctor-appointment-platform/internal/service"
)

// newTestDB wires gorm over a sqlmock connection so usecase transactions run
// against scripted Begin/Commit/Rollback expectations.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func duplicateKeyError(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type mockUserRepo struct {
	CreateFn                 func(user *entity.User) error
	FindByIDFn               func(id uint) (*entity.User, error)
	FindByEmailFn            func(email string) (*entity.User, error)
	FindByMobileFn           func(mobile string) (*entity.User, error)
	FindDoctorByIDFn         func(id uint) (*entity.User, error)
	FindByIDsFn              func(ids []uint) ([]entity.User, error)
	UpdateFn                 func(user *entity.User) error
	SearchDoctorsFn          func(filter *entity.DoctorSearchFilter) ([]entity.User, error)
	ReplaceSpecializationsFn func(doctorID uint, specs []entity.DoctorSpecialization) error
}

func (m *mockUserRepo) Create(_ *gorm.DB, user *entity.User) error {
	return m.CreateFn(user)
}

func (m *mockUserRepo) FindByID(_ *gorm.DB, id uint) (*entity.User, error) {
	return m.FindByIDFn(id)
}

func (m *mockUserRepo) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	return m.FindByEmailFn(email)
}

func (m *mockUserRepo) FindByMobile(_ *gorm.DB, mobile string) (*entity.User, error) {
	return m.FindByMobileFn(mobile)
}

func (m *mockUserRepo) FindDoctorByID(_ *gorm.DB, id uint) (*entity.User, error) {
	return m.FindDoctorByIDFn(id)
}

func (m *mockUserRepo) FindByIDs(_ *gorm.DB, ids []uint) ([]entity.User, error) {
	return m.FindByIDsFn(ids)
}

func (m *mockUserRepo) Update(_ *gorm.DB, user *entity.User) error {
	return m.UpdateFn(user)
}

func (m *mockUserRepo) SearchDoctors(_ *gorm.DB, filter *entity.DoctorSearchFilter) ([]entity.User, error) {
	return m.SearchDoctorsFn(filter)
}

func (m *mockUserRepo) ReplaceSpecializations(_ *gorm.DB, doctorID uint, specs []entity.DoctorSpecialization) error {
	return m.ReplaceSpecializationsFn(doctorID, specs)
}

type mockAppointmentRepo struct {
	CreateFn               func(appointment *entity.Appointment) error
	FindByIDFn             func(id uint) (*entity.Appointment, error)
	FindConflictFn         func(doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error)
	ListFn                 func(filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	UpdateFn               func(appointment *entity.Appointment) error
	FindConfirmedBetweenFn func(start, end time.Time) ([]entity.Appointment, error)
	FindActiveInPeriodFn   func(month, year int) ([]entity.Appointment, error)
}

func (m *mockAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	return m.CreateFn(appointment)
}

func (m *mockAppointmentRepo) FindByID(_ *gorm.DB, id uint) (*entity.Appointment, error) {
	return m.FindByIDFn(id)
}

func (m *mockAppointmentRepo) FindConflict(_ *gorm.DB, doctorID uint, at time.Time, excludeID uint) (*entity.Appointment, error) {
	return m.FindConflictFn(doctorID, at, excludeID)
}

func (m *mockAppointmentRepo) List(_ *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return m.ListFn(filter)
}

func (m *mockAppointmentRepo) Update(_ *gorm.DB, appointment *entity.Appointment) error {
	return m.UpdateFn(appointment)
}

func (m *mockAppointmentRepo) FindConfirmedBetween(_ *gorm.DB, start, end time.Time) ([]entity.Appointment, error) {
	return m.FindConfirmedBetweenFn(start, end)
}

func (m *mockAppointmentRepo) FindActiveInPeriod(_ *gorm.DB, month, year int) ([]entity.Appointment, error) {
	return m.FindActiveInPeriodFn(month, year)
}

type mockReportRepo struct {
	ExistsForPeriodFn func(month, year int) (bool, error)
	CreateBatchFn     func(reports []*entity.DoctorReport) error
	ListFn            func(filter *entity.ReportFilter) ([]entity.DoctorReport, error)
	SummarizeFn       func(month, year int) (*repository.MonthlySummary, error)
}

func (m *mockReportRepo) ExistsForPeriod(_ *gorm.DB, month, year int) (bool, error) {
	return m.ExistsForPeriodFn(month, year)
}

func (m *mockReportRepo) CreateBatch(_ *gorm.DB, reports []*entity.DoctorReport) error {
	return m.CreateBatchFn(reports)
}

func (m *mockReportRepo) List(_ *gorm.DB, filter *entity.ReportFilter) ([]entity.DoctorReport, error) {
	return m.ListFn(filter)
}

func (m *mockReportRepo) Summarize(_ *gorm.DB, month, year int) (*repository.MonthlySummary, error) {
	return m.SummarizeFn(month, year)
}

type mockPublisher struct {
	events []service.UserCreatedEvent
	err    error
}

func (m *mockPublisher) PublishUserCreated(_ context.Context, event service.UserCreatedEvent) error {
	m.events = append(m.events, event)
	return m.err
}
