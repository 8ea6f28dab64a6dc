// Package scheduler drives the recurring jobs: daily appointment reminders
// and first-of-month report generation. It runs inside the worker process,
// calling the same usecases the API serves.
package scheduler

import (
	"context"
	"errors"
	"time"

	"doctor-appointment-platform/config"
	"doctor-appointment-platform/internal/service"
	"doctor-appointment-platform/internal/usecase"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type Scheduler struct {
	cron            *cron.Cron
	log             *logrus.Logger
	reminderService *service.ReminderService
	reportUsecase   usecase.ReportUsecase
	loc             *time.Location
	now             func() time.Time
}

func New(
	cfg config.SchedulerConfig,
	log *logrus.Logger,
	reminderService *service.ReminderService,
	reportUsecase usecase.ReportUsecase,
	loc *time.Location,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(cron.WithLocation(loc)),
		log:             log,
		reminderService: reminderService,
		reportUsecase:   reportUsecase,
		loc:             loc,
		now:             time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.ReminderCron, s.runReminders); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.ReportCron, s.runMonthlyReports); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.log.Info("Scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.reminderService.SendDailyReminders(ctx); err != nil {
		s.log.Errorf("Reminder job failed: %+v", err)
	}
}

func (s *Scheduler) runMonthlyReports() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := s.now().In(s.loc)
	month, year := int(now.Month()), now.Year()

	_, err := s.reportUsecase.Generate(ctx, month, year)
	switch {
	case err == nil:
		s.log.Infof("Monthly report job completed for %d/%d", month, year)
	case errors.Is(err, usecase.ErrReportExists):
		// Already generated, either manually or by a previous run.
		s.log.Infof("Monthly reports for %d/%d already exist, skipping", month, year)
	case errors.Is(err, usecase.ErrNoAppointments):
		s.log.Infof("No appointments to report for %d/%d", month, year)
	default:
		s.log.Errorf("Monthly report job failed for %d/%d: %+v", month, year, err)
	}
}
