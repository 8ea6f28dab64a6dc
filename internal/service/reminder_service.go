package service

import (
	"context"
	"fmt"
	"time"

	"doctor-appointment-platform/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MailSender delivers a composed reminder. The real e-mail/SMS gateway is an
// external collaborator; LogMailSender is the shipped stand-in.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailSender writes the message to the log instead of dispatching it.
type LogMailSender struct {
	Log *logrus.Logger
}

func (s *LogMailSender) Send(_ context.Context, to, subject, body string) error {
	s.Log.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Infof("Reminder message:\n%s", body)
	return nil
}

// ReminderService composes and sends next-day appointment reminders.
type ReminderService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	mailer          MailSender
	loc             *time.Location
	now             func() time.Time
}

func NewReminderService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	mailer MailSender,
	loc *time.Location,
) *ReminderService {
	return &ReminderService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		mailer:          mailer,
		loc:             loc,
		now:             time.Now,
	}
}

// SendDailyReminders finds every confirmed appointment falling on tomorrow's
// calendar day in the configured regional zone and emits one reminder per
// appointment. Send failures are logged and do not stop the batch.
func (s *ReminderService) SendDailyReminders(ctx context.Context) error {
	tomorrow := s.now().In(s.loc).AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 999999000, s.loc)

	appointments, err := s.appointmentRepo.FindConfirmedBetween(s.db.WithContext(ctx), start, end)
	if err != nil {
		s.log.Warnf("Failed to fetch reminder window appointments: %+v", err)
		return err
	}

	s.log.Infof("Sending reminders for %d confirmed appointments on %s",
		len(appointments), start.Format("2006-01-02"))

	for i := range appointments {
		appt := &appointments[i]
		if appt.Patient == nil || appt.Patient.Email == "" || appt.Doctor == nil {
			continue
		}

		body := fmt.Sprintf(
			"Dear %s,\n\nThis is a reminder for your appointment with Dr. %s on %s.\nPlease be on time.\n\nThanks!",
			appt.Patient.FullName,
			appt.Doctor.FullName,
			appt.AppointmentDate.In(s.loc).Format("2006-01-02 15:04"),
		)

		if err := s.mailer.Send(ctx, appt.Patient.Email, "Appointment Reminder", body); err != nil {
			s.log.Warnf("Failed to send reminder for appointment %d: %+v", appt.ID, err)
		}
	}

	return nil
}
