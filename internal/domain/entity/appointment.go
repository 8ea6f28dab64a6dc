package entity

import "time"

// AppointmentStatus is the lifecycle of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// allowedTransitions is the explicit state machine: pending can be confirmed
// or cancelled, confirmed can be completed or cancelled, the rest is terminal.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// Appointment binds a patient to a doctor at an exact timestamp. A slot is the
// (doctor, appointment_date) pair; at most one non-cancelled appointment may
// occupy a slot, enforced by a partial unique index plus an application check.
// There is no duration column: two appointments at different timestamps never
// conflict, however close together they are.
type Appointment struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint              `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"not null;index" json:"appointment_date"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CanTransitionTo reports whether the status change is allowed by the
// transition table. A no-op transition to the current status is allowed.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status == next {
		return true
	}
	for _, s := range allowedTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// ValidAppointmentStatus reports whether s names a known status.
func ValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}
