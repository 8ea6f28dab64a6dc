package dto

import "time"

type BookAppointmentRequest struct {
	DoctorID        uint      `json:"doctor_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Notes           string    `json:"notes,omitempty"`
}

// UpdateAppointmentRequest is the admin mutation; nil fields stay untouched.
// The slot conflict check re-runs only when the date actually changes.
type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type AppointmentResponse struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	DoctorID        uint      `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
