package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SpecializationInput struct {
	Specialized string `json:"specialized" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

type SpecializationResponse struct {
	ID          uint      `json:"id"`
	Specialized string    `json:"specialized"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PatientResponse is the patient-facing view of a user row. Doctor-only
// columns are deliberately absent.
type PatientResponse struct {
	ID           uint   `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	UserType     string `json:"user_type"`
	Division     string `json:"division,omitempty"`
	District     string `json:"district,omitempty"`
	Thana        string `json:"thana,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	Status       string `json:"status"`
}

// DoctorResponse is the doctor-facing view, including practice fields and
// specializations.
type DoctorResponse struct {
	ID                 uint                     `json:"id"`
	FullName           string                   `json:"full_name"`
	Email              string                   `json:"email"`
	Mobile             string                   `json:"mobile"`
	UserType           string                   `json:"user_type"`
	Division           string                   `json:"division,omitempty"`
	District           string                   `json:"district,omitempty"`
	Thana              string                   `json:"thana,omitempty"`
	ProfileImage       string                   `json:"profile_image,omitempty"`
	LicenseNumber      *string                  `json:"license_number,omitempty"`
	ExperienceYears    *int                     `json:"experience_years,omitempty"`
	ConsultationFee    *decimal.Decimal         `json:"consultation_fee,omitempty"`
	AvailableTimeslots string                   `json:"available_timeslots,omitempty"`
	Status             string                   `json:"status"`
	Specializations    []SpecializationResponse `json:"specializations,omitempty"`
}

// UpdateUserRequest carries the multipart form fields of the self-update
// endpoint. All fields are optional; absent fields are left untouched.
type UpdateUserRequest struct {
	FullName           *string          `json:"full_name,omitempty"`
	Email              *string          `json:"email,omitempty" validate:"omitempty,email"`
	Mobile             *string          `json:"mobile,omitempty" validate:"omitempty,min=10,max=14"`
	Password           *string          `json:"password,omitempty" validate:"omitempty,min=8"`
	Division           *string          `json:"division,omitempty"`
	District           *string          `json:"district,omitempty"`
	Thana              *string          `json:"thana,omitempty"`
	LicenseNumber      *string          `json:"license_number,omitempty"`
	ExperienceYears    *int             `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	ConsultationFee    *decimal.Decimal `json:"consultation_fee,omitempty"`
	AvailableTimeslots *string          `json:"available_timeslots,omitempty"`
}

// AdminUpdateDoctorRequest extends the self-update with status and a
// wholesale replacement of the specialization list.
type AdminUpdateDoctorRequest struct {
	UpdateUserRequest
	Status          *string               `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
	Specializations []SpecializationInput `json:"specializations,omitempty" validate:"omitempty,dive"`
}
