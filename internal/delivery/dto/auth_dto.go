package dto

import "github.com/shopspring/decimal"

type RegisterUserRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,min=10,max=14"`
	Password string `json:"password" validate:"required,min=8"`
	UserType string `json:"user_type" validate:"required,oneof=admin doctor patient"`
	Division string `json:"division,omitempty"`
	District string `json:"district,omitempty"`
	Thana    string `json:"thana,omitempty"`

	// Doctor-only fields, required when registering as a doctor.
	LicenseNumber      *string          `json:"license_number,omitempty" validate:"required_if=UserType doctor"`
	ExperienceYears    *int             `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	ConsultationFee    *decimal.Decimal `json:"consultation_fee,omitempty" validate:"required_if=UserType doctor"`
	AvailableTimeslots string           `json:"available_timeslots,omitempty" validate:"required_if=UserType doctor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenData is the login payload inside the response envelope.
type TokenData struct {
	ID                 uint   `json:"id"`
	UserType           string `json:"user_type"`
	FullName           string `json:"full_name"`
	AvailableTimeslots string `json:"available_timeslots,omitempty"`
	AccessToken        string `json:"access_token"`
	TokenType          string `json:"token_type"`
}
