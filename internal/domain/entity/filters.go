package entity

import "time"

// DoctorSearchFilter narrows the doctor directory search. Zero values mean
// "no filter" for every field.
type DoctorSearchFilter struct {
	Keyword        string
	Specialization string
	Division       string
	District       string
	Thana          string
	IsAvailable    *bool
}

// AppointmentFilter narrows appointment listings. DoctorID/PatientID of zero
// mean unrestricted; Skip/Limit paginate the date-ascending result.
type AppointmentFilter struct {
	DoctorID  uint
	PatientID uint
	Status    AppointmentStatus
	StartDate *time.Time
	EndDate   *time.Time
	Skip      int
	Limit     int
}

// ReportFilter narrows doctor report listings.
type ReportFilter struct {
	Month    int
	Year     int
	DoctorID uint
}
