package converter

import (
	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/domain/repository"
)

func ReportToResponse(report *entity.DoctorReport) *dto.DoctorReportResponse {
	return &dto.DoctorReportResponse{
		ID:                 report.ID,
		DoctorID:           report.DoctorID,
		Month:              report.Month,
		Year:               report.Year,
		TotalPatientVisits: report.TotalPatientVisits,
		TotalAppointments:  report.TotalAppointments,
		TotalEarnings:      report.TotalEarnings,
		GeneratedAt:        report.GeneratedAt,
	}
}

func ReportsToResponses(reports []entity.DoctorReport) []dto.DoctorReportResponse {
	responses := make([]dto.DoctorReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, *ReportToResponse(&reports[i]))
	}
	return responses
}

func SummaryToResponse(summary *repository.MonthlySummary) *dto.MonthlySummaryResponse {
	return &dto.MonthlySummaryResponse{
		TotalPatients:     summary.TotalPatients,
		TotalAppointments: summary.TotalAppointments,
		TotalEarnings:     summary.TotalEarnings,
	}
}
