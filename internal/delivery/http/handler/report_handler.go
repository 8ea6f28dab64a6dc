package handler

import (
	"net/http"
	"strconv"

	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/usecase"
	"doctor-appointment-platform/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

func (h *ReportHandler) GenerateMonthly(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriodQuery(r, true)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	reports, err := h.reportUsecase.Generate(r.Context(), month, year)
	if err != nil {
		switch err {
		case usecase.ErrReportExists:
			response.Conflict(w, "Reports already generated for this period")
		case usecase.ErrNoAppointments:
			response.NotFound(w, "No completed or confirmed appointments in this period")
		default:
			response.InternalServerError(w, "Failed to generate reports")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Monthly reports generated successfully", reports)
}

func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriodQuery(r, false)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	filter := &entity.ReportFilter{Month: month, Year: year}
	if raw := r.URL.Query().Get("doctor_id"); raw != "" {
		id, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			response.BadRequest(w, "Invalid doctor_id value")
			return
		}
		filter.DoctorID = uint(id)
	}

	reports, err := h.reportUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list reports")
		return
	}

	response.Success(w, http.StatusOK, "Reports retrieved successfully", reports)
}

func (h *ReportHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriodQuery(r, false)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	summary, err := h.reportUsecase.Summary(r.Context(), month, year)
	if err != nil {
		response.InternalServerError(w, "Failed to summarize reports")
		return
	}

	response.Success(w, http.StatusOK, "Summary retrieved successfully", summary)
}

// parsePeriodQuery reads month and year query parameters. When required is
// false, both may be absent (zero means unfiltered); present values are
// still range-checked.
func parsePeriodQuery(r *http.Request, required bool) (int, int, error) {
	q := r.URL.Query()
	rawMonth, rawYear := q.Get("month"), q.Get("year")

	if required && (rawMonth == "" || rawYear == "") {
		return 0, 0, errInvalidQuery("month/year, both are required")
	}

	var month, year int
	var err error

	if rawMonth != "" {
		month, err = strconv.Atoi(rawMonth)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, errInvalidQuery("month, must be between 1 and 12")
		}
	}
	if rawYear != "" {
		year, err = strconv.Atoi(rawYear)
		if err != nil || year < 2000 {
			return 0, 0, errInvalidQuery("year, must be 2000 or later")
		}
	}

	return month, year, nil
}
