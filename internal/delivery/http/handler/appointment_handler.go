package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/delivery/http/middleware"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/usecase"
	"doctor-appointment-platform/pkg/response"
	"doctor-appointment-platform/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), caller.ID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPastDate:
			response.BadRequest(w, "Appointment date must be in the future")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorUnavailable:
			response.BadRequest(w, "Doctor is not available at the requested time")
		case usecase.ErrSlotConflict:
			response.Conflict(w, "Doctor already has an appointment at this time")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAppointmentFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", &dto.AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	})
}

func (h *AppointmentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	filter, err := parseAppointmentFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), caller.ID, filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", &dto.AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	})
}

func (h *AppointmentHandler) DoctorAppointments(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	skip := parseIntQuery(r, "skip", 0)
	limit := parseIntQuery(r, "limit", 10)

	appointments, err := h.appointmentUsecase.ListForDoctor(r.Context(), caller.ID, skip, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", &dto.AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	})
}

func (h *AppointmentHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.AdminUpdate(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidTransition:
			response.BadRequest(w, "Invalid status transition")
		case usecase.ErrSlotConflict:
			response.Conflict(w, "Doctor already has an appointment at this time")
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) DoctorUpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.DoctorUpdateStatus(r.Context(), caller.ID, id, entity.AppointmentStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidTransition:
			response.BadRequest(w, "Invalid status transition")
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func parseAppointmentFilter(r *http.Request) (*entity.AppointmentFilter, error) {
	q := r.URL.Query()

	filter := &entity.AppointmentFilter{
		Skip:  parseIntQuery(r, "skip", 0),
		Limit: parseIntQuery(r, "limit", 10),
	}

	if raw := q.Get("doctor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errInvalidQuery("doctor_id")
		}
		filter.DoctorID = uint(id)
	}
	if raw := q.Get("status"); raw != "" {
		if !entity.ValidAppointmentStatus(raw) {
			return nil, errInvalidQuery("status")
		}
		filter.Status = entity.AppointmentStatus(raw)
	}
	if raw := q.Get("start_date"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errInvalidQuery("start_date")
		}
		filter.StartDate = &start
	}
	if raw := q.Get("end_date"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errInvalidQuery("end_date")
		}
		filter.EndDate = &end
	}

	return filter, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string {
	return "Invalid " + string(e) + " value"
}

func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
