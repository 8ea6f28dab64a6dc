package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/location"
	"doctor-appointment-platform/pkg/response"
)

type LocationHandler struct{}

func NewLocationHandler() *LocationHandler {
	return &LocationHandler{}
}

func (h *LocationHandler) Divisions(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Divisions retrieved successfully", &dto.DivisionsResponse{
		Divisions: location.Divisions(),
	})
}

func (h *LocationHandler) Districts(w http.ResponseWriter, r *http.Request) {
	division := mux.Vars(r)["division"]

	districts := location.Districts(division)
	if len(districts) == 0 {
		response.NotFound(w, "Division not found")
		return
	}

	response.Success(w, http.StatusOK, "Districts retrieved successfully", &dto.DistrictsResponse{
		Districts: districts,
	})
}

func (h *LocationHandler) Upazilas(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	upazilas := location.Upazilas(vars["division"], vars["district"])
	if len(upazilas) == 0 {
		response.NotFound(w, "District not found")
		return
	}

	response.Success(w, http.StatusOK, "Upazilas retrieved successfully", &dto.UpazilasResponse{
		Upazilas: upazilas,
	})
}

// UserTypes enumerates the account roles, served next to the other static
// lookups for registration forms.
func (h *LocationHandler) UserTypes(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "User types retrieved successfully", &dto.UserTypesResponse{
		UserTypes: []string{
			string(entity.UserTypeAdmin),
			string(entity.UserTypeDoctor),
			string(entity.UserTypePatient),
		},
	})
}
