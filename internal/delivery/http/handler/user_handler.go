package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/delivery/http/middleware"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/usecase"
	"doctor-appointment-platform/pkg/response"
	"doctor-appointment-platform/pkg/validator"
)

const maxUploadSize = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
	uploadDir   string
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator, uploadDir string) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		uploadDir:   uploadDir,
	}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userUsecase.GetUser(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

// UpdateUser handles the multipart self-update form. Text fields that are
// absent from the form are left untouched; an optional profile_image part is
// stored on disk and recorded on the user row.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	req, err := h.buildUpdateRequest(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.UpdateUser(r.Context(), caller, id, req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrNotOwner:
			response.Forbidden(w, "You can only update your own profile")
		case usecase.ErrEmailTaken:
			response.Conflict(w, "Email already registered")
		case usecase.ErrMobileTaken:
			response.Conflict(w, "Mobile number already in use")
		case usecase.ErrUnknownRegion:
			response.BadRequest(w, "Unknown division, district or thana")
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	if filename, err := h.saveProfileImage(r, id); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if filename != "" {
		if err := h.userUsecase.SetProfileImage(r.Context(), id, filename); err != nil {
			response.InternalServerError(w, "Failed to store profile image")
			return
		}
		user, err = h.userUsecase.GetUser(r.Context(), id)
		if err != nil {
			response.InternalServerError(w, "Failed to get user")
			return
		}
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := &entity.DoctorSearchFilter{
		Keyword:        q.Get("keyword"),
		Specialization: q.Get("specialization"),
		Division:       q.Get("division"),
		District:       q.Get("district"),
		Thana:          q.Get("thana"),
	}
	if raw := q.Get("is_available"); raw != "" {
		avail, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "Invalid is_available value")
			return
		}
		filter.IsAvailable = &avail
	}

	doctors, err := h.userUsecase.SearchDoctors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// DoctorList returns the full doctor roster for the admin console. It is the
// unfiltered variant of SearchDoctors.
func (h *UserHandler) DoctorList(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.userUsecase.SearchDoctors(r.Context(), &entity.DoctorSearchFilter{})
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *UserHandler) AdminUpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.AdminUpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.userUsecase.AdminUpdateDoctor(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrEmailTaken:
			response.Conflict(w, "Email already registered")
		case usecase.ErrMobileTaken:
			response.Conflict(w, "Mobile number already in use")
		case usecase.ErrInvalidStatus:
			response.BadRequest(w, "Invalid status value")
		case usecase.ErrUnknownRegion:
			response.BadRequest(w, "Unknown division, district or thana")
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *UserHandler) buildUpdateRequest(r *http.Request) (*dto.UpdateUserRequest, error) {
	req := &dto.UpdateUserRequest{}

	setString := func(field string, dst **string) {
		if vals, ok := r.MultipartForm.Value[field]; ok && len(vals) > 0 {
			v := vals[0]
			*dst = &v
		}
	}

	setString("full_name", &req.FullName)
	setString("email", &req.Email)
	setString("mobile", &req.Mobile)
	setString("password", &req.Password)
	setString("division", &req.Division)
	setString("district", &req.District)
	setString("thana", &req.Thana)
	setString("license_number", &req.LicenseNumber)
	setString("available_timeslots", &req.AvailableTimeslots)

	if vals, ok := r.MultipartForm.Value["experience_years"]; ok && len(vals) > 0 {
		years, err := strconv.Atoi(vals[0])
		if err != nil {
			return nil, fmt.Errorf("invalid experience_years value")
		}
		req.ExperienceYears = &years
	}
	if vals, ok := r.MultipartForm.Value["consultation_fee"]; ok && len(vals) > 0 {
		fee, err := decimal.NewFromString(vals[0])
		if err != nil {
			return nil, fmt.Errorf("invalid consultation_fee value")
		}
		req.ConsultationFee = &fee
	}

	return req, nil
}

func (h *UserHandler) saveProfileImage(r *http.Request, userID uint) (string, error) {
	file, header, err := r.FormFile("profile_image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("invalid profile_image upload")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image type, use jpg, jpeg or png")
	}

	if header.Size > maxUploadSize {
		return "", fmt.Errorf("image exceeds the %d MiB limit", maxUploadSize>>20)
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory")
	}

	filename := fmt.Sprintf("user_%d_%s%s", userID, uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded image")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to store uploaded image")
	}

	return filename, nil
}

func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
