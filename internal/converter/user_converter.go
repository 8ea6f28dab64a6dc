package converter

import (
	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
)

// UserToView picks the role-appropriate output struct. Doctors expose their
// practice fields; everyone else gets the patient view, which never carries
// them. The password hash is unreachable from either view.
func UserToView(user *entity.User) interface{} {
	if user.IsDoctor() {
		return UserToDoctorResponse(user)
	}
	return UserToPatientResponse(user)
}

func UserToPatientResponse(user *entity.User) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:           user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Mobile:       user.Mobile,
		UserType:     string(user.UserType),
		Division:     user.Division,
		District:     user.District,
		Thana:        user.Thana,
		ProfileImage: user.ProfileImage,
		Status:       string(user.Status),
	}
}

func UserToDoctorResponse(user *entity.User) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		ID:                 user.ID,
		FullName:           user.FullName,
		Email:              user.Email,
		Mobile:             user.Mobile,
		UserType:           string(user.UserType),
		Division:           user.Division,
		District:           user.District,
		Thana:              user.Thana,
		ProfileImage:       user.ProfileImage,
		LicenseNumber:      user.LicenseNumber,
		ExperienceYears:    user.ExperienceYears,
		ConsultationFee:    user.ConsultationFee,
		AvailableTimeslots: user.AvailableTimeslots,
		Status:             string(user.Status),
		Specializations:    SpecializationsToResponses(user.Specializations),
	}
}

func SpecializationsToResponses(specs []entity.DoctorSpecialization) []dto.SpecializationResponse {
	if len(specs) == 0 {
		return nil
	}
	responses := make([]dto.SpecializationResponse, 0, len(specs))
	for _, spec := range specs {
		responses = append(responses, dto.SpecializationResponse{
			ID:          spec.ID,
			Specialized: spec.Specialized,
			Description: spec.Description,
			CreatedAt:   spec.CreatedAt,
		})
	}
	return responses
}

func DoctorsToResponses(doctors []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		responses = append(responses, *UserToDoctorResponse(&doctors[i]))
	}
	return responses
}
