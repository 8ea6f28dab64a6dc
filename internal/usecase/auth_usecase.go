package usecase

import (
	"context"
	"errors"
	"strings"

	"doctor-appointment-platform/internal/delivery/dto"
	"doctor-appointment-platform/internal/domain/entity"
	"doctor-appointment-platform/internal/domain/repository"
	"doctor-appointment-platform/internal/location"
	"doctor-appointment-platform/internal/service"
	"doctor-appointment-platform/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrMobileTaken         = errors.New("mobile number already in use")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnknownRegion       = errors.New("unknown division, district or thana")
	ErrDoctorFieldsMissing = errors.New("doctor registration requires license number, consultation fee and timeslots")
	ErrUserNotFound        = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (interface{}, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error)
}

type authUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	publisher  service.UserEventPublisher
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	publisher service.UserEventPublisher,
) AuthUsecase {
	return &authUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		jwtService: jwtService,
		publisher:  publisher,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterUserRequest) (interface{}, error) {
	if err := validateRegion(req.Division, req.District, req.Thana); err != nil {
		return nil, err
	}

	// Doctors without practice fields would be unbookable and unpriceable.
	if entity.UserType(req.UserType) == entity.UserTypeDoctor {
		if req.LicenseNumber == nil || strings.TrimSpace(*req.LicenseNumber) == "" ||
			req.ConsultationFee == nil ||
			strings.TrimSpace(req.AvailableTimeslots) == "" {
			return nil, ErrDoctorFieldsMissing
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if existing, err := u.userRepo.FindByEmail(tx, req.Email); err != nil {
		u.log.Warnf("Failed to check email uniqueness: %+v", err)
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	if existing, err := u.userRepo.FindByMobile(tx, req.Mobile); err != nil {
		u.log.Warnf("Failed to check mobile uniqueness: %+v", err)
		return nil, err
	} else if existing != nil {
		return nil, ErrMobileTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		FullName:           req.FullName,
		Email:              req.Email,
		Mobile:             req.Mobile,
		HashedPassword:     string(hashedPassword),
		UserType:           entity.UserType(req.UserType),
		Division:           req.Division,
		District:           req.District,
		Thana:              req.Thana,
		LicenseNumber:      req.LicenseNumber,
		ExperienceYears:    req.ExperienceYears,
		ConsultationFee:    req.ConsultationFee,
		AvailableTimeslots: req.AvailableTimeslots,
		Status:             entity.StatusActive,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		// The unique indexes close the check-then-insert window.
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailTaken
		}
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrMobileTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	// Cache-population side channel; a broker outage must not fail
	// registration.
	if u.publisher != nil {
		event := service.UserCreatedEvent{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Mobile:   user.Mobile,
			UserType: string(user.UserType),
		}
		if err := u.publisher.PublishUserCreated(ctx, event); err != nil {
			u.log.Warnf("Failed to publish user-created event for user %d: %+v", user.ID, err)
		}
	}

	return userView(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := u.jwtService.GenerateAccessToken(user.ID, string(user.UserType))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	return &dto.TokenData{
		ID:                 user.ID,
		UserType:           string(user.UserType),
		FullName:           user.FullName,
		AvailableTimeslots: user.AvailableTimeslots,
		AccessToken:        accessToken,
		TokenType:          "bearer",
	}, nil
}

// validateRegion checks the optional region fields against the static
// location dataset. Fields are validated top-down: a thana is only meaningful
// under a known division/district pair.
func validateRegion(division, district, thana string) error {
	if division == "" {
		return nil
	}
	districts := location.Districts(division)
	if districts == nil {
		return ErrUnknownRegion
	}
	if district == "" {
		return nil
	}
	if !containsFold(districts, district) {
		return ErrUnknownRegion
	}
	if thana == "" {
		return nil
	}
	if !containsFold(location.Upazilas(division, district), thana) {
		return ErrUnknownRegion
	}
	return nil
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// isDuplicateKeyError checks for a PostgreSQL unique constraint violation
// whose constraint name contains the given fragment.
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
