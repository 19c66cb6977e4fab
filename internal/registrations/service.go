package registrations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ammabio/amma-backend/api/validators"
	"github.com/ammabio/amma-backend/internal/users"
	"github.com/ammabio/amma-backend/pkg/config"
	"github.com/ammabio/amma-backend/pkg/db"
	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/security"
	"gorm.io/gorm"
)

// Service exposes signup and profile management.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*ProfileDTO, error)
	GetProfile(ctx context.Context, userID uint) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*ProfileDTO, error)
}

type service struct {
	repo        *Repository
	userRepo    *users.Repository
	dbClient    *db.Client
	passwordCfg config.PasswordConfig
}

// NewService constructs a registration service instance.
func NewService(repo *Repository, userRepo *users.Repository, dbClient *db.Client, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("registration repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:        repo,
		userRepo:    userRepo,
		dbClient:    dbClient,
		passwordCfg: passwordCfg,
	}, nil
}

// Signup creates the account and its registration atomically.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*ProfileDTO, error) {
	fields := pkgerrors.FieldErrors{}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		fields.Add("email", "is required")
	} else if !strings.Contains(email, "@") {
		fields.Add("email", "must be a valid email")
	}
	if len(strings.TrimSpace(req.Password)) < 8 {
		fields.Add("password", "must be at least 8 characters")
	}
	validators.CheckNonBlank(fields, "first_name", req.FirstName, 1)
	validators.CheckNonBlank(fields, "last_name", req.LastName, 1)

	userType, err := enums.ParseUserType(strings.TrimSpace(req.UserType))
	if err != nil {
		fields.Add("user_type", "is not a valid organization type")
	}
	validators.CheckDigits(fields, "contact_number", req.ContactNumber, 10)
	validators.CheckNonBlank(fields, "country", req.Country, 2)
	validators.CheckNonBlank(fields, "state", req.State, 2)
	validators.CheckNonBlank(fields, "city", req.City, 2)
	validators.CheckDigits(fields, "pincode", req.Pincode, 6)
	if req.Website != nil {
		validators.CheckURL(fields, "website", *req.Website)
	}

	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var createdUserID uint
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txUsers := s.userRepo.WithTx(tx)
		txRepo := s.repo.WithTx(tx)

		user := &models.User{
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Role:         enums.ActorRoleMember,
			IsActive:     true,
		}
		created, err := txUsers.Create(ctx, user)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Validation(pkgerrors.FieldErrors{
					"email": {"is already registered"},
				})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
		}
		createdUserID = created.ID

		registration := &models.Registration{
			UserID:        created.ID,
			UserType:      userType,
			ContactNumber: strings.TrimSpace(req.ContactNumber),
			Designation:   trimPtr(req.Designation),
			Country:       strings.TrimSpace(req.Country),
			State:         strings.TrimSpace(req.State),
			District:      trimPtr(req.District),
			City:          strings.TrimSpace(req.City),
			Pincode:       strings.TrimSpace(req.Pincode),
			Website:       trimPtr(req.Website),
		}
		if _, err := txRepo.Create(ctx, registration); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert registration")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "signup")
	}

	return s.GetProfile(ctx, createdUserID)
}

// GetProfile loads the registration owned by the account.
func (s *service) GetProfile(ctx context.Context, userID uint) (*ProfileDTO, error) {
	registration, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "registration not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load registration")
	}
	return NewProfileDTO(registration), nil
}

// UpdateProfile applies the provided mutations to the registration and account.
func (s *service) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*ProfileDTO, error) {
	registration, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "registration not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load registration")
	}

	fields := pkgerrors.FieldErrors{}
	var userType enums.UserType
	if req.UserType != nil {
		userType, err = enums.ParseUserType(strings.TrimSpace(*req.UserType))
		if err != nil {
			fields.Add("user_type", "is not a valid organization type")
		}
	}
	if req.FirstName != nil {
		validators.CheckNonBlank(fields, "first_name", *req.FirstName, 1)
	}
	if req.LastName != nil {
		validators.CheckNonBlank(fields, "last_name", *req.LastName, 1)
	}
	if req.ContactNumber != nil {
		validators.CheckDigits(fields, "contact_number", *req.ContactNumber, 10)
	}
	if req.Country != nil {
		validators.CheckNonBlank(fields, "country", *req.Country, 2)
	}
	if req.State != nil {
		validators.CheckNonBlank(fields, "state", *req.State, 2)
	}
	if req.City != nil {
		validators.CheckNonBlank(fields, "city", *req.City, 2)
	}
	if req.Pincode != nil {
		validators.CheckDigits(fields, "pincode", *req.Pincode, 6)
	}
	if req.Website != nil {
		validators.CheckURL(fields, "website", *req.Website)
	}
	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	if req.UserType != nil {
		registration.UserType = userType
	}
	if req.ContactNumber != nil {
		registration.ContactNumber = strings.TrimSpace(*req.ContactNumber)
	}
	if req.Designation != nil {
		registration.Designation = trimPtr(req.Designation)
	}
	if req.Country != nil {
		registration.Country = strings.TrimSpace(*req.Country)
	}
	if req.State != nil {
		registration.State = strings.TrimSpace(*req.State)
	}
	if req.District != nil {
		registration.District = trimPtr(req.District)
	}
	if req.City != nil {
		registration.City = strings.TrimSpace(*req.City)
	}
	if req.Pincode != nil {
		registration.Pincode = strings.TrimSpace(*req.Pincode)
	}
	if req.Website != nil {
		registration.Website = trimPtr(req.Website)
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if req.FirstName != nil || req.LastName != nil {
			updates := map[string]any{}
			if req.FirstName != nil {
				updates["first_name"] = strings.TrimSpace(*req.FirstName)
			}
			if req.LastName != nil {
				updates["last_name"] = strings.TrimSpace(*req.LastName)
			}
			if err := tx.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
			}
		}

		// Saving through the association would also write the preloaded user row.
		registration.User = nil
		if _, err := txRepo.Update(ctx, registration); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update registration")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}

	return s.GetProfile(ctx, userID)
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
