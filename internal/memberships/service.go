package memberships

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ammabio/amma-backend/api/validators"
	"github.com/ammabio/amma-backend/pkg/db/models"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"gorm.io/gorm"
)

// CreateMembershipRequest is the payload to apply for a membership.
type CreateMembershipRequest struct {
	CompanyName string  `json:"company_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Country     string  `json:"country"`
	State       string  `json:"state"`
	City        string  `json:"city"`
	Pincode     string  `json:"pincode"`
	CIN         *string `json:"cin,omitempty"`
	GST         *string `json:"gst,omitempty"`
	TAN         *string `json:"tan,omitempty"`
	PAN         *string `json:"pan,omitempty"`
	VAT         *string `json:"vat,omitempty"`
}

// UpdateMembershipRequest carries optional mutations to a membership.
type UpdateMembershipRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Country     *string `json:"country,omitempty"`
	State       *string `json:"state,omitempty"`
	City        *string `json:"city,omitempty"`
	Pincode     *string `json:"pincode,omitempty"`
	CIN         *string `json:"cin,omitempty"`
	GST         *string `json:"gst,omitempty"`
	TAN         *string `json:"tan,omitempty"`
	PAN         *string `json:"pan,omitempty"`
	VAT         *string `json:"vat,omitempty"`
}

// Service exposes membership application and management.
type Service interface {
	Create(ctx context.Context, userID uint, req CreateMembershipRequest) (*models.Membership, error)
	Get(ctx context.Context, userID, membershipID uint) (*models.Membership, error)
	List(ctx context.Context, userID uint) ([]models.Membership, error)
	Update(ctx context.Context, userID, membershipID uint, req UpdateMembershipRequest) (*models.Membership, error)
	// ResolveOwned returns the membership when it belongs to the account,
	// and a not-found error otherwise. Other domains use it for ownership checks.
	ResolveOwned(ctx context.Context, userID, membershipID uint) (*models.Membership, error)
	// ResolveDefault returns the account's oldest membership for operations
	// that derive the membership server-side.
	ResolveDefault(ctx context.Context, userID uint) (*models.Membership, error)
}

type registrationResolver interface {
	FindByUserID(ctx context.Context, userID uint) (*models.Registration, error)
}

type service struct {
	repo          *Repository
	registrations registrationResolver
}

// NewService constructs a membership service instance.
func NewService(repo *Repository, registrations registrationResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("membership repository required")
	}
	if registrations == nil {
		return nil, fmt.Errorf("registration repository required")
	}
	return &service{repo: repo, registrations: registrations}, nil
}

func (s *service) Create(ctx context.Context, userID uint, req CreateMembershipRequest) (*models.Membership, error) {
	registration, err := s.ownRegistration(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	validators.CheckNonBlank(fields, "company_name", req.CompanyName, 2)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		fields.Add("email", "is required")
	} else if !strings.Contains(email, "@") {
		fields.Add("email", "must be a valid email")
	}
	validators.CheckDigits(fields, "phone", req.Phone, 10)
	validators.CheckNonBlank(fields, "country", req.Country, 2)
	validators.CheckNonBlank(fields, "state", req.State, 2)
	validators.CheckNonBlank(fields, "city", req.City, 2)
	validators.CheckDigits(fields, "pincode", req.Pincode, 6)
	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	membership := &models.Membership{
		RegistrationID: registration.ID,
		CompanyName:    strings.TrimSpace(req.CompanyName),
		Email:          email,
		Phone:          strings.TrimSpace(req.Phone),
		Country:        strings.TrimSpace(req.Country),
		State:          strings.TrimSpace(req.State),
		City:           strings.TrimSpace(req.City),
		Pincode:        strings.TrimSpace(req.Pincode),
		CIN:            trimPtr(req.CIN),
		GST:            trimPtr(req.GST),
		TAN:            trimPtr(req.TAN),
		PAN:            trimPtr(req.PAN),
		VAT:            trimPtr(req.VAT),
	}
	created, err := s.repo.Create(ctx, membership)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert membership")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, userID, membershipID uint) (*models.Membership, error) {
	return s.ResolveOwned(ctx, userID, membershipID)
}

func (s *service) List(ctx context.Context, userID uint) ([]models.Membership, error) {
	registration, err := s.ownRegistration(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListForRegistration(ctx, registration.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list memberships")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, userID, membershipID uint, req UpdateMembershipRequest) (*models.Membership, error) {
	membership, err := s.ResolveOwned(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if req.CompanyName != nil {
		validators.CheckNonBlank(fields, "company_name", *req.CompanyName, 2)
	}
	var email string
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			fields.Add("email", "is required")
		} else if !strings.Contains(email, "@") {
			fields.Add("email", "must be a valid email")
		}
	}
	if req.Phone != nil {
		validators.CheckDigits(fields, "phone", *req.Phone, 10)
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
	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	if req.CompanyName != nil {
		membership.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.Email != nil {
		membership.Email = email
	}
	if req.Phone != nil {
		membership.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Country != nil {
		membership.Country = strings.TrimSpace(*req.Country)
	}
	if req.State != nil {
		membership.State = strings.TrimSpace(*req.State)
	}
	if req.City != nil {
		membership.City = strings.TrimSpace(*req.City)
	}
	if req.Pincode != nil {
		membership.Pincode = strings.TrimSpace(*req.Pincode)
	}
	if req.CIN != nil {
		membership.CIN = trimPtr(req.CIN)
	}
	if req.GST != nil {
		membership.GST = trimPtr(req.GST)
	}
	if req.TAN != nil {
		membership.TAN = trimPtr(req.TAN)
	}
	if req.PAN != nil {
		membership.PAN = trimPtr(req.PAN)
	}
	if req.VAT != nil {
		membership.VAT = trimPtr(req.VAT)
	}

	updated, err := s.repo.Update(ctx, membership)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update membership")
	}
	return updated, nil
}

func (s *service) ResolveOwned(ctx context.Context, userID, membershipID uint) (*models.Membership, error) {
	registration, err := s.ownRegistration(ctx, userID)
	if err != nil {
		return nil, err
	}
	membership, err := s.repo.FindOwned(ctx, membershipID, registration.ID)
	if err != nil {
		// Not-owned reads as not-found so one account cannot probe another's rows.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	return membership, nil
}

func (s *service) ResolveDefault(ctx context.Context, userID uint) (*models.Membership, error) {
	registration, err := s.ownRegistration(ctx, userID)
	if err != nil {
		return nil, err
	}
	membership, err := s.repo.FirstForRegistration(ctx, registration.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	return membership, nil
}

func (s *service) ownRegistration(ctx context.Context, userID uint) (*models.Registration, error) {
	registration, err := s.registrations.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "registration not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load registration")
	}
	return registration, nil
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
