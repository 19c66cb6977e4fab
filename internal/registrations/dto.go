package registrations

import (
	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
)

// SignupRequest is the combined account + organization payload.
type SignupRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	UserType      string  `json:"user_type"`
	ContactNumber string  `json:"contact_number"`
	Designation   *string `json:"designation,omitempty"`
	Country       string  `json:"country"`
	State         string  `json:"state"`
	District      *string `json:"district,omitempty"`
	City          string  `json:"city"`
	Pincode       string  `json:"pincode"`
	Website       *string `json:"website,omitempty"`
}

// UpdateProfileRequest carries optional mutations to the registration profile.
type UpdateProfileRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	UserType      *string `json:"user_type,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	Country       *string `json:"country,omitempty"`
	State         *string `json:"state,omitempty"`
	District      *string `json:"district,omitempty"`
	City          *string `json:"city,omitempty"`
	Pincode       *string `json:"pincode,omitempty"`
	Website       *string `json:"website,omitempty"`
}

// ProfileDTO is the public shape of a registration with its account.
type ProfileDTO struct {
	ID            uint            `json:"id"`
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	UserType      enums.UserType  `json:"user_type"`
	ContactNumber string          `json:"contact_number"`
	Designation   *string         `json:"designation,omitempty"`
	Country       string          `json:"country"`
	State         string          `json:"state"`
	District      *string         `json:"district,omitempty"`
	City          string          `json:"city"`
	Pincode       string          `json:"pincode"`
	Website       *string         `json:"website,omitempty"`
	IsVerified    bool            `json:"is_verified"`
	Role          enums.ActorRole `json:"role"`
}

// NewProfileDTO maps the registration and its user to the public DTO.
func NewProfileDTO(registration *models.Registration) *ProfileDTO {
	if registration == nil {
		return nil
	}
	dto := &ProfileDTO{
		ID:            registration.ID,
		UserType:      registration.UserType,
		ContactNumber: registration.ContactNumber,
		Designation:   registration.Designation,
		Country:       registration.Country,
		State:         registration.State,
		District:      registration.District,
		City:          registration.City,
		Pincode:       registration.Pincode,
		Website:       registration.Website,
		IsVerified:    registration.IsVerified,
	}
	if registration.User != nil {
		dto.Email = registration.User.Email
		dto.FirstName = registration.User.FirstName
		dto.LastName = registration.User.LastName
		dto.Role = registration.User.Role
	}
	return dto
}
