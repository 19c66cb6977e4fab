package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
)

// Registration is the organizational profile tied one-to-one to a user account.
type Registration struct {
	ID            uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID        uint           `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	UserType      enums.UserType `gorm:"column:user_type;not null" json:"user_type"`
	ContactNumber string         `gorm:"column:contact_number;not null" json:"contact_number"`
	Designation   *string        `gorm:"column:designation" json:"designation,omitempty"`
	Country       string         `gorm:"column:country;not null" json:"country"`
	State         string         `gorm:"column:state;not null" json:"state"`
	District      *string        `gorm:"column:district" json:"district,omitempty"`
	City          string         `gorm:"column:city;not null" json:"city"`
	Pincode       string         `gorm:"column:pincode;not null" json:"pincode"`
	Website       *string        `gorm:"column:website" json:"website,omitempty"`
	IsVerified    bool           `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
