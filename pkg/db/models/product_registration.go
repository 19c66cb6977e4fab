package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
)

// ProductRegistration tracks regulatory status of a product in one country.
// Unique per (product, country).
type ProductRegistration struct {
	ID                 uint                     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID          uint                     `gorm:"column:product_id;not null;uniqueIndex:idx_product_registration_country" json:"product_id"`
	Country            string                   `gorm:"column:country;not null;uniqueIndex:idx_product_registration_country" json:"country"`
	RegistrationStatus enums.RegistrationStatus `gorm:"column:registration_status;not null;default:pending" json:"registration_status"`
	RegistrationNumber *string                  `gorm:"column:registration_number" json:"registration_number,omitempty"`
	RegistrationDate   *time.Time               `gorm:"column:registration_date" json:"registration_date,omitempty"`
	ExpiryDate         *time.Time               `gorm:"column:expiry_date" json:"expiry_date,omitempty"`
	Remarks            *string                  `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
