package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
)

// Membership is a paid-membership record owned by a registration.
type Membership struct {
	ID               uint                          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RegistrationID   uint                          `gorm:"column:registration_id;index;not null" json:"registration_id"`
	Registration     *Registration                 `gorm:"foreignKey:RegistrationID" json:"-"`
	CompanyName      string                        `gorm:"column:company_name;not null" json:"company_name"`
	Email            string                        `gorm:"column:email;not null" json:"email"`
	Phone            string                        `gorm:"column:phone;not null" json:"phone"`
	Country          string                        `gorm:"column:country;not null" json:"country"`
	State            string                        `gorm:"column:state;not null" json:"state"`
	City             string                        `gorm:"column:city;not null" json:"city"`
	Pincode          string                        `gorm:"column:pincode;not null" json:"pincode"`
	CIN              *string                       `gorm:"column:cin" json:"cin,omitempty"`
	GST              *string                       `gorm:"column:gst" json:"gst,omitempty"`
	TAN              *string                       `gorm:"column:tan" json:"tan,omitempty"`
	PAN              *string                       `gorm:"column:pan" json:"pan,omitempty"`
	VAT              *string                       `gorm:"column:vat" json:"vat,omitempty"`
	MembershipType   string                        `gorm:"column:membership_type;not null;default:data" json:"membership_type"`
	PaymentStatus    enums.MembershipPaymentStatus `gorm:"column:payment_status;not null;default:pending" json:"payment_status"`
	MembershipStatus enums.MembershipStatus        `gorm:"column:membership_status;not null;default:inactive" json:"membership_status"`
	StartDate        *time.Time                    `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate          *time.Time                    `gorm:"column:end_date" json:"end_date,omitempty"`
	Remarks          *string                       `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt        time.Time                     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
