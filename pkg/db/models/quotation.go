package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
)

// Quotation is a priced-service request tied to a membership. It owns its
// items and guideline files; both child collections are replaced wholesale
// on update, never merged.
type Quotation struct {
	ID                      uint                     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MembershipID            uint                     `gorm:"column:membership_id;index;not null" json:"membership_id"`
	Membership              *Membership              `gorm:"foreignKey:MembershipID" json:"-"`
	Country                 string                   `gorm:"column:country;not null" json:"country"`
	Currency                enums.Currency           `gorm:"column:currency;not null" json:"currency"`
	Title                   string                   `gorm:"column:title;not null" json:"title"`
	Description             *string                  `gorm:"column:description" json:"description,omitempty"`
	ResponsiblePerson       *string                  `gorm:"column:responsible_person" json:"responsible_person,omitempty"`
	Contact                 *string                  `gorm:"column:contact" json:"contact,omitempty"`
	AuthorityDepartment     *string                  `gorm:"column:authority_department" json:"authority_department,omitempty"`
	AuthorityWebsite        *string                  `gorm:"column:authority_website" json:"authority_website,omitempty"`
	AuthorityContactDetails *string                  `gorm:"column:authority_contact_details" json:"authority_contact_details,omitempty"`
	Status                  enums.QuotationStatus    `gorm:"column:status;not null;default:pending" json:"status"`
	Items                   []QuotationItem          `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
	GuidelineFiles          []QuotationGuidelineFile `gorm:"foreignKey:QuotationID" json:"guideline_files,omitempty"`
	CreatedAt               time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
