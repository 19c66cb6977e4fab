package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
)

// MembershipDocument is a verification document uploaded for a membership.
// At most one document of a given type may exist per membership.
type MembershipDocument struct {
	ID                 uint                     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MembershipID       uint                     `gorm:"column:membership_id;not null;uniqueIndex:idx_membership_document_type" json:"membership_id"`
	Membership         *Membership              `gorm:"foreignKey:MembershipID" json:"-"`
	DocumentType       enums.DocumentType       `gorm:"column:document_type;not null;uniqueIndex:idx_membership_document_type" json:"document_type"`
	FilePath           string                   `gorm:"column:file_path;not null" json:"file_path"`
	FileName           string                   `gorm:"column:file_name;not null" json:"file_name"`
	VerificationStatus enums.VerificationStatus `gorm:"column:verification_status;not null;default:pending" json:"verification_status"`
	Remarks            *string                  `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
