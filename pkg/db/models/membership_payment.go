package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// MembershipPayment records a single payment made toward a membership.
// Payment status and staff verification are tracked independently.
type MembershipPayment struct {
	ID                   uint                     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MembershipID         uint                     `gorm:"column:membership_id;index;not null" json:"membership_id"`
	Membership           *Membership              `gorm:"foreignKey:MembershipID" json:"-"`
	Amount               decimal.Decimal          `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Currency             enums.Currency           `gorm:"column:currency;not null" json:"currency"`
	PaymentMethod        enums.PaymentMethod      `gorm:"column:payment_method;not null" json:"payment_method"`
	TransactionReference *string                  `gorm:"column:transaction_reference" json:"transaction_reference,omitempty"`
	Status               enums.PaymentStatus      `gorm:"column:status;not null;default:pending" json:"status"`
	VerificationStatus   enums.VerificationStatus `gorm:"column:verification_status;not null;default:pending" json:"verification_status"`
	ReceiptPath          *string                  `gorm:"column:receipt_path" json:"receipt_path,omitempty"`
	Remarks              *string                  `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt            time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
