package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// QuotationItem is one line of a quotation, referencing a catalog product.
// Pricing fields stay empty until staff quote the item.
type QuotationItem struct {
	ID          uint             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuotationID uint             `gorm:"column:quotation_id;index;not null" json:"quotation_id"`
	ProductID   uint             `gorm:"column:product_id;not null" json:"product_id"`
	Product     *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ServiceName *string          `gorm:"column:service_name" json:"service_name,omitempty"`
	Description *string          `gorm:"column:description" json:"description,omitempty"`
	QuotedPrice *decimal.Decimal `gorm:"column:quoted_price;type:numeric(12,2)" json:"quoted_price,omitempty"`
	Currency    *enums.Currency  `gorm:"column:currency" json:"currency,omitempty"`
	QuotedBy    *uint            `gorm:"column:quoted_by" json:"quoted_by,omitempty"`
	Remarks     *string          `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
