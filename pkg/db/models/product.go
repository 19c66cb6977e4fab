package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
)

// Product is a catalog entry for a biocontrol product.
type Product struct {
	ID                   uint                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductName          string                `gorm:"column:product_name;not null" json:"product_name"`
	BiocontrolAgentName  string                `gorm:"column:biocontrol_agent_name;not null" json:"biocontrol_agent_name"`
	BiocontrolAgentStrain string               `gorm:"column:biocontrol_agent_strain;not null" json:"biocontrol_agent_strain"`
	AccessionNumber      *string               `gorm:"column:accession_number" json:"accession_number,omitempty"`
	Category             enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	CFU                  *string               `gorm:"column:cfu" json:"cfu,omitempty"`
	Formulation          enums.Formulation     `gorm:"column:formulation;not null" json:"formulation"`
	Registrations        []ProductRegistration `gorm:"foreignKey:ProductID" json:"registrations,omitempty"`
	Documents            []ProductDocument     `gorm:"foreignKey:ProductID" json:"documents,omitempty"`
	CreatedAt            time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
