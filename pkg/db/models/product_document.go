package models

import "time"

// ProductDocument is a supporting file attached to a catalog product.
type ProductDocument struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID    uint      `gorm:"column:product_id;index;not null" json:"product_id"`
	DocumentName string    `gorm:"column:document_name;not null" json:"document_name"`
	FilePath     *string   `gorm:"column:file_path" json:"file_path,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
