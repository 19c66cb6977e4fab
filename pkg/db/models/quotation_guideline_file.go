package models

import "time"

// QuotationGuidelineFile is a supporting file attached to a quotation.
// FileName falls back to the uploaded file's original name when the caller
// does not supply one.
type QuotationGuidelineFile struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuotationID uint      `gorm:"column:quotation_id;index;not null" json:"quotation_id"`
	FilePath    *string   `gorm:"column:file_path" json:"file_path,omitempty"`
	FileName    *string   `gorm:"column:file_name" json:"file_name,omitempty"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
