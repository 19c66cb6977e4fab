package models

import (
	"time"

	"github.com/ammabio/amma-backend/pkg/enums"
)

// User holds account credentials for a registered organization contact.
type User struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email        string          `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string          `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string          `gorm:"column:last_name;not null" json:"last_name"`
	Role         enums.ActorRole `gorm:"column:role;not null;default:member" json:"role"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
