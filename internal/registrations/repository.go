package registrations

import (
	"context"

	"github.com/ammabio/amma-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository provides registration persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the registration.
func (r *Repository) Create(ctx context.Context, registration *models.Registration) (*models.Registration, error) {
	if err := r.db.WithContext(ctx).Create(registration).Error; err != nil {
		return nil, err
	}
	return registration, nil
}

// FindByUserID loads the registration owned by the account.
func (r *Repository) FindByUserID(ctx context.Context, userID uint) (*models.Registration, error) {
	var registration models.Registration
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&registration, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// Update persists the mutable profile fields.
func (r *Repository) Update(ctx context.Context, registration *models.Registration) (*models.Registration, error) {
	if err := r.db.WithContext(ctx).Save(registration).Error; err != nil {
		return nil, err
	}
	return registration, nil
}
