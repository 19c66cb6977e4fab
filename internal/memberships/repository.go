package memberships

import (
	"context"

	"github.com/ammabio/amma-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository provides membership persistence.
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

// Create inserts the membership.
func (r *Repository) Create(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// FindOwned loads a membership only when it belongs to the registration.
func (r *Repository) FindOwned(ctx context.Context, id, registrationID uint) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.WithContext(ctx).
		First(&membership, "id = ? AND registration_id = ?", id, registrationID).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListForRegistration returns all memberships owned by the registration.
func (r *Repository) ListForRegistration(ctx context.Context, registrationID uint) ([]models.Membership, error) {
	var rows []models.Membership
	if err := r.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FirstForRegistration returns the oldest membership for the registration.
// Callers relying on this assume one membership per account; the ordering
// makes the choice deterministic when more exist.
func (r *Repository) FirstForRegistration(ctx context.Context, registrationID uint) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Order("created_at ASC, id ASC").
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// Update persists the mutable membership fields.
func (r *Repository) Update(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	if err := r.db.WithContext(ctx).Save(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}
