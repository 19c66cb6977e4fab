package payments

import (
	"context"

	"github.com/ammabio/amma-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository provides membership payment persistence.
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

// Create inserts the payment record.
func (r *Repository) Create(ctx context.Context, payment *models.MembershipPayment) (*models.MembershipPayment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// FindOwnedByUser loads a payment only when its membership chain leads back
// to the given account. Foreign payments surface as record-not-found.
func (r *Repository) FindOwnedByUser(ctx context.Context, id, userID uint) (*models.MembershipPayment, error) {
	var payment models.MembershipPayment
	if err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.id = membership_payments.membership_id").
		Joins("JOIN registrations ON registrations.id = memberships.registration_id").
		Where("membership_payments.id = ? AND registrations.user_id = ?", id, userID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update persists the payment record.
func (r *Repository) Update(ctx context.Context, payment *models.MembershipPayment) (*models.MembershipPayment, error) {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// ListForMembership returns all payments for the membership in insertion order.
func (r *Repository) ListForMembership(ctx context.Context, membershipID uint) ([]models.MembershipPayment, error) {
	var rows []models.MembershipPayment
	if err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
