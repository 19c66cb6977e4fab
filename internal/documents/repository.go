package documents

import (
	"context"

	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository provides membership document persistence.
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

// Create inserts the document record.
func (r *Repository) Create(ctx context.Context, doc *models.MembershipDocument) (*models.MembershipDocument, error) {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// FindOwnedByUser loads a document only when its membership chain leads back
// to the given account. Foreign documents surface as record-not-found.
func (r *Repository) FindOwnedByUser(ctx context.Context, id, userID uint) (*models.MembershipDocument, error) {
	var doc models.MembershipDocument
	if err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.id = membership_documents.membership_id").
		Joins("JOIN registrations ON registrations.id = memberships.registration_id").
		Where("membership_documents.id = ? AND registrations.user_id = ?", id, userID).
		First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListForMembership returns all documents for the membership.
func (r *Repository) ListForMembership(ctx context.Context, membershipID uint) ([]models.MembershipDocument, error) {
	var rows []models.MembershipDocument
	if err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ExistsForType reports whether a document of the given type already exists,
// ignoring excludeID when non-zero.
func (r *Repository) ExistsForType(ctx context.Context, membershipID uint, docType enums.DocumentType, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MembershipDocument{}).
		Where("membership_id = ? AND document_type = ?", membershipID, docType)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists the document record.
func (r *Repository) Update(ctx context.Context, doc *models.MembershipDocument) (*models.MembershipDocument, error) {
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the document record.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MembershipDocument{}, id).Error
}
