package quotations

import (
	"context"

	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository provides quotation persistence including child collections.
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

// Create inserts the quotation row. Child rows are inserted separately so the
// caller controls transaction boundaries.
func (r *Repository) Create(ctx context.Context, quotation *models.Quotation) (*models.Quotation, error) {
	if err := r.db.WithContext(ctx).Omit("Items", "GuidelineFiles").Create(quotation).Error; err != nil {
		return nil, err
	}
	return quotation, nil
}

// CreateItems inserts quotation items one by one.
func (r *Repository) CreateItems(ctx context.Context, items []models.QuotationItem) error {
	for i := range items {
		if err := r.db.WithContext(ctx).Omit("Product").Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateFiles inserts guideline file rows.
func (r *Repository) CreateFiles(ctx context.Context, files []models.QuotationGuidelineFile) error {
	for i := range files {
		if err := r.db.WithContext(ctx).Create(&files[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByID loads a quotation with its items and guideline files.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Quotation, error) {
	var quotation models.Quotation
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Preload("GuidelineFiles", fileOrder).
		First(&quotation, id).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

// FindOwnedByUser loads a quotation only when its membership chain leads back
// to the given account. Foreign quotations surface as record-not-found.
func (r *Repository) FindOwnedByUser(ctx context.Context, id, userID uint) (*models.Quotation, error) {
	var quotation models.Quotation
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Preload("GuidelineFiles", fileOrder).
		Joins("JOIN memberships ON memberships.id = quotations.membership_id").
		Joins("JOIN registrations ON registrations.id = memberships.registration_id").
		Where("quotations.id = ? AND registrations.user_id = ?", id, userID).
		First(&quotation).Error; err != nil {
		return nil, err
	}
	return &quotation, nil
}

// ListForMembership returns the membership's quotations with children in
// insertion order.
func (r *Repository) ListForMembership(ctx context.Context, membershipID uint) ([]models.Quotation, error) {
	var rows []models.Quotation
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Preload("GuidelineFiles", fileOrder).
		Where("membership_id = ?", membershipID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForUser returns a page of quotations across the account's memberships
// in insertion order, plus the cursor pointing at the next page.
func (r *Repository) ListForUser(ctx context.Context, userID uint, cursor *pagination.Cursor, limit int) ([]models.Quotation, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	query := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Preload("GuidelineFiles", fileOrder).
		Joins("JOIN memberships ON memberships.id = quotations.membership_id").
		Joins("JOIN registrations ON registrations.id = memberships.registration_id").
		Where("registrations.user_id = ?", userID)
	if cursor != nil {
		query = query.Where("(quotations.created_at, quotations.id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Quotation
	if err := query.Order("quotations.created_at ASC, quotations.id ASC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

// Update persists the quotation's own columns, leaving children alone.
func (r *Repository) Update(ctx context.Context, quotation *models.Quotation) error {
	return r.db.WithContext(ctx).Omit("Items", "GuidelineFiles", "Membership").Save(quotation).Error
}

// DeleteItems removes every item of the quotation.
func (r *Repository) DeleteItems(ctx context.Context, quotationID uint) error {
	return r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Delete(&models.QuotationItem{}).Error
}

// DeleteFiles removes every guideline file row of the quotation.
func (r *Repository) DeleteFiles(ctx context.Context, quotationID uint) error {
	return r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Delete(&models.QuotationGuidelineFile{}).Error
}

func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("quotation_items.id ASC")
}

func fileOrder(db *gorm.DB) *gorm.DB {
	return db.Order("quotation_guideline_files.id ASC")
}
