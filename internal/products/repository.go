package products

import (
	"context"

	"github.com/ammabio/amma-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository provides product catalog reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the catalog ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Order("product_name ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a product with its registrations and documents.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Registrations").
		Preload("Documents").
		First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Exists reports whether the product id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRegistrations returns the per-country registrations of a product.
func (r *Repository) ListRegistrations(ctx context.Context, productID uint) ([]models.ProductRegistration, error) {
	var rows []models.ProductRegistration
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("country ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDocuments returns the documents attached to a product.
func (r *Repository) ListDocuments(ctx context.Context, productID uint) ([]models.ProductDocument, error) {
	var rows []models.ProductDocument
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
