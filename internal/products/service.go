package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/ammabio/amma-backend/pkg/db/models"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes public catalog reads.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, productID uint) (*models.Product, error)
	ListRegistrations(ctx context.Context, productID uint) ([]models.ProductRegistration, error)
	ListDocuments(ctx context.Context, productID uint) ([]models.ProductDocument, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a product service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, productID uint) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListRegistrations(ctx context.Context, productID uint) ([]models.ProductRegistration, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRegistrations(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product registrations")
	}
	return rows, nil
}

func (s *service) ListDocuments(ctx context.Context, productID uint) ([]models.ProductDocument, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListDocuments(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product documents")
	}
	return rows, nil
}

func (s *service) requireProduct(ctx context.Context, productID uint) error {
	exists, err := s.repo.Exists(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
