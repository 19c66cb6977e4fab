package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{}, &models.ProductRegistration{}, &models.ProductDocument{},
	))
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		ProductName:           name,
		BiocontrolAgentName:   "Trichoderma viride",
		BiocontrolAgentStrain: "TV-01",
		Category:              enums.ProductCategoryBiopesticide,
		Formulation:           enums.FormulationWettablePowder,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestListOrdersByName(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, "Zeta Guard")
	seedProduct(t, conn, "Agri Shield")

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Agri Shield", rows[0].ProductName)
}

func TestGetPreloadsRegistrationsAndDocuments(t *testing.T) {
	svc, conn := newTestService(t)
	product := seedProduct(t, conn, "Agri Shield")

	require.NoError(t, conn.Create(&models.ProductRegistration{
		ProductID: product.ID,
		Country:   "India",
	}).Error)
	require.NoError(t, conn.Create(&models.ProductDocument{
		ProductID:    product.ID,
		DocumentName: "Label claim",
	}).Error)

	got, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, got.Registrations, 1)
	require.Equal(t, enums.RegistrationStatusPending, got.Registrations[0].RegistrationStatus)
	require.Len(t, got.Documents, 1)
}

func TestGetUnknownProductReturnsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestChildListsRequireExistingProduct(t *testing.T) {
	svc, conn := newTestService(t)
	product := seedProduct(t, conn, "Agri Shield")

	regs, err := svc.ListRegistrations(context.Background(), product.ID)
	require.NoError(t, err)
	require.Empty(t, regs)

	_, err = svc.ListRegistrations(context.Background(), 404)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.ListDocuments(context.Background(), 404)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
