package quotations

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ammabio/amma-backend/internal/memberships"
	"github.com/ammabio/amma-backend/internal/products"
	"github.com/ammabio/amma-backend/internal/registrations"
	"github.com/ammabio/amma-backend/pkg/config"
	"github.com/ammabio/amma-backend/pkg/db"
	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/pagination"
	"github.com/ammabio/amma-backend/pkg/uploads"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	conn       *gorm.DB
	svc        Service
	userID     uint
	membership *models.Membership
	product    *models.Product
}

// allowAllChecker approves any product id, letting tests drive child-insert
// failures through the database instead of validation.
type allowAllChecker struct{}

func (allowAllChecker) Exists(ctx context.Context, id uint) (bool, error) {
	return true, nil
}

func openConn(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Registration{}, &models.Membership{},
		&models.Product{}, &models.Quotation{}, &models.QuotationItem{},
		&models.QuotationGuidelineFile{},
	))
	return conn
}

func newFixture(t *testing.T, checker ...interface {
	Exists(ctx context.Context, id uint) (bool, error)
}) *fixture {
	t.Helper()

	conn := openConn(t)

	user := &models.User{Email: "owner@example.com", PasswordHash: "hash", FirstName: "Asha", LastName: "Iyer", Role: enums.ActorRoleMember, IsActive: true}
	require.NoError(t, conn.Create(user).Error)
	registration := &models.Registration{UserID: user.ID, UserType: enums.UserTypeCompany, ContactNumber: "9876543210", Country: "India", State: "Karnataka", City: "Bengaluru", Pincode: "560001"}
	require.NoError(t, conn.Create(registration).Error)
	membership := &models.Membership{RegistrationID: registration.ID, CompanyName: "Amma Biologicals", Email: "accounts@example.com", Phone: "9123456780", Country: "India", State: "Karnataka", City: "Bengaluru", Pincode: "560001"}
	require.NoError(t, conn.Create(membership).Error)
	product := &models.Product{ProductName: "Agri Shield", BiocontrolAgentName: "Trichoderma viride", BiocontrolAgentStrain: "TV-01", Category: enums.ProductCategoryBiopesticide, Formulation: enums.FormulationWettablePowder}
	require.NoError(t, conn.Create(product).Error)

	membershipSvc, err := memberships.NewService(memberships.NewRepository(conn), registrations.NewRepository(conn))
	require.NoError(t, err)

	params := ServiceParams{
		Repo:        NewRepository(conn),
		Memberships: membershipSvc,
		Products:    products.NewRepository(conn),
		DB:          db.FromConn(conn),
		Store:       uploads.NewStore(config.UploadsConfig{Dir: t.TempDir(), MaxUploadMB: 1}),
	}
	if len(checker) > 0 {
		params.Products = checker[0]
	}
	svc, err := NewService(params)
	require.NoError(t, err)

	return &fixture{conn: conn, svc: svc, userID: user.ID, membership: membership, product: product}
}

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(4<<20))
	return req.MultipartForm.File["file"][0]
}

func (f *fixture) validCreate(t *testing.T) CreateQuotationRequest {
	return CreateQuotationRequest{
		Country:  "India",
		Currency: "INR",
		Title:    "Registration support for Agri Shield",
		Items: []ItemInput{
			{ProductID: f.product.ID, ServiceName: ptr("Dossier preparation")},
			{ProductID: f.product.ID, ServiceName: ptr("Authority liaison")},
		},
		Files: []FileInput{
			{Upload: multipartHeader(t, "guidelines.pdf", []byte("pdf"))},
		},
	}
}

func TestCreatePersistsItemsAndFilesAtomically(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)
	require.Equal(t, f.membership.ID, created.MembershipID)
	require.Equal(t, enums.QuotationStatusPending, created.Status)
	require.Len(t, created.Items, 2)
	require.Len(t, created.GuidelineFiles, 1)

	readBack, err := f.svc.Get(context.Background(), f.userID, created.ID)
	require.NoError(t, err)
	require.Len(t, readBack.Items, 2)
	require.Len(t, readBack.GuidelineFiles, 1)
}

func TestCreateRollsBackWhenChildInsertFails(t *testing.T) {
	f := newFixture(t, allowAllChecker{})

	req := f.validCreate(t)
	req.Items = []ItemInput{
		{ProductID: f.product.ID},
		{ProductID: 9999},
	}

	_, err := f.svc.Create(context.Background(), f.userID, req)
	require.Error(t, err)

	var quotations, items int64
	require.NoError(t, f.conn.Model(&models.Quotation{}).Count(&quotations).Error)
	require.NoError(t, f.conn.Model(&models.QuotationItem{}).Count(&items).Error)
	require.Zero(t, quotations)
	require.Zero(t, items)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	website := "authority.example.gov"
	_, err := f.svc.Create(context.Background(), f.userID, CreateQuotationRequest{
		Country:          "India",
		Currency:         "EUR",
		Title:            "ab",
		AuthorityWebsite: &website,
		Items: []ItemInput{
			{ProductID: 404},
			{ProductID: f.product.ID, QuotedPrice: ptr("1000000000.00")},
		},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, []string{"must be at least 3 characters"}, typed.Fields()["title"])
	require.Equal(t, []string{"must be one of: INR, USD"}, typed.Fields()["currency"])
	require.Equal(t, []string{"must be a valid URL with an explicit scheme"}, typed.Fields()["authority_website"])
	require.Equal(t, []string{"references an unknown product"}, typed.Fields()["items[0].product_id"])
	require.Equal(t, []string{"must not exceed 999,999,999.99"}, typed.Fields()["items[1].quoted_price"])

	var count int64
	require.NoError(t, f.conn.Model(&models.Quotation{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGuidelineFileNameDefaultsToUploadName(t *testing.T) {
	f := newFixture(t)

	req := f.validCreate(t)
	req.Files = []FileInput{
		{Upload: multipartHeader(t, "ministry-guidelines.pdf", []byte("pdf"))},
		{FileName: ptr("Custom name"), Upload: multipartHeader(t, "other.pdf", []byte("pdf"))},
	}

	created, err := f.svc.Create(context.Background(), f.userID, req)
	require.NoError(t, err)
	require.Len(t, created.GuidelineFiles, 2)
	require.Equal(t, "ministry-guidelines.pdf", *created.GuidelineFiles[0].FileName)
	require.Equal(t, "Custom name", *created.GuidelineFiles[1].FileName)
}

func TestCreateAcceptsGuidelineReferenceWithoutUpload(t *testing.T) {
	f := newFixture(t)

	req := f.validCreate(t)
	req.Files = []FileInput{
		{FileName: ptr("Authority guidelines"), Description: ptr("Published on the ministry portal")},
	}

	created, err := f.svc.Create(context.Background(), f.userID, req)
	require.NoError(t, err)
	require.Len(t, created.GuidelineFiles, 1)
	require.Nil(t, created.GuidelineFiles[0].FilePath)
	require.Equal(t, "Authority guidelines", *created.GuidelineFiles[0].FileName)
	require.Equal(t, "Published on the ministry portal", *created.GuidelineFiles[0].Description)
}

func TestCreateRejectsGuidelineEntryWithoutNameOrUpload(t *testing.T) {
	f := newFixture(t)

	req := f.validCreate(t)
	req.Files = []FileInput{{Description: ptr("no name, no payload")}}

	_, err := f.svc.Create(context.Background(), f.userID, req)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, []string{"is required when no file is uploaded"}, typed.Fields()["files[0].file_name"])
}

func TestCreateCapsFreeTextFields(t *testing.T) {
	f := newFixture(t)

	long := strings.Repeat("x", freeTextMax+50)
	req := f.validCreate(t)
	req.Description = &long

	created, err := f.svc.Create(context.Background(), f.userID, req)
	require.NoError(t, err)
	require.Len(t, *created.Description, freeTextMax)
}

func TestUpdateReplacesItemsWholesale(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)
	require.Len(t, created.Items, 2)

	actor := Actor{UserID: f.userID, Role: enums.ActorRoleMember}
	updated, err := f.svc.Update(context.Background(), actor, created.ID, UpdateQuotationRequest{
		Items: []ItemInput{{ProductID: f.product.ID, ServiceName: ptr("Single remaining line")}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	require.Equal(t, "Single remaining line", *updated.Items[0].ServiceName)
	require.Len(t, updated.GuidelineFiles, 1)

	var items int64
	require.NoError(t, f.conn.Model(&models.QuotationItem{}).Count(&items).Error)
	require.EqualValues(t, 1, items)
}

func TestUpdateWithEmptyItemsDeletesAll(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)

	actor := Actor{UserID: f.userID, Role: enums.ActorRoleMember}
	updated, err := f.svc.Update(context.Background(), actor, created.ID, UpdateQuotationRequest{
		Items: []ItemInput{},
	})
	require.NoError(t, err)
	require.Empty(t, updated.Items)
	require.Len(t, updated.GuidelineFiles, 1)
}

func TestUpdateWithoutFilesLeavesFilesUntouched(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)
	originalFileID := created.GuidelineFiles[0].ID

	actor := Actor{UserID: f.userID, Role: enums.ActorRoleMember}
	updated, err := f.svc.Update(context.Background(), actor, created.ID, UpdateQuotationRequest{
		Title: ptr("Renamed request"),
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed request", updated.Title)
	require.Len(t, updated.GuidelineFiles, 1)
	require.Equal(t, originalFileID, updated.GuidelineFiles[0].ID)
}

func TestUpdateStatusRequiresStaff(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)

	member := Actor{UserID: f.userID, Role: enums.ActorRoleMember}
	_, err = f.svc.Update(context.Background(), member, created.ID, UpdateQuotationRequest{
		Status: ptr("sent"),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, []string{"can only be changed by staff"}, typed.Fields()["status"])
}

func TestStaffPricingUpdateSetsQuotedBy(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)

	staff := &models.User{Email: "staff@example.com", PasswordHash: "hash", FirstName: "Sita", LastName: "Menon", Role: enums.ActorRoleStaff, IsActive: true}
	require.NoError(t, f.conn.Create(staff).Error)

	actor := Actor{UserID: staff.ID, Role: enums.ActorRoleStaff}
	updated, err := f.svc.Update(context.Background(), actor, created.ID, UpdateQuotationRequest{
		Status: ptr("sent"),
		Items: []ItemInput{
			{ProductID: f.product.ID, QuotedPrice: ptr("45000.00"), Currency: ptr("INR")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, enums.QuotationStatusSent, updated.Status)
	require.Len(t, updated.Items, 1)
	require.Equal(t, "45000", updated.Items[0].QuotedPrice.String())
	require.NotNil(t, updated.Items[0].QuotedBy)
	require.Equal(t, staff.ID, *updated.Items[0].QuotedBy)
}

func TestForeignQuotationReadsAsNotFound(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)

	other := &models.User{Email: "other@example.com", PasswordHash: "hash", FirstName: "Ravi", LastName: "Rao", Role: enums.ActorRoleMember, IsActive: true}
	require.NoError(t, f.conn.Create(other).Error)
	otherReg := &models.Registration{UserID: other.ID, UserType: enums.UserTypeCompany, ContactNumber: "9876543211", Country: "India", State: "Kerala", City: "Kochi", Pincode: "682001"}
	require.NoError(t, f.conn.Create(otherReg).Error)

	_, err = f.svc.Get(context.Background(), other.ID, created.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	actor := Actor{UserID: other.ID, Role: enums.ActorRoleMember}
	_, err = f.svc.Update(context.Background(), actor, created.ID, UpdateQuotationRequest{Title: ptr("Hijack")})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListByMembershipReturnsOwnQuotationsInInsertionOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.userID, f.validCreate(t))
	require.NoError(t, err)

	second := f.validCreate(t)
	second.Title = "Follow-up request"
	_, err = f.svc.Create(context.Background(), f.userID, second)
	require.NoError(t, err)

	rows, err := f.svc.ListByMembership(context.Background(), f.userID, f.membership.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.True(t, rows[0].ID < rows[1].ID)
	require.Len(t, rows[0].Items, 2)

	all, err := f.svc.List(context.Background(), f.userID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, all.Quotations, 2)
	require.Empty(t, all.Cursor)
}

func TestListPaginatesWithCursor(t *testing.T) {
	f := newFixture(t)

	for _, title := range []string{"First request", "Second request", "Third request"} {
		req := f.validCreate(t)
		req.Title = title
		_, err := f.svc.Create(context.Background(), f.userID, req)
		require.NoError(t, err)
	}

	first, err := f.svc.List(context.Background(), f.userID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Quotations, 2)
	require.Equal(t, "First request", first.Quotations[0].Title)
	require.NotEmpty(t, first.Cursor)

	rest, err := f.svc.List(context.Background(), f.userID, pagination.Params{Limit: 2, Cursor: first.Cursor})
	require.NoError(t, err)
	require.Len(t, rest.Quotations, 1)
	require.Equal(t, "Third request", rest.Quotations[0].Title)
	require.Empty(t, rest.Cursor)
}

func TestListRejectsMalformedCursor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), f.userID, pagination.Params{Cursor: "not-a-cursor"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func ptr(value string) *string {
	return &value
}
