package quotations

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/ammabio/amma-backend/api/validators"
	"github.com/ammabio/amma-backend/pkg/db"
	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemInput is one requested service line referencing a catalog product.
type ItemInput struct {
	ProductID   uint    `json:"product_id"`
	ServiceName *string `json:"service_name,omitempty"`
	Description *string `json:"description,omitempty"`
	QuotedPrice *string `json:"quoted_price,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
}

// FileInput is one guideline file payload. FileName falls back to the
// uploaded file's original name.
type FileInput struct {
	FileName    *string `json:"file_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Upload      *multipart.FileHeader
}

// CreateQuotationRequest creates a quotation with its children in one write.
type CreateQuotationRequest struct {
	Country                 string  `json:"country"`
	Currency                string  `json:"currency"`
	Title                   string  `json:"title"`
	Description             *string `json:"description,omitempty"`
	ResponsiblePerson       *string `json:"responsible_person,omitempty"`
	Contact                 *string `json:"contact,omitempty"`
	AuthorityDepartment     *string `json:"authority_department,omitempty"`
	AuthorityWebsite        *string `json:"authority_website,omitempty"`
	AuthorityContactDetails *string `json:"authority_contact_details,omitempty"`
	Items                   []ItemInput
	Files                   []FileInput
}

// UpdateQuotationRequest mutates quotation fields. A nil Items or Files slice
// leaves that collection untouched; a non-nil slice, even empty, replaces it
// wholesale.
type UpdateQuotationRequest struct {
	Country                 *string `json:"country,omitempty"`
	Currency                *string `json:"currency,omitempty"`
	Title                   *string `json:"title,omitempty"`
	Description             *string `json:"description,omitempty"`
	ResponsiblePerson       *string `json:"responsible_person,omitempty"`
	Contact                 *string `json:"contact,omitempty"`
	AuthorityDepartment     *string `json:"authority_department,omitempty"`
	AuthorityWebsite        *string `json:"authority_website,omitempty"`
	AuthorityContactDetails *string `json:"authority_contact_details,omitempty"`
	Status                  *string `json:"status,omitempty"`
	Items                   []ItemInput
	Files                   []FileInput
}

// Actor identifies who performs a quotation mutation.
type Actor struct {
	UserID uint
	Role   enums.ActorRole
}

// ListResult wraps a page of quotations and the cursor for the next page.
type ListResult struct {
	Quotations []models.Quotation `json:"quotations"`
	Cursor     string             `json:"cursor"`
}

// Service exposes quotation management with transactional child writes.
type Service interface {
	Create(ctx context.Context, userID uint, req CreateQuotationRequest) (*models.Quotation, error)
	Get(ctx context.Context, userID, quotationID uint) (*models.Quotation, error)
	List(ctx context.Context, userID uint, params pagination.Params) (*ListResult, error)
	ListByMembership(ctx context.Context, userID, membershipID uint) ([]models.Quotation, error)
	Update(ctx context.Context, actor Actor, quotationID uint, req UpdateQuotationRequest) (*models.Quotation, error)
}

type membershipResolver interface {
	ResolveOwned(ctx context.Context, userID, membershipID uint) (*models.Membership, error)
	ResolveDefault(ctx context.Context, userID uint) (*models.Membership, error)
}

type productChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type fileStore interface {
	Validate(header *multipart.FileHeader) string
	Save(subdir string, header *multipart.FileHeader) (string, error)
	Remove(relPath string) error
}

// ServiceParams wires the quotation service dependencies.
type ServiceParams struct {
	Repo        *Repository
	Memberships membershipResolver
	Products    productChecker
	DB          *db.Client
	Store       fileStore
}

type service struct {
	repo        *Repository
	memberships membershipResolver
	products    productChecker
	dbClient    *db.Client
	store       fileStore
}

// NewService constructs a quotation service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("quotation repository required")
	}
	if params.Memberships == nil {
		return nil, fmt.Errorf("membership resolver required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product checker required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("file store required")
	}
	return &service{
		repo:        params.Repo,
		memberships: params.Memberships,
		products:    params.Products,
		dbClient:    params.DB,
		store:       params.Store,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uint, req CreateQuotationRequest) (*models.Quotation, error) {
	membership, err := s.memberships.ResolveDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	validators.CheckNonBlank(fields, "title", req.Title, 3)
	validators.CheckNonBlank(fields, "country", req.Country, 2)
	currency := validators.CheckCurrency(fields, "currency", strings.TrimSpace(req.Currency))
	if req.AuthorityWebsite != nil {
		validators.CheckURL(fields, "authority_website", *req.AuthorityWebsite)
	}

	items, err := s.buildItems(ctx, fields, req.Items, nil)
	if err != nil {
		return nil, err
	}
	files := s.validateFiles(fields, req.Files)

	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	quotation := &models.Quotation{
		MembershipID:            membership.ID,
		Country:                 strings.TrimSpace(req.Country),
		Currency:                currency,
		Title:                   strings.TrimSpace(req.Title),
		Description:             trimPtr(req.Description),
		ResponsiblePerson:       trimPtr(req.ResponsiblePerson),
		Contact:                 trimPtr(req.Contact),
		AuthorityDepartment:     trimPtr(req.AuthorityDepartment),
		AuthorityWebsite:        trimPtr(req.AuthorityWebsite),
		AuthorityContactDetails: trimPtr(req.AuthorityContactDetails),
	}

	fileRows, savedPaths, err := s.storeFiles(membership.ID, files)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, quotation); err != nil {
			return err
		}
		for i := range items {
			items[i].QuotationID = quotation.ID
		}
		if err := txRepo.CreateItems(ctx, items); err != nil {
			return err
		}
		for i := range fileRows {
			fileRows[i].QuotationID = quotation.ID
		}
		return txRepo.CreateFiles(ctx, fileRows)
	}); err != nil {
		s.removePaths(savedPaths)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create quotation")
	}

	return s.readBack(ctx, quotation.ID)
}

func (s *service) Get(ctx context.Context, userID, quotationID uint) (*models.Quotation, error) {
	return s.owned(ctx, userID, quotationID)
}

func (s *service) List(ctx context.Context, userID uint, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.ListForUser(ctx, userID, cursor, params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}

	result := &ListResult{Quotations: rows}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) ListByMembership(ctx context.Context, userID, membershipID uint) ([]models.Quotation, error) {
	membership, err := s.memberships.ResolveOwned(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListForMembership(ctx, membership.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, actor Actor, quotationID uint, req UpdateQuotationRequest) (*models.Quotation, error) {
	quotation, err := s.loadForActor(ctx, actor, quotationID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if req.Title != nil {
		validators.CheckNonBlank(fields, "title", *req.Title, 3)
	}
	if req.Country != nil {
		validators.CheckNonBlank(fields, "country", *req.Country, 2)
	}
	var currency enums.Currency
	if req.Currency != nil {
		currency = validators.CheckCurrency(fields, "currency", strings.TrimSpace(*req.Currency))
	}
	if req.AuthorityWebsite != nil {
		validators.CheckURL(fields, "authority_website", *req.AuthorityWebsite)
	}
	var status enums.QuotationStatus
	if req.Status != nil {
		if actor.Role != enums.ActorRoleStaff {
			fields.Add("status", "can only be changed by staff")
		} else if status, err = enums.ParseQuotationStatus(strings.TrimSpace(*req.Status)); err != nil {
			fields.Add("status", "is not a valid quotation status")
		}
	}

	var quotedBy *uint
	if actor.Role == enums.ActorRoleStaff {
		quotedBy = &actor.UserID
	}
	var items []models.QuotationItem
	if req.Items != nil {
		items, err = s.buildItems(ctx, fields, req.Items, quotedBy)
		if err != nil {
			return nil, err
		}
	}
	var files []FileInput
	if req.Files != nil {
		files = s.validateFiles(fields, req.Files)
	}

	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	if req.Title != nil {
		quotation.Title = strings.TrimSpace(*req.Title)
	}
	if req.Country != nil {
		quotation.Country = strings.TrimSpace(*req.Country)
	}
	if req.Currency != nil {
		quotation.Currency = currency
	}
	if req.Description != nil {
		quotation.Description = trimPtr(req.Description)
	}
	if req.ResponsiblePerson != nil {
		quotation.ResponsiblePerson = trimPtr(req.ResponsiblePerson)
	}
	if req.Contact != nil {
		quotation.Contact = trimPtr(req.Contact)
	}
	if req.AuthorityDepartment != nil {
		quotation.AuthorityDepartment = trimPtr(req.AuthorityDepartment)
	}
	if req.AuthorityWebsite != nil {
		quotation.AuthorityWebsite = trimPtr(req.AuthorityWebsite)
	}
	if req.AuthorityContactDetails != nil {
		quotation.AuthorityContactDetails = trimPtr(req.AuthorityContactDetails)
	}
	if req.Status != nil {
		quotation.Status = status
	}

	var fileRows []models.QuotationGuidelineFile
	var savedPaths []string
	if req.Files != nil {
		fileRows, savedPaths, err = s.storeFiles(quotation.MembershipID, files)
		if err != nil {
			return nil, err
		}
	}

	var oldPaths []string
	if req.Files != nil {
		for _, f := range quotation.GuidelineFiles {
			if f.FilePath != nil {
				oldPaths = append(oldPaths, *f.FilePath)
			}
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Update(ctx, quotation); err != nil {
			return err
		}
		if req.Items != nil {
			if err := txRepo.DeleteItems(ctx, quotation.ID); err != nil {
				return err
			}
			for i := range items {
				items[i].QuotationID = quotation.ID
			}
			if err := txRepo.CreateItems(ctx, items); err != nil {
				return err
			}
		}
		if req.Files != nil {
			if err := txRepo.DeleteFiles(ctx, quotation.ID); err != nil {
				return err
			}
			for i := range fileRows {
				fileRows[i].QuotationID = quotation.ID
			}
			if err := txRepo.CreateFiles(ctx, fileRows); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		s.removePaths(savedPaths)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update quotation")
	}

	s.removePaths(oldPaths)
	return s.readBack(ctx, quotation.ID)
}

// buildItems validates item inputs and converts them to rows. Field keys are
// indexed so each offending line reports independently.
func (s *service) buildItems(ctx context.Context, fields pkgerrors.FieldErrors, inputs []ItemInput, quotedBy *uint) ([]models.QuotationItem, error) {
	items := make([]models.QuotationItem, 0, len(inputs))
	for i, input := range inputs {
		if input.ProductID == 0 {
			fields.Add(fmt.Sprintf("items[%d].product_id", i), "is required")
			continue
		}
		exists, err := s.products.Exists(ctx, input.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
		}
		if !exists {
			fields.Add(fmt.Sprintf("items[%d].product_id", i), "references an unknown product")
			continue
		}

		item := models.QuotationItem{
			ProductID:   input.ProductID,
			ServiceName: trimPtr(input.ServiceName),
			Description: trimPtr(input.Description),
			Remarks:     trimPtr(input.Remarks),
		}
		if input.QuotedPrice != nil {
			price, err := decimal.NewFromString(strings.TrimSpace(*input.QuotedPrice))
			if err != nil {
				fields.Add(fmt.Sprintf("items[%d].quoted_price", i), "must be a valid decimal number")
			} else {
				validators.CheckQuotedPrice(fields, fmt.Sprintf("items[%d].quoted_price", i), &price)
				item.QuotedPrice = &price
				item.QuotedBy = quotedBy
			}
		}
		if input.Currency != nil {
			itemCurrency := validators.CheckCurrency(fields, fmt.Sprintf("items[%d].currency", i), strings.TrimSpace(*input.Currency))
			if itemCurrency != "" {
				item.Currency = &itemCurrency
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *service) validateFiles(fields pkgerrors.FieldErrors, inputs []FileInput) []FileInput {
	for i, input := range inputs {
		if input.Upload == nil {
			if trimPtr(input.FileName) == nil {
				fields.Add(fmt.Sprintf("files[%d].file_name", i), "is required when no file is uploaded")
			}
			continue
		}
		if msg := s.store.Validate(input.Upload); msg != "" {
			fields.Add(fmt.Sprintf("files[%d].file", i), msg)
		}
	}
	return inputs
}

// storeFiles writes uploads to disk and returns the rows plus saved paths so
// a failed transaction can clean up. Entries without an upload become
// reference-only rows with a nil path.
func (s *service) storeFiles(membershipID uint, inputs []FileInput) ([]models.QuotationGuidelineFile, []string, error) {
	rows := make([]models.QuotationGuidelineFile, 0, len(inputs))
	var saved []string
	for _, input := range inputs {
		row := models.QuotationGuidelineFile{
			FileName:    trimPtr(input.FileName),
			Description: trimPtr(input.Description),
		}
		if input.Upload != nil {
			rel, err := s.store.Save(fmt.Sprintf("memberships/%d/guidelines", membershipID), input.Upload)
			if err != nil {
				s.removePaths(saved)
				return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store guideline file")
			}
			saved = append(saved, rel)

			relCopy := rel
			row.FilePath = &relCopy
			if row.FileName == nil {
				original := input.Upload.Filename
				row.FileName = &original
			}
		}
		rows = append(rows, row)
	}
	return rows, saved, nil
}

func (s *service) removePaths(paths []string) {
	for _, p := range paths {
		_ = s.store.Remove(p)
	}
}

func (s *service) readBack(ctx context.Context, id uint) (*models.Quotation, error) {
	quotation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
	}
	return quotation, nil
}

func (s *service) loadForActor(ctx context.Context, actor Actor, quotationID uint) (*models.Quotation, error) {
	if actor.Role == enums.ActorRoleStaff {
		quotation, err := s.repo.FindByID(ctx, quotationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
		}
		return quotation, nil
	}
	return s.owned(ctx, actor.UserID, quotationID)
}

func (s *service) owned(ctx context.Context, userID, quotationID uint) (*models.Quotation, error) {
	quotation, err := s.repo.FindOwnedByUser(ctx, quotationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
	}
	return quotation, nil
}

// freeTextMax caps optional free-text fields before they reach the database.
const freeTextMax = 500

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := validators.SanitizeString(*value, freeTextMax)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
