package documents

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/ammabio/amma-backend/pkg/db"
	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/enums"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"gorm.io/gorm"
)

// UploadDocumentRequest carries the metadata accompanying a document upload.
type UploadDocumentRequest struct {
	MembershipID uint
	DocumentType string
	File         *multipart.FileHeader
}

// UpdateDocumentRequest replaces the document type and/or the stored file.
type UpdateDocumentRequest struct {
	DocumentType *string
	File         *multipart.FileHeader
}

// Service exposes verification document uploads for a membership.
type Service interface {
	Upload(ctx context.Context, userID uint, req UploadDocumentRequest) (*models.MembershipDocument, error)
	Get(ctx context.Context, userID, documentID uint) (*models.MembershipDocument, error)
	Update(ctx context.Context, userID, documentID uint, req UpdateDocumentRequest) (*models.MembershipDocument, error)
	ListByMembership(ctx context.Context, userID, membershipID uint) ([]models.MembershipDocument, error)
	Delete(ctx context.Context, userID, documentID uint) error
}

type membershipResolver interface {
	ResolveOwned(ctx context.Context, userID, membershipID uint) (*models.Membership, error)
}

type fileStore interface {
	Validate(header *multipart.FileHeader) string
	Save(subdir string, header *multipart.FileHeader) (string, error)
	Remove(relPath string) error
}

type service struct {
	repo        *Repository
	memberships membershipResolver
	store       fileStore
}

// NewService constructs a document service instance.
func NewService(repo *Repository, memberships membershipResolver, store fileStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("document repository required")
	}
	if memberships == nil {
		return nil, fmt.Errorf("membership resolver required")
	}
	if store == nil {
		return nil, fmt.Errorf("file store required")
	}
	return &service{repo: repo, memberships: memberships, store: store}, nil
}

func (s *service) Upload(ctx context.Context, userID uint, req UploadDocumentRequest) (*models.MembershipDocument, error) {
	membership, err := s.memberships.ResolveOwned(ctx, userID, req.MembershipID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	docType, err := enums.ParseDocumentType(strings.TrimSpace(req.DocumentType))
	if err != nil {
		fields.Add("document_type", "is not a valid document type")
	}
	if msg := s.store.Validate(req.File); msg != "" {
		fields.Add("file", msg)
	}
	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	exists, err := s.repo.ExistsForType(ctx, membership.ID, docType, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check document type")
	}
	if exists {
		return nil, duplicateTypeError()
	}

	relPath, err := s.store.Save(fmt.Sprintf("memberships/%d/documents", membership.ID), req.File)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store document")
	}

	doc := &models.MembershipDocument{
		MembershipID: membership.ID,
		DocumentType: docType,
		FilePath:     relPath,
		FileName:     req.File.Filename,
	}
	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		_ = s.store.Remove(relPath)
		// Concurrent upload of the same type lands here via the unique index.
		if db.IsUniqueViolation(err, "") {
			return nil, duplicateTypeError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert document")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, userID, documentID uint) (*models.MembershipDocument, error) {
	return s.owned(ctx, userID, documentID)
}

func (s *service) Update(ctx context.Context, userID, documentID uint, req UpdateDocumentRequest) (*models.MembershipDocument, error) {
	doc, err := s.owned(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	docType := doc.DocumentType
	if req.DocumentType != nil {
		docType, err = enums.ParseDocumentType(strings.TrimSpace(*req.DocumentType))
		if err != nil {
			fields.Add("document_type", "is not a valid document type")
		}
	}
	if req.File != nil {
		if msg := s.store.Validate(req.File); msg != "" {
			fields.Add("file", msg)
		}
	}
	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields)
	}

	if docType != doc.DocumentType {
		exists, err := s.repo.ExistsForType(ctx, doc.MembershipID, docType, doc.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check document type")
		}
		if exists {
			return nil, duplicateTypeError()
		}
		doc.DocumentType = docType
	}

	oldPath := doc.FilePath
	if req.File != nil {
		relPath, err := s.store.Save(fmt.Sprintf("memberships/%d/documents", doc.MembershipID), req.File)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store document")
		}
		doc.FilePath = relPath
		doc.FileName = req.File.Filename
		// Replacing the file restarts staff review.
		doc.VerificationStatus = enums.VerificationStatusPending
	}

	updated, err := s.repo.Update(ctx, doc)
	if err != nil {
		if req.File != nil {
			_ = s.store.Remove(doc.FilePath)
		}
		if db.IsUniqueViolation(err, "") {
			return nil, duplicateTypeError()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update document")
	}
	if req.File != nil && oldPath != doc.FilePath {
		_ = s.store.Remove(oldPath)
	}
	return updated, nil
}

func (s *service) ListByMembership(ctx context.Context, userID, membershipID uint) ([]models.MembershipDocument, error) {
	membership, err := s.memberships.ResolveOwned(ctx, userID, membershipID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListForMembership(ctx, membership.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list documents")
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, userID, documentID uint) error {
	doc, err := s.owned(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete document")
	}
	if err := s.store.Remove(doc.FilePath); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove document file")
	}
	return nil
}

func (s *service) owned(ctx context.Context, userID, documentID uint) (*models.MembershipDocument, error) {
	doc, err := s.repo.FindOwnedByUser(ctx, documentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load document")
	}
	return doc, nil
}

func duplicateTypeError() error {
	return pkgerrors.Validation(pkgerrors.FieldErrors{
		"document_type": {"has already been uploaded for this membership"},
	})
}
