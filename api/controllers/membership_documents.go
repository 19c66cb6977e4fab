package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ammabio/amma-backend/api/middleware"
	"github.com/ammabio/amma-backend/api/responses"
	"github.com/ammabio/amma-backend/api/validators"
	"github.com/ammabio/amma-backend/internal/documents"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/logger"
)

// MembershipDocumentUpload accepts a multipart verification document upload.
func MembershipDocumentUpload(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		if err := parseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membershipID, err := formUint(r, "membership_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Upload(r.Context(), middleware.UserIDFromContext(r.Context()), documents.UploadDocumentRequest{
			MembershipID: membershipID,
			DocumentType: r.FormValue("document_type"),
			File:         formFile(r, "file"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, created)
	}
}

// MembershipDocumentDetail returns one document owned by the caller.
func MembershipDocumentDetail(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "documentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, doc)
	}
}

// MembershipDocumentUpdate replaces the document type and/or file.
func MembershipDocumentUpdate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "documentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := parseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), middleware.UserIDFromContext(r.Context()), id, documents.UpdateDocumentRequest{
			DocumentType: formValuePtr(r, "document_type"),
			File:         formFile(r, "file"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// MembershipDocumentsByMembership lists a membership's documents.
func MembershipDocumentsByMembership(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		membershipID, err := validators.ParsePathID(chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByMembership(r.Context(), middleware.UserIDFromContext(r.Context()), membershipID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, rows, len(rows))
	}
}

// MembershipDocumentDelete removes a document and its stored file.
func MembershipDocumentDelete(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "documentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), middleware.UserIDFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
