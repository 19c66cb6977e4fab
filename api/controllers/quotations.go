package controllers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ammabio/amma-backend/api/middleware"
	"github.com/ammabio/amma-backend/api/responses"
	"github.com/ammabio/amma-backend/api/validators"
	"github.com/ammabio/amma-backend/internal/quotations"
	"github.com/ammabio/amma-backend/pkg/enums"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/logger"
	"github.com/ammabio/amma-backend/pkg/pagination"
)

type quotationFileMeta struct {
	FileName    *string `json:"file_name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type quotationCreatePayload struct {
	Country                 string                 `json:"country"`
	Currency                string                 `json:"currency"`
	Title                   string                 `json:"title"`
	Description             *string                `json:"description,omitempty"`
	ResponsiblePerson       *string                `json:"responsible_person,omitempty"`
	Contact                 *string                `json:"contact,omitempty"`
	AuthorityDepartment     *string                `json:"authority_department,omitempty"`
	AuthorityWebsite        *string                `json:"authority_website,omitempty"`
	AuthorityContactDetails *string                `json:"authority_contact_details,omitempty"`
	Items                   []quotations.ItemInput `json:"items,omitempty"`
	Files                   []quotationFileMeta    `json:"files,omitempty"`
}

type quotationUpdatePayload struct {
	Country                 *string                `json:"country,omitempty"`
	Currency                *string                `json:"currency,omitempty"`
	Title                   *string                `json:"title,omitempty"`
	Description             *string                `json:"description,omitempty"`
	ResponsiblePerson       *string                `json:"responsible_person,omitempty"`
	Contact                 *string                `json:"contact,omitempty"`
	AuthorityDepartment     *string                `json:"authority_department,omitempty"`
	AuthorityWebsite        *string                `json:"authority_website,omitempty"`
	AuthorityContactDetails *string                `json:"authority_contact_details,omitempty"`
	Status                  *string                `json:"status,omitempty"`
	Items                   []quotations.ItemInput `json:"items,omitempty"`
	Files                   []quotationFileMeta    `json:"files,omitempty"`
	// ReplaceFiles marks an explicit wholesale replacement when no uploads
	// accompany the request (an empty set clears the collection).
	ReplaceFiles bool `json:"replace_files,omitempty"`
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// decodeQuotationPayload reads either a JSON body or the "payload" part of a
// multipart request into dest, returning the uploaded guideline files.
func decodeQuotationPayload(r *http.Request, dest any) ([]quotations.FileInput, error) {
	if !isMultipart(r) {
		if err := validators.DecodeJSONBody(r, dest); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := parseMultipart(r); err != nil {
		return nil, err
	}
	raw := r.FormValue("payload")
	if raw == "" {
		return nil, pkgerrors.Validation(pkgerrors.FieldErrors{"payload": {"is required"}})
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload json")
	}

	var files []quotations.FileInput
	for _, header := range formFiles(r, "files") {
		files = append(files, quotations.FileInput{Upload: header})
	}
	return files, nil
}

// mergeFileInputs attaches payload-supplied names and descriptions to uploads
// by position. Metadata entries beyond the uploads become reference-only files
// without a stored payload.
func mergeFileInputs(files []quotations.FileInput, meta []quotationFileMeta) []quotations.FileInput {
	for i := range files {
		if i < len(meta) {
			files[i].FileName = meta[i].FileName
			files[i].Description = meta[i].Description
		}
	}
	for i := len(files); i < len(meta); i++ {
		files = append(files, quotations.FileInput{
			FileName:    meta[i].FileName,
			Description: meta[i].Description,
		})
	}
	return files
}

// QuotationCreate creates a quotation with items and guideline files in one
// transactional write. The membership is derived from the caller's account.
func QuotationCreate(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotation service unavailable"))
			return
		}

		var payload quotationCreatePayload
		files, err := decodeQuotationPayload(r, &payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := quotations.CreateQuotationRequest{
			Country:                 payload.Country,
			Currency:                payload.Currency,
			Title:                   payload.Title,
			Description:             payload.Description,
			ResponsiblePerson:       payload.ResponsiblePerson,
			Contact:                 payload.Contact,
			AuthorityDepartment:     payload.AuthorityDepartment,
			AuthorityWebsite:        payload.AuthorityWebsite,
			AuthorityContactDetails: payload.AuthorityContactDetails,
			Items:                   payload.Items,
			Files:                   mergeFileInputs(files, payload.Files),
		}

		created, err := svc.Create(r.Context(), middleware.UserIDFromContext(r.Context()), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, created)
	}
}

// QuotationList returns the caller's quotations as a cursor-paginated page.
func QuotationList(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotation service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// QuotationDetail returns one quotation owned by the caller.
func QuotationDetail(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotation service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "quotationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotation, err := svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotation)
	}
}

// QuotationUpdate mutates a quotation. Supplying items or files replaces the
// collection wholesale; omitting them leaves the collection untouched.
func QuotationUpdate(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotation service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "quotationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quotationUpdatePayload
		uploads, err := decodeQuotationPayload(r, &payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := quotations.UpdateQuotationRequest{
			Country:                 payload.Country,
			Currency:                payload.Currency,
			Title:                   payload.Title,
			Description:             payload.Description,
			ResponsiblePerson:       payload.ResponsiblePerson,
			Contact:                 payload.Contact,
			AuthorityDepartment:     payload.AuthorityDepartment,
			AuthorityWebsite:        payload.AuthorityWebsite,
			AuthorityContactDetails: payload.AuthorityContactDetails,
			Status:                  payload.Status,
			Items:                   payload.Items,
		}
		if len(uploads) > 0 || payload.Files != nil || payload.ReplaceFiles {
			req.Files = mergeFileInputs(uploads, payload.Files)
			if req.Files == nil {
				req.Files = []quotations.FileInput{}
			}
		}

		actor := quotations.Actor{
			UserID: middleware.UserIDFromContext(r.Context()),
			Role:   enums.ActorRole(middleware.RoleFromContext(r.Context())),
		}

		updated, err := svc.Update(r.Context(), actor, id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// QuotationsByMembership lists a membership's quotations.
func QuotationsByMembership(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotation service unavailable"))
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
