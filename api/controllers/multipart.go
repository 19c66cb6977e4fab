package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
)

const multipartMaxMemory = 32 << 20

func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload")
	}
	return nil
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

func formValuePtr(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values := r.MultipartForm.Value[field]
	if len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

func formUint(r *http.Request, field string) (uint, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, pkgerrors.Validation(pkgerrors.FieldErrors{field: {"is required"}})
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, pkgerrors.Validation(pkgerrors.FieldErrors{field: {"must be a positive integer"}})
	}
	return uint(parsed), nil
}
