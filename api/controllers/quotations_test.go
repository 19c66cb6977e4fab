package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ammabio/amma-backend/internal/quotations"
	"github.com/ammabio/amma-backend/pkg/db/models"
	"github.com/ammabio/amma-backend/pkg/pagination"
)

type stubQuotationService struct {
	lastCreate *quotations.CreateQuotationRequest
	lastUpdate *quotations.UpdateQuotationRequest
	lastActor  quotations.Actor
	lastList   pagination.Params
	err        error
}

func (s *stubQuotationService) Create(ctx context.Context, userID uint, req quotations.CreateQuotationRequest) (*models.Quotation, error) {
	s.lastCreate = &req
	return &models.Quotation{}, s.err
}

func (s *stubQuotationService) Get(ctx context.Context, userID, quotationID uint) (*models.Quotation, error) {
	return &models.Quotation{}, s.err
}

func (s *stubQuotationService) List(ctx context.Context, userID uint, params pagination.Params) (*quotations.ListResult, error) {
	s.lastList = params
	return &quotations.ListResult{Quotations: []models.Quotation{}}, s.err
}

func (s *stubQuotationService) ListByMembership(ctx context.Context, userID, membershipID uint) ([]models.Quotation, error) {
	return []models.Quotation{}, s.err
}

func (s *stubQuotationService) Update(ctx context.Context, actor quotations.Actor, quotationID uint, req quotations.UpdateQuotationRequest) (*models.Quotation, error) {
	s.lastActor = actor
	s.lastUpdate = &req
	return &models.Quotation{}, s.err
}

func multipartQuotationBody(t *testing.T, payload string, fileNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("payload", payload); err != nil {
		t.Fatalf("write payload field: %v", err)
	}
	for _, name := range fileNames {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write([]byte("guideline body")); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestQuotationCreateAcceptsJSON(t *testing.T) {
	svc := &stubQuotationService{}
	handler := QuotationCreate(svc, nil)

	body := `{
		"country": "India",
		"currency": "INR",
		"title": "Biopesticide registration support",
		"items": [{"product_id": 3, "service_name": "dossier preparation"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/quotations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", respRec.Code)
	}
	if svc.lastCreate == nil {
		t.Fatal("expected service to receive the request")
	}
	if len(svc.lastCreate.Items) != 1 || svc.lastCreate.Items[0].ProductID != 3 {
		t.Fatalf("unexpected items %+v", svc.lastCreate.Items)
	}
	if svc.lastCreate.Files != nil {
		t.Fatalf("expected no files for json create got %d", len(svc.lastCreate.Files))
	}
}

func TestQuotationCreateJSONCarriesFileMetadata(t *testing.T) {
	svc := &stubQuotationService{}
	handler := QuotationCreate(svc, nil)

	body := `{
		"country": "India",
		"currency": "INR",
		"title": "Biopesticide registration support",
		"files": [{"file_name": "Authority guidelines", "description": "published on the ministry portal"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/quotations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", respRec.Code)
	}
	files := svc.lastCreate.Files
	if len(files) != 1 {
		t.Fatalf("expected file metadata to reach the service got %d entries", len(files))
	}
	if files[0].Upload != nil {
		t.Fatal("expected no upload for a json-only file entry")
	}
	if files[0].FileName == nil || *files[0].FileName != "Authority guidelines" {
		t.Fatalf("unexpected file name %v", files[0].FileName)
	}
}

func TestQuotationListParsesPaginationQuery(t *testing.T) {
	svc := &stubQuotationService{}
	handler := QuotationList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/quotations?limit=5&cursor=abc", nil)
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
	if svc.lastList.Limit != 5 || svc.lastList.Cursor != "abc" {
		t.Fatalf("unexpected pagination params %+v", svc.lastList)
	}
}

func TestQuotationListRejectsNonNumericLimit(t *testing.T) {
	svc := &stubQuotationService{}
	handler := QuotationList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/quotations?limit=lots", nil)
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
}

func TestQuotationCreateMultipartPairsFileMetadata(t *testing.T) {
	svc := &stubQuotationService{}
	handler := QuotationCreate(svc, nil)

	payload := `{
		"country": "India",
		"currency": "INR",
		"title": "Import permit assistance",
		"files": [{"file_name": "Ministry checklist", "description": "official checklist"}]
	}`
	body, contentType := multipartQuotationBody(t, payload, "checklist.pdf", "annexure.pdf")
	req := httptest.NewRequest(http.MethodPost, "/quotations", body)
	req.Header.Set("Content-Type", contentType)
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", respRec.Code)
	}
	files := svc.lastCreate.Files
	if len(files) != 2 {
		t.Fatalf("expected 2 uploads got %d", len(files))
	}
	if files[0].FileName == nil || *files[0].FileName != "Ministry checklist" {
		t.Fatalf("expected metadata paired to first upload got %+v", files[0].FileName)
	}
	if files[1].FileName != nil {
		t.Fatalf("expected no metadata for second upload got %v", *files[1].FileName)
	}
	if files[0].Upload == nil || files[0].Upload.Filename != "checklist.pdf" {
		t.Fatal("expected upload header to carry through")
	}
}

func TestQuotationCreateMultipartRequiresPayload(t *testing.T) {
	svc := &stubQuotationService{}
	handler := QuotationCreate(svc, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/quotations", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	respRec := httptest.NewRecorder()

	handler.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", respRec.Code)
	}
}

func newQuotationUpdateRouter(svc quotations.Service) http.Handler {
	r := chi.NewRouter()
	r.Put("/quotations/{quotationId}", QuotationUpdate(svc, nil))
	return r
}

func TestQuotationUpdateLeavesFilesNilWithoutUploads(t *testing.T) {
	svc := &stubQuotationService{}
	router := newQuotationUpdateRouter(svc)

	body := `{"title": "Renewal support"}`
	req := httptest.NewRequest(http.MethodPut, "/quotations/12", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	router.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
	if svc.lastUpdate == nil {
		t.Fatal("expected service to receive the request")
	}
	if svc.lastUpdate.Files != nil {
		t.Fatal("expected nil files when nothing was uploaded")
	}
}

func TestQuotationUpdateJSONFileMetadataReplacesCollection(t *testing.T) {
	svc := &stubQuotationService{}
	router := newQuotationUpdateRouter(svc)

	body := `{"files": [{"file_name": "Authority guidelines"}]}`
	req := httptest.NewRequest(http.MethodPut, "/quotations/12", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	router.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
	files := svc.lastUpdate.Files
	if len(files) != 1 {
		t.Fatalf("expected 1 file entry got %d", len(files))
	}
	if files[0].Upload != nil || files[0].FileName == nil || *files[0].FileName != "Authority guidelines" {
		t.Fatalf("unexpected file entry %+v", files[0])
	}
}

func TestQuotationUpdateReplaceFilesClearsCollection(t *testing.T) {
	svc := &stubQuotationService{}
	router := newQuotationUpdateRouter(svc)

	body := `{"replace_files": true}`
	req := httptest.NewRequest(http.MethodPut, "/quotations/12", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	router.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", respRec.Code)
	}
	if svc.lastUpdate.Files == nil {
		t.Fatal("expected non-nil empty files for explicit replacement")
	}
	if len(svc.lastUpdate.Files) != 0 {
		t.Fatalf("expected empty file set got %d", len(svc.lastUpdate.Files))
	}
}

func TestQuotationUpdateRejectsBadPathID(t *testing.T) {
	svc := &stubQuotationService{}
	router := newQuotationUpdateRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/quotations/not-a-number", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	respRec := httptest.NewRecorder()

	router.ServeHTTP(respRec, req)

	if respRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", respRec.Code)
	}
}
