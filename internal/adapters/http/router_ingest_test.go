package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nmoreyra/docsort/internal/config"
	"github.com/nmoreyra/docsort/internal/core/domain"
)

type ingestSuccessFake struct{}

func (f ingestSuccessFake) Upload(_ context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", io.EOF)
	}

	now := time.Now().UTC()
	return &domain.Document{
		ID:          "doc-1",
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: "doc-1_file.pdf",
		Type:        domain.TypeUnknown,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type classifierStub struct {
	decision domain.Decision
}

func (s classifierStub) Classify(domain.ClassificationInput) domain.Decision {
	return s.decision
}

func newTestHandler(cfg config.Config) http.Handler {
	return NewRouter(
		cfg,
		ingestSuccessFake{},
		docsErrFake{},
		classifierStub{decision: domain.Decision{Type: domain.TypeInvoice, Confidence: 0.8}},
	).Handler()
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newTestHandler(config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestUploadDocumentSuccess(t *testing.T) {
	handler := newTestHandler(config.Config{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "factura_enero.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 payload")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", res.Code)
	}

	var docResp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&docResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if docResp["id"] != "doc-1" {
		t.Fatalf("unexpected response: %+v", docResp)
	}
	if docResp["status"] != string(domain.StatusUploaded) {
		t.Fatalf("expected uploaded status, got %+v", docResp["status"])
	}
}

func TestUploadDocumentMissingMultipartField(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("plain-text"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestClassifyTextReturnsDecisionAndMetadata(t *testing.T) {
	handler := newTestHandler(config.Config{})

	payload, _ := json.Marshal(map[string]string{
		"text":     "FACTURA A N° 0001-00001234\nCUIT: 30-12345678-9",
		"filename": "factura.pdf",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/classify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var resp struct {
		Decision domain.Decision `json:"decision"`
		Metadata domain.Metadata `json:"metadata"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Decision.Type != domain.TypeInvoice {
		t.Fatalf("expected invoice decision, got %q", resp.Decision.Type)
	}
	if resp.Metadata.TaxID != "30-12345678-9" {
		t.Fatalf("expected tax id in metadata, got %+v", resp.Metadata)
	}
}

func TestClassifyTextRequiresText(t *testing.T) {
	handler := newTestHandler(config.Config{})

	payload, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/v1/classify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}
