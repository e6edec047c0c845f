package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type processRepoFake struct {
	doc           *domain.Document
	getErr        error
	saveErr       error
	statusErr     error
	failStatusErr error
	statusCalls   []statusCall
	decision      domain.Decision
	meta          domain.Metadata
	decisionID    string
}

func (f *processRepoFake) Create(context.Context, *domain.Document) error { return nil }

func (f *processRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if status == domain.StatusFailed && f.failStatusErr != nil {
		return f.failStatusErr
	}
	if f.statusErr != nil {
		return f.statusErr
	}
	return nil
}

func (f *processRepoFake) SaveDecision(_ context.Context, id string, decision domain.Decision, meta domain.Metadata) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.decisionID = id
	f.decision = decision
	f.meta = meta
	return nil
}

type extractorFake struct {
	content *domain.ExtractedContent
	err     error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (*domain.ExtractedContent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

type classifierFake struct {
	decision domain.Decision
	gotInput domain.ClassificationInput
}

func (f *classifierFake) Classify(input domain.ClassificationInput) domain.Decision {
	f.gotInput = input
	return f.decision
}

func TestProcessByIDSuccess(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", Filename: "factura_0001.pdf"}}
	classifier := &classifierFake{decision: domain.Decision{Type: domain.TypeInvoice, Confidence: 0.72}}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{content: &domain.ExtractedContent{Text: "FACTURA A N° 0001-00001234 CUIT: 30-12345678-9"}},
		classifier,
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusClassified {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.decisionID != "doc-1" {
		t.Fatalf("expected decision saved for doc-1, got %s", repo.decisionID)
	}
	if repo.decision.Type != domain.TypeInvoice {
		t.Fatalf("expected invoice decision persisted, got %s", repo.decision.Type)
	}
	if repo.meta.TaxID != "30-12345678-9" {
		t.Fatalf("expected tax id extracted from text, got %q", repo.meta.TaxID)
	}
	if classifier.gotInput.Filename != "factura_0001.pdf" {
		t.Fatalf("expected filename passed to classifier, got %q", classifier.gotInput.Filename)
	}
}

func TestProcessByIDEmptyTextStillClassifies(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", Filename: "scan.pdf"}}
	classifier := &classifierFake{decision: domain.Decision{Type: domain.TypeUnknown, Confidence: 0}}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{content: &domain.ExtractedContent{Text: ""}},
		classifier,
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if repo.decision.Type != domain.TypeUnknown {
		t.Fatalf("expected unknown decision for empty text, got %s", repo.decision.Type)
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusClassified {
		t.Fatalf("empty text must not fail the document, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDMarksFailedOnExtractError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{err: errors.New("extract fail")},
		&classifierFake{},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected processing + failed status updates, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %+v", repo.statusCalls[1])
	}
	if repo.statusCalls[1].errMsg == "" {
		t.Fatalf("expected error message recorded on failed status")
	}
}

func TestProcessByIDMarksFailedOnSaveError(t *testing.T) {
	repo := &processRepoFake{
		doc:     &domain.Document{ID: "doc-1"},
		saveErr: errors.New("db down"),
	}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{content: &domain.ExtractedContent{Text: "REMITO N° 0001-00004321"}},
		&classifierFake{decision: domain.Decision{Type: domain.TypeDeliveryNote, Confidence: 0.5}},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDCombinesMarkFailedError(t *testing.T) {
	repo := &processRepoFake{
		doc:           &domain.Document{ID: "doc-1"},
		failStatusErr: errors.New("status write failed"),
	}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{err: errors.New("extract fail")},
		&classifierFake{},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
}
