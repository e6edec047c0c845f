package pdftext

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

type storageFake struct {
	body string
	err  error
}

func (f *storageFake) Save(context.Context, string, io.Reader) error { return nil }

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestExtractPlainTextPassThrough(t *testing.T) {
	e := NewExtractor(&storageFake{body: "  FACTURA A N° 0001-00001234  "})
	content, err := e.Extract(context.Background(), &domain.Document{ID: "doc-1", StoragePath: "doc-1_f.txt"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if content.Text != "FACTURA A N° 0001-00001234" {
		t.Fatalf("unexpected text %q", content.Text)
	}
	if content.Layout != nil {
		t.Fatalf("plain text must carry no layout, got %+v", content.Layout)
	}
}

func TestExtractStorageError(t *testing.T) {
	e := NewExtractor(&storageFake{err: errors.New("missing")})
	if _, err := e.Extract(context.Background(), &domain.Document{ID: "doc-1"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestExtractUnsupportedBinary(t *testing.T) {
	e := NewExtractor(&storageFake{body: "\xff\xfe\x00binary"})
	if _, err := e.Extract(context.Background(), &domain.Document{ID: "doc-1", Filename: "img.png"}); err == nil {
		t.Fatalf("expected error for unsupported binary")
	}
}

func TestExtractTruncatedPDFFails(t *testing.T) {
	e := NewExtractor(&storageFake{body: "%PDF-1.4\ngarbage"})
	if _, err := e.Extract(context.Background(), &domain.Document{ID: "doc-1", Filename: "broken.pdf"}); err == nil {
		t.Fatalf("expected error for truncated pdf")
	}
}
