// Package pdftext extracts text and positional layout tokens from stored
// PDF documents. Plain-text uploads pass through unchanged, which keeps the
// pipeline testable without binary fixtures.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/nmoreyra/docsort/internal/core/domain"
	"github.com/nmoreyra/docsort/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (*domain.ExtractedContent, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read source document: %w", err)
	}

	if bytes.HasPrefix(raw, []byte("%PDF")) {
		return extractPDF(doc, raw)
	}
	if utf8.Valid(raw) {
		return &domain.ExtractedContent{Text: strings.TrimSpace(string(raw))}, nil
	}
	return nil, fmt.Errorf("unsupported binary format: %s", doc.Filename)
}

// extractPDF walks every page and collects both the running text and the
// positioned tokens the layout method needs. A page without embedded text
// (a bare scan) contributes nothing; that is a valid outcome, not an error.
func extractPDF(doc *domain.Document, raw []byte) (content *domain.ExtractedContent, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			content, err = nil, fmt.Errorf("parse pdf %s: %v", doc.Filename, r)
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf %s: %w", doc.Filename, err)
	}

	pageCount := pdfReader.NumPage()
	layout := &domain.LayoutInfo{PageCount: pageCount}
	var sb strings.Builder

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			slog.Debug("pdf_page_without_text", "document_id", doc.ID, "page", pageNum)
			continue
		}
		for _, t := range texts {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			layout.Tokens = append(layout.Tokens, domain.LayoutToken{
				Text:     t.S,
				Page:     pageNum,
				X:        t.X,
				Y:        t.Y,
				Width:    t.W,
				FontSize: t.FontSize,
			})
			sb.WriteString(t.S)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	return &domain.ExtractedContent{
		Text:   strings.TrimSpace(sb.String()),
		Layout: layout,
	}, nil
}
