package ports

import (
	"context"
	"io"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveDecision(ctx context.Context, id string, decision domain.Decision, meta domain.Metadata) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes classification work items.
type MessageQueue interface {
	PublishDocumentQueued(ctx context.Context, documentID string) error
	SubscribeDocumentQueued(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text and optional layout tokens from a stored
// document. An unreadable scan yields empty text, not an error.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (*domain.ExtractedContent, error)
}

// Classifier resolves one decision per document input. Implementations are
// pure and safe for concurrent use.
type Classifier interface {
	Classify(input domain.ClassificationInput) domain.Decision
}
