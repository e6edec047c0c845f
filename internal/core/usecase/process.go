package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nmoreyra/docsort/internal/core/domain"
	"github.com/nmoreyra/docsort/internal/core/metadata"
	"github.com/nmoreyra/docsort/internal/core/ports"
)

// ProcessDocumentUseCase drives one document through extraction,
// classification and persistence.
type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	extractor  ports.TextExtractor
	classifier ports.Classifier
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	classifier ports.Classifier,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	decision, meta, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveDecision(ctx, documentID, decision, meta); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("save decision: %w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save decision: %w", err)
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusClassified, ""); err != nil {
		return fmt.Errorf("set status=classified: %w", err)
	}

	slog.Info("document_classified",
		"document_id", documentID,
		"type", decision.Type,
		"confidence", decision.Confidence,
	)
	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (domain.Decision, domain.Metadata, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.Decision{}, domain.Metadata{}, fmt.Errorf("fetch document by id: %w", err)
	}

	content, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.Decision{}, domain.Metadata{}, fmt.Errorf("extract text: %w", err)
	}

	// Empty text is a valid outcome (unreadable scan); the classifier
	// resolves it to unknown rather than this pipeline failing.
	input := domain.ClassificationInput{
		Text:     content.Text,
		Layout:   content.Layout,
		Filename: doc.Filename,
	}
	decision := uc.classifier.Classify(input)
	meta := metadata.Extract(content.Text)

	return decision, meta, nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
