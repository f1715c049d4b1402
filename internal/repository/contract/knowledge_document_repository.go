package contract

import (
	"context"

	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/repository/specification"
)

// ScoredKnowledgeDocument wraps a corpus chunk with its cosine
// similarity to a query vector.
type ScoredKnowledgeDocument struct {
	Document   *entity.KnowledgeDocument
	Similarity float64
}

type KnowledgeDocumentRepository interface {
	CreateBulk(ctx context.Context, docs []*entity.KnowledgeDocument) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByCategory(ctx context.Context, category string) error
	// ListCategories returns the distinct categories present in the corpus.
	ListCategories(ctx context.Context) ([]string, error)
	// SearchSimilar returns the closest chunks within a category, best first.
	SearchSimilar(ctx context.Context, category string, embedding []float32, limit int) ([]*ScoredKnowledgeDocument, error)
}
