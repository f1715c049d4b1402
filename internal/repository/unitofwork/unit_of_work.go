package unitofwork

import (
	"context"

	"ai-editor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PreferenceRepository() contract.PreferenceRepository
	KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository
}
