package mapper

import (
	"time"

	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeDocumentMapper struct{}

func NewKnowledgeDocumentMapper() *KnowledgeDocumentMapper {
	return &KnowledgeDocumentMapper{}
}

func (m *KnowledgeDocumentMapper) ToEntity(e *model.KnowledgeDocument) *entity.KnowledgeDocument {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeDocument{
		Id:         e.Id,
		Category:   e.Category,
		Content:    e.Content,
		Embedding:  e.Embedding.Slice(),
		SourceName: e.SourceName,
		ChunkIndex: e.ChunkIndex,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  e.DeletedAt.Valid,
	}
}

func (m *KnowledgeDocumentMapper) ToModel(e *entity.KnowledgeDocument) *model.KnowledgeDocument {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.KnowledgeDocument{
		Id:         e.Id,
		Category:   e.Category,
		Content:    e.Content,
		Embedding:  pgvector.NewVector(e.Embedding),
		SourceName: e.SourceName,
		ChunkIndex: e.ChunkIndex,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *KnowledgeDocumentMapper) ToEntities(docs []*model.KnowledgeDocument) []*entity.KnowledgeDocument {
	entities := make([]*entity.KnowledgeDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *KnowledgeDocumentMapper) ToModels(docs []*entity.KnowledgeDocument) []*model.KnowledgeDocument {
	models := make([]*model.KnowledgeDocument, len(docs))
	for i, d := range docs {
		models[i] = m.ToModel(d)
	}
	return models
}
