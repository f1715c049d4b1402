package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeDocument is one embedded chunk of the knowledge corpus for a
// category. The corpus table is the durable source from which the
// per-category disk indexes are rebuilt.
type KnowledgeDocument struct {
	Id         uuid.UUID
	Category   string
	Content    string
	Embedding  []float32
	SourceName string
	ChunkIndex int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
