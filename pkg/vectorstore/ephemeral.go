package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"ai-editor-be/internal/constant"
	"ai-editor-be/pkg/embedding"
	"ai-editor-be/pkg/utils"
)

// EphemeralStore is a request-scoped index built from uploaded files
// and fetched URLs. It is never persisted and never shared between
// requests.
type EphemeralStore struct {
	embedder embedding.EmbeddingProvider
	index    *Index
}

// BuildEphemeralStore chunks and embeds the given texts into a fresh
// in-memory index. Blank texts (e.g. failed URL fetches) are skipped.
func BuildEphemeralStore(ctx context.Context, embedder embedding.EmbeddingProvider, sources []SourceDocument) (*EphemeralStore, error) {
	var entries []Entry
	for _, src := range sources {
		if strings.TrimSpace(src.Content) == "" {
			continue
		}
		chunks := utils.SplitText(src.Content, constant.ChunkSize, constant.ChunkOverlap)
		for _, chunk := range chunks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := embedder.Generate(chunk, embedding.TaskTypeDocument)
			if err != nil {
				return nil, fmt.Errorf("embed chunk: %w", err)
			}
			entries = append(entries, Entry{
				Content:  chunk,
				Metadata: src.Metadata,
				Vector:   res.Embedding.Values,
			})
		}
	}

	return &EphemeralStore{
		embedder: embedder,
		index:    NewIndex(entries),
	}, nil
}

// Search returns up to k documents for the query, best first.
func (e *EphemeralStore) Search(ctx context.Context, query string, k int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.index == nil || len(e.index.Entries) == 0 {
		return nil, nil
	}

	res, err := e.embedder.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return e.index.Search(res.Embedding.Values, k), nil
}
