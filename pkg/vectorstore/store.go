package vectorstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"ai-editor-be/internal/constant"
	"ai-editor-be/pkg/embedding"
	"ai-editor-be/pkg/utils"
)

// SourceDocument is raw input to a build: full text plus metadata,
// chunked before embedding.
type SourceDocument struct {
	Content  string
	Metadata map[string]string
}

// KnowledgeStore owns one vector index per category. Indexes are
// persisted under <dir>/<category>/ and loaded lazily on first search.
// Build replaces an index atomically: a concurrent search observes
// either the previous or the new index, never a mix.
type KnowledgeStore struct {
	dir      string
	embedder embedding.EmbeddingProvider

	mu      sync.RWMutex
	indexes map[string]*Index
}

func NewKnowledgeStore(dir string, embedder embedding.EmbeddingProvider) *KnowledgeStore {
	return &KnowledgeStore{
		dir:      dir,
		embedder: embedder,
		indexes:  make(map[string]*Index),
	}
}

// Search embeds the query and returns up to k documents for category,
// best first. A category with no built index yields an empty result,
// never an error.
func (s *KnowledgeStore) Search(ctx context.Context, category, query string, k int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ix, err := s.loadIndex(category)
	if err != nil {
		return nil, err
	}
	if ix == nil {
		return nil, nil
	}

	res, err := s.embedder.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return ix.Search(res.Embedding.Values, k), nil
}

// Build fully rebuilds the category index from docs: chunk, embed,
// persist, then swap the cached index under the write lock. There is
// no incremental update.
func (s *KnowledgeStore) Build(ctx context.Context, category string, docs []SourceDocument) error {
	entries, err := s.EmbedSources(ctx, docs)
	if err != nil {
		return err
	}
	return s.BuildFromEntries(category, entries)
}

// EmbedSources chunks and embeds raw documents into index entries.
func (s *KnowledgeStore) EmbedSources(ctx context.Context, docs []SourceDocument) ([]Entry, error) {
	var entries []Entry
	for _, doc := range docs {
		chunks := utils.SplitText(doc.Content, constant.ChunkSize, constant.ChunkOverlap)
		for _, chunk := range chunks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := s.embedder.Generate(chunk, embedding.TaskTypeDocument)
			if err != nil {
				return nil, fmt.Errorf("embed chunk: %w", err)
			}
			entries = append(entries, Entry{
				Content:  chunk,
				Metadata: doc.Metadata,
				Vector:   res.Embedding.Values,
			})
		}
	}
	return entries, nil
}

// BuildFromEntries rebuilds the category index from already embedded
// entries (e.g. corpus rows carrying stored vectors): persist, then
// swap under the write lock.
func (s *KnowledgeStore) BuildFromEntries(category string, entries []Entry) error {
	ix := NewIndex(entries)
	if err := ix.Save(s.categoryDir(category)); err != nil {
		return err
	}

	s.mu.Lock()
	s.indexes[category] = ix
	s.mu.Unlock()

	return nil
}

// loadIndex returns the cached index for category, reading it from
// disk on first access. Absent indexes are not cached so a later Build
// becomes visible immediately.
func (s *KnowledgeStore) loadIndex(category string) (*Index, error) {
	s.mu.RLock()
	ix, ok := s.indexes[category]
	s.mu.RUnlock()
	if ok {
		return ix, nil
	}

	loaded, err := LoadIndex(s.categoryDir(category))
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have loaded or rebuilt meanwhile.
	if existing, ok := s.indexes[category]; ok {
		return existing, nil
	}
	s.indexes[category] = loaded
	return loaded, nil
}

func (s *KnowledgeStore) categoryDir(category string) string {
	return filepath.Join(s.dir, category)
}
