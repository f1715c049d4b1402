package service

import (
	"context"
	"fmt"

	"ai-editor-be/internal/pkg/logger"
	"ai-editor-be/internal/repository/unitofwork"
	"ai-editor-be/pkg/embedding"
	"ai-editor-be/pkg/vectorstore"
)

// corpusRetriever serves category retrieval for generation. The
// in-process index answers first; when it has nothing for a category
// (not built yet, or unreadable) the pgvector corpus table is queried
// directly so freshly ingested rows are still reachable before the
// next index rebuild.
type corpusRetriever struct {
	store      CategorySearcher
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	log        logger.ILogger
}

func NewCorpusRetriever(
	store CategorySearcher,
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	log logger.ILogger,
) CategorySearcher {
	return &corpusRetriever{
		store:      store,
		uowFactory: uowFactory,
		embedder:   embedder,
		log:        log,
	}
}

func (r *corpusRetriever) Search(ctx context.Context, category, query string, k int) ([]vectorstore.Document, error) {
	docs, err := r.store.Search(ctx, category, query, k)
	if err == nil && len(docs) > 0 {
		return docs, nil
	}
	if err != nil {
		r.log.Warn("retrieval", "index search failed, querying corpus table", map[string]interface{}{
			"category": category,
			"error":    err.Error(),
		})
	}

	res, err := r.embedder.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeDocumentRepository().SearchSimilar(ctx, category, res.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("search corpus table: %w", err)
	}

	out := make([]vectorstore.Document, len(scored))
	for i, sc := range scored {
		out[i] = vectorstore.Document{
			Content: sc.Document.Content,
			Metadata: map[string]string{
				"category": sc.Document.Category,
				"source":   sc.Document.SourceName,
			},
			Score: sc.Similarity,
		}
	}
	return out, nil
}
