package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ai-editor-be/internal/dto"
	"ai-editor-be/internal/pkg/logger"
	"ai-editor-be/internal/repository/specification"
	"ai-editor-be/internal/repository/unitofwork"
	"ai-editor-be/pkg/classifier"
	"ai-editor-be/pkg/vectorstore"
)

type IKnowledgeService interface {
	// Ingest queues documents for asynchronous embedding into a category corpus.
	Ingest(ctx context.Context, category string, req *dto.IngestKnowledgeRequest) (*dto.IngestKnowledgeResponse, error)
	// LoadAtStartup builds every category index from the seed directory
	// and the corpus table.
	LoadAtStartup(ctx context.Context) error
	// RebuildCategory rebuilds one category index from all known sources.
	RebuildCategory(ctx context.Context, category string) error
	// PurgeCategory removes a category's corpus rows and rebuilds its
	// index from the remaining seed files.
	PurgeCategory(ctx context.Context, category string) (*dto.PurgeKnowledgeResponse, error)
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	store            *vectorstore.KnowledgeStore
	publisherService IPublisherService
	knowledgeBaseDir string
	log              logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	store *vectorstore.KnowledgeStore,
	publisherService IPublisherService,
	knowledgeBaseDir string,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		store:            store,
		publisherService: publisherService,
		knowledgeBaseDir: knowledgeBaseDir,
		log:              log,
	}
}

func (s *knowledgeService) Ingest(ctx context.Context, category string, req *dto.IngestKnowledgeRequest) (*dto.IngestKnowledgeResponse, error) {
	category = classifier.Normalize(category)

	payload, err := json.Marshal(dto.PublishIngestMessage{
		Category:  category,
		Documents: req.Documents,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal ingest message: %w", err)
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, fmt.Errorf("queue ingest message: %w", err)
	}

	s.log.Info("knowledge", "documents queued for ingestion", map[string]interface{}{
		"category":  category,
		"documents": len(req.Documents),
	})

	return &dto.IngestKnowledgeResponse{
		Category:  category,
		Documents: len(req.Documents),
		Queued:    true,
	}, nil
}

func (s *knowledgeService) PurgeCategory(ctx context.Context, category string) (*dto.PurgeKnowledgeResponse, error) {
	category = classifier.Normalize(category)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.KnowledgeDocumentRepository().DeleteByCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("delete corpus rows: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	// Rebuild so the index stops serving the deleted rows. Seed files
	// for the category, if any, remain in place.
	if err := s.RebuildCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}

	s.log.Info("knowledge", "category purged", map[string]interface{}{
		"category": category,
	})

	return &dto.PurgeKnowledgeResponse{
		Category: category,
		Purged:   true,
	}, nil
}

func (s *knowledgeService) LoadAtStartup(ctx context.Context) error {
	categories := make(map[string]struct{})

	entries, err := os.ReadDir(s.knowledgeBaseDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read knowledge base dir: %w", err)
		}
	} else {
		for _, e := range entries {
			if e.IsDir() {
				categories[e.Name()] = struct{}{}
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	dbCategories, err := uow.KnowledgeDocumentRepository().ListCategories(ctx)
	if err != nil {
		// Corpus table may be empty or the DB briefly unavailable.
		// Seed files still load.
		s.log.Warn("knowledge", "failed to list corpus categories", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, c := range dbCategories {
		categories[c] = struct{}{}
	}

	for category := range categories {
		if err := s.RebuildCategory(ctx, category); err != nil {
			return fmt.Errorf("build category %s: %w", category, err)
		}
	}

	s.log.Info("knowledge", "knowledge bases loaded", map[string]interface{}{
		"categories": len(categories),
	})
	return nil
}

func (s *knowledgeService) RebuildCategory(ctx context.Context, category string) error {
	entries, err := s.seedEntries(ctx, category)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.KnowledgeDocumentRepository().FindAll(ctx, specification.ByCategory{Category: category})
	if err != nil {
		s.log.Warn("knowledge", "failed to load corpus rows", map[string]interface{}{
			"category": category,
			"error":    err.Error(),
		})
	}
	for _, doc := range docs {
		entries = append(entries, vectorstore.Entry{
			Content: doc.Content,
			Metadata: map[string]string{
				"category": doc.Category,
				"source":   doc.SourceName,
			},
			Vector: doc.Embedding,
		})
	}

	if err := s.store.BuildFromEntries(category, entries); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	s.log.Info("knowledge", "category index rebuilt", map[string]interface{}{
		"category": category,
		"entries":  len(entries),
	})
	return nil
}

// seedEntries chunks and embeds the category's seed files
// (<knowledge_base_dir>/<category>/*.txt|*.md).
func (s *knowledgeService) seedEntries(ctx context.Context, category string) ([]vectorstore.Entry, error) {
	dir := filepath.Join(s.knowledgeBaseDir, category)
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read seed dir: %w", err)
	}

	var sources []vectorstore.SourceDocument
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read seed file %s: %w", f.Name(), err)
		}
		sources = append(sources, vectorstore.SourceDocument{
			Content: string(content),
			Metadata: map[string]string{
				"category": category,
				"source":   f.Name(),
			},
		})
	}

	return s.store.EmbedSources(ctx, sources)
}
