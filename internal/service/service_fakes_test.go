package service

import (
	"context"
	"errors"

	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/repository/contract"
	"ai-editor-be/internal/repository/specification"
	"ai-editor-be/internal/repository/unitofwork"
	"ai-editor-be/pkg/embedding"
	"ai-editor-be/pkg/llm"
	"ai-editor-be/pkg/vectorstore"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeClassifier struct {
	label string
	err   error
	calls int
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.label, f.err
}

type fakeSearcher struct {
	docs         []vectorstore.Document
	err          error
	lastCategory string
	lastQuery    string
	lastK        int
}

func (f *fakeSearcher) Search(ctx context.Context, category, query string, k int) ([]vectorstore.Document, error) {
	f.lastCategory = category
	f.lastQuery = query
	f.lastK = k
	return f.docs, f.err
}

type fakeContextSearcher struct {
	docs  []vectorstore.Document
	err   error
	calls int
}

func (f *fakeContextSearcher) Search(ctx context.Context, query string, k int) ([]vectorstore.Document, error) {
	f.calls++
	return f.docs, f.err
}

type fakePreferenceReader struct {
	values []string
	err    error
}

func (f *fakePreferenceReader) GetPreferences(ctx context.Context, userId, textType string) ([]string, error) {
	return f.values, f.err
}

// stubLLM records the last prompt and replays canned output, blocking
// or streamed.
type stubLLM struct {
	response     string
	err          error
	streamChunks []llm.StreamChunk
	lastPrompt   string
	generateHits int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) > 0 {
		s.lastPrompt = history[len(history)-1].Content
	}
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.generateHits++
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubLLM) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (<-chan llm.StreamChunk, error) {
	if len(history) > 0 {
		s.lastPrompt = history[len(history)-1].Content
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make(chan llm.StreamChunk, len(s.streamChunks))
	for _, c := range s.streamChunks {
		out <- c
	}
	close(out)
	return out, nil
}

// In-memory unit of work stack for preference tests.

type fakePreferenceRepo struct {
	stored    []*entity.UserPreference
	createErr error
	findErr   error
}

func (r *fakePreferenceRepo) Create(ctx context.Context, pref *entity.UserPreference) error {
	return r.CreateBulk(ctx, []*entity.UserPreference{pref})
}

func (r *fakePreferenceRepo) CreateBulk(ctx context.Context, prefs []*entity.UserPreference) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.stored = append(r.stored, prefs...)
	return nil
}

func (r *fakePreferenceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserPreference, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.stored, nil
}

func (r *fakePreferenceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.stored)), nil
}

type fakeKnowledgeRepo struct {
	docs              []*entity.KnowledgeDocument
	scored            []*contract.ScoredKnowledgeDocument
	searchErr         error
	searchCalls       int
	lastSearchCat     string
	lastSearchLimit   int
	deletedCategories []string
}

func (r *fakeKnowledgeRepo) CreateBulk(ctx context.Context, docs []*entity.KnowledgeDocument) error {
	r.docs = append(r.docs, docs...)
	return nil
}

func (r *fakeKnowledgeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	return r.docs, nil
}

func (r *fakeKnowledgeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.docs)), nil
}

func (r *fakeKnowledgeRepo) DeleteByCategory(ctx context.Context, category string) error {
	r.deletedCategories = append(r.deletedCategories, category)
	r.docs = nil
	return nil
}

func (r *fakeKnowledgeRepo) ListCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (r *fakeKnowledgeRepo) SearchSimilar(ctx context.Context, category string, vec []float32, limit int) ([]*contract.ScoredKnowledgeDocument, error) {
	r.searchCalls++
	r.lastSearchCat = category
	r.lastSearchLimit = limit
	return r.scored, r.searchErr
}

// fakeEmbedder returns a fixed unit vector for any input.
type fakeEmbedder struct{}

func (fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

type fakeUnitOfWork struct {
	prefRepo   *fakePreferenceRepo
	kbRepo     *fakeKnowledgeRepo
	began      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.began = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.began {
		return errors.New("no transaction to commit")
	}
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.committed {
		return nil
	}
	u.rolledBack = true
	return nil
}

func (u *fakeUnitOfWork) PreferenceRepository() contract.PreferenceRepository {
	return u.prefRepo
}

func (u *fakeUnitOfWork) KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository {
	return u.kbRepo
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}
