package service

import (
	"context"
	"fmt"
	"strings"

	"ai-editor-be/internal/constant"
	"ai-editor-be/internal/dto"
	"ai-editor-be/internal/pkg/logger"
	"ai-editor-be/pkg/llm"
	"ai-editor-be/pkg/rag/prompt"
	"ai-editor-be/pkg/vectorstore"
)

// CategorySearcher retrieves documents from a per-category knowledge
// base. Satisfied by vectorstore.KnowledgeStore.
type CategorySearcher interface {
	Search(ctx context.Context, category, query string, k int) ([]vectorstore.Document, error)
}

// ContextSearcher retrieves documents from a request-scoped context.
// Satisfied by vectorstore.EphemeralStore.
type ContextSearcher interface {
	Search(ctx context.Context, query string, k int) ([]vectorstore.Document, error)
}

// PreferenceReader exposes the read side of the preference store.
type PreferenceReader interface {
	GetPreferences(ctx context.Context, userId, textType string) ([]string, error)
}

type IGenerationService interface {
	// Generate runs the full retrieval pipeline against the persistent
	// knowledge bases and blocks for the complete response.
	Generate(ctx context.Context, userId string, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	// GenerateStream runs the pipeline against a request-scoped context
	// store and streams response fragments. A mid-stream failure arrives
	// as a final in-band error fragment before the channel closes.
	GenerateStream(ctx context.Context, userId string, req *dto.GenerateWithContextRequest, contextStore ContextSearcher) (string, <-chan string, error)
}

type generationService struct {
	classifier  TextClassifier
	knowledge   CategorySearcher
	preferences PreferenceReader
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewGenerationService(
	textClassifier TextClassifier,
	knowledge CategorySearcher,
	preferences PreferenceReader,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		classifier:  textClassifier,
		knowledge:   knowledge,
		preferences: preferences,
		llmProvider: llmProvider,
		log:         log,
	}
}

func (s *generationService) Generate(ctx context.Context, userId string, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	query := combinedQuery(req.UserText, req.Prompt)

	textType, err := s.classifier.Classify(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("classify query: %w", err)
	}

	topK := req.TopK
	if topK <= 0 {
		topK = constant.DefaultTopK
	}

	docs, err := s.knowledge.Search(ctx, textType, query, topK)
	if err != nil {
		// Retrieval is best effort; generation proceeds without context.
		s.log.Warn("generation", "knowledge retrieval failed", map[string]interface{}{
			"text_type": textType,
			"error":     err.Error(),
		})
		docs = nil
	}
	docs = vectorstore.FilterByScore(docs, constant.RelevanceThreshold)

	prefs, err := s.preferences.GetPreferences(ctx, userId, textType)
	if err != nil {
		s.log.Warn("generation", "preference lookup failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		prefs = nil
	}

	finalPrompt := prompt.NewGenerationBuilder(req.Prompt, req.UserText, docs, prefs).Build()

	s.log.Debug("generation", "dispatching prompt", map[string]interface{}{
		"text_type":   textType,
		"documents":   len(docs),
		"preferences": len(prefs),
	})

	generated, err := s.llmProvider.Chat(ctx, []llm.Message{{Role: "user", Content: finalPrompt}})
	if err != nil {
		return nil, fmt.Errorf("generate text: %w", err)
	}

	return &dto.GenerateResponse{
		TextType:      textType,
		GeneratedText: generated,
	}, nil
}

func (s *generationService) GenerateStream(ctx context.Context, userId string, req *dto.GenerateWithContextRequest, contextStore ContextSearcher) (string, <-chan string, error) {
	query := combinedQuery(req.UserText, req.Prompt)

	textType, err := s.classifier.Classify(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("classify query: %w", err)
	}

	topK := req.TopK
	if topK <= 0 {
		topK = constant.DefaultEphemeralTopK
	}

	var docs []vectorstore.Document
	if contextStore != nil {
		docs, err = contextStore.Search(ctx, query, topK)
		if err != nil {
			s.log.Warn("generation", "context retrieval failed", map[string]interface{}{
				"error": err.Error(),
			})
			docs = nil
		}
		docs = vectorstore.FilterByScore(docs, constant.RelevanceThreshold)
	}

	prefs, err := s.preferences.GetPreferences(ctx, userId, textType)
	if err != nil {
		s.log.Warn("generation", "preference lookup failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		prefs = nil
	}

	finalPrompt := prompt.NewGenerationBuilder(req.Prompt, req.UserText, docs, prefs).Build()

	chunks, err := s.llmProvider.ChatStream(ctx, []llm.Message{{Role: "user", Content: finalPrompt}})
	if err != nil {
		return "", nil, fmt.Errorf("start generation stream: %w", err)
	}

	out := make(chan string, 16)
	go func() {
		defer close(out)
		for chunk := range chunks {
			if chunk.Err != nil {
				s.log.Error("generation", "stream failed", map[string]interface{}{
					"error": chunk.Err.Error(),
				})
				out <- fmt.Sprintf("\n[error: %s]", chunk.Err.Error())
				return
			}
			if strings.TrimSpace(chunk.Content) == "" {
				continue
			}
			select {
			case out <- chunk.Content:
			case <-ctx.Done():
				return
			}
		}
	}()

	return textType, out, nil
}

// combinedQuery joins the user's text and instruction into the single
// string used for classification and retrieval.
func combinedQuery(userText, instruction string) string {
	if strings.TrimSpace(userText) == "" {
		return instruction
	}
	return userText + "\n\n" + instruction
}
