package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-editor-be/internal/constant"
	"ai-editor-be/internal/dto"
	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/pkg/logger"
	"ai-editor-be/internal/repository/specification"
	"ai-editor-be/internal/repository/unitofwork"
	"ai-editor-be/pkg/classifier"
	"ai-editor-be/pkg/events"
	"ai-editor-be/pkg/llm"
	pktNats "ai-editor-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TextClassifier labels text with a category. Satisfied by
// classifier.TextTypeClassifier.
type TextClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

const preferenceCacheTTL = 10 * time.Minute

type IPreferenceService interface {
	// RecordEdit compares an original and edited text, summarizes the
	// difference as a preference, and stores it for future generations.
	RecordEdit(ctx context.Context, userId string, req *dto.RecordEditRequest) (*dto.RecordEditResponse, error)
	// GetPreferences returns the stored preference values for a user and
	// text type, oldest first.
	GetPreferences(ctx context.Context, userId, textType string) ([]string, error)
}

type preferenceService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	classifier     TextClassifier
	redisClient    *redis.Client
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewPreferenceService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	textClassifier TextClassifier,
	redisClient *redis.Client,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPreferenceService {
	return &preferenceService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		classifier:     textClassifier,
		redisClient:    redisClient,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *preferenceService) RecordEdit(ctx context.Context, userId string, req *dto.RecordEditRequest) (*dto.RecordEditResponse, error) {
	// An unchanged text carries no signal. Checked before any LLM call.
	if req.OriginalText == req.EditedText {
		return &dto.RecordEditResponse{
			TextType: classifier.Normalize(req.TextType),
			Recorded: false,
		}, nil
	}

	textType := classifier.Normalize(req.TextType)
	if req.TextType == "" {
		classified, err := s.classifier.Classify(ctx, req.EditedText)
		if err != nil {
			return nil, fmt.Errorf("classify edited text: %w", err)
		}
		textType = classified
	}

	summaryPrompt := fmt.Sprintf(constant.SummarizeEditPromptV1, req.OriginalText, req.EditedText)
	analysis, err := s.llmProvider.Generate(ctx, summaryPrompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("summarize edit: %w", err)
	}

	now := time.Now()
	records := []*entity.UserPreference{{
		Id:              uuid.New(),
		UserId:          userId,
		TextType:        textType,
		PreferenceKey:   constant.PreferenceKeyLLMAnalysis,
		PreferenceValue: analysis,
		CreatedAt:       now,
	}}
	// Category-specific learnings also inform generic writing.
	if textType != constant.CategoryGeneral {
		records = append(records, &entity.UserPreference{
			Id:              uuid.New(),
			UserId:          userId,
			TextType:        constant.CategoryGeneral,
			PreferenceKey:   constant.PreferenceKeyLLMAnalysis,
			PreferenceValue: analysis,
			CreatedAt:       now,
		})
	}

	if err := s.persistRecords(ctx, records); err != nil {
		// The analysis is advisory; losing one record must not fail the edit flow.
		s.log.Warn("preference", "failed to persist preference records", map[string]interface{}{
			"user_id":   userId,
			"text_type": textType,
			"error":     err.Error(),
		})
		return &dto.RecordEditResponse{TextType: textType, Recorded: false}, nil
	}

	s.invalidateCache(ctx, userId, textType)
	if textType != constant.CategoryGeneral {
		s.invalidateCache(ctx, userId, constant.CategoryGeneral)
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewEditRecorded(userId, textType)); err != nil {
			s.log.Warn("preference", "failed to publish EDIT_RECORDED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.RecordEditResponse{TextType: textType, Recorded: true}, nil
}

func (s *preferenceService) persistRecords(ctx context.Context, records []*entity.UserPreference) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PreferenceRepository().CreateBulk(ctx, records); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *preferenceService) GetPreferences(ctx context.Context, userId, textType string) ([]string, error) {
	textType = classifier.Normalize(textType)

	if cached, ok := s.cachedPreferences(ctx, userId, textType); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	prefs, err := uow.PreferenceRepository().FindAll(ctx,
		specification.ByUserAndTextType{UserId: userId, TextType: textType},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		s.log.Warn("preference", "failed to load preferences", map[string]interface{}{
			"user_id":   userId,
			"text_type": textType,
			"error":     err.Error(),
		})
		return nil, nil
	}

	values := make([]string, 0, len(prefs))
	for _, p := range prefs {
		values = append(values, p.PreferenceValue)
	}

	s.cachePreferences(ctx, userId, textType, values)
	return values, nil
}

func (s *preferenceService) cacheKey(userId, textType string) string {
	return fmt.Sprintf("prefs:%s:%s", userId, textType)
}

func (s *preferenceService) cachedPreferences(ctx context.Context, userId, textType string) ([]string, bool) {
	if s.redisClient == nil {
		return nil, false
	}
	raw, err := s.redisClient.Get(ctx, s.cacheKey(userId, textType)).Result()
	if err != nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	return values, true
}

func (s *preferenceService) cachePreferences(ctx context.Context, userId, textType string, values []string) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, s.cacheKey(userId, textType), raw, preferenceCacheTTL).Err(); err != nil {
		s.log.Debug("preference", "failed to cache preferences", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *preferenceService) invalidateCache(ctx context.Context, userId, textType string) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, s.cacheKey(userId, textType)).Err(); err != nil {
		s.log.Debug("preference", "failed to invalidate preference cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
