package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-editor-be/internal/constant"
	"ai-editor-be/internal/dto"
	"ai-editor-be/internal/entity"
	"ai-editor-be/internal/repository/unitofwork"
	"ai-editor-be/pkg/embedding"
	"ai-editor-be/pkg/events"
	pktNats "ai-editor-be/pkg/nats"
	"ai-editor-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	knowledgeService  IKnowledgeService
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	knowledgeService IKnowledgeService,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		knowledgeService:  knowledgeService,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Ingesting %d documents into category %s", len(payload.Documents), payload.Category)

	var newDocs []*entity.KnowledgeDocument
	for _, doc := range payload.Documents {
		chunks := utils.SplitText(doc.Content, constant.ChunkSize, constant.ChunkOverlap)
		for i, chunk := range chunks {
			res, err := cs.embeddingProvider.Generate(chunk, embedding.TaskTypeDocument)
			if err != nil {
				log.Printf("[ERROR] Failed to embed chunk %d of %s: %v", i, doc.SourceName, err)
				msg.Nack() // Retriable
				return
			}

			newDocs = append(newDocs, &entity.KnowledgeDocument{
				Id:         uuid.New(),
				Category:   payload.Category,
				Content:    chunk,
				Embedding:  res.Embedding.Values,
				SourceName: doc.SourceName,
				ChunkIndex: i,
				CreatedAt:  time.Now(),
			})
		}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if len(newDocs) > 0 {
		if err := uow.KnowledgeDocumentRepository().CreateBulk(ctx, newDocs); err != nil {
			log.Printf("[ERROR] Failed to persist corpus chunks: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	if err := cs.knowledgeService.RebuildCategory(ctx, payload.Category); err != nil {
		// Corpus rows are committed; the index catches up on the next
		// rebuild or restart.
		log.Printf("[WARN] Failed to rebuild index for category %s: %v", payload.Category, err)
	}

	if cs.eventPublisher != nil {
		evt := events.NewDocumentIngested(payload.Category, len(payload.Documents))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish DOCUMENT_INGESTED event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Ingested %d chunks into category %s", len(newDocs), payload.Category)
	msg.Ack()
}
