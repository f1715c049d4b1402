package bootstrap

import (
	"context"
	"log"

	"ai-editor-be/internal/config"
	"ai-editor-be/internal/controller"
	"ai-editor-be/internal/pkg/logger"
	"ai-editor-be/internal/repository/unitofwork"
	"ai-editor-be/internal/service"
	"ai-editor-be/pkg/classifier"
	"ai-editor-be/pkg/embedding"
	"ai-editor-be/pkg/extract"
	"ai-editor-be/pkg/fetch"
	"ai-editor-be/pkg/llm/factory"
	"ai-editor-be/pkg/vectorstore"

	pktNats "ai-editor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GenerationController controller.IGenerationController
	PreferenceController controller.IPreferenceController
	KnowledgeController  controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	KnowledgeService service.IKnowledgeService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmBaseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 5. Domain Components
	knowledgeStore := vectorstore.NewKnowledgeStore(cfg.Stores.VectorStoreDir, embeddingProvider)
	textClassifier := classifier.NewTextTypeClassifier(llmProvider)
	extractor := extract.NewExtractor()
	fetcher := fetch.NewFetcher(cfg.Stores.URLFetchWorkers, sysLogger)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IngestTopic)
	knowledgeService := service.NewKnowledgeService(
		uowFactory,
		knowledgeStore,
		publisherService,
		cfg.Stores.KnowledgeBaseDir,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
		knowledgeService,
		natsPub,
	)

	preferenceService := service.NewPreferenceService(
		uowFactory,
		llmProvider,
		textClassifier,
		rdb,
		natsPub,
		sysLogger,
	)
	corpusRetriever := service.NewCorpusRetriever(
		knowledgeStore,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)
	generationService := service.NewGenerationService(
		textClassifier,
		corpusRetriever,
		preferenceService,
		llmProvider,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		GenerationController: controller.NewGenerationController(
			generationService,
			embeddingProvider,
			extractor,
			fetcher,
			sysLogger,
		),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		KnowledgeController:  controller.NewKnowledgeController(knowledgeService),

		ConsumerService:  consumerService,
		KnowledgeService: knowledgeService,
	}
}
