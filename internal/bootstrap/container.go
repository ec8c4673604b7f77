package bootstrap

import (
	"context"
	"log"

	"ai-question-answer-be/internal/config"
	"ai-question-answer-be/internal/controller"
	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/internal/repository/memory"
	"ai-question-answer-be/internal/repository/unitofwork"
	"ai-question-answer-be/internal/service"
	"ai-question-answer-be/pkg/alignment"
	"ai-question-answer-be/pkg/embedding"
	"ai-question-answer-be/pkg/guardrail"
	"ai-question-answer-be/pkg/llm/factory"
	"ai-question-answer-be/pkg/pipeline"

	pktNats "ai-question-answer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// embeddingDimension must match the vector(N) column on contents.
const embeddingDimension = 768

type Container struct {
	// Controllers
	QueryController controller.IQueryController

	// Background services, main.go starts these
	ConsumerService      service.IConsumerService
	ContentIngestService service.IContentIngestService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	// Redis
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

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.EmbeddingAPIKey, cfg.Ai.EmbeddingModel, embeddingDimension)
		log.Printf("[INFO] Using embedding provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.EmbeddingBaseURL, cfg.Ai.EmbeddingModel, embeddingDimension)
		log.Printf("[INFO] Using embedding provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Guardrail pipeline
	var scorer alignment.Scorer
	if cfg.Guardrail.AlignScoreMethod == "AlignScore" && cfg.Guardrail.AlignScoreAPI != "" {
		scorer = alignment.NewAlignScoreClient(cfg.Guardrail.AlignScoreAPI)
	} else {
		scorer = alignment.NewLLMScorer(llmProvider, sysLogger)
	}

	preChain := guardrail.NewChain(sysLogger,
		guardrail.NewLanguageIdentifyStage(llmProvider, sysLogger),
		guardrail.NewTranslateStage(llmProvider, sysLogger),
		guardrail.NewParaphraseStage(llmProvider, sysLogger),
		guardrail.NewSafetyClassifyStage(llmProvider, sysLogger),
		guardrail.NewTopicClassifyStage(llmProvider, sysLogger),
	)
	postChain := guardrail.NewChain(sysLogger,
		guardrail.NewAlignmentScoreStage(scorer, cfg.Guardrail.AlignmentThreshold, sysLogger),
	)

	searcher := service.NewContentSearchService(uowFactory)
	generator := pipeline.NewGenerator(llmProvider, sysLogger)
	answerPipeline := pipeline.New(
		preChain,
		postChain,
		embeddingProvider,
		searcher,
		generator,
		pipeline.Config{TopNSimilar: cfg.Guardrail.TopNSimilar},
		sysLogger,
	)

	// 5. Services
	secretKeys := memory.NewSecretKeyCache()

	queryService := service.NewQueryService(uowFactory, answerPipeline, secretKeys, natsPub, sysLogger)
	feedbackService := service.NewFeedbackService(uowFactory, secretKeys, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	var ingestService service.IContentIngestService
	if natsSub != nil {
		ingestService = service.NewContentIngestService(natsSub, pubSub, sysLogger)
	}

	return &Container{
		QueryController:      controller.NewQueryController(queryService, feedbackService),
		ConsumerService:      consumerService,
		ContentIngestService: ingestService,
		Logger:               sysLogger,
	}
}
