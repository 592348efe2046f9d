package bootstrap

import (
	"log"

	"ai-chatbot-be/internal/config"
	"ai-chatbot-be/internal/controller"
	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/internal/service"
	"ai-chatbot-be/pkg/embedding"
	"ai-chatbot-be/pkg/events"
	"ai-chatbot-be/pkg/extractor"
	"ai-chatbot-be/pkg/ingest"
	"ai-chatbot-be/pkg/knowledge"
	"ai-chatbot-be/pkg/llm/factory"
	"ai-chatbot-be/pkg/rag"
	"ai-chatbot-be/pkg/training"
	"ai-chatbot-be/pkg/widget"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Core components, exposed for the ingest CLI and for tests
	Logger     logger.ILogger
	Store      knowledge.Store
	Dispatcher *ingest.Dispatcher
	Trainer    *training.Trainer
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewTogetherProvider(
			cfg.Ai.TogetherAPIKey,
			cfg.Ai.TogetherBaseURL,
			cfg.Ai.TogetherEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: TOGETHER (%s)", cfg.Ai.TogetherEmbedModel)
	}

	llmBaseURL := cfg.Ai.TogetherBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.TogetherAPIKey,
		llmBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Knowledge store backend
	var store knowledge.Store
	switch cfg.Knowledge.Backend {
	case "pgvector":
		if db == nil {
			log.Fatalf("[FATAL] pgvector backend requires DB_CONNECTION_STRING")
		}
		store = knowledge.NewPgVectorStore(db, embeddingProvider, sysLogger)
		log.Printf("[INFO] Using Knowledge Backend: PGVECTOR")
	case "memory":
		store = knowledge.NewMemoryStore(embeddingProvider)
		log.Printf("[INFO] Using Knowledge Backend: MEMORY")
	default:
		store = knowledge.NewQdrantStore(knowledge.QdrantConfig{
			BaseURL:    cfg.Knowledge.QdrantURL,
			APIKey:     cfg.Knowledge.QdrantAPIKey,
			Collection: cfg.Knowledge.Collection,
			VectorSize: cfg.Knowledge.VectorDim,
		}, embeddingProvider, sysLogger)
		log.Printf("[INFO] Using Knowledge Backend: QDRANT (%s)", cfg.Knowledge.Collection)
	}

	// 5. Ingestion pipeline
	tika := extractor.NewTikaExtractor(cfg.Extractor.TikaURL)
	dispatcher := ingest.NewDispatcher(tika, sysLogger)

	// 6. Training and retrieval
	publisher := events.NewPublisher(pubSub, cfg.Events.TrainedTopic)
	stats := events.NewTrainingStats()
	sessions := training.NewCacheSessionStore(cfg.Training.SessionTTL, training.DefaultSweepPeriod)

	trainer := training.NewTrainer(
		cfg.Training.Operators,
		sessions,
		store,
		dispatcher,
		widget.NewGenerator(),
		publisher,
		stats,
		sysLogger,
	)

	responder := rag.NewResponder(store, llmProvider, rag.Config{
		TopK:           cfg.Retrieval.TopK,
		ScoreThreshold: cfg.Retrieval.ScoreThreshold,
	}, sysLogger)

	chatService := service.NewChatService(trainer, responder, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.TrainedTopic,
		stats,
		sysLogger,
	)

	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
		Store:           store,
		Dispatcher:      dispatcher,
		Trainer:         trainer,
	}
}
