package bootstrap

import (
	"context"
	"log"

	"ai-copilot-be/internal/config"
	"ai-copilot-be/internal/constant"
	"ai-copilot-be/internal/controller"
	"ai-copilot-be/internal/pkg/logger"
	"ai-copilot-be/internal/repository/implementation"
	"ai-copilot-be/internal/repository/rediscache"
	"ai-copilot-be/internal/service"
	"ai-copilot-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	CompletionController controller.ICompletionController
	HealthController     controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
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

	// 3. Redis
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

	// 4. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 5. Repositories
	sessionRepo := implementation.NewChatSessionRepository(db)
	auditRepo := implementation.NewCompletionAuditRepository(db)
	cacheRepo := rediscache.NewChatCache(rdb, cfg.Chat.MaxHistory, cfg.Chat.CacheTTL)

	// 6. Services
	publisherService := service.NewPublisherService(constant.CompletionServedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.CompletionServedTopic, auditRepo, sysLogger)

	chatService := service.NewChatService(sessionRepo, cacheRepo, llmProvider, sysLogger, cfg.Chat, cfg.Ai.LLMModel)
	completionService := service.NewCompletionService(
		llmProvider,
		auditRepo,
		publisherService,
		sysLogger,
		cfg.Completion,
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
	)

	// 7. Controllers
	return &Container{
		ChatController:       controller.NewChatController(chatService),
		CompletionController: controller.NewCompletionController(completionService),
		HealthController:     controller.NewHealthController(db, cacheRepo),
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
