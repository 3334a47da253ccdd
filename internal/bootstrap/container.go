package bootstrap

import (
	"context"
	"log"
	"os"

	"empower-commerce-be/internal/config"
	"empower-commerce-be/internal/controller"
	"empower-commerce-be/internal/pkg/logger"
	"empower-commerce-be/internal/repository/unitofwork"
	"empower-commerce-be/internal/service"
	"empower-commerce-be/pkg/attribution"
	"empower-commerce-be/pkg/catalog"
	"empower-commerce-be/pkg/commerce"
	"empower-commerce-be/pkg/embedding"
	"empower-commerce-be/pkg/empowerment"
	"empower-commerce-be/pkg/intent"
	"empower-commerce-be/pkg/llm/factory"
	"empower-commerce-be/pkg/values"

	pktNats "empower-commerce-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	ProductsController     controller.IProductsController

	// Background Services (Exposed for main.go to run)
	AttributionExporter *attribution.Exporter
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	dialogueLogger := log.New(os.Stdout, "[dialogue] ", log.LstdFlags)

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
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
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

	// 5. Dialogue Components
	searcher, err := catalog.NewSearcher(cfg.Dialogue.CatalogSource)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize product catalog: %v", err)
	}
	productCatalog, ok := searcher.(service.ProductCatalog)
	if !ok {
		log.Fatalf("[FATAL] Catalog source %q does not support product lookup", cfg.Dialogue.CatalogSource)
	}

	taxonomy := intent.MustLoadTaxonomy()
	classifier := intent.NewHybridClassifier(taxonomy, llmProvider, cfg.Dialogue.IntentLLMThreshold, dialogueLogger)
	valuesAgent := values.NewAgent(llmProvider, dialogueLogger)
	alignmentEngine := empowerment.NewAlignmentEngine(embeddingProvider, dialogueLogger)
	reasoner := commerce.NewReasoner(llmProvider, dialogueLogger)

	planBuilder := commerce.NewPlanBuilder(searcher, reasoner, alignmentEngine, dialogueLogger)
	planBuilder.ConfidenceThreshold = cfg.Dialogue.ConfidenceThreshold
	planBuilder.FallbackLimit = cfg.Dialogue.FallbackLimit

	guard := empowerment.NewGuard()

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.AttributionTopic, pubSub, natsPub, sysLogger)
	attributionExporter := attribution.NewExporter(pubSub, cfg.Keys.AttributionTopic, attribution.GA4Config{
		MeasurementID: cfg.Keys.GA4MeasurementID,
		APISecret:     cfg.Keys.GA4APISecret,
	}, dialogueLogger)

	conversationService := service.NewConversationService(
		uowFactory,
		embeddingProvider,
		classifier,
		valuesAgent,
		planBuilder,
		guard,
		publisherService,
		rdb,
		dialogueLogger,
		sysLogger,
	)
	productsService := service.NewProductsService(productCatalog)

	// 7. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService),
		ProductsController:     controller.NewProductsController(productsService),

		AttributionExporter: attributionExporter,
	}
}
