package bootstrap

import (
	"fmt"
	"log"

	"realestate-chatbot-be/internal/config"
	"realestate-chatbot-be/internal/controller"
	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/internal/pkg/metrics"
	"realestate-chatbot-be/internal/repository/contract"
	"realestate-chatbot-be/internal/repository/datastore"
	"realestate-chatbot-be/internal/repository/memory"
	"realestate-chatbot-be/internal/repository/supabase"
	"realestate-chatbot-be/internal/repository/unitofwork"
	"realestate-chatbot-be/internal/service"
	"realestate-chatbot-be/pkg/database"
	"realestate-chatbot-be/pkg/lead"
	"realestate-chatbot-be/pkg/llm/factory"
	"realestate-chatbot-be/pkg/rag/access"
	"realestate-chatbot-be/pkg/rag/format"
	"realestate-chatbot-be/pkg/rag/history"
	"realestate-chatbot-be/pkg/rag/response"
	"realestate-chatbot-be/pkg/training"

	pktNats "realestate-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Container struct {
	ChatbotController controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	LeadConsumerService service.ILeadConsumerService

	Registry *prometheus.Registry
	Logger   logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	isProd := cfg.App.Environment == "production"
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)
	leadLogger := logger.NewIsolatedLogger(cfg.App.LeadLogFilePath)

	store, err := newStore(cfg, !isProd)
	if err != nil {
		return nil, err
	}
	cachedStore := datastore.NewCachedStore(store, cfg.Chatbot.TrainingCacheTTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	chatbotMetrics := metrics.NewChatbot(registry)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	c := &Container{Registry: registry, Logger: sysLogger}
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Generation pipeline
	apiKey := cfg.Keys.OpenAI
	baseURL := cfg.Ai.OpenAIBaseURL
	switch cfg.Ai.LLMProvider {
	case "gemini":
		apiKey = cfg.Keys.GoogleGemini
	case "huggingface":
		apiKey = cfg.Keys.HuggingFace
	case "ollama":
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  baseURL,
		APIKey:   apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	matcher := training.NewMatcher(cachedStore, training.Config{
		MatchThreshold: cfg.Chatbot.MatchThreshold,
	}, sysLogger)

	generator := response.NewGenerator(
		lead.NewDefaultExtractor(),
		matcher,
		llmProvider,
		history.NewLoader(cfg.Chatbot.HistoryMaxTurns, cfg.Chatbot.HistoryTokenLimit),
		format.NewLinkRewriter(cfg.Chatbot.SiteHost, cfg.Chatbot.PropertyPath),
		service.NewConversationLog(cachedStore),
		sysLogger,
		response.Config{
			AssistantName:         cfg.Chatbot.AssistantName,
			DirectAnswerThreshold: cfg.Chatbot.DirectAnswerThreshold,
			PriorityBand:          cfg.Chatbot.PriorityBand,
			Temperature:           cfg.Ai.Temperature,
			MaxTokens:             cfg.Ai.MaxTokens,
		},
	)
	verifier := access.NewVerifier(cachedStore, cfg.Chatbot.FeatureCacheTTL, sysLogger)

	// 4. Lead pipeline
	var forwarder service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		forwarder = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	publisherService := service.NewPublisherService(cfg.Chatbot.LeadTopic, pubSub)
	c.LeadConsumerService = service.NewLeadConsumerService(
		pubSub,
		cfg.Chatbot.LeadTopic,
		cachedStore,
		forwarder,
		leadLogger,
	)

	chatbotService := service.NewChatbotService(
		cachedStore,
		generator,
		verifier,
		publisherService,
		chatbotMetrics,
		sysLogger,
	)

	// 5. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService, cfg.App.RateLimitPerMinute)
	c.closers = append(c.closers, func() {
		_ = leadLogger.Sync()
		_ = sysLogger.Sync()
	})

	return c, nil
}

// newStore selects the data backend. "memory" keeps everything in process
// and is meant for local demos.
func newStore(cfg *config.Config, verbose bool) (contract.ChatbotStore, error) {
	switch cfg.Database.Backend {
	case "supabase":
		log.Printf("[INFO] Using data backend: SUPABASE")
		return supabase.New(supabase.Config{URL: cfg.Supabase.URL, APIKey: cfg.Supabase.APIKey})
	case "memory":
		log.Printf("[INFO] Using data backend: MEMORY")
		return memory.NewChatbotStore(), nil
	case "postgres", "":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, verbose)
		if err != nil {
			return nil, err
		}
		log.Printf("[INFO] Using data backend: POSTGRES")
		return datastore.NewPostgresStore(unitofwork.NewRepositoryFactory(db)), nil
	default:
		return nil, fmt.Errorf("unknown data backend: %s", cfg.Database.Backend)
	}
}

// Close releases background resources in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
