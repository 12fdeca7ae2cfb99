package bootstrap

import (
	"context"
	"log"

	"ai-triage-be/internal/config"
	"ai-triage-be/internal/controller"
	"ai-triage-be/internal/handler"
	"ai-triage-be/internal/pkg/logger"
	"ai-triage-be/internal/repository/implementation"
	"ai-triage-be/internal/repository/memory"
	"ai-triage-be/internal/service"
	"ai-triage-be/internal/websocket"
	"ai-triage-be/pkg/drug"
	"ai-triage-be/pkg/interaction"
	pktNats "ai-triage-be/pkg/nats"
	"ai-triage-be/pkg/predictor"
	"ai-triage-be/pkg/terminology"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const analysisEventsTopic = "ANALYSIS_SESSION_EVENTS"

type Container struct {
	// Controllers & Handlers
	PrescriptionController controller.IPrescriptionController
	AnalysisHandler        *handler.AnalysisHandler

	// Background Services (Exposed for main.go to run)
	DispatcherService service.IDispatcherService

	// WebSockets & Sessions
	WebSocketHub    *websocket.Hub
	SessionRegistry *memory.SessionRegistry
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus (in-process, pipeline -> websocket dispatcher)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Clinical Adapters based on Config
	var termMapper terminology.Mapper
	var drugRecommender drug.Recommender
	var interactionChecker interaction.Checker
	if cfg.Clinical.Provider == "http" {
		termMapper = terminology.NewHTTPMapper(cfg.Clinical.TerminologyURL, cfg.Clinical.CallTimeout)
		drugRecommender = drug.NewHTTPRecommender(cfg.Clinical.DrugURL, cfg.Clinical.CallTimeout)
		interactionChecker = interaction.NewHTTPChecker(cfg.Clinical.InteractionURL, cfg.Clinical.CallTimeout)
		log.Printf("[INFO] Using Clinical Provider: HTTP")
	} else {
		termMapper = terminology.NewStaticMapper()
		drugRecommender = drug.NewStaticRecommender()
		interactionChecker = interaction.NewStaticChecker()
		log.Printf("[INFO] Using Clinical Provider: STATIC")
	}

	// Diagnosis Predictor based on Config
	diagPredictor, err := predictor.NewPredictor(cfg.Predictor.Provider, cfg.Predictor.BaseURL, cfg.Clinical.CallTimeout)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Predictor: %v", err)
	}
	log.Printf("[INFO] Using Predictor: %s", cfg.Predictor.Provider)

	// In-Memory Session Registry
	sessionRegistry := memory.NewSessionRegistry()

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	eventPublisher := service.NewEventPublisherService(analysisEventsTopic, pubSub)
	dispatcherService := service.NewDispatcherService(pubSub, analysisEventsTopic, wsHub, wsLogger)

	analysisService := service.NewAnalysisService(
		sessionRegistry,
		termMapper,
		diagPredictor,
		drugRecommender,
		interactionChecker,
		eventPublisher,
		natsPub,
		sysLogger,
	)

	prescriptionRepo := implementation.NewPrescriptionRepository(db)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo)

	// Broadcast worker (operator notices -> all sessions)
	if natsSub != nil {
		broadcastService := service.NewBroadcastService(natsSub, wsHub, wsLogger)
		go broadcastService.Start()
	}

	// 6. Handlers & Controllers
	analysisHandler := handler.NewAnalysisHandler(analysisService, sessionRegistry, eventPublisher, wsHub, wsLogger)

	return &Container{
		PrescriptionController: controller.NewPrescriptionController(prescriptionService),
		AnalysisHandler:        analysisHandler,

		DispatcherService: dispatcherService,

		WebSocketHub:    wsHub,
		SessionRegistry: sessionRegistry,
	}
}
