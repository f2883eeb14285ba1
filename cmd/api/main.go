package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hired/interview-service/internal/config"
	"hired/interview-service/internal/handlers"
	"hired/interview-service/internal/repositories"
	"hired/interview-service/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	var (
		docRepo      repositories.DocumentRepository
		resultRepo   repositories.InterviewResultRepository
		resultWriter services.ResultWriter
	)
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}

		docRepo = repositories.NewDocumentRepository(db)
		resultRepo = repositories.NewInterviewResultRepository(db)
		resultWriter = resultRepo
		log.Println("✅ Repositories initialized successfully")
	} else {
		log.Println("⚠️  Database disabled, interview history will not be stored")
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Qdrant is optional: without it questions are generated without role reference context
	var retriever services.ReferenceRetriever
	if cfg.Qdrant.URL != "" {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant, continuing without reference context: %v", err)
		} else if err := qdrantService.InitCollection(ctx); err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant collection, continuing without reference context: %v", err)
		} else {
			retriever = services.NewReferenceRetriever(geminiService, qdrantService)
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	// Initialize interview flow
	sessionStore := services.NewMemorySessionStore()
	questionGenerator := services.NewQuestionGenerator(geminiService, retriever)
	answerScorer := services.NewAnswerScorer(geminiService)
	scriptService := services.NewScriptService(geminiService)

	worker := services.NewWorker(resultWriter, sessionStore, services.WorkerOptions{
		Concurrency:   cfg.Worker.Concurrency,
		QueueSize:     cfg.Worker.QueueSize,
		SessionTTL:    cfg.Interview.SessionIdleTTL,
		SweepInterval: cfg.Interview.SweepInterval,
	})
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	interviewService := services.NewInterviewService(
		sessionStore,
		questionGenerator,
		geminiService,
		answerScorer,
		worker,
		services.InterviewOptions{
			QuestionCount:       cfg.Interview.QuestionCount,
			MaxScorePerQuestion: cfg.Interview.MaxScorePerQuestion,
			DefaultDifficulty:   cfg.Interview.DefaultDifficulty,
			DefaultKeyPoints:    cfg.Interview.DefaultKeyPoints,
			CollaboratorTimeout: cfg.Interview.CollaboratorTimeout,
		},
	)
	log.Println("✅ Interview service initialized")

	// Initialize Handlers
	interviewHandler := handlers.NewInterviewHandler(interviewService, cfg.Storage.MaxAudioSize)
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		pdfParser,
		scriptService,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hired Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(max(cfg.Storage.MaxFileSize, cfg.Storage.MaxAudioSize)),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":          "healthy",
			"time":            time.Now(),
			"active_sessions": sessionStore.Len(),
		})
	})

	endpoints := []string{
		"POST /upload",
		"POST /generate_script",
		"POST /interview/start",
		"GET /interview/:session_id/next",
		"POST /interview/audio/upload",
	}

	app.Post("/upload", uploadHandler.HandleUpload)
	app.Post("/generate_script", uploadHandler.HandleGenerateScript)

	interview := app.Group("/interview")

	if resultRepo != nil {
		resultHandler := handlers.NewResultHandler(resultRepo)
		interview.Get("/history", resultHandler.HandleListResults)
		interview.Get("/history/:session_id", resultHandler.HandleGetResult)
		endpoints = append(endpoints, "GET /interview/history", "GET /interview/history/:session_id")
	}

	interview.Post("/start", interviewHandler.HandleStart)
	interview.Get("/:session_id/next", interviewHandler.HandleNext)
	interview.Post("/audio/upload", interviewHandler.HandleAudioAnswer)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Hired Interview API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	// Flush queued interview results before exiting
	worker.Stop()
	cancel()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
