package main

import (
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
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/career-advisor/internal/config"
	"alfredoptarigan/career-advisor/internal/handlers"
	"alfredoptarigan/career-advisor/internal/repositories"
	"alfredoptarigan/career-advisor/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	convRepo := repositories.NewConversationRepository(db)
	msgRepo := repositories.NewMessageRepository(db)
	userRepo := repositories.NewUserRepository(db)
	fileRepo := repositories.NewUploadedFileRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	formatter := services.NewResponseFormatter()
	chunker := services.NewTextChunker()
	catalog := services.NewCareerCatalog()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.Temperature,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize advisor and analyzer
	advisorService := services.NewAdvisorService(
		convRepo,
		msgRepo,
		geminiService,
		formatter,
		cfg.Chat.RetryMaxAttempts,
	)

	analyzerService := services.NewCVAnalyzerService(
		extractor,
		geminiService,
		formatter,
		cfg.Chat.MaxCVTextLength,
		cfg.Chat.RetryMaxAttempts,
	)
	log.Println("✅ Advisor services initialized")

	// Session store pins the active conversation (and user) per client
	sessions := session.New()

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(convRepo, msgRepo, advisorService, sessions)
	streamHandler := handlers.NewStreamHandler(
		convRepo,
		advisorService,
		chunker,
		sessions,
		cfg.Chat.StreamChunkSize,
		cfg.Chat.StreamDelay,
	)
	uploadHandler := handlers.NewUploadHandler(
		fileRepo,
		storageService,
		analyzerService,
		sessions,
		cfg.Storage.MaxFileSize,
	)
	signupHandler := handlers.NewSignupHandler(userRepo, sessions)
	careersHandler := handlers.NewCareersHandler(catalog)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Career Advisor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Get("/chat", chatHandler.HandleGetChat)
	api.Post("/chat", chatHandler.HandlePostChat)
	api.Post("/chat/stream", streamHandler.HandleStreamChat)
	api.Get("/careers", careersHandler.HandleGetCareers)
	api.Post("/signup", signupHandler.HandleSignup)
	api.Post("/upload_cv", uploadHandler.HandleUploadCV)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Career Advisor API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/chat",
				"POST /api/v1/chat",
				"POST /api/v1/chat/stream",
				"GET /api/v1/careers",
				"POST /api/v1/signup",
				"POST /api/v1/upload_cv",
			},
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
