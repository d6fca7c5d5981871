package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/vibewatch-backend/config"
	"github.com/dustin/vibewatch-backend/internal/adapter"
	"github.com/dustin/vibewatch-backend/internal/catalog"
	"github.com/dustin/vibewatch-backend/internal/embedding"
	"github.com/dustin/vibewatch-backend/internal/querylog"
	"github.com/dustin/vibewatch-backend/internal/recommendation"
	"github.com/dustin/vibewatch-backend/internal/retriever"
	"github.com/dustin/vibewatch-backend/internal/transcriber"
	"github.com/dustin/vibewatch-backend/internal/worker"
	"github.com/dustin/vibewatch-backend/pkg/database"
	"github.com/dustin/vibewatch-backend/pkg/llm"
	"github.com/dustin/vibewatch-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger with validation and defaults
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	appLogger.Info("Starting vibewatch backend service")

	// Load the pre-built catalog index before accepting any request, so an
	// unloaded index fails startup instead of the first call
	index := catalog.NewIndex(appLogger)
	indexPath := cfg.Catalog.IndexPath
	if indexPath == "" {
		indexPath = "data/catalog_index.json"
	}
	if err := index.LoadFromFile(indexPath); err != nil {
		appLogger.Fatal("Failed to load catalog index: " + err.Error())
	}

	// Connect to the query log database
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: " + err.Error())
	}

	if err := db.AutoMigrate(&querylog.Entry{}); err != nil {
		appLogger.Fatal("Failed to migrate database: " + err.Error())
	}

	appLogger.Info("Query log database ready")

	// Initialize outbound clients
	embeddingClient, err := embedding.NewClient(&cfg.OpenAI)
	if err != nil {
		appLogger.Fatal("Failed to initialize embedding client: " + err.Error())
	}

	chatClient, err := llm.NewOpenAIClient(&cfg.OpenAI)
	if err != nil {
		appLogger.Fatal("Failed to initialize chat client: " + err.Error())
	}

	transcriptionClient, err := transcriber.NewClient(&cfg.OpenAI)
	if err != nil {
		appLogger.Fatal("Failed to initialize transcription client: " + err.Error())
	}

	// Initialize the pipeline with dependency injection
	queryRepo := querylog.NewGORMRepository(db, appLogger)
	queryRecorder := querylog.NewRecorder(queryRepo, appLogger)
	movieRetriever := retriever.NewRetriever(index, embeddingClient, appLogger)
	chatModel := adapter.NewChatClientToChatModel(chatClient)
	recommendationService := recommendation.NewService(movieRetriever, chatModel, appLogger)
	recommendationHandler := recommendation.NewHandler(recommendationService, queryRecorder, transcriptionClient)

	// Initialize background worker for query log retention
	cleanupWorker, err := worker.NewCleanupWorker(
		&cfg.Worker,
		"querylog-retention",
		queryRepo.DeleteOlderThan,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize cleanup worker: " + err.Error())
	}

	if err := cleanupWorker.Start(); err != nil {
		appLogger.Error("Failed to start cleanup worker: " + err.Error())
	}

	// Setup HTTP router with middleware
	router := gin.New()

	// Configure standard middleware stack
	router.Use(requestid.New())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	// Health check endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "vibewatch-backend",
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"timestamp":      time.Now(),
			"service":        "vibewatch-backend",
			"catalog_size":   index.Size(),
			"cleanup_worker": cleanupWorker.IsRunning(),
			"database":       "connected",
		})
	})

	// Recommendation routes
	recommendationHandler.RegisterRoutes(router.Group("/"))

	// Parse server configuration with defaults
	serverPort := cfg.Server.Port
	if serverPort == "" {
		serverPort = "8080" // default
	}

	serverReadTimeout := 30 * time.Second // default
	if cfg.Server.ReadTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.ReadTimeout); err == nil {
			serverReadTimeout = duration
		}
	}

	serverWriteTimeout := 120 * time.Second // generation can be slow
	if cfg.Server.WriteTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.WriteTimeout); err == nil {
			serverWriteTimeout = duration
		}
	}

	serverEnvironment := cfg.Server.Environment
	if serverEnvironment == "" {
		serverEnvironment = "development" // default
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server: " + err.Error())
		}
	}()

	appLogger.Info("Server started successfully on port " + serverPort + " (" + serverEnvironment + " environment)")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop cleanup worker first
	if err := cleanupWorker.Stop(); err != nil {
		appLogger.Error("Error stopping cleanup worker: " + err.Error())
	}

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown: " + err.Error())
	}

	appLogger.Info("Server shutdown complete")
}
