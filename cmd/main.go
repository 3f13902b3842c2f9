package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opioid-chatbot/internal/ai"
	"opioid-chatbot/internal/config"
	"opioid-chatbot/internal/logger"
	"opioid-chatbot/internal/telemetry"
	"opioid-chatbot/middleware"
	"opioid-chatbot/routes"
	"opioid-chatbot/services"
	"opioid-chatbot/utils"

	"github.com/gin-gonic/gin"
)

// maxAskBody bounds the /ask form or JSON body.
const maxAskBody = 64 << 10

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("Failed to initialize tracing:", err)
	}
	defer shutdownTracer()

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics:", err)
	}

	// The reference document must load before anything is served
	start := time.Now()
	doc, err := services.LoadDocument(context.Background(), cfg.PDFPath)
	if err != nil {
		metrics.RecordPDFProcessing(time.Since(start).Seconds(), "error")
		log.Fatal("Failed to load reference document:", err)
	}
	metrics.RecordPDFProcessing(time.Since(start).Seconds(), "success")
	logger.Info("Reference document loaded",
		"path", doc.Path(),
		"pages", doc.Pages(),
		"chars", len(doc.Text()),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	tokens, err := ai.NewTokenCounter(cfg.PromptTokenEncoding)
	if err != nil {
		logger.Warn("Falling back to estimated prompt token counts", "error", err)
	}

	llama := ai.NewLlamaClient(cfg.LlamaEndpoint, cfg.LlamaTimeout,
		ai.WithTokenCounter(tokens),
		ai.WithCallRecorder(metrics),
	)
	answers := services.NewAnswerService(llama, doc, services.DefaultKeywords()).WithRecorder(metrics)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.TracingMiddleware(cfg.ServiceName))
	router.Use(middleware.EnrichTrace())
	router.Use(middleware.MetricsMiddleware(metrics))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimit(maxAskBody))

	routes.SetupHealthRoutes(router, doc)
	routes.SetupChatRoutes(router, answers)

	router.NoRoute(func(c *gin.Context) {
		utils.RespondWithNotFound(c, "Route not found")
	})
	router.NoMethod(func(c *gin.Context) {
		utils.RespondWithMethodNotAllowed(c, "Method not allowed")
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "llama_endpoint", cfg.LlamaEndpoint)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
