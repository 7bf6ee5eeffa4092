package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusmind/internal/cache"
	"campusmind/internal/config"
	"campusmind/internal/crisis"
	"campusmind/internal/repository"
	"campusmind/internal/scoring"
	"campusmind/internal/service"
	"campusmind/internal/transport/rest"
	"campusmind/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Log guidance settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("Guidance config:")
	log.Printf("  Model: %s", aiConfig.Model)
	if aiConfig.IsEnabled() {
		log.Println("  API Key: configured")
	} else {
		log.Println("  API Key: NOT SET (using static guidance library)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	assessmentRepo := repository.NewAssessmentRepo(db)
	chatRepo := repository.NewChatRepo(db)
	announcementRepo := repository.NewAnnouncementRepo(db)

	// Initialize caches
	statsCache := cache.NewStatsCache(rdb)

	// Initialize core engines
	registry := scoring.NewRegistry()
	detector := crisis.NewDetector()

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	guidanceSvc := service.NewGuidanceService()
	assessmentSvc := service.NewAssessmentService(assessmentRepo, guidanceSvc, statsCache, registry)
	chatSvc := service.NewChatService(chatRepo, detector)
	announcementSvc := service.NewAnnouncementService(announcementRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	chatSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		AssessmentService:   assessmentSvc,
		ChatService:         chatSvc,
		AnnouncementService: announcementSvc,
		WSHub:               wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/student")
		log.Println("  POST /v1/auth/counselor")
		log.Println("  POST/GET /v1/assessments")
		log.Println("  GET  /v1/assessments/{id}")
		log.Println("  GET  /v1/assessments/stats")
		log.Println("  POST/GET /v1/chat/messages")
		log.Println("  GET  /v1/chat/crisis")
		log.Println("  POST/GET /v1/announcements")
		log.Println("  WS   /v1/ws/chat")
		log.Println("  WS   /v1/ws/alerts")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
