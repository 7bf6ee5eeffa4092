package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"campusmind/internal/service"
	"campusmind/internal/transport/rest/handler"
	"campusmind/internal/transport/rest/middleware"
	"campusmind/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	AssessmentService   *service.AssessmentService
	ChatService         *service.ChatService
	AnnouncementService *service.AnnouncementService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	chatHandler := handler.NewChatHandler(c.ChatService)
	announcementHandler := handler.NewAnnouncementHandler(c.AnnouncementService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/student", authHandler.StudentLogin).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/counselor", authHandler.CounselorLogin).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/chat", wsHandler.StudentWS).Methods("GET")
	v1.HandleFunc("/ws/alerts", wsHandler.CounselorWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Counselor routes (registered first so /assessments/stats wins
	// over /assessments/{id})
	counselorRoutes := v1.NewRoute().Subrouter()
	counselorRoutes.Use(authMW.RequireCounselor)

	counselorRoutes.HandleFunc("/assessments/stats", assessmentHandler.Stats).Methods("GET", "OPTIONS")
	counselorRoutes.HandleFunc("/chat/crisis", chatHandler.CrisisLog).Methods("GET", "OPTIONS")
	counselorRoutes.HandleFunc("/announcements", announcementHandler.Create).Methods("POST", "OPTIONS")

	// Student routes
	studentRoutes := v1.NewRoute().Subrouter()
	studentRoutes.Use(authMW.RequireStudent)

	studentRoutes.HandleFunc("/assessments", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/assessments", assessmentHandler.History).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/assessments/{id}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/chat/messages", chatHandler.Send).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/chat/messages", chatHandler.History).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/announcements", announcementHandler.List).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
