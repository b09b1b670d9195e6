package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"quiz-portal/internal/auth"
	"quiz-portal/internal/guard"
	"quiz-portal/internal/models"
	"quiz-portal/internal/profile"
	"quiz-portal/internal/quiz"
	"quiz-portal/pkg/cache"
	"quiz-portal/pkg/database"
	"quiz-portal/pkg/websocket"

	"github.com/gorilla/mux"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Paper{},
		&models.Question{},
		&models.UserAnswer{},
		&models.LoginAttempt{},
		&models.LeaderboardEntry{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

	// Initialize WebSocket hub for live leaderboards
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	guardRepo := guard.NewRepository(db)
	quizRepo := quiz.NewRepository(db)
	profileRepo := profile.NewRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	loginGuard := guard.NewService(guardRepo)
	authService := auth.NewService(authRepo, loginGuard, jwtSecret)
	quizService := quiz.NewService(quizRepo, redisCache, wsHub)
	profileService := profile.NewService(profileRepo)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	quizHandler := quiz.NewHandler(quizService)
	profileHandler := profile.NewHandler(profileService)

	// Setup router
	router := mux.NewRouter()

	// CORS middleware configuration
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Auth routes - no JWT required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Application routes - JWT required
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.JWTMiddleware(jwtSecret))

	apiRouter.HandleFunc("/profile", profileHandler.Get).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/profile", profileHandler.Complete).Methods("PUT", "OPTIONS")

	apiRouter.HandleFunc("/papers", quizHandler.GetPapers).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/papers", quizHandler.CreatePaper).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/papers/{paperName}/questions", quizHandler.GetPaperQuestions).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/papers/{paperName}/submit", quizHandler.SubmitPaper).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/papers/{paperName}/reset", quizHandler.ResetAnswers).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/papers/{paperName}/leaderboard", quizHandler.GetLeaderboard).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/answers", quizHandler.SaveAnswer).Methods("POST", "OPTIONS")

	// WebSocket endpoint for live leaderboard updates
	router.HandleFunc("/ws/papers/{paperName}/leaderboard", wsHub.HandleWebSocket)

	// Setup server with CORS handler
	srv := &http.Server{
		Addr:         ":8080",
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port 8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
