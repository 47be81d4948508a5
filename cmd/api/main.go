package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"contentcraft-api/internal/api"
	"contentcraft-api/internal/api/handlers"
	"contentcraft-api/internal/config"
	"contentcraft-api/internal/database"
	"contentcraft-api/internal/metrics"
	"contentcraft-api/internal/middleware"
	"contentcraft-api/internal/repository"
	"contentcraft-api/internal/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	metrics.Init()

	// Initialize database connection
	db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Get underlying *sql.DB instance for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get underlying *sql.DB instance:", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		log.Fatal("STRIPE_SECRET_KEY environment variable is required")
	}

	cache := newCacheService()

	authService := services.NewAuthService(jwtSecret)
	billingProvider := services.NewStripeProvider(stripeKey)
	subscriptionService := services.NewSubscriptionService(billingProvider, snapshotRepo, userRepo, cache)
	quotaService := services.NewQuotaService(usageRepo, snapshotRepo, cache, config.NewQuotaConfig())

	modelClient, err := newModelClient(config.NewModelConfig())
	if err != nil {
		log.Fatal("Failed to initialize model client:", err)
	}
	generationService := services.NewGenerationService(modelClient)

	// Initialize handlers
	generateHandler := handlers.NewGenerateHandler(quotaService, generationService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, quotaService)
	billingHandler := handlers.NewBillingHandler(billingProvider)

	router := api.SetupRoutes(api.RouterDeps{
		DB:                  db,
		CORSConfig:          config.NewCORSConfig(),
		AuthMiddleware:      middleware.AuthMiddleware(authService),
		RateLimiter:         newRateLimiter(cache),
		GenerateHandler:     generateHandler,
		SubscriptionHandler: subscriptionHandler,
		BillingHandler:      billingHandler,
	})

	// Create server with timeouts
	srv := &http.Server{
		Handler:      router,
		Addr:         ":" + getPort(),
		WriteTimeout: 120 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start server
	log.Printf("Server starting on port %s...", getPort())
	log.Fatal(srv.ListenAndServe())
}

func newModelClient(cfg *config.ModelConfig) (services.ModelClient, error) {
	switch cfg.Provider {
	case config.ModelProviderGemini:
		return services.NewGeminiClient(context.Background(), cfg.APIKey, cfg.Model)
	default:
		return services.NewHuggingFaceClient(cfg.APIKey, cfg.Model), nil
	}
}

// newCacheService connects to Redis when it is configured. A nil
// return disables snapshot caching and the shared rate limiter.
func newCacheService() services.CacheService {
	if os.Getenv("REDIS_HOST") == "" {
		return nil
	}

	cache, err := services.NewRedisCacheService(config.NewCacheConfig())
	if err != nil {
		log.Printf("Warning: Redis unavailable, running without cache: %v", err)
		return nil
	}
	return cache
}

// newRateLimiter picks the shared Redis limiter when Redis is
// available, falling back to the single-instance in-memory window.
func newRateLimiter(cache services.CacheService) middleware.RateLimiter {
	rateCfg := config.NewRateLimitConfig()

	if cache != nil {
		return middleware.NewRedisRateLimiter(cache, rateCfg)
	}
	return middleware.NewMemoryRateLimiter(rateCfg)
}

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}
	return port
}
