package api

import (
	"net/http"

	"contentcraft-api/internal/api/handlers"
	"contentcraft-api/internal/config"
	"contentcraft-api/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type RouterDeps struct {
	DB                  *gorm.DB
	CORSConfig          *config.CORSConfig
	AuthMiddleware      func(http.Handler) http.Handler
	RateLimiter         middleware.RateLimiter
	GenerateHandler     *handlers.GenerateHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	BillingHandler      *handlers.BillingHandler
}

// SetupRoutes builds the router: CORS and request logging on
// everything, bearer auth on the function endpoints, and the sliding
// window rate limit on generation only.
func SetupRoutes(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.CORS(deps.CORSConfig))

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", handlers.HealthCheckHandler(deps.DB)).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(deps.AuthMiddleware)

	apiRouter.Handle("/generate-content",
		middleware.RateLimit(deps.RateLimiter, http.HandlerFunc(deps.GenerateHandler.HandleGenerateContent)),
	).Methods("POST", "OPTIONS")

	apiRouter.HandleFunc("/check-subscription", deps.SubscriptionHandler.HandleCheckSubscription).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/usage", deps.SubscriptionHandler.HandleGetUsage).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/create-checkout", deps.BillingHandler.HandleCreateCheckout).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/customer-portal", deps.BillingHandler.HandleCustomerPortal).Methods("POST", "OPTIONS")

	return router
}
