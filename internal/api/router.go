package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/interactive/eservice-platform/docs"
	"github.com/interactive/eservice-platform/internal/api/handler"
	"github.com/interactive/eservice-platform/internal/api/middleware"
	"github.com/interactive/eservice-platform/internal/core/ports"
	"github.com/interactive/eservice-platform/internal/core/service"
	mongodb "github.com/interactive/eservice-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/interactive/eservice-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokens ports.TokenService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eservice"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb)

	authService := service.NewAuthService(userRepo, tokens, limiter, log)
	requestService := service.NewRequestService(requestRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	requestHandler := handler.NewRequestHandler(requestService)

	// --- Auth routes (open) ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// --- Request lifecycle (authenticated namespace) ---
	// The gate itself is additive; RequireAuthenticated does the rejection.
	requests := e.Group("/api/v1/requests",
		middleware.Authenticate(tokens, log),
		middleware.RequireAuthenticated(),
	)
	requests.POST("", requestHandler.Create)
	requests.GET("/:id", requestHandler.Get)
	requests.GET("/user/:userId", requestHandler.ListByUser)
	requests.GET("/status/:status", requestHandler.ListByStatus)
	requests.PUT("/:id/submit", requestHandler.Submit)
	requests.PUT("/:id/reject", requestHandler.Reject)
	requests.PUT("/:id/approve", requestHandler.Approve)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
