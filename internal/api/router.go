package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servilink/marketplace-api/internal/api/handler"
	"github.com/servilink/marketplace-api/internal/api/middleware"
	"github.com/servilink/marketplace-api/internal/core/domain"
	"github.com/servilink/marketplace-api/internal/core/ports"
	"github.com/servilink/marketplace-api/internal/core/service"
	"github.com/servilink/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/servilink/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/servilink/marketplace-api/internal/infrastructure/db/redis"
	"github.com/servilink/marketplace-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is constructed by the caller so its worker lifecycle stays
// tied to the process context.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Limiter.MaxFailures, cfg.Limiter.Window)

	authService := service.NewAuthService(userRepo, limiter, audit, cfg.JWTSecret, cfg.TokenTTL, log)
	profileService := service.NewProfileService(userRepo, audit, log)
	directoryService := service.NewDirectoryService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	technicianHandler := handler.NewTechnicianHandler(profileService, directoryService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/clients", directoryHandler.Clients)
	auth.GET("/technicians", directoryHandler.Technicians)

	// Profile routes require a valid token and a technician role; the service
	// re-validates the stored role on every call.
	profile := auth.Group("/technician/profile", authMiddleware, middleware.RequireRole(domain.RoleTechnician))
	profile.GET("", technicianHandler.Profile)
	profile.PUT("", technicianHandler.UpdateProfile)

	// --- Public technician search ---
	e.GET("/technicians", technicianHandler.Search)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
