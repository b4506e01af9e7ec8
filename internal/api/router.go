package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shopstack/ecommerce-api/docs"
	"github.com/shopstack/ecommerce-api/internal/api/handler"
	"github.com/shopstack/ecommerce-api/internal/api/middleware"
	"github.com/shopstack/ecommerce-api/internal/auth"
	"github.com/shopstack/ecommerce-api/internal/core/ports"
)

// Dependencies carries everything the router needs, constructed once in main
// and injected here rather than imported as ambient state.
type Dependencies struct {
	Env         string
	DB          *mongo.Database
	Redis       *redis.Client // nil disables the redis readiness check
	Codec       *auth.TokenCodec
	UserRepo    ports.UserRepository
	AuthService ports.AuthService
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Env)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ecommerce"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler()
	authenticate := middleware.Authenticate(deps.Codec, deps.UserRepo)

	// --- API index ---
	e.GET("/api", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "E-commerce API is running!",
			"endpoints": map[string]string{
				"health": "/health",
				"docs":   "/api/docs",
				"auth":   "/api/auth",
				"users":  "/api/users",
			},
		})
	})

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, authenticate)

	// --- User routes (guarded) ---
	userGroup := e.Group("/api/users", authenticate)
	userGroup.GET("/profile", userHandler.Profile)
	userGroup.GET("/admin", userHandler.Admin, middleware.Authorize("admin"))

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api/docs/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Env)
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
