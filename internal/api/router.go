package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/citylibrary/lending-system/internal/api/handler"
	"github.com/citylibrary/lending-system/internal/api/middleware"
	"github.com/citylibrary/lending-system/internal/core/ports"
	"github.com/citylibrary/lending-system/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Stores and services are built
// by whoever wires up the process and passed in explicitly; the router owns
// no hidden globals.
type Deps struct {
	Catalog   ports.CatalogService
	Directory ports.DirectoryService
	Lending   ports.LendingService
	Sessions  middleware.SessionChecker
	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lending"))

	authHandler := handler.NewAuthHandler(deps.Directory)
	bookHandler := handler.NewBookHandler(deps.Catalog)
	loanHandler := handler.NewLoanHandler(deps.Lending)

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.DELETE("/auth/account", authHandler.DeleteAccount, authMiddleware)

	// --- Catalog read paths (no auth required) ---
	e.GET("/v1/books", bookHandler.ListAll)
	e.GET("/v1/books/available", bookHandler.ListAvailable)
	e.GET("/v1/books/search", bookHandler.Search)

	// --- Authenticated routes ---
	protected := []echo.MiddlewareFunc{authMiddleware}
	if deps.Sessions != nil {
		protected = append(protected, middleware.Session(deps.Sessions))
	}

	e.POST("/v1/books", bookHandler.Add, protected...)
	e.POST("/v1/loans/borrow", loanHandler.Borrow, protected...)
	e.POST("/v1/loans/return", loanHandler.Return, protected...)
	e.GET("/v1/members/:id/books", loanHandler.BorrowedBooks, protected...)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
