package api

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tesloshop/catalog-api/internal/api/handler"
	"github.com/tesloshop/catalog-api/internal/api/middleware"
	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
	"github.com/tesloshop/catalog-api/internal/core/service"
)

// Deps carries everything the router needs to wire the application.
type Deps struct {
	DB          *sql.DB
	Redis       *redis.Client
	Users       ports.UserRepository
	AuthService ports.AuthService
	Products    ports.ProductService
	Tokens      *service.TokenService
	Storage     ports.FileStorage
	Seeder      handler.Seeder
	Auditor     middleware.AccessAuditor
	BaseURL     string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes
// registered and their role requirements declared in the role table.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	authMW := middleware.Auth(deps.Tokens, deps.Users)

	// Role requirements live in one explicit table consulted per request;
	// a guarded route missing from it fails closed with a 500.
	roles := middleware.NewRoleTable()
	rbacMW := middleware.RequireRoles(roles, deps.Auditor)
	protected := func(method, path string, h echo.HandlerFunc, required ...domain.Role) {
		roles.Register(method, path, required...)
		e.Add(method, path, h, authMW, rbacMW)
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	productHandler := handler.NewProductHandler(deps.Products)
	fileHandler := handler.NewFileHandler(deps.Storage, deps.BaseURL)
	seedHandler := handler.NewSeedHandler(deps.Seeder)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	protected(http.MethodGet, "/auth/check-status", authHandler.CheckStatus) // any authenticated user

	// --- Product routes ---
	protected(http.MethodPost, "/products", productHandler.Create, domain.RoleAdmin)
	protected(http.MethodGet, "/products", productHandler.List, domain.RoleUser, domain.RoleAdmin, domain.RoleSuperUser)
	protected(http.MethodGet, "/products/:criteria", productHandler.Get, domain.RoleUser, domain.RoleAdmin, domain.RoleSuperUser)
	protected(http.MethodPatch, "/products/:id", productHandler.Update, domain.RoleAdmin)
	protected(http.MethodDelete, "/products/:id", productHandler.Delete, domain.RoleAdmin)

	// --- File routes ---
	protected(http.MethodPost, "/files/product", fileHandler.Upload, domain.RoleAdmin)
	e.GET("/files/product/:imageName", fileHandler.Serve)

	// --- Seed (dev/test utility) ---
	e.GET("/seed", seedHandler.Run)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
